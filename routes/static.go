package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"arabianx/globals"
	"arabianx/utils"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

// AddSPAFallback makes the API process double as the storefront host when
// SERVE_STATIC is on: unknown non-API paths get the built bundle (or its
// index.html, for client-side routes), while unknown /api/* paths stay JSON.
func AddSPAFallback(router *httprouter.Router, distDir string) {
	fileServer := http.FileServer(http.Dir(distDir))

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			utils.RespondWithError(w, http.StatusNotFound, "Route not found")
			return
		}
		if !globals.ServeStatic() {
			http.NotFound(w, r)
			return
		}

		candidate := filepath.Join(distDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(distDir, "index.html"))
	})
}
