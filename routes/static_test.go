package routes_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arabianx/routes"

	"github.com/julienschmidt/httprouter"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestSPAFallback(t *testing.T) {
	dist := t.TempDir()
	writeFile(t, filepath.Join(dist, "index.html"), "<html>storefront</html>")
	writeFile(t, filepath.Join(dist, "app.js"), "console.log('hi')")

	router := httprouter.New()
	routes.AddSPAFallback(router, dist)

	t.Setenv("SERVE_STATIC", "true")

	t.Run("root serves the bundle index", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "storefront") {
			t.Errorf("body = %q, want index.html contents", rec.Body.String())
		}
	})

	t.Run("client-side route falls back to index", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/checkout/success", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "storefront") {
			t.Errorf("body = %q, want index.html fallback", rec.Body.String())
		}
	})

	t.Run("real asset is served as-is", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "console.log") {
			t.Errorf("body = %q, want asset contents", rec.Body.String())
		}
	})

	t.Run("unknown api route stays JSON", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/does-not-exist", nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
			t.Errorf("Content-Type = %q, want JSON, never the HTML fallback", ct)
		}
	})
}

func TestSPAFallback_Disabled(t *testing.T) {
	dist := t.TempDir()
	writeFile(t, filepath.Join(dist, "index.html"), "<html>storefront</html>")

	router := httprouter.New()
	routes.AddSPAFallback(router, dist)

	t.Setenv("SERVE_STATIC", "false")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/checkout", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when static serving is off", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("api status = %d, want 404", rec.Code)
	}
}
