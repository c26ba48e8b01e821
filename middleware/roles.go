package middleware

import (
	"context"
	"net/http"

	"arabianx/db"
	"arabianx/globals"
	"arabianx/models"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RequireRoles re-reads the user document and compares its current role
// field instead of trusting the token claim, so a demotion takes effect on
// the next request.
func RequireRoles(roles ...string) Middleware {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			userID, _ := r.Context().Value(globals.UserIDKey).(string)
			if userID == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			var user models.User
			err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user)
			if err == mongo.ErrNoDocuments {
				http.Error(w, "User not found", http.StatusNotFound)
				return
			}
			if err != nil {
				http.Error(w, "Server error", http.StatusInternalServerError)
				return
			}

			for _, role := range roles {
				if user.Role == role {
					ctx := context.WithValue(r.Context(), globals.RoleKey, user.Role)
					next(w, r.WithContext(ctx), ps)
					return
				}
			}

			http.Error(w, "Access denied", http.StatusForbidden)
		}
	}
}
