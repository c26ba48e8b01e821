package globals

import (
	"context"
	"os"
)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

var Ctx = context.Background()

var JwtSecret = []byte(envOr("JWT_SECRET", "change_me_in_env"))

// AdminEmail is auto-promoted to the admin role at registration.
const AdminEmail = "castrogarciasantiagodaniel@gmail.com"

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func MongoURI() string {
	return envOr("MONGO_URI", "mongodb://localhost:27017")
}

func RedisAddr() string {
	return envOr("REDIS_ADDR", "localhost:6379")
}

func FrontendURL() string {
	return envOr("FRONTEND_URL", "http://localhost:5173")
}

func MPAccessToken() string {
	return os.Getenv("MP_ACCESS_TOKEN")
}

func ServeStatic() bool {
	return os.Getenv("SERVE_STATIC") == "true"
}
