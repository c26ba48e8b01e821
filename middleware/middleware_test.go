package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"arabianx/globals"
	"arabianx/middleware"
	"arabianx/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signedToken(t *testing.T, userID, role string, ttl time.Duration) string {
	t.Helper()
	claims := &middleware.Claims{
		Name:   "Ana",
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestValidateJWT(t *testing.T) {
	t.Run("valid token round-trips claims", func(t *testing.T) {
		token := signedToken(t, "u123", "admin", time.Hour)

		claims, err := middleware.ValidateJWT("Bearer " + token)
		if err != nil {
			t.Fatalf("ValidateJWT: %v", err)
		}
		if claims.UserID != "u123" || claims.Role != "admin" {
			t.Errorf("claims = %+v", claims)
		}
	})

	t.Run("missing bearer prefix is rejected", func(t *testing.T) {
		token := signedToken(t, "u123", "user", time.Hour)
		if _, err := middleware.ValidateJWT(token); err == nil {
			t.Error("expected error for missing prefix")
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := signedToken(t, "u123", "user", -time.Minute)
		if _, err := middleware.ValidateJWT("Bearer " + token); err == nil {
			t.Error("expected error for expired token")
		}
	})

	t.Run("wrong signature is rejected", func(t *testing.T) {
		claims := &middleware.Claims{UserID: "u123"}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("someone-elses-secret"))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		if _, err := middleware.ValidateJWT("Bearer " + token); err == nil {
			t.Error("expected error for foreign signature")
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		if _, err := middleware.ValidateJWT("Bearer not.a.jwt"); err == nil {
			t.Error("expected error for garbage token")
		}
	})
}

func TestAuthenticate(t *testing.T) {
	handler := middleware.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Write([]byte(utils.GetUserIDFromRequest(r) + "/" + utils.GetRoleFromRequest(r)))
	})

	t.Run("missing token is a 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		rec := httptest.NewRecorder()

		handler(rec, req, nil)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid token reaches the handler with claims in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "u123", "user", time.Hour))
		rec := httptest.NewRecorder()

		handler(rec, req, nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got := rec.Body.String(); got != "u123/user" {
			t.Errorf("context claims = %q, want %q", got, "u123/user")
		}
	})
}

func TestOptionalAuth(t *testing.T) {
	handler := middleware.OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Write([]byte(utils.GetUserIDFromRequest(r)))
	})

	t.Run("no token still reaches the handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		rec := httptest.NewRecorder()

		handler(rec, req, nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if rec.Body.String() != "" {
			t.Errorf("guest request should have no user id, got %q", rec.Body.String())
		}
	})

	t.Run("valid token attaches the user id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "u123", "user", time.Hour))
		rec := httptest.NewRecorder()

		handler(rec, req, nil)

		if rec.Body.String() != "u123" {
			t.Errorf("user id = %q, want u123", rec.Body.String())
		}
	})
}
