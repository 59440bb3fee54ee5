package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"timetrack/internal/auth"
)

func TestAuthMiddlewareSetsIdentity(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{
		UserID:      "u1",
		DisplayName: "Ravi Kumar",
		Email:       "ravi@example.com",
		Role:        "admin",
	}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetIdentity(r.Context())
		if !ok {
			t.Fatal("expected identity in context")
		}
		if actor.UserID != "u1" || actor.Role != "admin" {
			t.Fatalf("unexpected identity: %+v", actor)
		}
		if actor.AuthID != "u1" {
			t.Fatalf("expected auth id to fall back to user id, got %q", actor.AuthID)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); ok {
			t.Fatal("did not expect identity in context")
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); ok {
			t.Fatal("did not expect identity for bad token")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}
