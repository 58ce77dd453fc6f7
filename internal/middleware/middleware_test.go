package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tindahan-be/internal/transport"
	"tindahan-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var seen transport.Actor
	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, found = transport.ActorFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Valid bearer token attaches the actor", func(t *testing.T) {
		token, err := user.GenerateJWT(7, "maria", user.RoleBuyer)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		Authenticate(next).ServeHTTP(rec, req)

		require.True(t, found)
		assert.Equal(t, uint(7), seen.UserID)
		assert.Equal(t, "maria", seen.Username)
		assert.Equal(t, user.RoleBuyer, seen.Role)
	})

	t.Run("Cookie token attaches the actor", func(t *testing.T) {
		token, err := user.GenerateJWT(8, "jose", user.RoleSeller)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		rec := httptest.NewRecorder()

		Authenticate(next).ServeHTTP(rec, req)

		require.True(t, found)
		assert.Equal(t, uint(8), seen.UserID)
	})

	t.Run("Missing token passes through anonymously", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		rec := httptest.NewRecorder()

		Authenticate(next).ServeHTTP(rec, req)

		assert.False(t, found)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Garbage token passes through anonymously", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()

		Authenticate(next).ServeHTTP(rec, req)

		assert.False(t, found)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("Anonymous request is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		rec := httptest.NewRecorder()

		RequireAuth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Authenticated request goes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req = req.WithContext(transport.WithActor(req.Context(), transport.Actor{UserID: 7}))
		rec := httptest.NewRecorder()

		RequireAuth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Strict tier throttles repeated checkout calls", func(t *testing.T) {
		handler := RateLimit(next)

		var tooMany bool
		for i := 0; i < burstStrict+2; i++ {
			req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
			req.RemoteAddr = "203.0.113.9:1234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code == http.StatusTooManyRequests {
				tooMany = true
			}
		}
		assert.True(t, tooMany)
	})

	t.Run("Distinct callers get distinct buckets", func(t *testing.T) {
		handler := RateLimit(next)

		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		req.RemoteAddr = "203.0.113.10:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("General tier allows a browsing burst", func(t *testing.T) {
		handler := RateLimit(next)

		for i := 0; i < burstStrict+2; i++ {
			req := httptest.NewRequest(http.MethodGet, "/products", nil)
			req.RemoteAddr = "203.0.113.11:1234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}
