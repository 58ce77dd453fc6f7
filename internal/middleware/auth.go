package middleware

import (
	"net/http"

	"tindahan-be/internal/auth"
	"tindahan-be/internal/transport"
	"tindahan-be/internal/user"
)

// Authenticate parses the access token, if any, and attaches the caller as an
// Actor on the request context. Requests without a valid token pass through
// anonymously; enforcement is RequireAuth's job.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := transport.WithActor(r.Context(), transport.Actor{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     user.Role(claims.Role),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests that did not authenticate.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := transport.ActorFrom(r.Context()); !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
