package auth

import (
	"net/http"
	"strings"
)

// AccessTokenCookie is the cookie the login handler sets and this package
// reads back.
const AccessTokenCookie = "access_token"

// ExtractAccessToken pulls the access token from the cookie (preferred)
// or the Authorization header. Returns "" when neither carries one.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	const scheme = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
		return strings.TrimSpace(header[len(scheme):])
	}

	return ""
}
