package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// Authenticator rejects requests without a valid session token. The verifier
// (installed on the router) accepts the token from the Authorization header
// or the "jwt" cookie set at login.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
