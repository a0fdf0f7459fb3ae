// ABOUTME: RequireUser middleware for session-cookie auth with a dev-mode bypass.
// ABOUTME: Injects the editor's SessionClaims into the request context.
package api

import (
	"context"
	"net/http"

	"github.com/britecreationsdylanne/brite-side/internal/auth"
)

// RequireUser returns a middleware that requires a signed-in editor. In local
// dev mode every request acts as the fixed development identity; otherwise
// the session cookie must parse and be unexpired.
func (srv *Server) RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := srv.sessionFor(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			ctx := context.WithValue(r.Context(), ctxUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFor resolves the signed-in editor for a request: the fixed dev
// identity when Google sign-in is not configured, otherwise the parsed
// session cookie.
func (srv *Server) sessionFor(r *http.Request) (*auth.SessionClaims, bool) {
	if srv.devMode() {
		return &auth.SessionClaims{Email: "dev@brite.co", Name: "Local Developer"}, true
	}
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, false
	}
	claims, err := auth.ParseSession(cookie.Value, []byte(srv.cfg.SessionSecret))
	if err != nil {
		return nil, false
	}
	return claims, true
}

// currentUser returns the editor injected by RequireUser, or nil on routes
// that skip the middleware.
func currentUser(r *http.Request) *auth.SessionClaims {
	claims, _ := r.Context().Value(ctxUser).(*auth.SessionClaims)
	return claims
}
