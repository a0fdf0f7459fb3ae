// ABOUTME: Google OIDC sign-in flow: login redirect, callback, logout.
// ABOUTME: Gates access to the allowed email domain and issues the session cookie.
package api

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/britecreationsdylanne/brite-side/internal/auth"
)

const sessionCookieName = "briteside_session"

// googleClaims holds the subset of Google ID token claims we use.
type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Nonce         string `json:"nonce"`
}

// accessDeniedPage is shown when someone signs in from outside the company
// domain. Styled to match the editor UI. Both %s slots take escaped text.
const accessDeniedPage = `<html>
<head><title>Access Denied</title></head>
<body style="font-family: sans-serif; display: flex; align-items: center; justify-content: center; height: 100vh; margin: 0; background: #272D3F;">
    <div style="text-align: center; color: white; padding: 2rem;">
        <h1 style="color: #FC883A;">Access Denied</h1>
        <p>Only @%s email addresses are allowed.</p>
        <p style="color: #A9C1CB;">You tried to sign in with: %s</p>
        <a href="/auth/login" style="color: #31D7CA;">Try again with a different account</a>
    </div>
</body>
</html>`

// loginHandler handles GET /auth/login.
// Generates state + nonce, sets cookies, and redirects to Google's authorize URL.
// Already-signed-in editors (and dev mode) go straight to the app.
func (srv *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := srv.sessionFor(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if srv.googleOAuth == nil {
		http.Error(w, "Google sign-in not configured", http.StatusNotImplemented)
		return
	}
	state, err := generateOAuthState()
	if err != nil {
		slog.ErrorContext(r.Context(), "google oidc init: generate state", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	nonce, err := generateOAuthState() // reuses the same CSPRNG helper for nonce
	if err != nil {
		slog.ErrorContext(r.Context(), "google oidc init: generate nonce", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	srv.setStateCookie(w, state)
	srv.setNonceCookie(w, nonce)
	authURL := srv.googleOAuth.AuthCodeURL(state, oauth2.SetAuthURLParam("nonce", nonce))
	http.Redirect(w, r, authURL, http.StatusFound)
}

// callbackHandler handles GET /auth/callback.
// Validates state + nonce, verifies the ID token, gates on the allowed email
// domain, and issues the session cookie.
func (srv *Server) callbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if srv.googleOAuth == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	// 1. Validate CSRF state.
	state := r.URL.Query().Get("state")
	if err := srv.validateStateCookie(r, w, state); err != nil {
		http.Error(w, "invalid state: "+err.Error(), http.StatusBadRequest)
		return
	}

	// 2. Exchange authorization code for tokens.
	code := r.URL.Query().Get("code")
	token, err := srv.googleOAuth.Exchange(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "google oidc: exchange code", "error", err)
		http.Error(w, "authentication failed", http.StatusBadRequest)
		return
	}

	// 3. Extract and verify the ID token.
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		slog.ErrorContext(ctx, "google oidc: missing id_token in token response")
		http.Error(w, "authentication failed", http.StatusBadRequest)
		return
	}
	verifier := srv.googleOIDC.Verifier(&oidc.Config{ClientID: srv.googleOAuth.ClientID})
	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		slog.ErrorContext(ctx, "google oidc: verify id token", "error", err)
		http.Error(w, "authentication failed", http.StatusBadRequest)
		return
	}

	// 4. Extract claims.
	var claims googleClaims
	if err := idToken.Claims(&claims); err != nil {
		slog.ErrorContext(ctx, "google oidc: extract claims", "error", err)
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}
	if !claims.EmailVerified {
		http.Error(w, "email not verified on Google account", http.StatusBadRequest)
		return
	}

	// 5. Validate nonce.
	storedNonce, err := srv.validateNonceCookie(r, w)
	if err != nil {
		http.Error(w, "invalid nonce: "+err.Error(), http.StatusBadRequest)
		return
	}
	if storedNonce != claims.Nonce {
		http.Error(w, "nonce mismatch", http.StatusBadRequest)
		return
	}

	// 6. Gate on the company domain.
	if !emailInDomain(claims.Email, srv.cfg.AllowedDomain) {
		slog.WarnContext(ctx, "sign-in rejected: outside allowed domain", "email", claims.Email)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprintf(w, accessDeniedPage, html.EscapeString(srv.cfg.AllowedDomain), html.EscapeString(claims.Email))
		return
	}

	// 7. Issue the session cookie.
	sessionToken, err := auth.IssueSession([]byte(srv.cfg.SessionSecret), claims.Email, claims.Name, claims.Picture, auth.SessionTTL)
	if err != nil {
		slog.ErrorContext(ctx, "google oidc: issue session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	srv.setSessionCookie(w, sessionToken)
	slog.InfoContext(ctx, "editor signed in", "email", claims.Email)
	http.Redirect(w, r, "/", http.StatusFound)
}

// logoutHandler handles GET /auth/logout: clears the session and sends the
// editor back through sign-in.
func (srv *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	srv.clearSessionCookie(w)
	http.Redirect(w, r, "/auth/login", http.StatusFound)
}

// emailInDomain reports whether email belongs to the given domain.
func emailInDomain(email, domain string) bool {
	suffix := "@" + domain
	return len(email) > len(suffix) && email[len(email)-len(suffix):] == suffix
}

func (srv *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   srv.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(auth.SessionTTL / time.Second),
		Path:     "/",
	})
}

func (srv *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   srv.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Path:     "/",
	})
}
