// ABOUTME: Serves the editor UI: index.html with the signed-in editor injected,
// ABOUTME: static assets from disk, and email templates from the embedded FS.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/britecreationsdylanne/brite-side/internal/render"
)

// indexHandler serves index.html with the editor's identity injected as
// window.AUTH_USER before </head>. Unauthenticated production requests are
// sent through sign-in instead of getting a 401, since this is the page the
// browser lands on.
func (srv *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := srv.sessionFor(r)
	if !ok {
		http.Redirect(w, r, "/auth/login", http.StatusFound)
		return
	}

	data, err := os.ReadFile(filepath.Join(srv.cfg.WebRoot, "index.html"))
	if err != nil {
		slog.ErrorContext(r.Context(), "serve index", "error", err)
		http.Error(w, "index.html not found", http.StatusNotFound)
		return
	}

	// json.Marshal escapes <, >, and & so the value is safe inside a script tag.
	user, err := json.Marshal(map[string]string{
		"email":   claims.Email,
		"name":    claims.Name,
		"picture": claims.Picture,
	})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	script := fmt.Sprintf("<script>\nwindow.AUTH_USER = %s;\n</script>\n</head>", user)
	page := strings.Replace(string(data), "</head>", script, 1)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(page)); err != nil {
		slog.ErrorContext(r.Context(), "serve index: write", "error", err)
	}
}

// staticHandler serves the editor UI's assets from WEB_ROOT/static.
func (srv *Server) staticHandler() http.HandlerFunc {
	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(filepath.Join(srv.cfg.WebRoot, "static"))))
	return fileServer.ServeHTTP
}

// templateFileHandler serves the raw email templates for the UI's preview
// iframe, straight from the binary's embedded copies.
func (srv *Server) templateFileHandler() http.HandlerFunc {
	fileServer := http.StripPrefix("/templates/", http.FileServer(http.FS(render.Files())))
	return fileServer.ServeHTTP
}
