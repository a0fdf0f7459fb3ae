// ABOUTME: HTTP handler that turns structured issue content into the final
// ABOUTME: email HTML via the placeholder renderer.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/britecreationsdylanne/brite-side/internal/render"
)

// renderEmailHandler handles POST /api/render-email. The body is one issue's
// content; the response carries the filled template and a content summary.
func (srv *Server) renderEmailHandler(w http.ResponseWriter, r *http.Request) {
	var payload render.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res := srv.renderer.Render(payload, render.Options{BaseURL: srv.baseURL(r)})
	slog.InfoContext(r.Context(), "rendered email",
		"template", payload.Template, "month", res.Meta.Month, "year", res.Meta.Year, "bytes", len(res.HTML))

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"html":    res.HTML,
		"meta":    res.Meta,
	})
}

// baseURL resolves the origin used to absolutize asset links in rendered
// mail. The configured external URL wins; otherwise it is reconstructed from
// the request so previews work in local dev too.
func (srv *Server) baseURL(r *http.Request) string {
	if srv.cfg.ExternalURL != "" {
		return srv.cfg.ExternalURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
