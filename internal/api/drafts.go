// ABOUTME: HTTP handlers for draft and published-issue persistence: save,
// ABOUTME: list, load, delete, and the draft-to-published move.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/britecreationsdylanne/brite-side/internal/blob"
	"github.com/britecreationsdylanne/brite-side/internal/newsletter"
)

const storageUnavailableMsg = "Storage not available"

// saveDraftBody is the JSON request body for POST /api/save-draft: the draft
// itself plus the client's savedBy hint, which is ignored in favor of the
// session identity.
type saveDraftBody struct {
	newsletter.Draft
	SavedBy string `json:"savedBy"`
}

// saveDraftHandler handles POST /api/save-draft. Authorship is stamped from
// the session, not the request body, so drafts always record who really
// saved them.
func (srv *Server) saveDraftHandler(w http.ResponseWriter, r *http.Request) {
	if srv.issues == nil {
		writeError(w, http.StatusServiceUnavailable, storageUnavailableMsg)
		return
	}
	var req saveDraftBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := currentUser(r)
	key, err := srv.issues.SaveDraft(r.Context(), req.Draft, user.Email)
	if err != nil {
		slog.ErrorContext(r.Context(), "draft save failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "draft saved", "file", key, "saved_by", user.Email)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "file": key})
}

// listDraftsHandler handles GET /api/list-drafts. Storage trouble degrades to
// an empty list so the picker still opens.
func (srv *Server) listDraftsHandler(w http.ResponseWriter, r *http.Request) {
	drafts := []newsletter.DraftSummary{}
	if srv.issues != nil {
		got, err := srv.issues.ListDrafts(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "draft list failed", "error", err)
		} else {
			drafts = got
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "drafts": drafts})
}

// loadDraftHandler handles GET /api/load-draft?file=...
func (srv *Server) loadDraftHandler(w http.ResponseWriter, r *http.Request) {
	srv.loadIssue(w, r)
}

// loadPublishedHandler handles GET /api/load-published?file=...
func (srv *Server) loadPublishedHandler(w http.ResponseWriter, r *http.Request) {
	srv.loadIssue(w, r)
}

// loadIssue serves both namespaces; the key validation inside the service
// decides what a file parameter may reach.
func (srv *Server) loadIssue(w http.ResponseWriter, r *http.Request) {
	if srv.issues == nil {
		writeError(w, http.StatusServiceUnavailable, storageUnavailableMsg)
		return
	}
	filename := r.URL.Query().Get("file")
	if filename == "" {
		writeError(w, http.StatusBadRequest, "No file specified")
		return
	}

	raw, err := srv.issues.Load(r.Context(), filename)
	switch {
	case errors.Is(err, newsletter.ErrInvalidKey):
		writeError(w, http.StatusBadRequest, "Invalid file name")
		return
	case errors.Is(err, blob.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "issue load failed", "file", filename, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "draft": raw})
}

// fileBody is the JSON request body naming one stored issue.
type fileBody struct {
	File string `json:"file"`
}

// deleteDraftHandler handles DELETE /api/delete-draft.
func (srv *Server) deleteDraftHandler(w http.ResponseWriter, r *http.Request) {
	srv.deleteIssue(w, r)
}

// deletePublishedHandler handles DELETE /api/delete-published.
func (srv *Server) deletePublishedHandler(w http.ResponseWriter, r *http.Request) {
	srv.deleteIssue(w, r)
}

// deleteIssue removes one stored issue. Storage failures still report
// success: the picker refreshes right after and shows the truth either way.
func (srv *Server) deleteIssue(w http.ResponseWriter, r *http.Request) {
	if srv.issues == nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}
	var req fileBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.File == "" {
		writeError(w, http.StatusBadRequest, "No file specified")
		return
	}

	if err := srv.issues.Delete(r.Context(), req.File); err != nil {
		if errors.Is(err, newsletter.ErrInvalidKey) {
			writeError(w, http.StatusBadRequest, "Invalid file name")
			return
		}
		slog.ErrorContext(r.Context(), "issue delete failed", "file", req.File, "error", err)
	} else {
		slog.InfoContext(r.Context(), "issue deleted", "file", req.File)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// publishDraftHandler handles POST /api/publish-draft, moving a draft into
// the published/ archive.
func (srv *Server) publishDraftHandler(w http.ResponseWriter, r *http.Request) {
	if srv.issues == nil {
		writeError(w, http.StatusServiceUnavailable, storageUnavailableMsg)
		return
	}
	var req fileBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.File == "" {
		writeError(w, http.StatusBadRequest, "No file specified")
		return
	}

	publishedKey, err := srv.issues.Publish(r.Context(), req.File)
	switch {
	case errors.Is(err, newsletter.ErrInvalidKey):
		writeError(w, http.StatusBadRequest, "Invalid file name")
		return
	case errors.Is(err, blob.ErrNotFound):
		writeError(w, http.StatusNotFound, "Draft not found")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "publish failed", "file", req.File, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "draft published", "from", req.File, "to", publishedKey)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "file": publishedKey})
}

// listPublishedHandler handles GET /api/list-published. Response key is
// "newsletters" rather than "drafts"; the archive page reads that name.
func (srv *Server) listPublishedHandler(w http.ResponseWriter, r *http.Request) {
	newsletters := []newsletter.PublishedSummary{}
	if srv.issues != nil {
		got, err := srv.issues.ListPublished(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "published list failed", "error", err)
		} else {
			newsletters = got
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "newsletters": newsletters})
}
