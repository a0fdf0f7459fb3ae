// ABOUTME: HTTP handlers for the monthly game answer: save this month's,
// ABOUTME: fetch last month's for the reveal box.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// saveGameAnswerBody is the JSON request body for POST /api/save-game-answer.
type saveGameAnswerBody struct {
	Month  string `json:"month"`
	Year   int    `json:"year"`
	Type   string `json:"type"`
	Answer string `json:"answer"`
}

// saveGameAnswerHandler handles POST /api/save-game-answer.
func (srv *Server) saveGameAnswerHandler(w http.ResponseWriter, r *http.Request) {
	if srv.issues == nil {
		writeError(w, http.StatusServiceUnavailable, storageUnavailableMsg)
		return
	}
	var req saveGameAnswerBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Month == "" {
		writeError(w, http.StatusBadRequest, "Month is required")
		return
	}

	key, err := srv.issues.SaveGameAnswer(r.Context(), req.Month, req.Year, req.Type, req.Answer)
	if err != nil {
		slog.ErrorContext(r.Context(), "game answer save failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "game answer saved", "file", key)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "file": key})
}

// previousGameHandler handles GET /api/get-previous-game?month=N&year=Y.
// The month is the issue being edited; the response is the record for the
// month before it. No record degrades to a null game, not an error.
func (srv *Server) previousGameHandler(w http.ResponseWriter, r *http.Request) {
	if srv.issues == nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "game": nil})
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month == 0 {
		writeError(w, http.StatusBadRequest, "Month parameter required")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		year = srv.now().In(srv.loc).Year()
	}

	rec, err := srv.issues.PreviousGame(r.Context(), time.Month(month), year)
	if err != nil {
		slog.ErrorContext(r.Context(), "previous game load failed", "error", err)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "game": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "game": rec})
}
