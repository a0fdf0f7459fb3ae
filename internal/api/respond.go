// ABOUTME: Shared JSON response helpers for the api package.
// ABOUTME: Error bodies are always {"success": false, "error": "..."} for the editor UI.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON writes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("writeJSON: encode failed", "error", err)
	}
}

// errorBody is the JSON error shape the editor UI surfaces to the user.
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeError writes a {"success": false, "error": msg} body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Success: false, Error: msg})
}
