// ABOUTME: HTTP handlers for AI copy generation: jokes, spotlights, birthday
// ABOUTME: shoutouts, games, and tone rewrites. All sit behind the per-IP rate limit.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/britecreationsdylanne/brite-side/internal/genai"
)

const aiUnavailableMsg = "AI generation is not available"

// generateJokeBody is the JSON request body for POST /api/generate-joke.
type generateJokeBody struct {
	Month string `json:"month"`
	Theme string `json:"theme"`
}

// generateJokeHandler handles POST /api/generate-joke.
// Returns three setup|punchline joke options for the issue opener.
func (srv *Server) generateJokeHandler(w http.ResponseWriter, r *http.Request) {
	var req generateJokeBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Month == "" {
		req.Month = srv.now().In(srv.loc).Month().String()
	}
	if req.Theme == "" {
		req.Theme = "jewelry and insurance"
	}

	slog.InfoContext(r.Context(), "generating jokes", "month", req.Month, "theme", req.Theme)
	res, err := srv.gen.Generate(r.Context(), genai.JokePrompt(req.Month, req.Theme), genai.Options{
		MaxTokens:   400,
		Temperature: 0.85,
	})
	if err != nil {
		srv.writeGenerateError(w, r, "generate jokes", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"jokes":         res.Text,
		"model":         res.Model,
		"tokens":        res.Tokens,
		"cost_estimate": res.CostEstimate,
		"latency_ms":    res.LatencyMS,
	})
}

// generateSpotlightBody is the JSON request body for POST /api/generate-spotlight.
type generateSpotlightBody struct {
	Name     string `json:"name"`
	FunFacts string `json:"fun_facts"`
}

// generateSpotlightHandler handles POST /api/generate-spotlight.
// Looks the employee up in the directory so the blurb gets their real title
// and department.
func (srv *Server) generateSpotlightHandler(w http.ResponseWriter, r *http.Request) {
	var req generateSpotlightBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Employee name is required")
		return
	}

	emp, ok := srv.dir.Find(req.Name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Employee '%s' not found", req.Name))
		return
	}

	funFacts := req.FunFacts
	if funFacts == "" {
		funFacts = "No fun facts provided"
	}

	slog.InfoContext(r.Context(), "generating spotlight", "name", emp.Name, "department", emp.Department)
	res, err := srv.gen.Generate(r.Context(), genai.SpotlightPrompt(emp.Name, emp.Title, emp.Department, funFacts), genai.Options{
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil {
		srv.writeGenerateError(w, r, "generate spotlight", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"spotlight": res.Text,
		"employee": map[string]string{
			"name":       emp.Name,
			"title":      emp.Title,
			"department": emp.Department,
		},
		"model":         res.Model,
		"tokens":        res.Tokens,
		"cost_estimate": res.CostEstimate,
		"latency_ms":    res.LatencyMS,
	})
}

// generateBirthdayBody is the JSON request body for POST /api/generate-birthday-message.
type generateBirthdayBody struct {
	Name  string `json:"name"`
	Month string `json:"month"`
}

// generateBirthdayMessageHandler handles POST /api/generate-birthday-message.
func (srv *Server) generateBirthdayMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req generateBirthdayBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Employee name is required")
		return
	}
	if req.Month == "" {
		req.Month = srv.now().In(srv.loc).Month().String()
	}

	emp, ok := srv.dir.Find(req.Name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Employee '%s' not found", req.Name))
		return
	}

	res, err := srv.gen.Generate(r.Context(), genai.BirthdayPrompt(emp.Name, emp.Department, req.Month), genai.Options{
		MaxTokens:   100,
		Temperature: 0.8,
	})
	if err != nil {
		srv.writeGenerateError(w, r, "generate birthday message", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       res.Text,
		"model":         res.Model,
		"tokens":        res.Tokens,
		"cost_estimate": res.CostEstimate,
		"latency_ms":    res.LatencyMS,
	})
}

// generateGameBody is the JSON request body for POST /api/generate-game.
type generateGameBody struct {
	Type    string `json:"type"`
	Context string `json:"context"`
	Month   string `json:"month"`
}

// generateGameHandler handles POST /api/generate-game.
func (srv *Server) generateGameHandler(w http.ResponseWriter, r *http.Request) {
	var req generateGameBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Type == "" {
		req.Type = "word_scramble"
	}
	if req.Month == "" {
		req.Month = srv.now().In(srv.loc).Month().String()
	}

	slog.InfoContext(r.Context(), "generating game", "type", req.Type, "month", req.Month)
	res, err := srv.gen.Generate(r.Context(), genai.GamePrompt(req.Type, req.Context, req.Month), genai.Options{
		MaxTokens:   800,
		Temperature: 0.8,
	})
	if err != nil {
		srv.writeGenerateError(w, r, "generate game", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"game_content":  res.Text,
		"model":         res.Model,
		"tokens":        res.Tokens,
		"cost_estimate": res.CostEstimate,
	})
}

// rewriteContentBody is the JSON request body for POST /api/rewrite-content.
type rewriteContentBody struct {
	Content string `json:"content"`
	Tone    string `json:"tone"`
}

// rewriteContentHandler handles POST /api/rewrite-content.
// General-purpose tone rewrite for any text box in the editor.
func (srv *Server) rewriteContentHandler(w http.ResponseWriter, r *http.Request) {
	var req rewriteContentBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}
	if req.Tone == "" {
		req.Tone = "fun and punny"
	}

	slog.InfoContext(r.Context(), "rewriting content", "chars", utf8.RuneCountInString(req.Content), "tone", req.Tone)
	res, err := srv.gen.Generate(r.Context(), genai.RewritePrompt(req.Content, req.Tone), genai.Options{
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		srv.writeGenerateError(w, r, "rewrite content", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"rewritten":        res.Text,
		"original_length":  utf8.RuneCountInString(req.Content),
		"rewritten_length": utf8.RuneCountInString(res.Text),
		"model":            res.Model,
		"tokens":           res.Tokens,
		"cost_estimate":    res.CostEstimate,
		"latency_ms":       res.LatencyMS,
	})
}

// writeGenerateError maps generation failures: a missing API key is 503, an
// upstream failure is 500 with the cause.
func (srv *Server) writeGenerateError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, genai.ErrUnavailable) {
		writeError(w, http.StatusServiceUnavailable, aiUnavailableMsg)
		return
	}
	slog.ErrorContext(r.Context(), op, "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}
