// ABOUTME: HTTP handlers for delivering a finished issue: email fan-out to
// ABOUTME: the recipient list and the Slack announcement post.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/britecreationsdylanne/brite-side/internal/notify"
)

// sendNewsletterBody is the JSON request body for POST /api/send-newsletter.
type sendNewsletterBody struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	HTML       string   `json:"html"`
}

// sendNewsletterResponse reports a fan-out. Errors is null when every send
// landed, matching what the editor's status banner expects.
type sendNewsletterResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	SentCount       int      `json:"sent_count"`
	TotalRecipients int      `json:"total_recipients"`
	Errors          []string `json:"errors"`
}

// sendNewsletterHandler handles POST /api/send-newsletter. Sends are
// per-recipient; one bad address reduces the count instead of failing the
// whole request.
func (srv *Server) sendNewsletterHandler(w http.ResponseWriter, r *http.Request) {
	var req sendNewsletterBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Recipients) == 0 {
		writeError(w, http.StatusBadRequest, "At least one recipient is required")
		return
	}
	if req.Subject == "" {
		writeError(w, http.StatusBadRequest, "Email subject is required")
		return
	}
	if req.HTML == "" {
		writeError(w, http.StatusBadRequest, "HTML content is required")
		return
	}
	if srv.mailer == nil {
		writeError(w, http.StatusServiceUnavailable, "Email delivery is not configured")
		return
	}

	slog.InfoContext(r.Context(), "sending newsletter",
		"recipients", len(req.Recipients), "subject", req.Subject)
	rep := notify.SendAll(r.Context(), srv.mailer, req.Recipients, req.Subject, req.HTML)
	slog.InfoContext(r.Context(), "newsletter send finished",
		"sent", rep.SentCount, "total", rep.Total, "failures", len(rep.Errors))

	writeJSON(w, http.StatusOK, sendNewsletterResponse{
		Success:         rep.SentCount > 0,
		Message:         rep.Message(),
		SentCount:       rep.SentCount,
		TotalRecipients: rep.Total,
		Errors:          rep.Errors,
	})
}

// sendToSlackBody is the JSON request body for POST /api/send-to-slack.
type sendToSlackBody struct {
	Message string `json:"message"`
}

// sendToSlackHandler handles POST /api/send-to-slack, announcing the issue in
// the company channel via the configured incoming webhook.
func (srv *Server) sendToSlackHandler(w http.ResponseWriter, r *http.Request) {
	if srv.cfg.SlackWebhookURL == "" {
		writeError(w, http.StatusServiceUnavailable, "Slack webhook not configured. Add SLACK_WEBHOOK_URL to your environment.")
		return
	}

	var req sendToSlackBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	if err := notify.SlackAnnounce(r.Context(), srv.outbound, srv.cfg.SlackWebhookURL, message); err != nil {
		slog.ErrorContext(r.Context(), "slack announce failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "slack announcement posted")
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
