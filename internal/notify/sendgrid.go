// ABOUTME: SendGrid v3 mail/send delivery over plain REST. One personalization
// ABOUTME: per call; the API key rides in a Bearer header.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendGridBaseURL = "https://api.sendgrid.com"

// SendGridConfig holds delivery parameters sourced from env vars. BaseURL is
// overridable for tests and defaults to the public API host.
type SendGridConfig struct {
	APIKey   string
	From     string
	FromName string
	BaseURL  string
}

// SendGrid is a Mailer backed by the SendGrid v3 REST API.
type SendGrid struct {
	client *http.Client
	cfg    SendGridConfig
}

// NewSendGrid builds a SendGrid mailer. A nil client gets a 30s-timeout
// default.
func NewSendGrid(client *http.Client, cfg SendGridConfig) *SendGrid {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = sendGridBaseURL
	}
	return &SendGrid{client: client, cfg: cfg}
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgMail struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

// Send posts one mail/send request and discards the response body. SendGrid
// answers 202 on acceptance; any non-2xx is a failure.
func (s *SendGrid) Send(ctx context.Context, to, subject, htmlBody string) error {
	payload, err := json.Marshal(sgMail{
		Personalizations: []sgPersonalization{{To: []sgAddress{{Email: to}}}},
		From:             sgAddress{Email: s.cfg.From, Name: s.cfg.FromName},
		Subject:          subject,
		Content:          []sgContent{{Type: "text/html", Value: htmlBody}},
	})
	if err != nil {
		return fmt.Errorf("sendgrid: encode mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/v3/mail/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("sendgrid: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid: POST: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	// Discard response body to allow connection reuse; cap at 4 KiB.
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck,gosec

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d", resp.StatusCode)
	}
	return nil
}
