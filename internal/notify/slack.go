// ABOUTME: Slack incoming-webhook announcement for a published issue.
// ABOUTME: SlackAnnounce is a pure function; the http.Client is injected at startup.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// slackBanner leads every announcement so the channel post reads the same
// month after month.
const slackBanner = ":tada: *The BriteSide is here!*"

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackBlock struct {
	Type string    `json:"type"`
	Text slackText `json:"text"`
}

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

// SlackAnnounce posts a block-formatted message to the incoming webhook and
// discards the response body. The caller constructs client once at startup
// (safeurl-wrapped, redirect-disabled, 10s timeout).
func SlackAnnounce(ctx context.Context, client *http.Client, webhookURL, message string) error {
	payload, err := json.Marshal(slackPayload{
		Blocks: []slackBlock{{
			Type: "section",
			Text: slackText{Type: "mrkdwn", Text: slackBanner + "\n\n" + message},
		}},
	})
	if err != nil {
		return fmt.Errorf("slack: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("slack: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req) //nolint:gosec // G107: SSRF is enforced architecturally by the safeurl-wrapped client injected at startup
	if err != nil {
		return fmt.Errorf("slack POST: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	// Discard response body to allow connection reuse; cap at 4 KiB.
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck,gosec

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack POST: unexpected status %d", resp.StatusCode)
	}
	return nil
}
