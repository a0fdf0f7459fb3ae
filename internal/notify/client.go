// ABOUTME: Constructs the production SSRF-safe HTTP client for outbound delivery.
// ABOUTME: Uses doyensec/safeurl with redirect following disabled and 10s timeout.
package notify

import (
	"net/http"
	"time"

	"github.com/doyensec/safeurl"
)

// BuildSafeClient returns an SSRF-safe *http.Client for webhook and mail API
// calls. The Slack webhook URL comes from operator config, not code, so
// redirect following is disabled and private address ranges are blocked.
func BuildSafeClient() (*http.Client, error) {
	cfg := safeurl.GetConfigBuilder().
		SetTimeout(10 * time.Second).
		SetCheckRedirect(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}).
		Build()
	return safeurl.Client(cfg).Client, nil
}
