// ABOUTME: Shared helpers for notify tests.
package notify_test

import (
	"net/http"
	"time"
)

func buildTestClient() *http.Client {
	// In tests use a plain http.Client (safeurl blocks private IPs used by httptest).
	return &http.Client{
		Timeout: 5 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
