// ABOUTME: Recipient fan-out for issue delivery. One send per recipient so a
// ABOUTME: bounced address never blocks the rest of the company list.
package notify

import (
	"context"
	"fmt"
)

// Mailer delivers one HTML email to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Report tallies a fan-out: how many sends landed and, per failed recipient,
// a human-readable line for the editor.
type Report struct {
	SentCount int
	Total     int
	Errors    []string
}

// Message is the one-line summary shown to the editor after a send.
func (r Report) Message() string {
	return fmt.Sprintf("Newsletter sent to %d of %d recipient(s)", r.SentCount, r.Total)
}

// SendAll delivers the issue to every recipient, continuing past individual
// failures. It never returns an error; the Report carries the outcome.
func SendAll(ctx context.Context, m Mailer, recipients []string, subject, htmlBody string) Report {
	rep := Report{Total: len(recipients)}
	for _, to := range recipients {
		if err := m.Send(ctx, to, subject, htmlBody); err != nil {
			rep.Errors = append(rep.Errors, fmt.Sprintf("Failed for %s: %v", to, err))
			continue
		}
		rep.SentCount++
	}
	return rep
}
