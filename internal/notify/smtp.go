// ABOUTME: SMTP delivery using go-mail, the fallback when no SendGrid key is
// ABOUTME: set. Dial-per-send; issues go out monthly, pooling buys nothing.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds SMTP connection parameters sourced from env vars.
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	FromName string
	Username string
	Password string
	TLS      bool
}

// SMTP is a Mailer that delivers over a direct SMTP connection.
type SMTP struct {
	cfg SMTPConfig
}

// NewSMTP builds the SMTP mailer. An empty FromName falls back to the
// newsletter's own name.
func NewSMTP(cfg SMTPConfig) *SMTP {
	if cfg.FromName == "" {
		cfg.FromName = "The BriteSide"
	}
	return &SMTP{cfg: cfg}
}

// Send delivers one HTML email. Uses DialAndSend (dial-per-send), no
// persistent SMTP connection.
func (s *SMTP) Send(ctx context.Context, to, subject, htmlBody string) error {
	// Strip CR/LF from subject to prevent header injection.
	subject = strings.NewReplacer("\r", "", "\n", "").Replace(subject)

	m := mail.NewMsg()
	if err := m.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
		return fmt.Errorf("smtp send: set from: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("smtp send: set to: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}
	if s.cfg.Username != "" {
		opts = append(opts, mail.WithSMTPAuth(mail.SMTPAuthPlain))
		opts = append(opts, mail.WithUsername(s.cfg.Username))
		opts = append(opts, mail.WithPassword(s.cfg.Password))
	}
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}

	c, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp send: create client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
