// Package config parses and validates all application configuration from
// environment variables using caarlos0/env/v11.
//
// Call [Load] once at startup; pass the resulting [Config] to subcommands.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration sourced from environment variables.
// Field defaults match .env.example.
type Config struct {
	// ── Server ───────────────────────────────────────────────────────────────────
	ListenAddr             string `env:"LISTEN_ADDR"              envDefault:":8080"`
	AppEnv                 string `env:"APP_ENV"                  envDefault:"development"`
	ExternalURL            string `env:"EXTERNAL_URL"             envDefault:"http://localhost:8080"`
	ShutdownTimeoutSeconds int    `env:"SHUTDOWN_TIMEOUT_SECONDS" envDefault:"30"`
	// WebRoot is the directory holding index.html and static/ for the browser UI.
	WebRoot string `env:"WEB_ROOT" envDefault:"."`

	// ── Sessions ─────────────────────────────────────────────────────────────────
	// SessionSecret signs the session cookie. When unset a random secret is
	// generated at startup and sessions do not survive restarts.
	SessionSecret string `env:"SESSION_SECRET"`
	// Must be false for http://localhost; must be true in production with TLS.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"false"`

	// ── OAuth — Google ───────────────────────────────────────────────────────────
	// Empty GoogleClientID switches the app into local dev mode: no sign-in,
	// every request acts as the fixed development identity.
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	// AllowedDomain is the email domain permitted to sign in.
	AllowedDomain string `env:"ALLOWED_DOMAIN" envDefault:"brite.co"`

	// ── AI generation ────────────────────────────────────────────────────────────
	// Empty OpenAIAPIKey leaves the generation gateway unavailable (503s).
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL"    envDefault:"gpt-4o-mini"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	// ── Email delivery ───────────────────────────────────────────────────────────
	// EmailTransport: "sendgrid" (HTTP API) or "smtp" (go-mail).
	EmailTransport   string `env:"EMAIL_TRANSPORT"     envDefault:"sendgrid"`
	SendGridAPIKey   string `env:"SENDGRID_API_KEY"`
	SendGridFromAddr string `env:"SENDGRID_FROM_EMAIL" envDefault:"newsletter@brite.co"`
	SendGridFromName string `env:"SENDGRID_FROM_NAME"  envDefault:"The BriteSide"`
	SMTPHost         string `env:"SMTP_HOST"           envDefault:"localhost"`
	SMTPPort         int    `env:"SMTP_PORT"           envDefault:"1025"`
	SMTPUsername     string `env:"SMTP_USERNAME"`
	SMTPPassword     string `env:"SMTP_PASSWORD"`
	SMTPTLS          bool   `env:"SMTP_TLS"            envDefault:"false"`

	// ── Slack ────────────────────────────────────────────────────────────────────
	SlackWebhookURL string `env:"SLACK_WEBHOOK_URL"`

	// ── Object storage ───────────────────────────────────────────────────────────
	// GCSBucket holds drafts/, published/, games/, media/ and the employee
	// snapshot. Empty means storage-dependent endpoints report unavailable.
	GCSBucket string `env:"GCS_BUCKET" envDefault:"brite-side-drafts"`

	// ── Time ─────────────────────────────────────────────────────────────────────
	// Timezone controls draft timestamps and current-month defaults.
	Timezone string `env:"TIMEZONE" envDefault:"America/Chicago"`

	// ── Rate limiting ────────────────────────────────────────────────────────────
	RateLimitEvictTTL time.Duration `env:"RATE_LIMIT_EVICT_TTL" envDefault:"15m"`

	// ── Logging ──────────────────────────────────────────────────────────────────
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load parses and returns Config from environment variables.
// A missing SessionSecret is replaced with a random one so that a bare
// `brite-side serve` works locally; the warning mirrors what operators
// need to know in production.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		cfg.SessionSecret = hex.EncodeToString(b)
		slog.Warn("SESSION_SECRET not set; generated a random secret, sessions will not persist across restarts")
	}
	return cfg, nil
}

// IsDevelopment reports whether the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Location resolves the configured timezone, falling back to UTC if the
// zone name is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("unknown TIMEZONE, using UTC", "timezone", c.Timezone, "error", err)
		return time.UTC
	}
	return loc
}
