// Command brite-side is The BriteSide server binary.
//
// Subcommands:
//
//	serve           start the newsletter editor HTTP server (default for production)
//	render          render a stored draft JSON file to HTML on stdout
//	sync-directory  overwrite the stored employee snapshot with the seed roster
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Embeds the IANA timezone database in the binary so that
	// time.LoadLocation("America/Chicago") works inside distroless
	// containers that have no /usr/share/zoneinfo.
	_ "time/tzdata"

	// Sets GOMEMLIMIT from the cgroup memory limit so the Go GC triggers
	// before the container OOM killer fires.
	_ "github.com/KimMachineGun/automemlimit"

	"github.com/spf13/cobra"

	"github.com/britecreationsdylanne/brite-side/internal/api"
	"github.com/britecreationsdylanne/brite-side/internal/blob"
	"github.com/britecreationsdylanne/brite-side/internal/config"
	"github.com/britecreationsdylanne/brite-side/internal/directory"
	"github.com/britecreationsdylanne/brite-side/internal/genai"
	"github.com/britecreationsdylanne/brite-side/internal/newsletter"
	"github.com/britecreationsdylanne/brite-side/internal/notify"
	"github.com/britecreationsdylanne/brite-side/internal/render"
)

func main() {
	root := &cobra.Command{
		Use:   "brite-side",
		Short: "The BriteSide, BriteCo's internal newsletter builder",
		// Silence default error printing; we print it ourselves with slog.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(
		serveCmd(),
		renderCmd(),
		syncDirectoryCmd(),
	)

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// ── serve ─────────────────────────────────────────────────────────────────────

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the newsletter editor HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	store := openStore(ctx, cfg)

	var issues *newsletter.Service
	if store != nil {
		issues = newsletter.NewService(store, cfg.Location())
	}

	dir := directory.New(nil)
	if store != nil {
		dir = directory.New(directory.NewBlobSnapshots(store))
		if err := dir.Sync(ctx); err != nil {
			slog.Warn("employee snapshot sync failed, serving the seed roster", "error", err)
		}
	}

	outbound, err := notify.BuildSafeClient()
	if err != nil {
		return fmt.Errorf("outbound http client: %w", err)
	}

	renderer, err := render.New(cfg.Location())
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	srv, err := api.NewServer(ctx, cfg, api.Deps{
		Directory: dir,
		Issues:    issues,
		Store:     store,
		Renderer:  renderer,
		Generator: genai.New(genai.Config{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL}),
		Mailer:    buildMailer(cfg, outbound),
		Outbound:  outbound,
	})
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	// ReadTimeout is generous; media uploads run to 50MB.
	httpSrv := &http.Server{ //nolint:exhaustruct // WriteTimeout intentionally omitted: the send fan-out holds the response open per recipient
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", cfg.ListenAddr, "dev_mode", cfg.GoogleClientID == "")
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		stop() // release signal notification
	}

	slog.Info("shutting down", "timeout_seconds", cfg.ShutdownTimeoutSeconds)
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
	)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// ── render ────────────────────────────────────────────────────────────────────

func renderCmd() *cobra.Command {
	var template, baseURL string
	cmd := &cobra.Command{
		Use:   "render <draft.json>",
		Short: "Render a stored draft JSON file to HTML on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRender(args[0], template, baseURL)
		},
	}
	cmd.Flags().StringVar(&template, "template", "", "template file name (empty picks the standard issue template)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "origin for asset links (default EXTERNAL_URL)")
	return cmd
}

func runRender(path, template, baseURL string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	// Logs go to stderr; stdout carries only the HTML.
	slog.SetDefault(newLogger(cfg))

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is an operator-supplied CLI argument
	if err != nil {
		return fmt.Errorf("read draft: %w", err)
	}
	var draft newsletter.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return fmt.Errorf("decode draft: %w", err)
	}

	renderer, err := render.New(cfg.Location())
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	if baseURL == "" {
		baseURL = cfg.ExternalURL
	}
	payload := draft.Payload()
	payload.Template = template

	res := renderer.Render(payload, render.Options{BaseURL: baseURL})
	if _, err := os.Stdout.WriteString(res.HTML); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	slog.Info("rendered",
		"month", res.Meta.Month, "year", res.Meta.Year,
		"birthdays", res.Meta.BirthdayCount, "bytes", len(res.HTML))
	return nil
}

// ── sync-directory ────────────────────────────────────────────────────────────

func syncDirectoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-directory",
		Short: "Overwrite the stored employee snapshot with the seed roster",
		RunE:  runSyncDirectory,
	}
}

func runSyncDirectory(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	slog.SetDefault(newLogger(cfg))

	if cfg.GCSBucket == "" {
		return errors.New("GCS_BUCKET is required")
	}
	store, err := blob.NewGCS(cmd.Context(), cfg.GCSBucket)
	if err != nil {
		return fmt.Errorf("object storage: %w", err)
	}

	dir := directory.New(directory.NewBlobSnapshots(store))
	if err := dir.Reseed(cmd.Context()); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	slog.Info("employee snapshot written", "bucket", cfg.GCSBucket, "employees", dir.Count())
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// openStore opens the GCS-backed blob store, or returns nil when storage is
// unconfigured or unreachable. Storage-dependent endpoints then degrade
// instead of blocking boot.
func openStore(ctx context.Context, cfg *config.Config) blob.Store {
	if cfg.GCSBucket == "" {
		slog.Warn("GCS_BUCKET not set; drafts, media, and game answers will not persist")
		return nil
	}
	gcs, err := blob.NewGCS(ctx, cfg.GCSBucket)
	if err != nil {
		slog.Warn("object storage unavailable; drafts, media, and game answers will not persist",
			"bucket", cfg.GCSBucket, "error", err)
		return nil
	}
	slog.Info("object storage ready", "bucket", cfg.GCSBucket)
	return gcs
}

// buildMailer picks the delivery transport. Returns nil when the selected
// transport is missing its credentials; the send endpoint then answers 503.
func buildMailer(cfg *config.Config, outbound *http.Client) notify.Mailer {
	switch cfg.EmailTransport {
	case "smtp":
		return notify.NewSMTP(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.SendGridFromAddr,
			FromName: cfg.SendGridFromName,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			TLS:      cfg.SMTPTLS,
		})
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			slog.Warn("SENDGRID_API_KEY not set; email delivery disabled")
			return nil
		}
		return notify.NewSendGrid(outbound, notify.SendGridConfig{
			APIKey:   cfg.SendGridAPIKey,
			From:     cfg.SendGridFromAddr,
			FromName: cfg.SendGridFromName,
		})
	default:
		slog.Warn("unknown EMAIL_TRANSPORT; email delivery disabled", "transport", cfg.EmailTransport)
		return nil
	}
}

// newLogger creates a slog.Logger from the configured log level and format.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" || cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
