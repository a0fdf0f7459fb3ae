// ABOUTME: HTTP server struct, constructor, and route wiring for The BriteSide.
// ABOUTME: Holds the directory, issue store, renderer, AI gateway, and delivery deps used by handlers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/britecreationsdylanne/brite-side/internal/blob"
	"github.com/britecreationsdylanne/brite-side/internal/config"
	"github.com/britecreationsdylanne/brite-side/internal/directory"
	"github.com/britecreationsdylanne/brite-side/internal/genai"
	"github.com/britecreationsdylanne/brite-side/internal/newsletter"
	"github.com/britecreationsdylanne/brite-side/internal/notify"
	"github.com/britecreationsdylanne/brite-side/internal/render"
)

// Deps bundles the services the HTTP layer exposes. Store, Issues, and
// Mailer may be nil; the affected endpoints then report unavailability the
// way the editor UI expects.
type Deps struct {
	Directory *directory.Directory
	Issues    *newsletter.Service
	Store     blob.Store
	Renderer  *render.Renderer
	Generator *genai.Client
	Mailer    notify.Mailer
	// Outbound is the HTTP client for Slack webhook delivery, safeurl-wrapped
	// in production.
	Outbound *http.Client
}

// Server holds the dependencies for the HTTP layer.
type Server struct {
	cfg         *config.Config
	dir         *directory.Directory
	issues      *newsletter.Service
	store       blob.Store
	renderer    *render.Renderer
	gen         *genai.Client
	mailer      notify.Mailer
	outbound    *http.Client
	rateLimiter *ipRateLimiter
	loc         *time.Location
	now         func() time.Time

	googleOAuth *oauth2.Config // nil in local dev mode
	googleOIDC  *oidc.Provider
}

// NewServer creates a Server. Returns an error if Google OIDC discovery
// fails. If cfg.GoogleClientID is empty the app runs in local dev mode and
// OIDC is skipped.
func NewServer(ctx context.Context, cfg *config.Config, deps Deps) (*Server, error) {
	evictTTL := cfg.RateLimitEvictTTL
	if evictTTL == 0 {
		evictTTL = 15 * time.Minute
	}
	// 10 generation requests per minute per IP, burst of 10.
	rl := newIPRateLimiter(rate.Limit(10.0/60), 10, evictTTL)
	srv := &Server{
		cfg:         cfg,
		dir:         deps.Directory,
		issues:      deps.Issues,
		store:       deps.Store,
		renderer:    deps.Renderer,
		gen:         deps.Generator,
		mailer:      deps.Mailer,
		outbound:    deps.Outbound,
		rateLimiter: rl,
		loc:         cfg.Location(),
		now:         time.Now,
	}
	if srv.outbound == nil {
		srv.outbound = &http.Client{Timeout: 10 * time.Second}
	}

	// ── Google OIDC (skipped in local dev mode) ──────────────────────────────
	if cfg.GoogleClientID != "" {
		provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
		if err != nil {
			return nil, fmt.Errorf("google oidc discovery: %w", err)
		}
		srv.googleOIDC = provider
		srv.googleOAuth = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.ExternalURL + "/auth/callback",
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		}
	}

	return srv, nil
}

// devMode reports whether the app runs without Google sign-in, acting as a
// fixed local developer identity.
func (srv *Server) devMode() bool {
	return srv.cfg.GoogleClientID == ""
}

// Handler builds and returns the http.Handler.
func (srv *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// ── Security headers ─────────────────────────────────────────────────────
	// Must be first so they appear on every response including errors.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			next.ServeHTTP(w, r)
		})
	})

	// ── Standard chi middleware ───────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// ── Infrastructure endpoints ──────────────────────────────────────────────
	r.Get("/health", srv.healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	// ── Sign-in flow (redirects, no session required) ────────────────────────
	r.Get("/auth/login", srv.loginHandler)
	r.Get("/auth/callback", srv.callbackHandler)
	r.Get("/auth/logout", srv.logoutHandler)

	// ── Editor UI ─────────────────────────────────────────────────────────────
	r.Get("/", srv.indexHandler)
	r.Get("/static/*", srv.staticHandler())
	r.Get("/templates/*", srv.templateFileHandler())

	// ── JSON API (session required) ───────────────────────────────────────────
	r.Route("/api", func(r chi.Router) {
		r.Use(srv.RequireUser())

		// Media uploads carry video files; everything else gets a tight cap.
		r.With(middleware.RequestSize(maxVideoSize + 1<<20)).Post("/upload-media", srv.uploadMediaHandler)

		r.Group(func(r chi.Router) {
			// 1 MB body limit protects against OOM from large request bodies.
			r.Use(middleware.RequestSize(1 << 20))

			r.Get("/employees", srv.listEmployeesHandler)
			r.Get("/employees/birthdays", srv.birthdaysHandler)
			r.Post("/employees/add", srv.addEmployeeHandler)
			r.Delete("/employees/remove", srv.removeEmployeeHandler)
			r.Put("/employees/update", srv.updateEmployeeHandler)

			// Generation endpoints are rate limited per IP; each call costs
			// real tokens.
			r.Group(func(r chi.Router) {
				r.Use(srv.generateRateLimit())
				r.Post("/generate-joke", srv.generateJokeHandler)
				r.Post("/generate-spotlight", srv.generateSpotlightHandler)
				r.Post("/generate-birthday-message", srv.generateBirthdayMessageHandler)
				r.Post("/generate-game", srv.generateGameHandler)
				r.Post("/rewrite-content", srv.rewriteContentHandler)
			})

			r.Post("/render-email", srv.renderEmailHandler)
			r.Post("/send-newsletter", srv.sendNewsletterHandler)
			r.Post("/send-to-slack", srv.sendToSlackHandler)

			r.Post("/save-draft", srv.saveDraftHandler)
			r.Get("/list-drafts", srv.listDraftsHandler)
			r.Get("/load-draft", srv.loadDraftHandler)
			r.Delete("/delete-draft", srv.deleteDraftHandler)
			r.Post("/publish-draft", srv.publishDraftHandler)
			r.Get("/list-published", srv.listPublishedHandler)
			r.Get("/load-published", srv.loadPublishedHandler)
			r.Delete("/delete-published", srv.deletePublishedHandler)

			r.Post("/save-game-answer", srv.saveGameAnswerHandler)
			r.Get("/get-previous-game", srv.previousGameHandler)
		})
	})

	return r
}

// healthResponse is the JSON body for /health.
type healthResponse struct {
	Status           string `json:"status"`
	App              string `json:"app"`
	Timestamp        string `json:"timestamp"`
	AIAvailable      bool   `json:"ai_available"`
	EmailAvailable   bool   `json:"email_available"`
	StorageAvailable bool   `json:"storage_available"`
}

// healthHandler reports liveness plus which optional integrations are wired.
func (srv *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:           "healthy",
		App:              "The BriteSide - Internal Newsletter",
		Timestamp:        srv.now().In(srv.loc).Format(time.RFC3339),
		AIAvailable:      srv.gen != nil && srv.gen.Available(),
		EmailAvailable:   srv.mailer != nil,
		StorageAvailable: srv.issues != nil,
	})
}
