// Package api is the HTTP surface: pages, partials, form actions, JSON and
// images, all scoped to the caller's browser session.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lox/skycast/internal/imagegen"
	"github.com/lox/skycast/internal/render"
	"github.com/lox/skycast/internal/state"
)

type Config struct {
	Addr    string
	MapZoom int
	// SessionMaxAge is the lifetime of the session cookie.
	SessionMaxAge time.Duration
}

type Server struct {
	sessions *state.Registry
	renderer *render.Renderer
	banners  *imagegen.Banners
	cards    *imagegen.CardCache
	cfg      Config
	log      zerolog.Logger
}

// NewServer wires the HTTP surface. banners may be nil.
func NewServer(sessions *state.Registry, banners *imagegen.Banners, cfg Config, log zerolog.Logger) *Server {
	if cfg.SessionMaxAge <= 0 {
		cfg.SessionMaxAge = 30 * 24 * time.Hour
	}
	return &Server{
		sessions: sessions,
		renderer: render.NewRenderer(),
		banners:  banners,
		cards:    imagegen.NewCardCache(5 * time.Minute),
		cfg:      cfg,
		log:      log.With().Str("component", "api").Logger(),
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/banner/{key}.png", s.handleBanner)

	r.Group(func(r chi.Router) {
		r.Use(s.session(false))

		r.Get("/partials/{name}", s.handlePartial)
		r.Get("/api/state", s.handleAPIState)
		r.Get("/og-image.png", s.handleOGImage)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.session(true))

		r.Get("/", s.handleIndex)
		r.Post("/locate", s.handleLocate)
		r.Post("/search", s.handleSearch)
		r.Post("/theme", s.handleTheme)
	})
	return r
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("shutdown")
		}
	}()

	s.log.Info().Str("addr", s.cfg.Addr).Msg("listening")
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) pageOptions() render.Options {
	return render.Options{
		MapZoom: s.cfg.MapZoom,
		Banners: s.banners != nil && s.banners.Enabled(),
	}
}
