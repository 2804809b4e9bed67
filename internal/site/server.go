// Package site serves the portfolio: the home feed, the résumé page, the
// preview gateway and a small JSON API over the same core.
package site

import (
	"context"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"

	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/feed"
	"github.com/matzehuels/folio/pkg/gateway"
)

// Options configures a [Server].
type Options struct {
	Config  *config.Config
	Fetcher feed.Fetcher   // Upstream access, usually a feed.CachedFetcher
	Prober  gateway.Prober // nil selects an HTTPProber with the configured timeout
	Logger  *log.Logger    // nil discards log output

	// Refresher backs the scheduled home feed refresh. It should bypass
	// cache reads so scheduled loads always hit upstream. Defaults to
	// Fetcher.
	Refresher feed.Fetcher
}

// Server renders pages and API responses.
type Server struct {
	cfg     *config.Config
	fetcher feed.Fetcher
	prober  gateway.Prober
	logger  *log.Logger
	tmpl    *template.Template

	home      *feed.Orchestrator
	scheduled bool
}

// New creates a Server. Templates are parsed here so a broken template
// fails at startup rather than on the first request.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Fetcher == nil {
		return nil, errors.New("site: fetcher is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	prober := opts.Prober
	if prober == nil {
		prober = &gateway.HTTPProber{Timeout: opts.Config.Gateway.Timeout.Duration}
	}
	refresher := opts.Refresher
	if refresher == nil {
		refresher = opts.Fetcher
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     opts.Config,
		fetcher: opts.Fetcher,
		prober:  prober,
		logger:  logger,
		tmpl:    tmpl,
	}
	s.home = feed.New(refresher, s.feedOptions())
	return s, nil
}

func (s *Server) feedOptions() feed.Options {
	gh := s.cfg.GitHub
	return feed.Options{
		Limit:        gh.Top,
		PerPage:      gh.PerPage,
		Sort:         gh.Sort,
		Timeout:      gh.Timeout.Duration,
		Previews:     s.cfg.PreviewTable(),
		GatewayRoute: s.cfg.Gateway.Route,
		Logger:       s.logger,
	}
}

// Routes returns the HTTP handler for the site.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/about", s.handleAbout)
	r.Get(s.cfg.Gateway.Route, s.handleGateway)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/github/{handle}", s.handleAPIFeed)
		r.Get("/probe", s.handleAPIProbe)
	})
	return r
}

// Refresh reloads the home feed for the configured handle.
func (s *Server) Refresh(ctx context.Context) error {
	v, err := s.home.Load(ctx, s.cfg.GitHub.Handle)
	if err != nil {
		return err
	}
	if v.Error != "" {
		s.logger.Warn("Home feed refreshed with errors", "handle", v.Handle, "error", v.Error)
	}
	return nil
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully. When a refresh schedule is configured the home feed is
// loaded once before listening and then on every tick.
func (s *Server) Run(ctx context.Context) error {
	if spec := s.cfg.Server.Refresh; spec != "" {
		c, err := s.schedule(ctx, spec)
		if err != nil {
			return err
		}
		defer c.Stop()
	}

	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.Server.ReadTimeout.Duration,
		WriteTimeout: s.cfg.Server.WriteTimeout.Duration,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Serving", "addr", srv.Addr, "handle", s.cfg.GitHub.Handle)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("Shutting down")
	return srv.Shutdown(shutdownCtx)
}

// schedule loads the home feed once and registers the periodic refresh.
func (s *Server) schedule(ctx context.Context, spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := s.refreshWithTimeout(ctx); err != nil && !errors.Is(err, feed.ErrSuperseded) {
			s.logger.Error("Scheduled refresh failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if err := s.refreshWithTimeout(ctx); err != nil {
		s.logger.Warn("Initial refresh failed", "error", err)
	}
	s.scheduled = true
	c.Start()
	s.logger.Info("Refresh scheduled", "spec", spec)
	return c, nil
}

func (s *Server) refreshWithTimeout(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*s.cfg.GitHub.Timeout.Duration)
	defer cancel()
	return s.Refresh(ctx)
}
