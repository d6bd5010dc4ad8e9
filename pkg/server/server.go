package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/ssrgoods/internal/logging"
	"github.com/vango-dev/ssrgoods/pkg/assets"
	"github.com/vango-dev/ssrgoods/pkg/loader"
	"github.com/vango-dev/ssrgoods/pkg/middleware"
	"github.com/vango-dev/ssrgoods/pkg/render"
)

// Route paths.
const (
	LivePath    = "/_ssr/live"
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"
)

const tracerName = "github.com/vango-dev/ssrgoods/pkg/server"

// Server is the goods render server.
type Server struct {
	config Config
	loader loader.Loader
	logger zerolog.Logger

	assets       assets.Source
	assetOptions assets.HandlerOptions
	resolver     assets.Resolver

	metrics *middleware.Metrics
	tracer  trace.Tracer
	traced  bool

	renderer *render.Renderer
	upgrader websocket.Upgrader
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAssets sets the static asset source and how it is served.
// The default serves the embedded client bundle at "/".
func WithAssets(src assets.Source, opts assets.HandlerOptions) Option {
	return func(s *Server) {
		s.assets = src
		s.assetOptions = opts
	}
}

// WithResolver sets the resolver that turns the bundle name into the page's
// script src.
func WithResolver(r assets.Resolver) Option {
	return func(s *Server) {
		s.resolver = r
	}
}

// WithMetrics enables Prometheus metrics and the /metrics route.
func WithMetrics(m *middleware.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithTracer enables request tracing with t.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) {
		s.tracer = t
		s.traced = t != nil
	}
}

// New creates a Server that loads goods through l.
func New(cfg Config, l loader.Loader, opts ...Option) *Server {
	s := &Server{
		config:       cfg.withDefaults(),
		loader:       l,
		logger:       logging.Nop,
		assets:       assets.Embedded(),
		assetOptions: assets.HandlerOptions{Prefix: "/", CacheControl: assets.CacheControlNone},
		renderer:     render.NewRenderer(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.resolver == nil {
		s.resolver = assets.NewPassthroughResolver("")
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.config.CheckOrigin,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(s.logger))
	if s.traced {
		r.Use(middleware.Tracing(middleware.WithTracer(s.tracer)))
	}
	if s.metrics != nil {
		r.Use(s.metrics.Handler)
	}
	r.Use(middleware.Recovery(s.logger))

	r.Get("/", s.handlePage)
	r.Get(HealthPath, s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, MetricsPath, s.metrics.ExpositionHandler())
	}
	r.Get(LivePath, s.handleLive)

	prefix := s.assetOptions.Prefix
	if prefix == "" {
		prefix = "/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	static := s.staticHandler(prefix)
	r.Method(http.MethodGet, prefix+"*", static)
	r.Method(http.MethodHead, prefix+"*", static)

	return r
}

// staticHandler serves assets by route path, so the server also works when
// mounted under another router.
func (s *Server) staticHandler(prefix string) http.Handler {
	h := assets.Handler(s.assets, s.assetOptions)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := *r.URL
		u.Path = prefix + chi.URLParam(r, "*")
		u.RawPath = ""

		r2 := r.WithContext(r.Context())
		r2.URL = &u
		h.ServeHTTP(w, r2)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Config returns the effective configuration.
func (s *Server) Config() Config {
	return s.config
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msgf("listening %s", ln.Addr())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("shutdown error")
			return err
		}
		<-errCh
		s.logger.Info().Msg("server shutdown complete")
		return nil
	}
}
