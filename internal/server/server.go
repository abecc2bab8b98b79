// Package server exposes the closest-pair harness over HTTP.
//
// Routes:
//
//	GET  /                 HTML page for a freshly generated point set
//	POST /generate         {"num_points": n, "seed": s} → [[x, y], ...]
//	POST /closest          {"points": [[x, y], ...]} → both solvers' answers and timings
//	POST /render?format=f  {"points": [[x, y], ...]} → rendered artifact
//	GET  /healthz          liveness probe
//	GET  /metrics          Prometheus metrics (when a gatherer is configured)
//
// Solver reports and rendered artifacts go through the pipeline cache, so a
// Redis-backed runner lets several instances share work.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pairquest/pkg/geom"
	"github.com/matzehuels/pairquest/pkg/pipeline"
	"github.com/matzehuels/pairquest/pkg/points"
)

// Defaults applied by New.
const (
	DefaultAddr            = ":8080"
	DefaultMaxPoints       = 100_000
	DefaultMaxBodyBytes    = 16 << 20
	DefaultShutdownTimeout = 10 * time.Second
)

// Config configures the server.
type Config struct {
	Addr string

	// Bounds is the rectangle /generate draws points from.
	Bounds geom.Rect

	// Width and Height size rendered artifacts.
	Width  float64
	Height float64

	// MaxPoints caps /generate and the size of posted point sets.
	MaxPoints int

	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Bounds == (geom.Rect{}) {
		c.Bounds = points.DefaultBounds
	}
	if c.Width == 0 {
		c.Width = points.DefaultWidth
	}
	if c.Height == 0 {
		c.Height = points.DefaultHeight
	}
	if c.MaxPoints == 0 {
		c.MaxPoints = DefaultMaxPoints
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
}

// Option customizes a Server.
type Option func(*Server)

// WithMetrics serves the gatherer's metrics at /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.metrics = g }
}

// Server is the HTTP front end of a pipeline runner.
type Server struct {
	cfg     Config
	runner  *pipeline.Runner
	logger  *log.Logger
	metrics prometheus.Gatherer
	router  chi.Router
}

// New creates a server. A nil logger falls back to the runner's logger.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config, opts ...Option) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{cfg: cfg, runner: runner, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(serverHeader)

	r.Get("/", s.handleIndex)
	r.Post("/generate", s.handleGenerate)
	r.Post("/closest", s.handleClosest)
	r.Post("/render", s.handleRender)
	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{}))
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
