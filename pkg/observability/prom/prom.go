// Package prom implements the observability hook interfaces with Prometheus
// collectors.
//
//	reg := prometheus.NewRegistry()
//	hooks := prom.New(reg)
//	hooks.Register()
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prom

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/pairquest/pkg/observability"
)

const namespace = "pairquest"

// Hooks records solver, render, cache and HTTP events as Prometheus metrics.
type Hooks struct {
	solveLatency  *prometheus.HistogramVec
	solvePoints   *prometheus.HistogramVec
	solveAbsent   *prometheus.CounterVec
	renderLatency *prometheus.HistogramVec
	renderErrors  *prometheus.CounterVec
	cacheEvents   *prometheus.CounterVec
	cacheBytes    prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Hooks {
	h := &Hooks{
		solveLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock time of a closest-pair solver run.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"solver"}),
		solvePoints: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_points",
			Help:      "Size of point sets handed to a solver.",
			Buckets:   prometheus.ExponentialBuckets(2, 4, 10),
		}, []string{"solver"}),
		solveAbsent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solve_absent_total",
			Help:      "Solver runs on fewer than two points.",
		}, []string{"solver"}),
		renderLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering artifacts.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"formats"}),
		renderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_errors_total",
			Help:      "Failed render calls.",
		}, []string{"formats"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache hits, misses and writes.",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP responses by route and status code.",
		}, []string{"method", "route", "code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		h.solveLatency, h.solvePoints, h.solveAbsent,
		h.renderLatency, h.renderErrors,
		h.cacheEvents, h.cacheBytes,
		h.httpRequests, h.httpLatency,
	)
	return h
}

// Register installs h as the global solver, render, cache and HTTP hooks.
func (h *Hooks) Register() {
	observability.SetSolverHooks(h)
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *Hooks) OnSolveStart(context.Context, string, int) {}

func (h *Hooks) OnSolveComplete(_ context.Context, solver string, n int, d time.Duration, found bool) {
	h.solveLatency.WithLabelValues(solver).Observe(d.Seconds())
	h.solvePoints.WithLabelValues(solver).Observe(float64(n))
	if !found {
		h.solveAbsent.WithLabelValues(solver).Inc()
	}
}

func (h *Hooks) OnRenderStart(context.Context, []string) {}

func (h *Hooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	label := strings.Join(formats, ",")
	h.renderLatency.WithLabelValues(label).Observe(d.Seconds())
	if err != nil {
		h.renderErrors.WithLabelValues(label).Inc()
	}
}

func (h *Hooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *Hooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *Hooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

func (h *Hooks) OnRequest(context.Context, string, string) {}

func (h *Hooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.SolverHooks = (*Hooks)(nil)
	_ observability.RenderHooks = (*Hooks)(nil)
	_ observability.CacheHooks  = (*Hooks)(nil)
	_ observability.HTTPHooks   = (*Hooks)(nil)
)
