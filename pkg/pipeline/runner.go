package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pairquest/pkg/cache"
	"github.com/matzehuels/pairquest/pkg/geom"
	"github.com/matzehuels/pairquest/pkg/observability"
	"github.com/matzehuels/pairquest/pkg/render"
	"github.com/matzehuels/pairquest/pkg/report"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the expiry of cached reports and artifacts. Zero uses
	// cache.ReportTTL and cache.ArtifactTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete points → solve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Points
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pointsStart := time.Now()
	pts, err := ResolvePoints(opts)
	if err != nil {
		return nil, fmt.Errorf("points: %w", err)
	}
	result.Points = pts
	result.PointsHash = cache.HashPoints(pts)
	result.Stats.PointCount = len(pts)
	result.Stats.PointsTime = time.Since(pointsStart)

	r.Logger.Debug("resolved points",
		"count", len(pts),
		"generated", opts.Points == nil,
		"duration", result.Stats.PointsTime)

	// Stage 2: Solve
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	solveStart := time.Now()
	rep, solveHit, err := r.Solve(ctx, pts, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Report = rep
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolveHit = solveHit

	r.Logger.Info("solved",
		"points", len(pts),
		"solvers", opts.Solvers,
		"cached", solveHit,
		"duration", result.Stats.SolveTime)

	// Stage 3: Render
	if len(opts.Formats) == 0 {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	renderStart := time.Now()
	artifacts, renderHit, err := r.Render(ctx, pts, rep, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Solve runs the selected solvers on pts with caching and returns cache hit info.
// A report whose solvers disagree is returned with its error and never cached.
func (r *Runner) Solve(ctx context.Context, pts []geom.Point, opts Options) (*report.Report, bool, error) {
	if err := opts.ValidateForSolve(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()
	cacheKey := r.Keyer.ReportKey(cache.HashPoints(pts), opts.ReportKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached report.Report
			if err := json.Unmarshal(data, &cached); err == nil {
				hooks.OnCacheHit(ctx, cache.KeyTypeReport)
				return &cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key_type", cache.KeyTypeReport, "error", err)
		}
		hooks.OnCacheMiss(ctx, cache.KeyTypeReport)
	}

	rep, err := report.Compare(ctx, pts, opts.Solvers)
	if err != nil {
		return rep, false, err
	}

	if data, err := json.Marshal(rep); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.ReportTTL)); err != nil {
			r.Logger.Warn("cache write failed", "key_type", cache.KeyTypeReport, "error", err)
		} else {
			hooks.OnCacheSet(ctx, cache.KeyTypeReport, len(data))
		}
	}
	return rep, false, nil
}

// Render generates artifacts with caching and returns whether every format
// came from cache. Formats already cached are reused; only the rest are
// rendered.
func (r *Runner) Render(ctx context.Context, pts []geom.Point, rep *report.Report, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()
	sceneHash, err := SceneHash(pts, rep)
	if err != nil {
		return nil, false, fmt.Errorf("serialize report for cache key: %w", err)
	}

	in := render.Input{Points: pts, Report: rep}
	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				hooks.OnCacheHit(ctx, cache.KeyTypeArtifact)
				artifacts[format] = data
				continue
			}
			hooks.OnCacheMiss(ctx, cache.KeyTypeArtifact)
		}
		allCached = false

		data, err := render.Render(ctx, format, in, opts.RenderOptions())
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.ArtifactTTL)); err != nil {
			r.Logger.Warn("cache write failed", "key_type", cache.KeyTypeArtifact, "error", err)
		} else {
			hooks.OnCacheSet(ctx, cache.KeyTypeArtifact, len(data))
		}
	}

	return artifacts, allCached, nil
}

// SceneHash identifies everything an artifact depends on besides the
// render options: the points and the report drawn over them.
func SceneHash(pts []geom.Point, rep *report.Report) (string, error) {
	data, err := json.Marshal(rep)
	if err != nil {
		return "", err
	}
	return cache.Hash([]byte(cache.HashPoints(pts) + ":" + cache.Hash(data))), nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
