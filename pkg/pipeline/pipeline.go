// Package pipeline runs the closest-pair harness end to end.
//
// This package implements the points → solve → render pipeline shared by
// the CLI and the HTTP server, so both entry points cache, time and report
// the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Points: use the caller's points or generate a seeded random set
//  2. Solve: run each selected solver, time it and cross-check the answers
//  3. Render: produce artifacts in the requested formats (HTML, SVG, PNG, ...)
//
// Context cancellation is checked between stages. The solvers themselves
// run to completion once started.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Count:   1000,
//	    Formats: []string{"html"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
//
// Run individual stages:
//
//	pts, err := pipeline.ResolvePoints(opts)
//	rep, hit, err := runner.Solve(ctx, pts, opts)
//	artifacts, hit, err := runner.Render(ctx, pts, rep, opts)
package pipeline

import (
	"time"

	"github.com/matzehuels/pairquest/pkg/cache"
	"github.com/matzehuels/pairquest/pkg/closest"
	"github.com/matzehuels/pairquest/pkg/errors"
	"github.com/matzehuels/pairquest/pkg/geom"
	"github.com/matzehuels/pairquest/pkg/points"
	"github.com/matzehuels/pairquest/pkg/render"
	"github.com/matzehuels/pairquest/pkg/report"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Points options. When Points is non-nil it is used as-is and the
	// generator settings are ignored. Count and Seed are used as given;
	// DefaultOptions carries the standard 50-point set.
	Points  []geom.Point `json:"points,omitempty"`
	Count   int          `json:"count,omitempty"`
	Seed    uint64       `json:"seed,omitempty"`
	Bounds  geom.Rect    `json:"bounds,omitempty"`
	Integer bool         `json:"integer,omitempty"`

	// Solve options. Empty means every registered solver.
	Solvers []string `json:"solvers,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	// Render options. Empty Formats skips rendering.
	Formats []string `json:"formats,omitempty"`
	Width   float64  `json:"width,omitempty"`
	Height  float64  `json:"height,omitempty"`
	Title   string   `json:"title,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Points is the point set that was solved.
	Points []geom.Point

	// PointsHash is the content hash of Points.
	PointsHash string

	// Report holds each solver's answer and timing.
	Report *report.Report

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PointCount int
	PointsTime time.Duration
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the report came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// DefaultOptions returns options that generate the default point set.
func DefaultOptions() Options {
	gen := points.DefaultOptions()
	return Options{Count: gen.Count, Seed: gen.Seed, Bounds: gen.Bounds}
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateSolvers checks that every solver name is registered.
func ValidateSolvers(names []string) error {
	for _, n := range names {
		if err := errors.ValidateChoice(errors.ErrCodeInvalidSolver, "solver", n, closest.Names()); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForPoints(); err != nil {
		return err
	}
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForPoints checks the point source and applies generator defaults.
func (o *Options) ValidateForPoints() error {
	if o.Points != nil {
		return errors.ValidatePoints(o.Points)
	}
	gen := o.GeneratorOptions()
	if err := gen.Validate(); err != nil {
		return err
	}
	o.Bounds = gen.Bounds
	return nil
}

// ValidateForSolve checks solver names and defaults to all solvers.
func (o *Options) ValidateForSolve() error {
	if len(o.Solvers) == 0 {
		o.Solvers = closest.Names()
	}
	return ValidateSolvers(o.Solvers)
}

// ValidateForRender checks formats and applies frame defaults.
func (o *Options) ValidateForRender() error {
	if o.Width == 0 {
		o.Width = points.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = points.DefaultHeight
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width and height must be positive")
	}
	return render.ValidateFormats(o.Formats)
}

// GeneratorOptions returns the random generator settings.
func (o *Options) GeneratorOptions() points.Options {
	return points.Options{
		Count:   o.Count,
		Seed:    o.Seed,
		Bounds:  o.Bounds,
		Integer: o.Integer,
	}
}

// RenderOptions returns the renderer settings.
func (o *Options) RenderOptions() render.Options {
	return render.Options{Width: o.Width, Height: o.Height, Title: o.Title}
}

// ReportKeyOpts returns cache key options for the solve stage.
func (o *Options) ReportKeyOpts() cache.ReportKeyOpts {
	return cache.ReportKeyOpts{Solvers: o.Solvers}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Width:  o.Width,
		Height: o.Height,
		Title:  o.Title,
	}
}

// ResolvePoints returns the caller's points or generates a new set.
func ResolvePoints(opts Options) ([]geom.Point, error) {
	if err := opts.ValidateForPoints(); err != nil {
		return nil, err
	}
	if opts.Points != nil {
		return opts.Points, nil
	}
	return points.Generate(opts.GeneratorOptions())
}
