// Package report runs closest-pair solvers side by side, times them, and
// summarises the outcome for renderers and the terminal.
//
// Timing uses wall-clock time around each solver call, so results include
// allocation and sorting costs but no I/O.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/pairquest/pkg/closest"
	"github.com/matzehuels/pairquest/pkg/errors"
	"github.com/matzehuels/pairquest/pkg/geom"
	"github.com/matzehuels/pairquest/pkg/observability"
)

// Run is the outcome of one solver on one point set.
type Run struct {
	Solver    string        `json:"solver"`
	Label     string        `json:"label"`
	Found     bool          `json:"found"`
	Pair      *geom.Pair    `json:"pair,omitempty"` // nil when Found is false
	Elapsed   time.Duration `json:"elapsed_ns"`
	ElapsedMS float64       `json:"elapsed_ms"`
}

// Report compares several solvers on the same point set.
type Report struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
	Runs  []Run  `json:"runs"`

	// Agree is true when every solver reported the same minimum distance,
	// or every solver reported no pair.
	Agree bool `json:"agree"`
}

// Compare runs each named solver on points and returns the timed results.
//
// Solvers are run one after another in the given order. A disagreement on
// the minimum distance is returned as an ErrCodeInternal error together
// with the report, so callers can still show what each solver found.
func Compare(ctx context.Context, points []geom.Point, names []string) (*Report, error) {
	if len(names) == 0 {
		names = closest.Names()
	}

	rep := &Report{
		ID:    uuid.NewString(),
		Count: len(points),
		Runs:  make([]Run, 0, len(names)),
	}

	hooks := observability.Solver()
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		solve, ok := closest.Lookup(name)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidSolver, "unknown solver: %q", name)
		}

		hooks.OnSolveStart(ctx, name, len(points))
		start := time.Now()
		pair, found := solve(points)
		elapsed := time.Since(start)
		hooks.OnSolveComplete(ctx, name, len(points), elapsed, found)

		run := Run{
			Solver:    name,
			Label:     closest.Label(name),
			Found:     found,
			Elapsed:   elapsed,
			ElapsedMS: float64(elapsed) / float64(time.Millisecond),
		}
		if found {
			run.Pair = &pair
		}
		rep.Runs = append(rep.Runs, run)
	}

	rep.Agree = agree(rep.Runs)
	if !rep.Agree {
		return rep, errors.New(errors.ErrCodeInternal, "solvers disagree on the minimum distance: %s", rep.describe())
	}
	return rep, nil
}

func agree(runs []Run) bool {
	if len(runs) == 0 {
		return true
	}
	first := runs[0]
	for _, r := range runs[1:] {
		if r.Found != first.Found {
			return false
		}
		if r.Found && r.Pair.Distance != first.Pair.Distance {
			return false
		}
	}
	return true
}

func (r *Report) describe() string {
	s := ""
	for i, run := range r.Runs {
		if i > 0 {
			s += ", "
		}
		if run.Found {
			s += fmt.Sprintf("%s=%v", run.Solver, run.Pair.Distance)
		} else {
			s += run.Solver + "=absent"
		}
	}
	return s
}

// Run returns the run of the named solver.
func (r *Report) Run(solver string) (Run, bool) {
	for _, run := range r.Runs {
		if run.Solver == solver {
			return run, true
		}
	}
	return Run{}, false
}

// Best returns the pair to display. The divide-and-conquer answer is
// preferred, falling back to the first solver that found a pair.
func (r *Report) Best() (geom.Pair, bool) {
	if run, ok := r.Run(closest.NameDivideAndConquer); ok && run.Found {
		return *run.Pair, true
	}
	for _, run := range r.Runs {
		if run.Found {
			return *run.Pair, true
		}
	}
	return geom.Pair{}, false
}

// Speedup returns how many times faster divide-and-conquer ran than brute
// force. It is false unless both ran and divide-and-conquer took measurable
// time.
func (r *Report) Speedup() (float64, bool) {
	bf, ok := r.Run(closest.NameBruteForce)
	if !ok {
		return 0, false
	}
	dc, ok := r.Run(closest.NameDivideAndConquer)
	if !ok || dc.Elapsed <= 0 {
		return 0, false
	}
	return float64(bf.Elapsed) / float64(dc.Elapsed), true
}
