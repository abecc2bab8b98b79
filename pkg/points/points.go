// Package points generates random point sets for the closest-pair harness.
//
// Generation is deterministic for a given seed, so a point set can be
// reproduced from its (count, seed, bounds) triple instead of being stored.
package points

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/pairquest/pkg/errors"
	"github.com/matzehuels/pairquest/pkg/geom"
)

const (
	// DefaultCount is the number of points generated when none is requested.
	DefaultCount = 50

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultWidth and DefaultHeight describe the drawing frame.
	DefaultWidth  = 800.0
	DefaultHeight = 600.0

	// DefaultPadding keeps generated points away from the frame edge.
	DefaultPadding = 20.0

	// MaxCount bounds a single generation request.
	MaxCount = 1_000_000
)

// Frame returns the padded rectangle points are drawn from for a frame of
// the given size.
func Frame(width, height, padding float64) geom.Rect {
	return geom.Rect{MinX: padding, MinY: padding, MaxX: width - padding, MaxY: height - padding}
}

// DefaultBounds is the padded 800x600 frame.
var DefaultBounds = Frame(DefaultWidth, DefaultHeight, DefaultPadding)

// Options configures [Generate].
type Options struct {
	// Count is the number of points. Zero yields an empty set.
	Count int

	// Seed selects the random sequence. Every value, zero included, is a
	// distinct sequence.
	Seed uint64

	// Bounds is the rectangle points are drawn from. The zero Rect means
	// DefaultBounds.
	Bounds geom.Rect

	// Integer snaps coordinates to whole numbers within Bounds.
	Integer bool
}

// DefaultOptions returns the generator settings used when a caller has no
// count or seed of its own.
func DefaultOptions() Options {
	return Options{Count: DefaultCount, Seed: DefaultSeed, Bounds: DefaultBounds}
}

// Validate fills in zero Bounds and rejects unusable options. Count and
// Seed are taken as given.
func (o *Options) Validate() error {
	if o.Bounds == (geom.Rect{}) {
		o.Bounds = DefaultBounds
	}
	if o.Count < 0 || o.Count > MaxCount {
		return errors.New(errors.ErrCodeInvalidInput, "point count must be between 0 and %d, got %d", MaxCount, o.Count)
	}
	if o.Bounds.Empty() {
		return errors.New(errors.ErrCodeInvalidInput, "bounds must have positive width and height")
	}
	if o.Integer && math.Floor(o.Bounds.MaxX) < math.Ceil(o.Bounds.MinX) {
		return errors.New(errors.ErrCodeInvalidInput, "bounds contain no integer x-coordinate")
	}
	if o.Integer && math.Floor(o.Bounds.MaxY) < math.Ceil(o.Bounds.MinY) {
		return errors.New(errors.ErrCodeInvalidInput, "bounds contain no integer y-coordinate")
	}
	return nil
}

// Generate returns opts.Count points drawn uniformly from opts.Bounds.
func Generate(opts Options) ([]geom.Point, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))
	b := opts.Bounds
	pts := make([]geom.Point, opts.Count)
	for i := range pts {
		if opts.Integer {
			pts[i] = geom.Pt(intIn(rng, b.MinX, b.MaxX), intIn(rng, b.MinY, b.MaxY))
			continue
		}
		pts[i] = geom.Pt(b.MinX+rng.Float64()*b.Width(), b.MinY+rng.Float64()*b.Height())
	}
	return pts, nil
}

// intIn returns a uniformly chosen integer in [ceil(lo), floor(hi)].
func intIn(rng *rand.Rand, lo, hi float64) float64 {
	l, h := int64(math.Ceil(lo)), int64(math.Floor(hi))
	return float64(l + rng.Int64N(h-l+1))
}
