package closest

import (
	"cmp"
	"slices"

	"github.com/matzehuels/pairquest/pkg/geom"
)

// baseCaseSize is the largest range solved by brute force instead of splitting.
const baseCaseSize = 3

// DivideAndConquer returns the closest pair using the classic planar
// divide-and-conquer algorithm. It returns false when points has fewer than
// two elements.
//
// The input slice is copied before sorting and is never modified.
func DivideAndConquer(points []geom.Point) (geom.Pair, bool) {
	n := len(points)
	if n < 2 {
		return geom.Pair{}, false
	}
	if n <= baseCaseSize {
		return BruteForce(points)
	}

	xs := slices.Clone(points)
	// Stable sort keeps input order for identical points.
	slices.SortStableFunc(xs, byXThenY)

	s := &dnc{xs: xs, strip: make([]geom.Point, 0, n)}
	return s.solve(0, n), true
}

// dnc holds the buffers shared by one DivideAndConquer call.
type dnc struct {
	xs    []geom.Point // x-sorted copy of the input
	strip []geom.Point // scratch space for merge steps
}

// solve returns the closest pair within xs[lo:hi]. hi-lo is always >= 2.
func (s *dnc) solve(lo, hi int) geom.Pair {
	if hi-lo <= baseCaseSize {
		p, _ := BruteForce(s.xs[lo:hi])
		return p
	}

	mid := lo + (hi-lo)/2
	splitX := s.xs[mid].X

	left := s.solve(lo, mid)
	right := s.solve(mid, hi)

	best := right
	if left.Distance < right.Distance {
		best = left
	}
	return s.merge(lo, hi, splitX, best)
}

// merge looks for a pair straddling the dividing line that is strictly closer
// than best. Both children have returned before merge runs, so the strip
// buffer is free to reuse.
func (s *dnc) merge(lo, hi int, splitX float64, best geom.Pair) geom.Pair {
	d := best.Distance

	strip := s.strip[:0]
	for _, p := range s.xs[lo:hi] {
		if abs(p.X-splitX) < d {
			strip = append(strip, p)
		}
	}
	slices.SortFunc(strip, byYThenX)

	for i := range strip {
		for j := i + 1; j < len(strip) && strip[j].Y-strip[i].Y < best.Distance; j++ {
			if dist := geom.Distance(strip[i], strip[j]); dist < best.Distance {
				best = geom.Pair{A: strip[i], B: strip[j], Distance: dist}
			}
		}
	}

	s.strip = strip
	return best
}

func byXThenY(a, b geom.Point) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

func byYThenX(a, b geom.Point) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
