package closest

import "github.com/matzehuels/pairquest/pkg/geom"

// BruteForce returns the closest pair by examining every pair (i, j), i < j,
// in input order. The first pair achieving the minimum distance wins.
// It returns false when points has fewer than two elements.
func BruteForce(points []geom.Point) (geom.Pair, bool) {
	if len(points) < 2 {
		return geom.Pair{}, false
	}

	best := geom.NewPair(points[0], points[1])
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if d := geom.Distance(points[i], points[j]); d < best.Distance {
				best = geom.Pair{A: points[i], B: points[j], Distance: d}
			}
		}
	}
	return best, true
}
