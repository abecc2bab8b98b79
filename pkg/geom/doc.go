// Package geom defines the planar data model shared by the closest-pair solvers.
//
// A [Point] is an immutable (x, y) value; two points are equal when their
// coordinates are equal. [Distance] is the Euclidean metric used by every
// solver, so results computed by different algorithms are bit-for-bit
// comparable. A [Pair] is the answer a solver reports: two points and the
// distance between them.
//
// # Absent Results
//
// A point set with fewer than two points has no closest pair. Solvers signal
// this with a boolean alongside the Pair rather than a sentinel distance:
//
//	pair, ok := closest.DivideAndConquer(pts)
//	if !ok {
//	    // fewer than two points
//	}
//
// # Malformed Coordinates
//
// NaN and infinite coordinates are not validated. They propagate through
// [Distance] and make comparisons meaningless; sanitising input is the
// caller's job.
package geom
