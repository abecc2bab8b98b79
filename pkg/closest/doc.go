// Package closest finds the closest pair of points in a planar point set.
//
// Two solvers are provided:
//
//   - [BruteForce] compares every unordered pair. O(n²) time, O(1) extra space.
//     It is the correctness baseline.
//   - [DivideAndConquer] sorts by x, splits at the array midpoint, solves both
//     halves recursively and merges through a strip around the dividing line.
//     O(n log n) time, O(n) extra space.
//
// Both solvers measure distance with [geom.Distance], so for the same input
// they report bit-identical minimum distances.
//
// # Absent Results
//
// With fewer than two points there is no pair. Both solvers return
// (geom.Pair{}, false) in that case; a true second result always carries a
// real pair.
//
// # Tie-Breaking
//
// When several pairs share the minimum distance the reported pair is
// deterministic but depends on the solver:
//
//   - BruteForce keeps the first minimal pair in scan order (i ascending,
//     then j ascending) of the input slice.
//   - DivideAndConquer orders points by x, then y, then input position. On a
//     tie between the two halves the right half wins, and a strip candidate
//     only replaces the recursive result when strictly closer.
//
// Callers cross-checking the two solvers should compare distances, not pairs.
//
// # Recursion Layout
//
// DivideAndConquer sorts one private copy of the input and recurses over
// index ranges of that buffer. The split point is always index n/2 of the
// x-sorted range, never a geometric median, so recursion depth is O(log n)
// even when many points share an x-coordinate. A single strip buffer is
// reused by every merge step.
//
// # Inputs
//
// Neither solver modifies the caller's slice, and neither keeps state between
// calls, so concurrent or repeated calls on the same input are safe and
// return identical results. NaN or infinite coordinates are not rejected;
// results for such input are unspecified.
package closest
