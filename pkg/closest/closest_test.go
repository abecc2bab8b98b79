package closest

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pairquest/pkg/geom"
)

func randomPoints(n int, seed uint64) []geom.Point {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(20+rng.Float64()*760, 20+rng.Float64()*560)
	}
	return pts
}

func TestAbsentBelowTwoPoints(t *testing.T) {
	for _, name := range Names() {
		solve, ok := Lookup(name)
		require.True(t, ok)

		t.Run(name, func(t *testing.T) {
			p, ok := solve(nil)
			assert.False(t, ok)
			assert.Equal(t, geom.Pair{}, p)

			p, ok = solve([]geom.Point{})
			assert.False(t, ok)
			assert.Equal(t, geom.Pair{}, p)

			p, ok = solve([]geom.Point{geom.Pt(3, 4)})
			assert.False(t, ok)
			assert.Equal(t, geom.Pair{}, p)
		})
	}
}

func TestKnownScenario(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(3, 4), geom.Pt(1, 1)}
	want := geom.NewPair(geom.Pt(0, 0), geom.Pt(1, 1))

	for _, name := range Names() {
		solve, _ := Lookup(name)
		t.Run(name, func(t *testing.T) {
			p, ok := solve(pts)
			require.True(t, ok)
			assert.InDelta(t, math.Sqrt2, p.Distance, 1e-12)
			assert.True(t, p.Same(want), "got %s", p)
		})
	}
}

func TestTwoPoints(t *testing.T) {
	pts := []geom.Point{geom.Pt(1, 2), geom.Pt(4, 6)}
	for _, name := range Names() {
		solve, _ := Lookup(name)
		p, ok := solve(pts)
		require.True(t, ok, name)
		assert.Equal(t, 5.0, p.Distance, name)
	}
}

func TestCollinear(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0), geom.Pt(10, 0)}
	accept := []geom.Pair{
		geom.NewPair(geom.Pt(0, 0), geom.Pt(1, 0)),
		geom.NewPair(geom.Pt(1, 0), geom.Pt(2, 0)),
	}

	for _, name := range Names() {
		solve, _ := Lookup(name)
		t.Run(name, func(t *testing.T) {
			p, ok := solve(pts)
			require.True(t, ok)
			assert.Equal(t, 1.0, p.Distance)
			assert.True(t, p.Same(accept[0]) || p.Same(accept[1]), "got %s", p)
		})
	}
}

func TestBruteForceKeepsFirstTie(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0), geom.Pt(10, 0)}
	p, ok := BruteForce(pts)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(0, 0), p.A)
	assert.Equal(t, geom.Pt(1, 0), p.B)
}

func TestDivideAndConquerRightWinsTie(t *testing.T) {
	// Halves {(0,0),(1,0)} and {(10,0),(11,0)} tie at distance 1 and are too
	// far apart for the strip to contribute.
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(10, 0), geom.Pt(11, 0)}
	p, ok := DivideAndConquer(pts)
	require.True(t, ok)
	assert.True(t, p.Same(geom.NewPair(geom.Pt(10, 0), geom.Pt(11, 0))), "got %s", p)
}

func TestAllIdenticalPoints(t *testing.T) {
	pts := slices.Repeat([]geom.Point{geom.Pt(7, 7)}, 25)
	for _, name := range Names() {
		solve, _ := Lookup(name)
		p, ok := solve(pts)
		require.True(t, ok, name)
		assert.Zero(t, p.Distance, name)
	}
}

func TestDuplicateAmongDistinct(t *testing.T) {
	pts := randomPoints(200, 3)
	pts = append(pts, pts[117])

	for _, name := range Names() {
		solve, _ := Lookup(name)
		p, ok := solve(pts)
		require.True(t, ok, name)
		assert.Zero(t, p.Distance, name)
		assert.Equal(t, pts[117], p.A, name)
	}
}

func TestSharedXCoordinate(t *testing.T) {
	// Every point on one vertical line: splitting by a computed midline would
	// never separate them, splitting by array index always does.
	pts := make([]geom.Point, 500)
	for i := range pts {
		pts[i] = geom.Pt(5, float64((i*37)%500)*1.5)
	}
	bf, ok := BruteForce(pts)
	require.True(t, ok)
	dc, ok := DivideAndConquer(pts)
	require.True(t, ok)
	assert.Equal(t, 1.5, bf.Distance)
	assert.Equal(t, bf.Distance, dc.Distance)
}

func TestSolversAgree(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 7, 16, 33, 100, 257} {
		for seed := uint64(1); seed <= 10; seed++ {
			pts := randomPoints(n, seed)
			bf, ok := BruteForce(pts)
			require.True(t, ok)
			dc, ok := DivideAndConquer(pts)
			require.True(t, ok)
			require.Equal(t, bf.Distance, dc.Distance, "n=%d seed=%d", n, seed)
			require.Equal(t, geom.Distance(dc.A, dc.B), dc.Distance)
		}
	}
}

func TestSolversAgreeThousandPoints(t *testing.T) {
	pts := randomPoints(1000, 42)
	bf, ok := BruteForce(pts)
	require.True(t, ok)
	dc, ok := DivideAndConquer(pts)
	require.True(t, ok)
	assert.Equal(t, bf.Distance, dc.Distance)
}

func TestSolversAgreeOnIntegerGrid(t *testing.T) {
	// Integer coordinates produce many ties, exercising the strip boundary.
	rng := rand.New(rand.NewPCG(9, 9))
	for round := 0; round < 20; round++ {
		pts := make([]geom.Point, 300)
		for i := range pts {
			pts[i] = geom.Pt(float64(20+rng.IntN(40)), float64(20+rng.IntN(40)))
		}
		bf, _ := BruteForce(pts)
		dc, _ := DivideAndConquer(pts)
		require.Equal(t, bf.Distance, dc.Distance, "round %d", round)
	}
}

func TestInputNotMutated(t *testing.T) {
	pts := randomPoints(64, 5)
	orig := slices.Clone(pts)

	for _, name := range Names() {
		solve, _ := Lookup(name)
		solve(pts)
		assert.Equal(t, orig, pts, name)
	}
}

func TestIdempotent(t *testing.T) {
	pts := randomPoints(300, 11)
	for _, name := range Names() {
		solve, _ := Lookup(name)
		first, _ := solve(pts)
		second, _ := solve(pts)
		assert.Equal(t, first, second, name)
	}
}

func TestPermutationInvariance(t *testing.T) {
	pts := randomPoints(150, 21)
	want, _ := BruteForce(pts)

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10; i++ {
		shuffled := slices.Clone(pts)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		for _, name := range Names() {
			solve, _ := Lookup(name)
			got, ok := solve(shuffled)
			require.True(t, ok)
			assert.Equal(t, want.Distance, got.Distance, name)
			assert.Contains(t, pts, got.A)
			assert.Contains(t, pts, got.B)
		}
	}
}

func TestCrossStripPair(t *testing.T) {
	// The closest pair straddles the dividing line.
	pts := []geom.Point{
		geom.Pt(0, 0), geom.Pt(0, 10), geom.Pt(4.9, 5),
		geom.Pt(5.1, 5), geom.Pt(10, 0), geom.Pt(10, 10),
	}
	p, ok := DivideAndConquer(pts)
	require.True(t, ok)
	assert.True(t, p.Same(geom.NewPair(geom.Pt(4.9, 5), geom.Pt(5.1, 5))), "got %s", p)
	assert.InDelta(t, 0.2, p.Distance, 1e-9)
}

func TestRegistry(t *testing.T) {
	_, ok := Lookup("nope")
	assert.False(t, ok)
	assert.True(t, Valid([]string{NameBruteForce, NameDivideAndConquer}))
	assert.False(t, Valid([]string{NameBruteForce, "quick"}))
	assert.True(t, Valid(nil))
	assert.Equal(t, "Divide & Conquer", Label(NameDivideAndConquer))
	assert.Equal(t, "other", Label("other"))
}
