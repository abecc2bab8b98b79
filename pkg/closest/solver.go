package closest

import (
	"slices"

	"github.com/matzehuels/pairquest/pkg/geom"
)

// Solver finds the closest pair of a point set. The boolean is false when
// there are fewer than two points.
type Solver func(points []geom.Point) (geom.Pair, bool)

// Solver names accepted by [Lookup].
const (
	NameBruteForce       = "brute"
	NameDivideAndConquer = "dnc"
)

var solvers = map[string]Solver{
	NameBruteForce:       BruteForce,
	NameDivideAndConquer: DivideAndConquer,
}

var labels = map[string]string{
	NameBruteForce:       "Brute Force",
	NameDivideAndConquer: "Divide & Conquer",
}

// Lookup returns the solver registered under name.
func Lookup(name string) (Solver, bool) {
	s, ok := solvers[name]
	return s, ok
}

// Names returns the registered solver names, brute force first.
func Names() []string {
	return []string{NameBruteForce, NameDivideAndConquer}
}

// Label returns a human-readable name for a solver, or name itself if unknown.
func Label(name string) string {
	if l, ok := labels[name]; ok {
		return l
	}
	return name
}

// Valid reports whether every name is a registered solver.
func Valid(names []string) bool {
	return !slices.ContainsFunc(names, func(n string) bool {
		_, ok := solvers[n]
		return !ok
	})
}
