package closest_test

import (
	"fmt"

	"github.com/matzehuels/pairquest/pkg/closest"
	"github.com/matzehuels/pairquest/pkg/geom"
)

func ExampleDivideAndConquer() {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(3, 4), geom.Pt(1, 1)}

	pair, ok := closest.DivideAndConquer(pts)
	if !ok {
		fmt.Println("no pair")
		return
	}
	fmt.Println(pair.A, pair.B)
	fmt.Printf("%.4f\n", pair.Distance)
	// Output:
	// (0, 0) (1, 1)
	// 1.4142
}

func ExampleBruteForce_absent() {
	_, ok := closest.BruteForce([]geom.Point{geom.Pt(1, 1)})
	fmt.Println(ok)
	// Output: false
}
