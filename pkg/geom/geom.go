package geom

import (
	"fmt"
	"math"
	"strconv"
)

// Point is a location in the plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return "(" + strconv.FormatFloat(p.X, 'f', -1, 64) + ", " + strconv.FormatFloat(p.Y, 'f', -1, 64) + ")"
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Pair is a closest-pair answer: two points and their distance.
type Pair struct {
	A        Point   `json:"a"`
	B        Point   `json:"b"`
	Distance float64 `json:"distance"`
}

// NewPair builds a Pair and computes its distance.
func NewPair(a, b Point) Pair {
	return Pair{A: a, B: b, Distance: Distance(a, b)}
}

// Same reports whether p and o join the same two points, in either order.
func (p Pair) Same(o Pair) bool {
	return (p.A == o.A && p.B == o.B) || (p.A == o.B && p.B == o.A)
}

func (p Pair) String() string {
	return fmt.Sprintf("%s - %s (%.4f)", p.A, p.B, p.Distance)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX float64 `json:"min_x" toml:"min_x"`
	MinY float64 `json:"min_y" toml:"min_y"`
	MaxX float64 `json:"max_x" toml:"max_x"`
	MaxY float64 `json:"max_y" toml:"max_y"`
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return !(r.MaxX > r.MinX && r.MaxY > r.MinY) }

// Contains reports whether p lies inside r, borders included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Bounds returns the smallest rectangle containing every point.
// The zero Rect is returned for an empty slice.
func Bounds(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		r.MinX = min(r.MinX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxX = max(r.MaxX, p.X)
		r.MaxY = max(r.MaxY, p.Y)
	}
	return r
}
