package render

import "github.com/matzehuels/pairquest/pkg/geom"

const fitPadding = 20.0

// viewport maps data coordinates onto a width x height canvas.
type viewport struct {
	identity   bool
	scale      float64
	offX, offY float64
	minX, minY float64
}

func newViewport(pts []geom.Point, width, height float64) viewport {
	canvas := geom.Rect{MaxX: width, MaxY: height}
	b := geom.Bounds(pts)
	if len(pts) == 0 || (canvas.Contains(geom.Pt(b.MinX, b.MinY)) && canvas.Contains(geom.Pt(b.MaxX, b.MaxY))) {
		return viewport{identity: true}
	}

	availW, availH := width-2*fitPadding, height-2*fitPadding
	scale := 1.0
	switch {
	case b.Width() > 0 && b.Height() > 0:
		scale = min(availW/b.Width(), availH/b.Height())
	case b.Width() > 0:
		scale = availW / b.Width()
	case b.Height() > 0:
		scale = availH / b.Height()
	}

	return viewport{
		scale: scale,
		minX:  b.MinX,
		minY:  b.MinY,
		offX:  (width - b.Width()*scale) / 2,
		offY:  (height - b.Height()*scale) / 2,
	}
}

func (v viewport) apply(p geom.Point) geom.Point {
	if v.identity {
		return p
	}
	return geom.Pt(v.offX+(p.X-v.minX)*v.scale, v.offY+(p.Y-v.minY)*v.scale)
}

func project(pts []geom.Point, width, height float64) []geom.Point {
	v := newViewport(pts, width, height)
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = v.apply(p)
	}
	return out
}
