package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts the scene to an undirected Graphviz graph. Every point is
// a node pinned at its data coordinates (pos="x,-y!", one unit per point)
// so the neato engine keeps the layout instead of computing one. The y
// axis is negated because Graphviz grows y upward.
func ToDOT(in Input) string {
	var buf bytes.Buffer
	buf.WriteString("graph closest {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", colorBackground)
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, label=\"\", fixedsize=true, width=0.11, color=%q, fillcolor=%q];\n", colorPoint, colorPoint)
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=2, fontname=\"Helvetica\", fontsize=10];\n", colorLine)
	buf.WriteString("\n")

	pi, pj := -1, -1
	pair, found := bestPair(in)
	if found {
		if i, j, ok := pairIndices(in.Points, pair); ok {
			pi, pj = i, j
		}
	}

	for i, p := range in.Points {
		attrs := fmt.Sprintf("pos=\"%s,%s!\"", num(p.X), num(-p.Y))
		if i == pi || i == pj {
			attrs += fmt.Sprintf(", width=0.17, color=%q, fillcolor=%q", colorPair, colorPair)
		}
		fmt.Fprintf(&buf, "  p%d [%s];\n", i, attrs)
	}

	if pi >= 0 {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  p%d -- p%d [label=\"%.4f\"];\n", pi, pj, pair.Distance)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderPNG lays out a DOT graph with neato and renders it to PNG using the
// embedded Graphviz library.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
