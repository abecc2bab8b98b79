package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/pairquest/pkg/geom"
)

// Colors shared by the SVG, HTML and DOT renderers.
const (
	colorPoint      = "#3b82f6"
	colorPair       = "#ef4444"
	colorLine       = "#10b981"
	colorBackground = "#ffffff"

	pointRadius = 4.0
	pairRadius  = 6.0
)

// RenderSVG draws the points, highlighting the closest pair when the input
// carries a report that found one.
func RenderSVG(in Input, opts Options) []byte {
	opts = opts.withDefaults()
	pts := project(in.Points, opts.Width, opts.Height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(opts.Title))
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", colorBackground)

	buf.WriteString(`  <g class="points">` + "\n")
	for _, p := range pts {
		writeCircle(&buf, p, pointRadius, colorPoint)
	}
	buf.WriteString("  </g>\n")

	if pair, ok := bestPair(in); ok {
		if i, j, ok := pairIndices(in.Points, pair); ok {
			a, b := pts[i], pts[j]
			buf.WriteString(`  <g class="closest">` + "\n")
			fmt.Fprintf(&buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2"/>`+"\n",
				num(a.X), num(a.Y), num(b.X), num(b.Y), colorLine)
			writeCircle(&buf, a, pairRadius, colorPair)
			writeCircle(&buf, b, pairRadius, colorPair)
			fmt.Fprintf(&buf, `    <text x="10" y="%s" font-family="sans-serif" font-size="14" fill="#111827">d = %.4f</text>`+"\n",
				num(opts.Height-10), pair.Distance)
			buf.WriteString("  </g>\n")
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeCircle(buf *bytes.Buffer, p geom.Point, r float64, fill string) {
	fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n", num(p.X), num(p.Y), num(r), fill)
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		return "0"
	}
	return s
}
