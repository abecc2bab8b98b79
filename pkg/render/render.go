package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/pairquest/pkg/errors"
	"github.com/matzehuels/pairquest/pkg/geom"
	"github.com/matzehuels/pairquest/pkg/observability"
	"github.com/matzehuels/pairquest/pkg/points"
	"github.com/matzehuels/pairquest/pkg/report"
)

// Format names an output format.
type Format = string

// Supported output formats.
const (
	FormatHTML Format = "html"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatHTML, FormatSVG, FormatPNG, FormatPDF, FormatDOT, FormatJSON}

// Input is what gets drawn. Report may be nil, in which case only the points
// are shown.
type Input struct {
	Points []geom.Point
	Report *report.Report
}

// Options configures rendering.
type Options struct {
	// Width and Height are the canvas size in pixels. Zero means 800x600.
	Width  float64
	Height float64

	// Title is shown in the HTML page heading and SVG title.
	Title string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = points.DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = points.DefaultHeight
	}
	if o.Title == "" {
		o.Title = "Closest Pair of Points"
	}
	return o
}

// Render produces a single artifact in the given format.
func Render(ctx context.Context, format Format, in Input, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	hooks := observability.Render()
	formats := []string{format}
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()

	data, err := render(ctx, format, in, opts)
	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	return data, err
}

func render(ctx context.Context, format Format, in Input, opts Options) ([]byte, error) {
	switch format {
	case FormatHTML:
		return RenderHTML(in, opts)
	case FormatSVG:
		return RenderSVG(in, opts), nil
	case FormatDOT:
		return []byte(ToDOT(in)), nil
	case FormatPNG:
		return RenderPNG(ctx, ToDOT(in))
	case FormatPDF:
		return ToPDF(RenderSVG(in, opts))
	case FormatJSON:
		return RenderJSON(in)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// ContentType returns the MIME type served for a format.
func ContentType(format Format) string {
	switch format {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ValidateFormats rejects unknown format names.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateChoice(errors.ErrCodeInvalidFormat, "format", f, Formats); err != nil {
			return err
		}
	}
	return nil
}

// pairIndices locates the endpoints of pair in pts. Identical endpoints
// resolve to two distinct indices.
func pairIndices(pts []geom.Point, pair geom.Pair) (int, int, bool) {
	i, j := -1, -1
	for k, p := range pts {
		switch {
		case i < 0 && p == pair.A:
			i = k
		case j < 0 && p == pair.B:
			j = k
		}
		if i >= 0 && j >= 0 {
			return i, j, true
		}
	}
	return 0, 0, false
}

func bestPair(in Input) (geom.Pair, bool) {
	if in.Report == nil {
		return geom.Pair{}, false
	}
	return in.Report.Best()
}

func fmtMS(ms float64) string {
	return fmt.Sprintf("%.3f ms", ms)
}
