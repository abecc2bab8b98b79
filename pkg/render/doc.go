// Package render draws a point set and its closest pair.
//
// # Formats
//
//   - [FormatHTML]: a self-contained page with a canvas scatter plot and
//     stat cards for the point count, solver timings and distance
//   - [FormatSVG]: the same scatter plot as a standalone SVG document
//   - [FormatDOT]: Graphviz source with every point pinned in place
//   - [FormatPNG]: the DOT scene laid out by the neato engine in-process
//   - [FormatPDF]: the SVG converted with rsvg-convert
//   - [FormatJSON]: the points and report as a single JSON document
//
// # Coordinates
//
// All formats use screen orientation: x grows to the right and y grows
// downward, matching points produced by the points package for an 800x600
// canvas. Point sets that already fit inside the canvas are drawn at their
// native coordinates; anything else is scaled uniformly to fit.
//
// # Usage
//
//	rep, _ := report.Compare(ctx, pts, nil)
//	page, err := render.Render(ctx, render.FormatHTML, render.Input{Points: pts, Report: rep}, render.Options{})
//
// PDF export requires librsvg: brew install librsvg (macOS), apt install
// librsvg2-bin (Linux).
package render
