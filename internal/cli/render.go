package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pairquest/pkg/errors"
	"github.com/matzehuels/pairquest/pkg/pipeline"
	"github.com/matzehuels/pairquest/pkg/render"
)

const defaultOutputBase = "closest"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	points  pointFlags
	output  string   // base path; each format appends its extension
	formats []string // html, svg, png, pdf, dot, json
	width   float64
	height  float64
	title   string
	refresh bool
}

// renderCommand creates the render command, which solves a point set and
// writes the result in one or more visual formats.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{formats: []string{render.FormatHTML}}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the closest pair as HTML, SVG, PNG, PDF, DOT or JSON",
		Long: `Render solves a point set (from a file or generated) and draws every point
with the closest pair highlighted.

Formats:
  html  self-contained page with a canvas and timing cards
  svg   scatter plot
  png   Graphviz neato rendering with pinned positions
  pdf   SVG converted with rsvg-convert (must be installed)
  dot   Graphviz source
  json  points and report`,
		Example: `  pairquest render points.json -f html,svg
  pairquest render -n 200 -f png -o out/quest`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, &opts)
		},
	}

	opts.points.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultOutputBase, "output base path (extension added per format)")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", opts.formats, "output formats: "+strings.Join(render.Formats, ", "))
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width (default from config, 800)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height (default from config, 600)")
	cmd.Flags().StringVar(&opts.title, "title", "", "page title")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, ro *renderOpts) error {
	if err := errors.ValidatePath(ro.output); err != nil {
		return err
	}

	opts := pipeline.Options{
		Formats: ro.formats,
		Title:   ro.title,
		Refresh: ro.refresh,
	}
	source, err := c.pointOptions(cmd, args, &ro.points, &opts)
	if err != nil {
		return err
	}
	c.frameOptions(cmd, ro.width, ro.height, &opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "Rendering...")
	spinner.Start()
	res, err := runner.Execute(cmd.Context(), opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	out := newPrinter(cmd.OutOrStdout())
	out.success("Rendered %d points", res.Stats.PointCount)
	out.stats(res.Stats.PointCount, source, res.CacheInfo.RenderHit)
	if _, ok := res.Report.Best(); !ok {
		out.warning("No closest pair to highlight")
	}
	for _, format := range opts.Formats {
		path := ro.output + "." + format
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		out.file(path)
	}
	return nil
}
