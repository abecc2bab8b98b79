package cli

import (
	"github.com/spf13/cobra"

	pqio "github.com/matzehuels/pairquest/pkg/io"
	"github.com/matzehuels/pairquest/pkg/pipeline"
)

// pointFlags are the generator flags shared by commands that accept either
// a point file or a random set.
type pointFlags struct {
	count   int
	seed    uint64
	integer bool
}

func (f *pointFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "number of random points (default from config, 50)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (default from config, 42)")
	cmd.Flags().BoolVar(&f.integer, "integer", false, "snap random points to integer coordinates")
}

// pointOptions fills the point stage of opts from a file argument or the
// generator flags, with config values for unset flags. It returns a short
// description of the source for display.
func (c *CLI) pointOptions(cmd *cobra.Command, args []string, f *pointFlags, opts *pipeline.Options) (string, error) {
	if len(args) > 0 {
		pts, err := pqio.ImportPoints(args[0])
		if err != nil {
			return "", err
		}
		opts.Points = pts
		return args[0], nil
	}

	gen := c.Config.Generate
	opts.Count, opts.Seed, opts.Integer = gen.Count, gen.Seed, gen.Integer
	if cmd.Flags().Changed("count") {
		opts.Count = f.count
	}
	if cmd.Flags().Changed("seed") {
		opts.Seed = f.seed
	}
	if cmd.Flags().Changed("integer") {
		opts.Integer = f.integer
	}
	opts.Bounds = c.Config.Frame.Bounds()
	return "random", nil
}

// frameOptions fills the canvas size from config unless flags override it.
func (c *CLI) frameOptions(cmd *cobra.Command, width, height float64, opts *pipeline.Options) {
	opts.Width, opts.Height = c.Config.Frame.Width, c.Config.Frame.Height
	if cmd.Flags().Changed("width") {
		opts.Width = width
	}
	if cmd.Flags().Changed("height") {
		opts.Height = height
	}
}
