package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pairquest/pkg/errors"
	pqio "github.com/matzehuels/pairquest/pkg/io"
	"github.com/matzehuels/pairquest/pkg/pipeline"
)

// generateCommand creates the generate command, which writes a random
// point set in the file layout solve and render read back.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags  pointFlags
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random point set",
		Example: `  pairquest generate -n 1000 --seed 7 -o points.json
  pairquest generate --integer -f yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			if _, err := c.pointOptions(cmd, nil, &flags, &opts); err != nil {
				return err
			}
			pts, err := pipeline.ResolvePoints(opts)
			if err != nil {
				return err
			}

			if output == "" {
				if err := errors.ValidateChoice(errors.ErrCodeInvalidFormat, "format", format, pqio.Formats); err != nil {
					return err
				}
				return pqio.WritePoints(pts, cmd.OutOrStdout(), format)
			}

			if err := errors.ValidatePath(output); err != nil {
				return err
			}
			if err := pqio.ExportPoints(pts, output); err != nil {
				return err
			}
			out := newPrinter(cmd.OutOrStdout())
			out.success("Generated %d points", len(pts))
			out.file(output)
			out.newline()
			out.nextStep("Find the closest pair", "pairquest solve "+output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json, .yaml); stdout if empty")
	cmd.Flags().StringVarP(&format, "format", "f", pqio.FormatJSON, "stdout format: json, yaml")

	return cmd
}
