package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pairquest/pkg/errors"
	pqio "github.com/matzehuels/pairquest/pkg/io"
	"github.com/matzehuels/pairquest/pkg/pipeline"
)

// solveCommand creates the solve command: run the solvers on a point file
// or a random set and print the comparison.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		flags   pointFlags
		solvers string
		asJSON  bool
		output  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Find the closest pair and compare solvers",
		Example: `  pairquest solve points.json
  pairquest solve -n 5000 --solvers dnc
  pairquest solve points.yaml --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Solvers: parseList(solvers), Refresh: refresh}
			source, err := c.pointOptions(cmd, args, &flags, &opts)
			if err != nil {
				return err
			}

			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			defer runner.Close()

			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)
			res, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}
			prog.done("Solved")

			if output != "" {
				if err := errors.ValidatePath(output); err != nil {
					return err
				}
				if err := pqio.ExportReport(res.Report, output); err != nil {
					return err
				}
			}
			if asJSON {
				return pqio.WriteReport(res.Report, cmd.OutOrStdout())
			}

			out := newPrinter(cmd.OutOrStdout())
			out.stats(res.Stats.PointCount, source, res.CacheInfo.SolveHit)
			out.newline()
			out.report(res.Report)
			if output != "" {
				out.file(output)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&solvers, "solvers", "", "comma-separated solvers to run: brute, dnc (default all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "also write the report as JSON to this file")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")

	return cmd
}
