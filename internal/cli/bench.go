package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pairquest/pkg/closest"
	"github.com/matzehuels/pairquest/pkg/errors"
	"github.com/matzehuels/pairquest/pkg/points"
	"github.com/matzehuels/pairquest/pkg/report"
)

// benchRow is one size of a benchmark sweep.
type benchRow struct {
	size  int
	rep   *report.Report
	brute bool // brute force was run
}

// benchCommand creates the bench command, which times both solvers over a
// sweep of point counts.
func (c *CLI) benchCommand() *cobra.Command {
	var (
		sizes      string
		bruteLimit int
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time both solvers over a range of point counts",
		Example: `  pairquest bench
  pairquest bench --sizes 100,1000,10000 --brute-limit 5000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Bench
			list := cfg.Sizes
			if cmd.Flags().Changed("sizes") {
				parsed, err := parseSizes(sizes)
				if err != nil {
					return err
				}
				list = parsed
			}
			if !cmd.Flags().Changed("brute-limit") {
				bruteLimit = cfg.BruteLimit
			}
			if !cmd.Flags().Changed("seed") {
				seed = c.Config.Generate.Seed
			}

			rows, err := c.runBench(cmd, list, bruteLimit, seed)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), benchTable(rows))
			return disagreement(rows)
		},
	}

	cmd.Flags().StringVar(&sizes, "sizes", "", "comma-separated point counts (default from config)")
	cmd.Flags().IntVar(&bruteLimit, "brute-limit", 0, "skip brute force above this many points (default from config, 20000)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed")

	return cmd
}

func (c *CLI) runBench(cmd *cobra.Command, sizes []int, bruteLimit int, seed uint64) ([]benchRow, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	bounds := c.Config.Frame.Bounds()

	rows := make([]benchRow, 0, len(sizes))
	for _, n := range sizes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pts, err := points.Generate(points.Options{Count: n, Seed: seed, Bounds: bounds})
		if err != nil {
			return nil, err
		}

		solvers := closest.Names()
		brute := bruteLimit <= 0 || n <= bruteLimit
		if !brute {
			solvers = []string{closest.NameDivideAndConquer}
		}
		logger.Debug("benchmarking", "points", n, "solvers", strings.Join(solvers, ","))

		rep, err := report.Compare(ctx, pts, solvers)
		if err != nil && (rep == nil || !errors.Is(err, errors.ErrCodeInternal)) {
			return nil, fmt.Errorf("n=%d: %w", n, err)
		}
		if err != nil {
			logger.Warn("solvers disagree", "points", n, "err", err)
		}
		rows = append(rows, benchRow{size: n, rep: rep, brute: brute})
	}
	return rows, nil
}

// disagreement reports the sizes at which the solvers gave different
// answers. Those rows are still shown in the table.
func disagreement(rows []benchRow) error {
	var sizes []string
	for _, r := range rows {
		if !r.rep.Agree {
			sizes = append(sizes, strconv.Itoa(r.size))
		}
	}
	if len(sizes) == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeInternal, "solvers disagree at sizes %s", strings.Join(sizes, ", "))
}

func benchTable(rows []benchRow) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		bf := "skipped"
		if run, ok := r.rep.Run(closest.NameBruteForce); ok {
			bf = fmt.Sprintf("%.3f ms", run.ElapsedMS)
		}
		dc := "-"
		if run, ok := r.rep.Run(closest.NameDivideAndConquer); ok {
			dc = fmt.Sprintf("%.3f ms", run.ElapsedMS)
		}
		speedup := "-"
		if x, ok := r.rep.Speedup(); ok {
			speedup = fmt.Sprintf("%.1fx", x)
		}
		dist := "-"
		if pair, ok := r.rep.Best(); ok {
			dist = strconv.FormatFloat(pair.Distance, 'f', 4, 64)
		}
		agree := "-"
		if r.brute {
			agree = iconSuccess
			if !r.rep.Agree {
				agree = iconError
			}
		}
		data = append(data, []string{strconv.Itoa(r.size), bf, dc, speedup, dist, agree})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Size", closest.Label(closest.NameBruteForce), closest.Label(closest.NameDivideAndConquer), "Speedup", "Distance", "Agree").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 1:
				if data[row][col] == "skipped" {
					return cellStyle.Foreground(colorDim)
				}
			case 3:
				return cellStyle.Foreground(colorCyan)
			case 5:
				if data[row][col] == iconError {
					return cellStyle.Foreground(colorRed)
				}
				return cellStyle.Foreground(colorGreen)
			}
			return cellStyle
		})
	return t.Render()
}
