package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pairquest/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the config file is loaded (from --config or
// the XDG default) and the logger is attached to the command context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "pairquest finds the closest pair of points two ways and compares them",
		Long: `pairquest finds the closest pair in a 2D point set with an O(n²) brute-force
scan and an O(n log n) divide-and-conquer algorithm, checks that they agree,
times both, and renders the result as HTML, SVG, PNG, PDF, DOT or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pairquest/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the result cache")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.benchCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
