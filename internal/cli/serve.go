package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pairquest/internal/server"
	"github.com/matzehuels/pairquest/pkg/cache"
	"github.com/matzehuels/pairquest/pkg/observability/prom"
	"github.com/matzehuels/pairquest/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API until
// the process is interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the closest-pair HTTP API",
		Long: `Serve starts an HTTP server with the following endpoints:

  GET  /          interactive page
  POST /generate  random integer points
  POST /closest   both solvers' answers and timings
  POST /render    rendered artifact (?format=html|svg|png|pdf|dot|json)
  GET  /healthz   liveness
  GET  /metrics   Prometheus metrics

Rendered artifacts are cached in Redis when --redis-url is set, otherwise
on disk.`,
		Example: `  pairquest serve --addr :9000
  pairquest serve --redis-url redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("redis-url") {
				cfg.RedisURL = redisURL
			}

			var (
				store cache.Cache
				err   error
				keyer = cache.NewDefaultKeyer()
			)
			switch {
			case c.noCache:
				store = cache.NewNullCache()
			case cfg.RedisURL != "":
				store, err = cache.NewRedisCache(ctx, cfg.RedisURL)
				if err != nil {
					return err
				}
				keyer = cache.NewScopedKeyer(keyer, cfg.KeyPrefix)
				logger.Info("Using redis cache", "prefix", cfg.KeyPrefix)
			default:
				if store, err = newCache(false); err != nil {
					return err
				}
			}

			runner := pipeline.NewRunner(store, keyer, logger)
			runner.TTL = cfg.CacheTTL
			defer runner.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			prom.New(reg).Register()

			frame := c.Config.Frame
			srv := server.New(runner, logger, server.Config{
				Addr:   cfg.Addr,
				Bounds: frame.Bounds(),
				Width:  frame.Width,
				Height: frame.Height,
			}, server.WithMetrics(reg))

			logger.Info("Listening", "addr", cfg.Addr)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for the shared artifact cache")

	return cmd
}
