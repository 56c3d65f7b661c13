package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chordwheel/pkg/observability"
	"github.com/matzehuels/chordwheel/pkg/pipeline"
	"github.com/matzehuels/chordwheel/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Serve the render pipeline over HTTP.

Routes:
  GET  /healthz        liveness probe
  POST /v1/layout      words → layout JSON
  POST /v1/render      words → artifact (?format=svg|png|pdf|json)
  POST /v1/visualize   layout JSON → artifact
  GET  /metrics        Prometheus metrics

The cache backend, body limit and read timeout come from the config file.
The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			var defaults pipeline.Options
			c.config.ApplyTo(&defaults)

			opts := []server.Option{
				server.WithLogger(c.Logger),
				server.WithDefaults(defaults),
				server.WithMaxBodySize(c.config.Server.MaxBodySize),
				server.WithReadTimeout(c.config.Server.ReadTimeout.Std()),
			}
			if !noMetrics {
				hooks := observability.NewPrometheusHooks()
				hooks.Register()
				defer observability.Reset()
				opts = append(opts, server.WithMetrics(hooks.Handler()))
			}

			return server.New(runner, opts...).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from config, "+`":8080"`+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")

	return cmd
}
