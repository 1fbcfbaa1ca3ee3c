package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/xui/pkg/observability"
	"github.com/matzehuels/xui/pkg/pipeline"
	"github.com/matzehuels/xui/pkg/server"
)

const defaultAddr = ":8080"

// serveCommand creates the serve command, which answers queries against one
// solved scene over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
		flags     sceneFlags
	)

	cmd := &cobra.Command{
		Use:   "serve [markup]",
		Short: "Serve hit tests and snapshots over HTTP",
		Long: `Serve hit tests and snapshots over HTTP.

The scene is solved once at startup. POST /resize re-runs the layout pass for
a new viewport; every other route reads the last pass. Prometheus metrics are
exposed at /metrics unless --no-metrics is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = firstNonEmpty(c.config.Server.Addr, defaultAddr)
			}
			return c.runServe(cmd.Context(), args[0], &flags, addr, !noMetrics)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else "+defaultAddr+")")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input string, flags *sceneFlags, addr string, metrics bool) error {
	var opts []server.Option
	if metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		observability.NewPrometheus(reg).Register()
		defer observability.Reset()
		opts = append(opts, server.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	e, sceneOpts, err := c.solve(ctx, input, flags)
	if err != nil {
		return err
	}
	opts = append(opts,
		server.WithLogger(c.Logger),
		server.WithRenderOptions(pipeline.Options{Scale: pipeline.DefaultScale, Width: sceneOpts.Width, Height: sceneOpts.Height}),
	)

	printSuccess("Serving %s", input)
	printKeyValue("address", addr)
	printKeyValue("engine", e.ID().String())
	printKeyValue("nodes", StyleNumber.Render(strconv.Itoa(e.Len())))

	err = server.New(e, opts...).ListenAndServe(ctx, addr)
	if errors.Is(err, context.Canceled) {
		printInfo("Shut down")
	}
	return err
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
