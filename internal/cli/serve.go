package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/placard/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validate, layout and render API over HTTP",
		Long: `Serve the pipeline over HTTP.

Endpoints:
  GET  /healthz       build info
  POST /v1/validate   definition warnings
  POST /v1/layout     placed layout and warnings
  POST /v1/render     one artifact (?format=svg|json|png|pdf|dot|topology)

Request bodies are JSON, YAML or TOML definitions, chosen by Content-Type or
?input=. The cache backend comes from the [cache] config section.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := server.New(runner, c.Logger, server.Options{
		Pipeline:     pipelineOptions(cfg),
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Timeout:      cfg.Server.ReadTimeout.Duration,
	})

	printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
	printKeyValue("cache", cfg.Cache.Backend)
	printKeyValue("canvas", orDefault(cfg.Layout.Canvas, "per definition"))

	return srv.ListenAndServe(ctx, addr)
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
