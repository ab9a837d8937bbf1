package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/placard/pkg/render/sink"
)

// layoutCommand creates the layout command for computing placed layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
		cf     cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [definition]",
		Short: "Compute a placed layout from a diagram definition",
		Long: `Compute a placed layout from a diagram definition.

The layout command validates the definition, places every shape, routes the
connectors and checks the result. The output is a layout.json file (same
format as 'render -f json').

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, flags, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.bind(cmd)
	cf.bind(cmd)

	return cmd
}

// runLayout loads the definition, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, flags layoutFlags, cf cacheFlags) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := flags.apply(cfg); err != nil {
		return err
	}
	def, err := readDefinition(input, flags.input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, cf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipelineOptions(cfg)
	opts.Refresh = cf.refresh
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.ExecuteLayout(ctx, def, opts)
	if err != nil {
		spinner.StopWithError("Layout failed: " + describeError(err))
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := sink.RenderJSON(result.Layout)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase("", input) + ".layout.json"
	}
	if input == "-" && output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printWarnings(result.Report.All())
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.Shapes, result.Stats.Connectors, result.Report.Len(), result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}
