package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/placard/pkg/pipeline"
)

// reviewCommand creates the review command, an interactive browser over the
// warnings of a full pipeline run.
func (c *CLI) reviewCommand() *cobra.Command {
	var (
		flags layoutFlags
		cf    cacheFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "review [definition]",
		Short: "Browse the warnings of a diagram interactively",
		Long: `Run validation, layout and render checks on a definition and browse every
warning in a terminal table. Nothing is written to disk.

Use --plain when stdout is not a terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReview(cmd.Context(), args[0], flags, cf, plain)
		},
	}

	flags.bind(cmd)
	cf.bind(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "print warnings instead of opening the browser")

	return cmd
}

func (c *CLI) runReview(ctx context.Context, input string, flags layoutFlags, cf cacheFlags, plain bool) error {
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
	opts.Formats = []string{pipeline.FormatSVG, pipeline.FormatJSON}
	opts.Refresh = cf.refresh
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Checking diagram...")
	spinner.Start()
	result, err := runner.Execute(ctx, def, opts)
	if err != nil {
		spinner.StopWithError("Check failed: " + describeError(err))
		return err
	}
	spinner.Stop()

	warnings := result.Report.All()
	if len(warnings) == 0 {
		printSuccess("No warnings")
		printStats(result.Stats.Shapes, result.Stats.Connectors, 0, result.CacheInfo.LayoutHit)
		return nil
	}
	if plain {
		printWarnings(warnings)
		return nil
	}

	title := input
	if def.Title != "" {
		title = def.Title
	}
	p := tea.NewProgram(NewReviewModel(title, warnings), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("review: %w", err)
	}
	return nil
}
