package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
	"github.com/matzehuels/placard/pkg/pipeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		flags      layoutFlags
		withLayout bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "validate [definition]",
		Short: "Check a diagram definition",
		Long: `Check a diagram definition for structural errors and report warnings.

With --layout the definition is also placed and the layout is checked for
overflowing text, overlaps and broken connectors. Nothing is cached or written.

Use "-" to read the definition from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], flags, withLayout, strict)
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVar(&withLayout, "layout", false, "also compute and check the layout")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, input string, flags layoutFlags, withLayout, strict bool) error {
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

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	defer runner.Close()

	var warnings []diagram.Warning
	if withLayout {
		opts := pipelineOptions(cfg)
		result, err := runner.ExecuteLayout(ctx, def, opts)
		if err != nil {
			return err
		}
		warnings = result.Report.All()
	} else {
		warnings, err = runner.Validate(ctx, def)
		if err != nil {
			return err
		}
	}

	printWarnings(warnings)
	if strict && len(warnings) > 0 {
		return errors.New(errors.ErrCodeInvalidDefinition, "%d warnings with --strict", len(warnings))
	}

	printSuccess("%s is valid", input)
	printStats(len(def.Shapes), len(def.Connections), len(warnings), false)
	return nil
}

// describeError renders err for the terminal, listing offending ids.
func describeError(err error) string {
	msg := errors.UserMessage(err)
	if subjects := errors.Subjects(err); len(subjects) > 0 {
		msg = fmt.Sprintf("%s (%v)", msg, subjects)
	}
	return msg
}
