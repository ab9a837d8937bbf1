package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/placard/pkg/pipeline"
)

// artifactExt maps an output format to its file suffix. JSON and topology
// get a compound suffix so they never overwrite a .json definition or the
// diagram SVG.
var artifactExt = map[string]string{
	pipeline.FormatSVG:      ".svg",
	pipeline.FormatJSON:     ".layout.json",
	pipeline.FormatPNG:      ".png",
	pipeline.FormatPDF:      ".pdf",
	pipeline.FormatDOT:      ".dot",
	pipeline.FormatTopology: ".topology.svg",
}

// artifactPath joins base and the suffix for format.
func artifactPath(base, format string) string {
	return base + artifactExt[format]
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formats    string
		flags      layoutFlags
		cf         cacheFlags
		grid       bool
		detailed   bool
		iconDir    string
		iconURL    string
		scale      float64
		failOnWarn bool
	)

	cmd := &cobra.Command{
		Use:   "render [definition]",
		Short: "Render a diagram definition to SVG, JSON, PNG or PDF",
		Long: `Render a diagram definition.

Every SVG and JSON artifact is parsed back and checked against the layout
before it is written. PNG and PDF are converted from the checked SVG and need
rsvg-convert on PATH. The dot and topology formats preview the connection
graph with Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := parseFormats(formats)
			if err := pipeline.ValidateFormats(fs); err != nil {
				return err
			}
			opts := pipeline.Options{
				Formats:  fs,
				Grid:     grid,
				Detailed: detailed,
				IconDir:  iconDir,
				IconURL:  iconURL,
				Scale:    scale,
				Refresh:  cf.refresh,
			}
			return c.runRender(cmd.Context(), args[0], output, opts, flags, cf.noCache, failOnWarn)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input path without extension)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot, topology (comma-separated)")
	cmd.Flags().BoolVar(&grid, "grid", false, "draw a debug grid under the diagram")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show shape ids in topology previews")
	cmd.Flags().StringVar(&iconDir, "icons", "", "directory of <icon>.svg or <icon>.png files")
	cmd.Flags().StringVar(&iconURL, "icon-url", "", "base URL serving <icon>.svg or <icon>.png (fetched icons are cached)")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&failOnWarn, "fail-on-warning", false, "exit non-zero when any stage reports warnings")
	flags.bind(cmd)
	cf.bind(cmd)

	return cmd
}

// runRender runs the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, flags layoutFlags, noCache, failOnWarn bool) error {
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

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	base := pipelineOptions(cfg)
	opts.Layout = base.Layout
	opts.Verify = base.Verify
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, def, opts)
	if err != nil {
		spinner.StopWithError("Render failed: " + describeError(err))
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	prefix := outputBase(output, input)
	if input == "-" && output == "" {
		prefix = "diagram"
	}
	if dir := filepath.Dir(prefix); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	paths := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		path := artifactPath(prefix, format)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		c.Logger.Debug("wrote artifact", "format", format, "path", path, "bytes", len(result.Artifacts[format]))
		paths = append(paths, path)
	}
	prog.done("Rendered", "run", result.RunID, "formats", len(paths))

	printWarnings(result.Report.All())
	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Shapes, result.Stats.Connectors, result.Report.Len(),
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)

	if failOnWarn && result.Report.Len() > 0 {
		return fmt.Errorf("%d warnings with --fail-on-warning", result.Report.Len())
	}
	return nil
}
