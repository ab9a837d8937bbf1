package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/placard/pkg/config"
	"github.com/matzehuels/placard/pkg/diagram"
	pio "github.com/matzehuels/placard/pkg/io"
)

// layoutFlags are the engine overrides shared by validate, layout, render
// and review. Zero values keep the config file's settings.
type layoutFlags struct {
	canvas    string
	fontFloor int
	noShadow  bool
	input     string
}

func (f *layoutFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.canvas, "canvas", "", "force a canvas preset: standard, widescreen")
	cmd.Flags().IntVar(&f.fontFloor, "font-floor", 0, "smallest legible font size in hundredths of a point")
	cmd.Flags().BoolVar(&f.noShadow, "no-shadow", false, "disable shape shadows")
	cmd.Flags().StringVar(&f.input, "input", "", "definition format when reading stdin: json, yaml, toml")
}

// apply writes the set flags into cfg and revalidates it.
func (f *layoutFlags) apply(cfg *config.Config) error {
	if f.canvas != "" {
		cfg.Layout.Canvas = f.canvas
	}
	if f.fontFloor > 0 {
		cfg.Layout.FontFloor = f.fontFloor
	}
	if f.noShadow {
		cfg.Layout.NoShadow = true
	}
	return config.Validate(cfg)
}

// cacheFlags control cache use for a single command.
type cacheFlags struct {
	noCache bool
	refresh bool
}

func (f *cacheFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results and recompute")
}

// readDefinition loads path, or stdin when path is "-".
func readDefinition(path, input string) (*diagram.Definition, error) {
	if path != "-" {
		return pio.ReadDefinition(path)
	}
	if input == "" {
		input = string(pio.FormatJSON)
	}
	f, err := pio.ParseFormat(input)
	if err != nil {
		return nil, err
	}
	return pio.Read(os.Stdin, f)
}
