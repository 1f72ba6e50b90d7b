package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flexlay/pkg/layout"
	"flexlay/pkg/observability"
	"flexlay/pkg/treeio"
)

var layoutViewportWidth float64

var layoutCmd = &cobra.Command{
	Use:   "layout [file|-]",
	Short: "Read a box tree (JSON or YAML), run layout, write the geometry mapping as JSON.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, _, err := runLayout(cmd, args)
		if err != nil {
			return err
		}
		return treeio.EncodeResult(os.Stdout, result)
	},
}

func init() {
	layoutCmd.Flags().Float64VarP(&layoutViewportWidth, "viewport-width", "w", 0,
		"viewport width in px for the root containing block (default from config)")
	rootCmd.AddCommand(layoutCmd)
}

// runLayout is shared by the layout and render commands: decode the tree,
// pick the viewport width, run the engine.
func runLayout(cmd *cobra.Command, args []string) (layout.Result, *layoutRun, error) {
	name, in, closeIn, err := openInput(args)
	if err != nil {
		return nil, nil, err
	}
	defer closeIn()

	tree, err := treeio.DecodeFile(name, in)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errDecode, err)
	}

	width := resolveViewportWidth(
		cmd.Flags().Changed("viewport-width"), layoutViewportWidth, cfg.Layout.ViewportWidth)

	log := observability.GetLogger()
	engine := layout.New(
		layout.WithLogger(log),
		layout.WithParallelism(cfg.Layout.Parallelism),
	)
	result, err := engine.Layout(tree, width)
	if err != nil {
		return nil, nil, err
	}
	log.Info("layout finished",
		zap.String("input", name),
		zap.Float64("viewport_width", width),
		zap.Int("boxes", len(result)))
	return result, &layoutRun{tree: tree, viewportWidth: width}, nil
}

// resolveViewportWidth prefers a flag the user actually set, even when the
// value is 0 (an explicit zero viewport surfaces as a containing-block error
// from the engine instead of silently using the config value).
func resolveViewportWidth(flagSet bool, flagValue, configValue float64) float64 {
	if flagSet {
		return flagValue
	}
	return configValue
}
