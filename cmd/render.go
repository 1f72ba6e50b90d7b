package cmd

import (
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flexlay/pkg/boxtree"
	"flexlay/pkg/observability"
	"flexlay/pkg/render"
)

type layoutRun struct {
	tree          *boxtree.Tree
	viewportWidth float64
}

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Run layout and draw the computed boxes to a PNG for inspection.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, run, err := runLayout(cmd, args)
		if err != nil {
			return err
		}

		scale := cfg.Render.Scale
		if scale <= 0 {
			scale = 1
		}
		height := cfg.Render.Height
		if height <= 0 {
			height = run.tree.Root.Geometry.Height
		}
		if height <= 0 {
			height = 1
		}

		w := int(math.Ceil(run.viewportWidth * scale))
		h := int(math.Ceil(height * scale))
		if w < 1 {
			w = 1
		}
		r := render.NewRenderer(w, h, scale)
		r.Render(run.tree)
		if err := r.SavePNG(renderOutput); err != nil {
			return err
		}
		observability.GetLogger().Info("rendered layout",
			zap.String("output", renderOutput),
			zap.Int("width", w),
			zap.Int("height", h))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "layout.png", "output PNG path")
	renderCmd.Flags().Float64VarP(&layoutViewportWidth, "viewport-width", "w", 0,
		"viewport width in px for the root containing block (default from config)")
	rootCmd.AddCommand(renderCmd)
}
