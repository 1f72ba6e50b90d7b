// Package render rasterizes computed layout geometry for debugging. It draws
// each box as a translucent filled rectangle with an outline and its id, so
// a layout run can be inspected visually without a browser.
package render

import (
	"github.com/fogleman/gg"

	"flexlay/pkg/boxtree"
)

// Renderer draws a laid-out tree into a gg raster context.
type Renderer struct {
	context *gg.Context
	scale   float64
}

// depth-cycled fill shades, light to dark.
var fills = [][3]float64{
	{0.93, 0.94, 0.97},
	{0.80, 0.87, 0.95},
	{0.70, 0.82, 0.90},
	{0.62, 0.76, 0.85},
}

func NewRenderer(width, height int, scale float64) *Renderer {
	if scale <= 0 {
		scale = 1
	}
	return &Renderer{context: gg.NewContext(width, height), scale: scale}
}

// Render paints the whole tree. Geometry is parent-relative, so absolute
// positions are accumulated on the way down.
func (r *Renderer) Render(tree *boxtree.Tree) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()
	if tree == nil || tree.Root == nil {
		return
	}
	r.drawBox(tree.Root, 0, 0, 0)
}

func (r *Renderer) drawBox(b *boxtree.Box, originX, originY float64, depth int) {
	x := (originX + b.Geometry.X) * r.scale
	y := (originY + b.Geometry.Y) * r.scale
	w := b.Geometry.Width * r.scale
	h := b.Geometry.Height * r.scale

	fill := fills[depth%len(fills)]
	r.context.SetRGBA(fill[0], fill[1], fill[2], 0.85)
	r.context.DrawRectangle(x, y, w, h)
	r.context.Fill()

	r.context.SetRGB(0.25, 0.25, 0.3)
	r.context.SetLineWidth(1)
	r.context.DrawRectangle(x, y, w, h)
	r.context.Stroke()

	if w > 30 && h > 12 {
		r.context.DrawStringAnchored(b.ID, x+3, y+3, 0, 1)
	}

	for _, child := range b.Children {
		r.drawBox(child, originX+b.Geometry.X, originY+b.Geometry.Y, depth+1)
	}
}

// SavePNG writes the rendered image to path.
func (r *Renderer) SavePNG(path string) error {
	return r.context.SavePNG(path)
}
