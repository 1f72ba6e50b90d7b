package layout

import (
	"go.uber.org/zap"

	"flexlay/pkg/boxtree"
	"flexlay/pkg/style"
)

// Result maps box id to its computed geometry.
type Result map[string]boxtree.Geometry

// Engine runs the two-pass layout: a bottom-up measure pass that computes
// every box's shrink-to-fit content size, then a top-down place pass that
// distributes flex space and writes final geometry. Engines are stateless
// between Layout calls and safe for concurrent use.
type Engine struct {
	log         *zap.Logger
	parallelism int
}

type Option func(*Engine)

// WithLogger attaches a structured logger. The default is a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithParallelism allows up to n sibling subtrees to be measured
// concurrently. Each container's distribute step is the join barrier, so no
// box is ever written by more than one goroutine. n <= 1 keeps the pass
// fully sequential.
func WithParallelism(n int) Option {
	return func(e *Engine) { e.parallelism = n }
}

func New(opts ...Option) *Engine {
	e := &Engine{log: zap.NewNop(), parallelism: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Layout computes geometry for every box in the tree against the given
// viewport width. The tree and styles are read-only inputs; only each box's
// geometry slot is written. Any error aborts the pass with no geometry
// reported. Running Layout twice on an unmodified tree yields identical
// results.
func (e *Engine) Layout(tree *boxtree.Tree, viewportWidth float64) (Result, error) {
	if tree == nil || tree.Root == nil {
		return nil, newError(ErrMalformedTree, "", "tree has no root")
	}
	if err := tree.Validate(); err != nil {
		return nil, newError(ErrMalformedTree, "", "%v", err)
	}
	if err := validateStyles(tree); err != nil {
		return nil, err
	}
	if viewportWidth < 0 {
		return nil, newError(ErrMissingContainingBlock, tree.Root.ID,
			"viewport width must not be negative, got %v", viewportWidth)
	}

	// Geometry is per-pass output; clear any previous run first.
	tree.Walk(func(b *boxtree.Box) { b.Geometry = boxtree.Geometry{} })

	p := newPass(e.parallelism)
	p.measure(tree.Root)

	root := tree.Root
	defined := viewportWidth > 0
	w, err := p.resolveAvailableWidth(root, viewportWidth, defined)
	if err != nil {
		return nil, err
	}
	root.Geometry.Width = w
	if err := p.place(root, w); err != nil {
		return nil, err
	}
	applyRelativeOffset(root)

	result := make(Result)
	tree.Walk(func(b *boxtree.Box) { result[b.ID] = b.Geometry })
	e.log.Debug("layout complete",
		zap.Float64("viewport_width", viewportWidth),
		zap.Int("boxes", len(result)))
	return result, nil
}

func validateStyles(tree *boxtree.Tree) error {
	var firstErr error
	tree.Walk(func(b *boxtree.Box) {
		if firstErr != nil {
			return
		}
		if b.Style == nil {
			firstErr = newError(ErrInvalidStyleValue, b.ID, "box has no style")
			return
		}
		if err := b.Style.Validate(); err != nil {
			firstErr = newError(ErrInvalidStyleValue, b.ID, "%v", err)
		}
	})
	return firstErr
}

// place lays out b's children inside a content box of the given width and
// resolves b's own height. b's width, x and y are the parent's
// responsibility and are already set.
func (p *pass) place(b *boxtree.Box, contentWidth float64) error {
	if Classify(b.Style).ChildLayoutMode == FlexItems && len(inFlowChildren(b)) > 0 {
		return p.placeFlex(b, contentWidth)
	}
	return p.placeFlow(b, contentWidth)
}

// placeFlow stacks in-flow children vertically at x=0, each filling the
// content width unless explicitly sized.
func (p *pass) placeFlow(b *boxtree.Box, contentWidth float64) error {
	inflow := inFlowChildren(b)
	cursor := 0.0
	for _, child := range inflow {
		w, err := p.resolveAvailableWidth(child, contentWidth, true)
		if err != nil {
			return err
		}
		child.Geometry.X = 0
		child.Geometry.Y = cursor
		child.Geometry.Width = w
		if err := p.place(child, w); err != nil {
			return err
		}
		cursor += child.Geometry.Height
		applyRelativeOffset(child)
	}

	switch {
	case !b.Style.Height.Auto:
		b.Geometry.Height = b.Style.Height.Value
	case len(inflow) == 0 && b.IntrinsicSize != nil:
		b.Geometry.Height = b.IntrinsicSize.Height
	default:
		b.Geometry.Height = cursor
	}
	return p.placeOutOfFlow(b, contentWidth)
}

// placeFlex runs the main-axis engine over the in-flow children, then
// recurses into each item with its now-final width as that subtree's
// containing block.
func (p *pass) placeFlex(b *boxtree.Box, contentWidth float64) error {
	inflow := inFlowChildren(b)
	items := make([]flexItem, len(inflow))
	for i, c := range inflow {
		items[i] = flexItem{
			grow:   c.Style.FlexGrow,
			shrink: c.Style.FlexShrink,
			base:   p.flexBase(c),
		}
	}
	items = layoutMainAxis(contentWidth, items, b.Style.Gap, b.Style.JustifyContent)

	// Container content height: explicit, else the tallest item.
	h := 0.0
	if !b.Style.Height.Auto {
		h = b.Style.Height.Value
	} else {
		for _, c := range inflow {
			if ch := p.sizeOf(c).Height; ch > h {
				h = ch
			}
		}
	}

	for i, c := range inflow {
		c.Geometry.X = items[i].offset
		c.Geometry.Width = items[i].size
		if err := p.place(c, items[i].size); err != nil {
			return err
		}
		// Cross axis is stretch-default only: auto-height items fill the
		// line, the other alignments just offset the measured height.
		if c.Style.Height.Auto && b.Style.AlignItems == style.AlignStretch {
			c.Geometry.Height = h
		}
		c.Geometry.Y = crossOffset(b.Style.AlignItems, h, c.Geometry.Height)
		applyRelativeOffset(c)
	}
	b.Geometry.Height = h
	return p.placeOutOfFlow(b, contentWidth)
}

// placeOutOfFlow positions absolutely/fixed positioned children against the
// container's content box, after in-flow layout has settled the container's
// height.
func (p *pass) placeOutOfFlow(b *boxtree.Box, contentWidth float64) error {
	for _, c := range b.Children {
		if !c.Style.IsPositioned() {
			continue
		}
		w, err := p.resolveAvailableWidth(c, contentWidth, true)
		if err != nil {
			return err
		}
		c.Geometry.Width = w
		if err := p.place(c, w); err != nil {
			return err
		}

		switch {
		case !c.Style.Left.Auto:
			c.Geometry.X = c.Style.Left.Value
		case !c.Style.Right.Auto:
			c.Geometry.X = contentWidth - c.Style.Right.Value - w
		default:
			c.Geometry.X = 0
		}
		switch {
		case !c.Style.Top.Auto:
			c.Geometry.Y = c.Style.Top.Value
		case !c.Style.Bottom.Auto:
			c.Geometry.Y = b.Geometry.Height - c.Style.Bottom.Value - c.Geometry.Height
		default:
			c.Geometry.Y = 0
		}
	}
	return nil
}

func crossOffset(align style.AlignItems, containerHeight, itemHeight float64) float64 {
	switch align {
	case style.AlignFlexEnd:
		return containerHeight - itemHeight
	case style.AlignCenter:
		return (containerHeight - itemHeight) / 2
	default:
		return 0
	}
}

// applyRelativeOffset shifts a relatively positioned box by its offsets
// without affecting siblings. The opposing side is used only when the
// primary side is auto.
func applyRelativeOffset(b *boxtree.Box) {
	if b.Style.Position != style.PositionRelative {
		return
	}
	if !b.Style.Left.Auto {
		b.Geometry.X += b.Style.Left.Value
	} else if !b.Style.Right.Auto {
		b.Geometry.X -= b.Style.Right.Value
	}
	if !b.Style.Top.Auto {
		b.Geometry.Y += b.Style.Top.Value
	} else if !b.Style.Bottom.Auto {
		b.Geometry.Y -= b.Style.Bottom.Value
	}
}
