package layout

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"flexlay/pkg/boxtree"
	"flexlay/pkg/style"
)

// pass holds the per-invocation state of one layout computation. A fresh
// pass is built for every Layout call; nothing is carried over between runs.
type pass struct {
	parallelism int

	mu    sync.Mutex
	sizes map[*boxtree.Box]boxtree.Size
}

func newPass(parallelism int) *pass {
	if parallelism < 1 {
		parallelism = 1
	}
	return &pass{
		parallelism: parallelism,
		sizes:       make(map[*boxtree.Box]boxtree.Size),
	}
}

// sizeOf returns the measured content size recorded for b. Only valid after
// the measure pass has visited b.
func (p *pass) sizeOf(b *boxtree.Box) boxtree.Size {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sizes[b]
}

func (p *pass) record(b *boxtree.Box, s boxtree.Size) {
	p.mu.Lock()
	p.sizes[b] = s
	p.mu.Unlock()
}

// measure computes b's shrink-to-fit content size, bottom-up. Children are
// measured before their parent aggregates them; sibling subtrees have no
// data dependency on each other, so they may be measured as a fork-join when
// parallelism allows it.
func (p *pass) measure(b *boxtree.Box) boxtree.Size {
	if p.parallelism > 1 && len(b.Children) > 1 {
		g := &errgroup.Group{}
		g.SetLimit(p.parallelism)
		for _, child := range b.Children {
			child := child
			g.Go(func() error {
				p.measure(child)
				return nil
			})
		}
		g.Wait() //nolint:errcheck // measurement never fails
	} else {
		for _, child := range b.Children {
			p.measure(child)
		}
	}

	size := boxtree.Size{
		Width:  p.measuredWidth(b),
		Height: p.measuredHeight(b),
	}
	p.record(b, size)
	return size
}

// measuredWidth is the width b would take as an independent box: an explicit
// width wins, leaves fall back to their intrinsic content size, and
// containers aggregate their in-flow children.
func (p *pass) measuredWidth(b *boxtree.Box) float64 {
	if !b.Style.Width.Auto {
		return b.Style.Width.Value
	}
	inflow := inFlowChildren(b)
	if len(inflow) == 0 {
		if b.IntrinsicSize != nil {
			return b.IntrinsicSize.Width
		}
		return 0
	}
	if Classify(b.Style).ChildLayoutMode == FlexItems {
		// Row container: items sit side by side, so the max-content width
		// is the sum of their base sizes plus the explicit gaps.
		w := b.Style.Gap * float64(len(inflow)-1)
		for _, c := range inflow {
			w += p.flexBase(c)
		}
		return w
	}
	// Flow: children stack vertically, the widest one wins.
	w := 0.0
	for _, c := range inflow {
		if cw := p.sizeOf(c).Width; cw > w {
			w = cw
		}
	}
	return w
}

func (p *pass) measuredHeight(b *boxtree.Box) float64 {
	if !b.Style.Height.Auto {
		return b.Style.Height.Value
	}
	inflow := inFlowChildren(b)
	if len(inflow) == 0 {
		if b.IntrinsicSize != nil {
			return b.IntrinsicSize.Height
		}
		return 0
	}
	if Classify(b.Style).ChildLayoutMode == FlexItems {
		// Single row line: the tallest item sets the line height.
		h := 0.0
		for _, c := range inflow {
			if ch := p.sizeOf(c).Height; ch > h {
				h = ch
			}
		}
		return h
	}
	h := 0.0
	for _, c := range inflow {
		h += p.sizeOf(c).Height
	}
	return h
}

// flexBase is a flex item's base size: flex-basis when it is a length,
// otherwise the item's measured width (which already honors an explicit
// width).
func (p *pass) flexBase(b *boxtree.Box) float64 {
	if !b.Style.FlexBasis.Auto {
		return b.Style.FlexBasis.Value
	}
	return p.sizeOf(b).Width
}

// inFlowChildren filters out absolutely positioned children; they neither
// participate in flex distribution nor contribute to aggregate measurement.
func inFlowChildren(b *boxtree.Box) []*boxtree.Box {
	out := make([]*boxtree.Box, 0, len(b.Children))
	for _, c := range b.Children {
		if c.Style.Position == style.PositionAbsolute || c.Style.Position == style.PositionFixed {
			continue
		}
		out = append(out, c)
	}
	return out
}
