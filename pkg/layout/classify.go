package layout

import "flexlay/pkg/style"

// Participation describes how a box sizes itself against its parent.
type Participation int

const (
	// BlockParticipating boxes fill their containing block's content width
	// unless an explicit width is set.
	BlockParticipating Participation = iota
	// ShrinkToFit boxes (absolute/fixed) request only the width their
	// content needs.
	ShrinkToFit
)

// ChildLayoutMode describes how a box lays out its children.
type ChildLayoutMode int

const (
	// FlowChildren stack vertically in normal flow.
	FlowChildren ChildLayoutMode = iota
	// FlexItems are distributed along the row axis by the flex engine.
	FlexItems
)

// Classification is the dual nature of a box: its own participation mode and
// the layout mode it imposes on its children. The two are independent and
// recomputed fresh each pass; nothing is cached on the box.
type Classification struct {
	Participation   Participation
	ChildLayoutMode ChildLayoutMode
}

// Classify derives both modes from a resolved style.
//
// A box's own block/inline nature only governs its relationship to its
// parent, never how its children are laid out: participation depends on
// position alone, and the children's mode depends on inner display alone.
func Classify(s *style.Style) Classification {
	c := Classification{}
	if s.Position == style.PositionAbsolute || s.Position == style.PositionFixed {
		c.Participation = ShrinkToFit
	}
	if s.InnerDisplay == style.InnerFlex {
		c.ChildLayoutMode = FlexItems
	}
	return c
}
