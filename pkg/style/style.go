package style

import "fmt"

// Dimension is a resolved length value. Auto means no explicit length was set.
type Dimension struct {
	Auto  bool
	Value float64
}

// Px returns an explicit length dimension.
func Px(v float64) Dimension {
	return Dimension{Value: v}
}

// AutoDim returns the auto dimension.
func AutoDim() Dimension {
	return Dimension{Auto: true}
}

// Resolve returns the explicit value, or fallback when the dimension is auto.
func (d Dimension) Resolve(fallback float64) float64 {
	if d.Auto {
		return fallback
	}
	return d.Value
}

type OuterDisplay int

const (
	OuterBlock OuterDisplay = iota
	OuterInline
)

type InnerDisplay int

const (
	InnerFlow InnerDisplay = iota
	InnerFlex
)

type PositionType int

const (
	PositionStatic PositionType = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
)

type JustifyContent int

const (
	JustifyFlexStart JustifyContent = iota
	JustifyFlexEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

type AlignItems int

const (
	AlignStretch AlignItems = iota
	AlignFlexStart
	AlignFlexEnd
	AlignCenter
)

// Style is the fully resolved property set for one box. There is no cascade
// here: callers hand us final values and NewStyle supplies the defaults.
// Styles are treated as read-only once attached to a box.
type Style struct {
	OuterDisplay OuterDisplay
	InnerDisplay InnerDisplay
	Position     PositionType

	Width  Dimension
	Height Dimension

	Top    Dimension
	Right  Dimension
	Bottom Dimension
	Left   Dimension

	FlexGrow   float64
	FlexShrink float64
	FlexBasis  Dimension

	JustifyContent JustifyContent
	AlignItems     AlignItems
	Gap            float64
}

// NewStyle returns a style with every property at its documented default:
// block/flow display, static position, auto sizes and offsets, grow 0,
// shrink 1, basis auto, justify flex-start, align stretch, gap 0.
func NewStyle() *Style {
	return &Style{
		Width:      AutoDim(),
		Height:     AutoDim(),
		Top:        AutoDim(),
		Right:      AutoDim(),
		Bottom:     AutoDim(),
		Left:       AutoDim(),
		FlexShrink: 1,
		FlexBasis:  AutoDim(),
	}
}

// IsPositioned returns true if the box is taken out of normal flow.
func (s *Style) IsPositioned() bool {
	return s.Position == PositionAbsolute || s.Position == PositionFixed
}

// Validate rejects values that indicate an authoring mistake. Negative
// grow/shrink/gap and negative explicit sizes are errors, not clamped.
// The box offsets (top/right/bottom/left) are exempt: they place a box
// rather than size it, and negative offsets are legitimate there.
func (s *Style) Validate() error {
	if s.FlexGrow < 0 {
		return fmt.Errorf("flex-grow must be >= 0, got %v", s.FlexGrow)
	}
	if s.FlexShrink < 0 {
		return fmt.Errorf("flex-shrink must be >= 0, got %v", s.FlexShrink)
	}
	if s.Gap < 0 {
		return fmt.Errorf("gap must be >= 0, got %v", s.Gap)
	}
	for _, d := range []struct {
		name string
		dim  Dimension
	}{
		{"width", s.Width},
		{"height", s.Height},
		{"flex-basis", s.FlexBasis},
	} {
		if !d.dim.Auto && d.dim.Value < 0 {
			return fmt.Errorf("%s must be >= 0, got %v", d.name, d.dim.Value)
		}
	}
	return nil
}

func (p PositionType) String() string {
	switch p {
	case PositionRelative:
		return "relative"
	case PositionAbsolute:
		return "absolute"
	case PositionFixed:
		return "fixed"
	default:
		return "static"
	}
}

func (j JustifyContent) String() string {
	switch j {
	case JustifyFlexEnd:
		return "flex-end"
	case JustifyCenter:
		return "center"
	case JustifySpaceBetween:
		return "space-between"
	case JustifySpaceAround:
		return "space-around"
	case JustifySpaceEvenly:
		return "space-evenly"
	default:
		return "flex-start"
	}
}
