// Package treeio reads serialized box trees and writes layout results.
//
// The exchange form is a nested record per box: id, style (all fields
// optional, defaulted), ordered children, and an optional pre-measured
// intrinsic content size for leaves. JSON is the primary format; YAML is
// accepted for files with a .yaml/.yml extension.
package treeio

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"flexlay/pkg/boxtree"
	"flexlay/pkg/layout"
	"flexlay/pkg/style"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SizeSpec mirrors boxtree.Size in the exchange form.
type SizeSpec struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// StyleSpec is the wire form of a resolved style. Nil/empty fields take the
// documented defaults; lengths are px numbers and "auto" is expressed by
// omission. Value errors (negative grow, negative lengths) are not rejected
// here: they surface as layout.ErrInvalidStyleValue with the box id attached.
type StyleSpec struct {
	OuterDisplay string `json:"outerDisplay,omitempty" yaml:"outerDisplay,omitempty"`
	InnerDisplay string `json:"innerDisplay,omitempty" yaml:"innerDisplay,omitempty"`
	Position     string `json:"position,omitempty" yaml:"position,omitempty"`

	Width  *float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height *float64 `json:"height,omitempty" yaml:"height,omitempty"`

	Top    *float64 `json:"top,omitempty" yaml:"top,omitempty"`
	Right  *float64 `json:"right,omitempty" yaml:"right,omitempty"`
	Bottom *float64 `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Left   *float64 `json:"left,omitempty" yaml:"left,omitempty"`

	FlexGrow   *float64 `json:"flexGrow,omitempty" yaml:"flexGrow,omitempty"`
	FlexShrink *float64 `json:"flexShrink,omitempty" yaml:"flexShrink,omitempty"`
	FlexBasis  *float64 `json:"flexBasis,omitempty" yaml:"flexBasis,omitempty"`

	JustifyContent string   `json:"justifyContent,omitempty" yaml:"justifyContent,omitempty"`
	AlignItems     string   `json:"alignItems,omitempty" yaml:"alignItems,omitempty"`
	Gap            *float64 `json:"gap,omitempty" yaml:"gap,omitempty"`
}

// BoxSpec is the wire form of one box.
type BoxSpec struct {
	ID                   string    `json:"id,omitempty" yaml:"id,omitempty"`
	Style                StyleSpec `json:"style" yaml:"style"`
	Children             []BoxSpec `json:"children,omitempty" yaml:"children,omitempty"`
	IntrinsicContentSize *SizeSpec `json:"intrinsicContentSize,omitempty" yaml:"intrinsicContentSize,omitempty"`
}

// DecodeJSON reads a JSON box tree.
func DecodeJSON(r io.Reader) (*boxtree.Tree, error) {
	var spec BoxSpec
	if err := json.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode tree json: %w", err)
	}
	return buildTree(spec)
}

// DecodeYAML reads a YAML box tree.
func DecodeYAML(r io.Reader) (*boxtree.Tree, error) {
	var spec BoxSpec
	if err := yaml.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode tree yaml: %w", err)
	}
	return buildTree(spec)
}

// DecodeFile picks the decoder from the file name: .yaml/.yml is YAML,
// anything else (including "-" for stdin) is JSON.
func DecodeFile(name string, r io.Reader) (*boxtree.Tree, error) {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return DecodeYAML(r)
	}
	return DecodeJSON(r)
}

func buildTree(spec BoxSpec) (*boxtree.Tree, error) {
	root, err := buildBox(spec)
	if err != nil {
		return nil, err
	}
	return boxtree.New(root), nil
}

func buildBox(spec BoxSpec) (*boxtree.Box, error) {
	s, err := buildStyle(spec.Style)
	if err != nil {
		return nil, fmt.Errorf("box %q: %w", spec.ID, err)
	}
	b := boxtree.NewBox(spec.ID, s)
	if spec.IntrinsicContentSize != nil {
		b.IntrinsicSize = &boxtree.Size{
			Width:  spec.IntrinsicContentSize.Width,
			Height: spec.IntrinsicContentSize.Height,
		}
	}
	for _, childSpec := range spec.Children {
		child, err := buildBox(childSpec)
		if err != nil {
			return nil, err
		}
		b.AddChild(child)
	}
	return b, nil
}

func buildStyle(spec StyleSpec) (*style.Style, error) {
	s := style.NewStyle()

	switch spec.OuterDisplay {
	case "", "block":
	case "inline":
		s.OuterDisplay = style.OuterInline
	default:
		return nil, fmt.Errorf("unknown outerDisplay %q", spec.OuterDisplay)
	}
	switch spec.InnerDisplay {
	case "", "flow":
	case "flex":
		s.InnerDisplay = style.InnerFlex
	default:
		return nil, fmt.Errorf("unknown innerDisplay %q", spec.InnerDisplay)
	}
	switch spec.Position {
	case "", "static":
	case "relative":
		s.Position = style.PositionRelative
	case "absolute":
		s.Position = style.PositionAbsolute
	case "fixed":
		s.Position = style.PositionFixed
	default:
		return nil, fmt.Errorf("unknown position %q", spec.Position)
	}
	switch spec.JustifyContent {
	case "", "flex-start":
	case "flex-end":
		s.JustifyContent = style.JustifyFlexEnd
	case "center":
		s.JustifyContent = style.JustifyCenter
	case "space-between":
		s.JustifyContent = style.JustifySpaceBetween
	case "space-around":
		s.JustifyContent = style.JustifySpaceAround
	case "space-evenly":
		s.JustifyContent = style.JustifySpaceEvenly
	default:
		return nil, fmt.Errorf("unknown justifyContent %q", spec.JustifyContent)
	}
	switch spec.AlignItems {
	case "", "stretch":
	case "flex-start":
		s.AlignItems = style.AlignFlexStart
	case "flex-end":
		s.AlignItems = style.AlignFlexEnd
	case "center":
		s.AlignItems = style.AlignCenter
	default:
		return nil, fmt.Errorf("unknown alignItems %q", spec.AlignItems)
	}

	s.Width = dim(spec.Width)
	s.Height = dim(spec.Height)
	s.Top = dim(spec.Top)
	s.Right = dim(spec.Right)
	s.Bottom = dim(spec.Bottom)
	s.Left = dim(spec.Left)
	s.FlexBasis = dim(spec.FlexBasis)
	if spec.FlexGrow != nil {
		s.FlexGrow = *spec.FlexGrow
	}
	if spec.FlexShrink != nil {
		s.FlexShrink = *spec.FlexShrink
	}
	if spec.Gap != nil {
		s.Gap = *spec.Gap
	}
	return s, nil
}

func dim(v *float64) style.Dimension {
	if v == nil {
		return style.AutoDim()
	}
	return style.Px(*v)
}

// GeometryOut is the wire form of a computed geometry.
type GeometryOut struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// EncodeResult writes the id -> geometry mapping as JSON. Map keys are
// emitted in sorted order, so equal results serialize identically.
func EncodeResult(w io.Writer, result layout.Result) error {
	out := make(map[string]GeometryOut, len(result))
	for id, g := range result {
		out[id] = GeometryOut{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode layout result: %w", err)
	}
	return nil
}
