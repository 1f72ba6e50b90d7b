package boxtree

import (
	"fmt"

	"github.com/google/uuid"

	"flexlay/pkg/style"
)

// Size is an externally measured intrinsic content size for a leaf box.
// Text shaping and image decoding happen outside this module; all we see
// is the resulting scalar pair.
type Size struct {
	Width  float64
	Height float64
}

// Geometry is the computed output for one box, relative to the content-box
// origin of its containing block. It is undefined before layout and written
// exactly once per layout pass.
type Geometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Box is a node in the layout tree. Every box except the root is owned by
// exactly one parent. Child order is document order and determines main-axis
// placement order.
type Box struct {
	ID       string
	Style    *style.Style
	Children []*Box
	Parent   *Box

	// IntrinsicSize is the pre-measured content size for leaves; nil when
	// the box has no intrinsic content.
	IntrinsicSize *Size

	// Geometry is populated by the layout engine only.
	Geometry Geometry
}

// NewBox creates a box with the given style. An empty id gets a generated
// UUID so every box in a tree is addressable in the result mapping.
func NewBox(id string, s *style.Style) *Box {
	if id == "" {
		id = uuid.NewString()
	}
	if s == nil {
		s = style.NewStyle()
	}
	return &Box{ID: id, Style: s}
}

// AddChild appends child to the box's children and sets the parent link.
func (b *Box) AddChild(child *Box) {
	child.Parent = b
	b.Children = append(b.Children, child)
}

// Tree owns a box hierarchy. The root is owned by the caller.
type Tree struct {
	Root *Box
}

func New(root *Box) *Tree {
	return &Tree{Root: root}
}

// Walk visits every box in document order, parents before children.
func (t *Tree) Walk(fn func(*Box)) {
	var visit func(*Box)
	visit = func(b *Box) {
		fn(b)
		for _, c := range b.Children {
			visit(c)
		}
	}
	if t.Root != nil {
		visit(t.Root)
	}
}

// Validate checks the structural invariants: a single parentless root, every
// box reachable exactly once, parent links consistent with child lists, and
// unique ids. A violation reports the offending box id.
func (t *Tree) Validate() error {
	if t.Root == nil {
		return fmt.Errorf("tree has no root")
	}
	if t.Root.Parent != nil {
		return fmt.Errorf("box %s: root must not have a parent", t.Root.ID)
	}

	seen := make(map[*Box]bool)
	ids := make(map[string]bool)
	var visit func(*Box) error
	visit = func(b *Box) error {
		if seen[b] {
			return fmt.Errorf("box %s: appears more than once in the tree", b.ID)
		}
		seen[b] = true
		if ids[b.ID] {
			return fmt.Errorf("box %s: duplicate id", b.ID)
		}
		ids[b.ID] = true
		for _, c := range b.Children {
			if c == nil {
				return fmt.Errorf("box %s: nil child", b.ID)
			}
			if c.Parent != b {
				return fmt.Errorf("box %s: parent link does not match owner %s", c.ID, b.ID)
			}
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(t.Root)
}
