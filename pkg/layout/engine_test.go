package layout

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"flexlay/pkg/boxtree"
	"flexlay/pkg/style"
)

func leaf(id string, w, h float64) *boxtree.Box {
	b := boxtree.NewBox(id, style.NewStyle())
	b.IntrinsicSize = &boxtree.Size{Width: w, Height: h}
	return b
}

func flexContainer(id string, mutate func(*style.Style)) *boxtree.Box {
	s := style.NewStyle()
	s.InnerDisplay = style.InnerFlex
	if mutate != nil {
		mutate(s)
	}
	return boxtree.NewBox(id, s)
}

func TestLayout_BlockAutoWidthFillsParent(t *testing.T) {
	root := boxtree.NewBox("root", style.NewStyle())
	child := boxtree.NewBox("child", style.NewStyle())
	grandchild := boxtree.NewBox("grandchild", style.NewStyle())
	root.AddChild(child)
	child.AddChild(grandchild)

	result, err := New().Layout(boxtree.New(root), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range []string{"root", "child", "grandchild"} {
		if got := result[id].Width; got != 800 {
			t.Errorf("%s width = %v, want 800 (auto width fills the containing block)", id, got)
		}
	}
}

func TestLayout_ExplicitWidthWinsOverBlockDefault(t *testing.T) {
	root := boxtree.NewBox("root", style.NewStyle())
	s := style.NewStyle()
	s.Width = style.Px(300)
	child := boxtree.NewBox("child", s)
	root.AddChild(child)

	result, err := New().Layout(boxtree.New(root), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["child"].Width != 300 {
		t.Errorf("explicit width should win, got %v", result["child"].Width)
	}
}

func TestLayout_MissingViewportWidth(t *testing.T) {
	root := boxtree.NewBox("root", style.NewStyle())

	_, err := New().Layout(boxtree.New(root), 0)
	if !errors.Is(err, ErrMissingContainingBlock) {
		t.Fatalf("expected ErrMissingContainingBlock, got %v", err)
	}
	var lerr *Error
	if !errors.As(err, &lerr) || lerr.BoxID != "root" {
		t.Errorf("error should name the root box, got %v", err)
	}
}

func TestLayout_RootWithExplicitWidthNeedsNoViewport(t *testing.T) {
	s := style.NewStyle()
	s.Width = style.Px(640)
	root := boxtree.NewBox("root", s)

	result, err := New().Layout(boxtree.New(root), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["root"].Width != 640 {
		t.Errorf("root width = %v, want 640", result["root"].Width)
	}
}

func TestLayout_InvalidStyleAbortsWholePass(t *testing.T) {
	root := boxtree.NewBox("root", style.NewStyle())
	good := leaf("good", 50, 10)
	bad := boxtree.NewBox("bad", style.NewStyle())
	bad.Style.FlexGrow = -2
	root.AddChild(good)
	root.AddChild(bad)

	result, err := New().Layout(boxtree.New(root), 800)
	if !errors.Is(err, ErrInvalidStyleValue) {
		t.Fatalf("expected ErrInvalidStyleValue, got %v", err)
	}
	if result != nil {
		t.Error("a failed pass must not report partial geometry")
	}
	var lerr *Error
	if !errors.As(err, &lerr) || lerr.BoxID != "bad" {
		t.Errorf("error should name the offending box, got %v", err)
	}
}

func TestLayout_MalformedTreeRejected(t *testing.T) {
	root := boxtree.NewBox("root", style.NewStyle())
	child := boxtree.NewBox("child", style.NewStyle())
	root.AddChild(child)
	root.Children = append(root.Children, child) // duplicate

	_, err := New().Layout(boxtree.New(root), 800)
	if !errors.Is(err, ErrMalformedTree) {
		t.Fatalf("expected ErrMalformedTree, got %v", err)
	}
}

func TestLayout_FlexItemKeepsContentSize(t *testing.T) {
	// flexGrow 0 + flexBasis auto: the item resolves to exactly its measured
	// content size even though justify-content distributes leftover space.
	container := flexContainer("container", func(s *style.Style) {
		s.Width = style.Px(500)
		s.JustifyContent = style.JustifySpaceBetween
	})
	item := leaf("item", 120, 40)
	container.AddChild(item)

	result, err := New().Layout(boxtree.New(container), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["item"].Width != 120 {
		t.Errorf("item width = %v, want exactly its content size 120", result["item"].Width)
	}
	// Single item under space-between sits flush at the start.
	if result["item"].X != 0 {
		t.Errorf("single space-between item should be at x=0, got %v", result["item"].X)
	}
}

func TestLayout_SingleItemSpaceAroundCenters(t *testing.T) {
	container := flexContainer("container", func(s *style.Style) {
		s.Width = style.Px(500)
		s.JustifyContent = style.JustifySpaceAround
	})
	item := leaf("item", 100, 40)
	container.AddChild(item)

	result, err := New().Layout(boxtree.New(container), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result["item"].X; got != 200 {
		t.Errorf("item x = %v, want 200 (equal leading/trailing space)", got)
	}
}

func TestLayout_WorkedSpaceBetweenExample(t *testing.T) {
	container := flexContainer("container", func(s *style.Style) {
		s.Width = style.Px(500)
		s.Gap = 20
		s.JustifyContent = style.JustifySpaceBetween
	})
	for _, id := range []string{"a", "b", "c"} {
		container.AddChild(leaf(id, 100, 30))
	}

	result, err := New().Layout(boxtree.New(container), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantX := map[string]float64{"a": 0, "b": 200, "c": 400}
	for id, want := range wantX {
		if got := result[id]; got.X != want || got.Width != 100 {
			t.Errorf("%s = {x:%v w:%v}, want {x:%v w:100}", id, got.X, got.Width, want)
		}
	}
}

func TestLayout_FlexItemWidthNotBlockDefault(t *testing.T) {
	// A block-level child of a flex container must not expand to 100% of
	// the container; its size routes through the flex engine.
	container := flexContainer("container", func(s *style.Style) {
		s.Width = style.Px(600)
	})
	item := boxtree.NewBox("item", style.NewStyle()) // block, auto width
	item.AddChild(leaf("inner", 80, 20))
	container.AddChild(item)

	result, err := New().Layout(boxtree.New(container), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result["item"].Width; got != 80 {
		t.Errorf("flex item width = %v, want its measured content size 80", got)
	}
}

func TestLayout_FlexBasisOverridesContentSize(t *testing.T) {
	container := flexContainer("container", func(s *style.Style) {
		s.Width = style.Px(600)
	})
	s := style.NewStyle()
	s.FlexBasis = style.Px(250)
	item := boxtree.NewBox("item", s)
	item.IntrinsicSize = &boxtree.Size{Width: 80, Height: 20}
	container.AddChild(item)

	result, err := New().Layout(boxtree.New(container), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result["item"].Width; got != 250 {
		t.Errorf("item width = %v, want flex-basis 250", got)
	}
}

func TestLayout_GrowFillsContainer(t *testing.T) {
	container := flexContainer("container", func(s *style.Style) {
		s.Width = style.Px(400)
	})
	grow := boxtree.NewBox("grow", style.NewStyle())
	grow.Style.FlexGrow = 1
	grow.IntrinsicSize = &boxtree.Size{Width: 100, Height: 10}
	rigid := leaf("rigid", 100, 10)
	container.AddChild(grow)
	container.AddChild(rigid)

	result, err := New().Layout(boxtree.New(container), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result["grow"].Width; got != 300 {
		t.Errorf("grow item width = %v, want 300", got)
	}
	if got := result["rigid"].Width; got != 100 {
		t.Errorf("rigid item width = %v, want 100", got)
	}
	if got := result["rigid"].X; got != 300 {
		t.Errorf("rigid item x = %v, want 300", got)
	}
}

func TestLayout_AbsoluteConstrainedBetweenOffsets(t *testing.T) {
	s := style.NewStyle()
	s.Width = style.Px(400)
	root := boxtree.NewBox("root", s)

	abs := boxtree.NewBox("abs", style.NewStyle())
	abs.Style.Position = style.PositionAbsolute
	abs.Style.Left = style.Px(50)
	abs.Style.Right = style.Px(100)
	root.AddChild(abs)

	result, err := New().Layout(boxtree.New(root), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := result["abs"]
	if got.Width != 250 {
		t.Errorf("abs width = %v, want 400-50-100 = 250", got.Width)
	}
	if got.X != 50 {
		t.Errorf("abs x = %v, want 50", got.X)
	}
}

func TestLayout_AbsoluteShrinkWrapsWithSingleOffset(t *testing.T) {
	s := style.NewStyle()
	s.Width = style.Px(400)
	root := boxtree.NewBox("root", s)

	abs := boxtree.NewBox("abs", style.NewStyle())
	abs.Style.Position = style.PositionAbsolute
	abs.Style.Left = style.Px(30)
	abs.AddChild(leaf("inner", 70, 25))
	root.AddChild(abs)

	result, err := New().Layout(boxtree.New(root), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := result["abs"]
	if got.Width != 70 {
		t.Errorf("abs width = %v, want shrink-wrapped 70", got.Width)
	}
	if got.X != 30 {
		t.Errorf("abs x = %v, want 30", got.X)
	}
}

func TestLayout_AbsoluteDoesNotDisturbFlow(t *testing.T) {
	root := boxtree.NewBox("root", style.NewStyle())
	first := leaf("first", 100, 40)
	abs := boxtree.NewBox("abs", style.NewStyle())
	abs.Style.Position = style.PositionAbsolute
	abs.Style.Top = style.Px(5)
	abs.AddChild(leaf("absInner", 10, 10))
	second := leaf("second", 100, 60)
	root.AddChild(first)
	root.AddChild(abs)
	root.AddChild(second)

	result, err := New().Layout(boxtree.New(root), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result["second"].Y; got != 40 {
		t.Errorf("second y = %v, want 40 (absolute sibling is out of flow)", got)
	}
	if got := result["root"].Height; got != 100 {
		t.Errorf("root height = %v, want 100", got)
	}
	if got := result["abs"].Y; got != 5 {
		t.Errorf("abs y = %v, want 5", got)
	}
}

func TestLayout_RelativeOffsetShiftsWithoutAffectingSiblings(t *testing.T) {
	root := boxtree.NewBox("root", style.NewStyle())
	rel := leaf("rel", 100, 40)
	rel.Style.Position = style.PositionRelative
	rel.Style.Left = style.Px(15)
	rel.Style.Top = style.Px(10)
	after := leaf("after", 100, 40)
	root.AddChild(rel)
	root.AddChild(after)

	result, err := New().Layout(boxtree.New(root), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result["rel"]; got.X != 15 || got.Y != 10 {
		t.Errorf("rel = {x:%v y:%v}, want {x:15 y:10}", got.X, got.Y)
	}
	if got := result["after"].Y; got != 40 {
		t.Errorf("after y = %v, want 40 (relative offsets do not move siblings)", got)
	}
}

func TestLayout_FlowStacksChildrenVertically(t *testing.T) {
	root := boxtree.NewBox("root", style.NewStyle())
	a := leaf("a", 100, 30)
	b := leaf("b", 100, 50)
	root.AddChild(a)
	root.AddChild(b)

	result, err := New().Layout(boxtree.New(root), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["a"].Y != 0 || result["b"].Y != 30 {
		t.Errorf("stacking ys = [%v %v], want [0 30]", result["a"].Y, result["b"].Y)
	}
	if result["root"].Height != 80 {
		t.Errorf("root height = %v, want 80", result["root"].Height)
	}
}

func TestLayout_CrossAxisStretchAndAlign(t *testing.T) {
	container := flexContainer("container", func(s *style.Style) {
		s.Width = style.Px(400)
		s.Height = style.Px(100)
	})
	auto := boxtree.NewBox("auto", style.NewStyle()) // auto height stretches
	auto.IntrinsicSize = &boxtree.Size{Width: 50, Height: 20}
	fixed := leaf("fixed", 50, 40)
	fixed.Style.Height = style.Px(40)
	container.AddChild(auto)
	container.AddChild(fixed)

	result, err := New().Layout(boxtree.New(container), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result["auto"].Height; got != 100 {
		t.Errorf("auto-height item should stretch to 100, got %v", got)
	}
	if got := result["fixed"].Height; got != 40 {
		t.Errorf("explicit-height item must not stretch, got %v", got)
	}

	// Same tree with align-items: center.
	container.Style.AlignItems = style.AlignCenter
	result, err = New().Layout(boxtree.New(container), 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result["fixed"].Y; got != 30 {
		t.Errorf("centered item y = %v, want 30", got)
	}
	if got := result["auto"]; got.Height != 20 || got.Y != 40 {
		t.Errorf("non-stretch auto item = {y:%v h:%v}, want {y:40 h:20}", got.Y, got.Height)
	}
}

func TestLayout_AllGeometryNonNegative(t *testing.T) {
	container := flexContainer("container", func(s *style.Style) {
		s.Width = style.Px(120)
		s.Gap = 10
	})
	for _, id := range []string{"a", "b", "c"} {
		container.AddChild(leaf(id, 100, 10))
	}
	tree := boxtree.New(container)

	result, err := New().Layout(tree, 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for id, g := range result {
		if g.Width < 0 || g.Height < 0 {
			t.Errorf("box %s has negative size: %+v", id, g)
		}
	}
}

func TestLayout_Deterministic(t *testing.T) {
	container := flexContainer("container", func(s *style.Style) {
		s.Width = style.Px(500)
		s.Gap = 20
		s.JustifyContent = style.JustifySpaceEvenly
	})
	for _, id := range []string{"a", "b", "c", "d"} {
		item := leaf(id, 60, 25)
		item.Style.FlexGrow = 0.5
		container.AddChild(item)
	}
	tree := boxtree.New(container)
	engine := New()

	first, err := engine.Layout(tree, 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.Layout(tree, 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated layout differs (-first +second):\n%s", diff)
	}
}

func TestLayout_ParallelMeasureMatchesSequential(t *testing.T) {
	build := func() *boxtree.Tree {
		container := flexContainer("container", func(s *style.Style) {
			s.Width = style.Px(900)
			s.Gap = 5
		})
		for _, id := range []string{"a", "b", "c", "d", "e"} {
			sub := boxtree.NewBox(id, style.NewStyle())
			for j := 0; j < 4; j++ {
				sub.AddChild(leaf("", 40, 12))
			}
			container.AddChild(sub)
		}
		return boxtree.New(container)
	}

	seqTree := build()
	seq, err := New().Layout(seqTree, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parTree := build()
	par, err := New(WithParallelism(8)).Layout(parTree, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Generated leaf ids differ between the two trees; compare the named
	// boxes only.
	for _, id := range []string{"container", "a", "b", "c", "d", "e"} {
		if diff := cmp.Diff(seq[id], par[id]); diff != "" {
			t.Errorf("box %s differs between sequential and parallel (-seq +par):\n%s", id, diff)
		}
	}
}
