package layout

import "flexlay/pkg/boxtree"

// resolveAvailableWidth computes the width a box may consume against its
// containing block's content box. parentDefined is false only for the root
// when the caller supplied no viewport width.
//
// Flex items never come through here for their initial size: their width is
// resolved by the flex engine, not by the block 100% default, even when they
// are block-level themselves.
func (p *pass) resolveAvailableWidth(b *boxtree.Box, parentWidth float64, parentDefined bool) (float64, error) {
	s := b.Style

	if Classify(s).Participation == ShrinkToFit {
		// An explicit width always overrides shrink-to-fit measurement.
		if !s.Width.Auto {
			return s.Width.Value, nil
		}
		// Constrained between two offsets: behaves like a block between
		// left and right.
		if !s.Left.Auto && !s.Right.Auto {
			if !parentDefined {
				return 0, newError(ErrMissingContainingBlock, b.ID,
					"left/right constrained box has no containing block width")
			}
			w := parentWidth - s.Left.Value - s.Right.Value
			if w < 0 {
				w = 0
			}
			return w, nil
		}
		// Shrink-wrap: only as much width as the children need.
		return p.sizeOf(b).Width, nil
	}

	// Block-participating: an explicit width wins, otherwise the box fills
	// its containing block.
	if !s.Width.Auto {
		return s.Width.Value, nil
	}
	if !parentDefined {
		return 0, newError(ErrMissingContainingBlock, b.ID,
			"auto width with no containing block width; supply a viewport width for the root")
	}
	return parentWidth, nil
}
