package layout

import "flexlay/pkg/style"

// flexItem carries one item's inputs and outputs through the main-axis pass.
type flexItem struct {
	grow   float64
	shrink float64
	base   float64 // flex base size: flex-basis, else measured width

	size   float64 // final main size after grow/shrink
	offset float64 // final x offset inside the container content box
}

// layoutMainAxis resolves flexible lengths and distributes leftover space for
// a single row line. Items are in document order; offsets come back in the
// same order, relative to the container's content-box origin.
//
// Grow/shrink and justify-content are independent mechanisms: distribution
// only ever sees the leftover that no item was eligible to absorb.
func layoutMainAxis(containerWidth float64, items []flexItem, gap float64, justify style.JustifyContent) []flexItem {
	n := len(items)
	if n == 0 {
		return items
	}

	used := gap * float64(n-1)
	totalGrow := 0.0
	totalScaledShrink := 0.0
	for i := range items {
		items[i].size = items[i].base
		used += items[i].base
		totalGrow += items[i].grow
		totalScaledShrink += items[i].shrink * items[i].base
	}

	free := containerWidth - used

	switch {
	case free > 0 && totalGrow > 0:
		for i := range items {
			items[i].size += free * (items[i].grow / totalGrow)
		}
		free = 0
	case free < 0 && totalScaledShrink > 0:
		// Deficit is weighted by shrink factor times base size, clamped so
		// no item goes below zero.
		deficit := -free
		for i := range items {
			share := deficit * (items[i].shrink * items[i].base / totalScaledShrink)
			items[i].size -= share
			if items[i].size < 0 {
				items[i].size = 0
			}
		}
		free = 0
	}

	// Whatever grow/shrink could not absorb feeds content distribution.
	leftover := free

	spacing := 0.0
	initialOffset := 0.0
	switch justify {
	case style.JustifyFlexEnd:
		initialOffset = leftover
	case style.JustifyCenter:
		initialOffset = leftover / 2
	case style.JustifySpaceBetween:
		// A single item has no "between" slot: flush to the start.
		if n > 1 && leftover > 0 {
			spacing = leftover / float64(n-1)
		}
	case style.JustifySpaceAround:
		if leftover > 0 {
			spacing = leftover / float64(n)
			initialOffset = spacing / 2
		} else {
			initialOffset = leftover / 2
		}
	case style.JustifySpaceEvenly:
		if leftover > 0 {
			spacing = leftover / float64(n+1)
			initialOffset = spacing
		} else {
			initialOffset = leftover / 2
		}
	}

	pos := initialOffset
	for i := range items {
		items[i].offset = pos
		pos += items[i].size + gap + spacing
	}
	return items
}
