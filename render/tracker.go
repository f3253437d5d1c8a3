package render

import (
	"image"

	"github.com/thisnullptr/cellframe"
)

// tracker accumulates the pixel-space dirty rectangle and scroll delta
// between paint sessions.
//
// The first invalidate of a frame initializes the rectangle as given;
// every later one unions and clamps against the display bounds. The used
// flag distinguishes "nothing invalidated" from a legitimately empty
// rectangle.
type tracker struct {
	invalid image.Rectangle
	used    bool
	scroll  image.Point
}

// or merges r into the dirty rectangle, clamping to display.
func (t *tracker) or(r, display image.Rectangle) {
	if t.used {
		t.invalid = t.invalid.Union(r).Intersect(display)
		return
	}
	t.invalid = r
	t.used = true
}

// all marks the whole display dirty.
func (t *tracker) all(display image.Rectangle) {
	t.invalid = display
	t.used = true
}

// addScroll shifts the dirty rectangle by a whole-cell delta, accumulates
// the pixel offset, and marks the strips the shift revealed.
//
// The revealed area is computed one axis at a time: the display is shifted
// by the horizontal component alone, the uncovered remainder is
// invalidated, and then the same is done for the vertical component. The
// two strips overlap in the corner when both axes move; they are applied
// sequentially, not merged.
func (t *tracker) addScroll(delta cellframe.CellDelta, cell cellframe.CellSize, display image.Rectangle) {
	if delta.IsZero() {
		return
	}
	px := delta.Pixels(cell)

	if t.used {
		t.invalid = t.invalid.Add(px).Intersect(display)
	}
	t.scroll = t.scroll.Add(px)

	if px.X != 0 {
		covered := display.Add(image.Pt(px.X, 0)).Intersect(display)
		if revealed := cellframe.SubtractRect(display, covered); !revealed.Empty() {
			t.or(revealed, display)
		}
	}
	if px.Y != 0 {
		covered := display.Add(image.Pt(0, px.Y)).Intersect(display)
		if revealed := cellframe.SubtractRect(display, covered); !revealed.Empty() {
			t.or(revealed, display)
		}
	}
}

// consume returns the dirty rectangle, whether anything was marked, and
// the scroll delta, then resets all three.
func (t *tracker) consume() (dirty image.Rectangle, used bool, scroll image.Point) {
	dirty, used, scroll = t.invalid, t.used, t.scroll
	t.invalid = image.Rectangle{}
	t.used = false
	t.scroll = image.Point{}
	return dirty, used, scroll
}
