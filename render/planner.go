package render

import (
	"image"

	"github.com/thisnullptr/cellframe"
	"github.com/thisnullptr/cellframe/surface"
)

// buildPresentParams turns the consumed dirty/scroll state into present
// parameters.
//
// A zero scroll yields a plain dirty-rectangle present. Otherwise the
// scroll rectangle is the part of the display outside the dirty region,
// which the presenter may reuse from the previous frame by shifting it;
// when the dirty region swallows the whole display nothing is preserved
// and the scroll fields are omitted.
func buildPresentParams(dirty image.Rectangle, used bool, scroll image.Point, display image.Rectangle) surface.PresentParams {
	var params surface.PresentParams
	if used && !dirty.Empty() {
		params.Dirty = []image.Rectangle{dirty}
	}

	if scroll == (image.Point{}) {
		return params
	}

	preserved := cellframe.SubtractRect(display, dirty)
	if preserved.Empty() {
		return params
	}
	params.Scroll = &preserved
	offset := scroll
	params.Offset = &offset
	return params
}
