package text

import (
	"math"

	"github.com/thisnullptr/cellframe"
)

// Face is a font source fitted to a terminal cell grid.
//
// The cell width is derived from the advance of the reference glyph (space)
// so that the em size lands on an exact integer cell width: the requested
// height scaled by the design advance is rounded, and the em size is then
// recomputed from that rounded width. The cell height is the ceiling of the
// resulting em size.
type Face struct {
	// Source is the underlying font.
	Source *FontSource

	// Size is the em size in pixels used for drawing.
	Size float64

	// Cell is the integer pixel footprint of one character cell.
	Cell cellframe.CellSize

	// Baseline is the font descent divided by the design units per em.
	// Glyph runs anchor on the text baseline rather than the cell's
	// top-left corner; the baseline sits this fraction of a cell above
	// the cell's bottom edge.
	Baseline float64
}

// NewFace fits a font source to the requested cell height in pixels.
func NewFace(src *FontSource, heightPx int) (*Face, error) {
	space := src.GlyphIndex(' ')
	if space == 0 {
		return nil, ErrNoReferenceGlyph
	}

	advDesign, err := src.glyphAdvanceDesign(space)
	if err != nil {
		return nil, err
	}

	upem := float64(src.UnitsPerEm())
	widthAdvance := advDesign / upem
	if widthAdvance <= 0 {
		return nil, ErrBadMetrics
	}

	widthApprox := float64(heightPx) * widthAdvance
	widthExact := math.Round(widthApprox)
	if widthExact <= 0 {
		return nil, ErrBadMetrics
	}
	fontSize := widthExact / widthAdvance

	_, descent, err := src.metricsDesign()
	if err != nil {
		return nil, err
	}

	return &Face{
		Source:   src,
		Size:     fontSize,
		Cell:     cellframe.CellSize{Width: int(widthExact), Height: int(math.Ceil(fontSize))},
		Baseline: descent / upem,
	}, nil
}

// BaselineY returns the pixel offset of the text baseline from the top of a
// cell: one cell height down, then back up by the baseline fraction.
func (f *Face) BaselineY() int {
	return f.Cell.Height - int(math.Round(f.Baseline*float64(f.Cell.Height)))
}
