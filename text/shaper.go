package text

import (
	"image"

	"github.com/thisnullptr/cellframe"
)

// ShapeKind tags which drawing strategy a ShapedLine carries.
type ShapeKind int

const (
	// ShapeFast is a single glyph run with uniform per-cell advances.
	ShapeFast ShapeKind = iota
	// ShapeLayout is a full text layout for lines that need contextual
	// shaping.
	ShapeLayout
)

// ShapedLine is the per-line shaping result, valid for one paint.
//
// Bounds is the background rectangle spanning the line's cells; it is
// always filled with the background color before the glyphs are drawn,
// regardless of which path was taken.
type ShapedLine struct {
	Kind   ShapeKind
	Bounds image.Rectangle

	// Origin is where drawing starts. For ShapeFast it is the baseline
	// origin of the glyph run; for ShapeLayout it is the top-left corner
	// of the layout box.
	Origin image.Point

	// Fast path: glyph indices with one uniform advance per glyph.
	Glyphs  []GlyphID
	Advance float64

	// Fallback path.
	Layout *Layout
}

// ShapeLine shapes one line of text starting at the given cell position and
// spanning cells columns. display is the pixel size of the target surface,
// used to bound the fallback layout box.
func ShapeLine(face *Face, line string, pos cellframe.CellPoint, cells int, display image.Point) (ShapedLine, error) {
	origin := pos.PixelOrigin(face.Cell)
	bounds := image.Rect(
		origin.X,
		origin.Y,
		origin.X+cells*face.Cell.Width,
		origin.Y+face.Cell.Height,
	)

	if simple, _, glyphs := Complexity(line, face.Source); simple {
		return ShapedLine{
			Kind:    ShapeFast,
			Bounds:  bounds,
			Origin:  image.Pt(origin.X, origin.Y+face.BaselineY()),
			Glyphs:  glyphs,
			Advance: float64(face.Cell.Width),
		}, nil
	}

	maxHeight := float64(face.Cell.Height)
	if face.Cell.Height == 0 {
		maxHeight = float64(display.Y)
	}
	layout, err := NewLayout(face, line, float64(display.X), maxHeight)
	if err != nil {
		return ShapedLine{}, err
	}

	return ShapedLine{
		Kind:   ShapeLayout,
		Bounds: bounds,
		Origin: origin,
		Layout: layout,
	}, nil
}
