package cellframe

import "image"

// CursorStyle selects the shape drawn at the cursor cell.
type CursorStyle int

const (
	// CursorLegacy is a bottom-anchored partial block whose height is a
	// percentage of the cell height.
	CursorLegacy CursorStyle = iota
	// CursorVerticalBar is a one-pixel-wide bar at the left edge of the cell.
	CursorVerticalBar
	// CursorUnderscore is a one-pixel-tall line at the bottom of the cell.
	CursorUnderscore
	// CursorEmptyBox is the full cell rectangle drawn as an outline.
	CursorEmptyBox
	// CursorFullBox is the full cell rectangle, filled.
	CursorFullBox
)

// CursorPaint chooses between filling and outlining the cursor rectangle.
type CursorPaint int

const (
	// CursorPaintFill fills the cursor rectangle.
	CursorPaintFill CursorPaint = iota
	// CursorPaintOutline strokes the cursor rectangle's border.
	CursorPaintOutline
)

// Default clamp range for the legacy cursor height percentage.
const (
	DefaultMinCursorHeightPercent = 25
	DefaultMaxCursorHeightPercent = 100
)

// CursorRect computes the pixel rectangle for a cursor at the given cell,
// along with how it should be painted.
//
// The base rectangle is the cell's pixel rect, widened by one more cell when
// doubleWidth is set. heightPercent applies only to CursorLegacy and is
// clamped to [minPercent, maxPercent] before use.
func CursorRect(pos CellPoint, cell CellSize, style CursorStyle, heightPercent int, doubleWidth bool, minPercent, maxPercent int) (image.Rectangle, CursorPaint, error) {
	origin := pos.PixelOrigin(cell)
	r := image.Rect(origin.X, origin.Y, origin.X+cell.Width, origin.Y+cell.Height)
	if doubleWidth {
		r.Max.X += cell.Width
	}

	paint := CursorPaintFill

	switch style {
	case CursorLegacy:
		pct := heightPercent
		if pct < minPercent {
			pct = minPercent
		}
		if pct > maxPercent {
			pct = maxPercent
		}
		height := cell.Height * pct / 100
		r.Min.Y = r.Max.Y - height
	case CursorVerticalBar:
		r.Max.X = r.Min.X + 1
	case CursorUnderscore:
		r.Min.Y = r.Max.Y - 1
	case CursorEmptyBox:
		paint = CursorPaintOutline
	case CursorFullBox:
	default:
		return image.Rectangle{}, 0, ErrNotImplemented
	}

	return r, paint, nil
}
