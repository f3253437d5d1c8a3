package cellframe

import "image"

// CellSize is the pixel footprint of one character cell in the grid.
// It is set once per font update and read by every coordinate conversion.
type CellSize struct {
	Width, Height int
}

// IsZero reports whether either dimension is zero.
func (s CellSize) IsZero() bool {
	return s.Width == 0 || s.Height == 0
}

// CellPoint is a character-cell coordinate on the grid.
// X grows rightward, Y grows downward.
type CellPoint struct {
	X, Y int
}

// PixelOrigin returns the top-left pixel of the cell at p.
func (p CellPoint) PixelOrigin(s CellSize) image.Point {
	return image.Pt(p.X*s.Width, p.Y*s.Height)
}

// CellDelta is a signed displacement measured in whole cells.
// Negative Y is up, positive Y is down; likewise X for left/right.
type CellDelta struct {
	DX, DY int
}

// IsZero reports whether the delta moves nothing.
func (d CellDelta) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// Pixels converts the cell displacement to a pixel displacement.
func (d CellDelta) Pixels(s CellSize) image.Point {
	return image.Pt(d.DX*s.Width, d.DY*s.Height)
}

// CellRect is an inclusive rectangle of character cells, following the
// terminal convention where (Right, Bottom) names the last cell inside the
// rectangle rather than one past it.
type CellRect struct {
	Left, Top, Right, Bottom int
}

// CellRectFromPoint returns the one-cell rectangle covering p.
func CellRectFromPoint(p CellPoint) CellRect {
	return CellRect{Left: p.X, Top: p.Y, Right: p.X, Bottom: p.Y}
}

// Pixels converts r to an exclusive pixel rectangle by scaling every edge by
// the cell size and then extending the right and bottom edges by one cell to
// cover the inclusive boundary.
func (r CellRect) Pixels(s CellSize) image.Rectangle {
	return image.Rect(
		r.Left*s.Width,
		r.Top*s.Height,
		r.Right*s.Width+s.Width,
		r.Bottom*s.Height+s.Height,
	)
}

// DirtyRectInCells converts an exclusive pixel rectangle back to an inclusive
// cell rectangle by flooring each edge against the cell size and then pulling
// the right and bottom edges in by one cell.
func DirtyRectInCells(dirty image.Rectangle, s CellSize) CellRect {
	if s.IsZero() {
		return CellRect{}
	}
	return CellRect{
		Left:   floorDiv(dirty.Min.X, s.Width),
		Top:    floorDiv(dirty.Min.Y, s.Height),
		Right:  floorDiv(dirty.Max.X, s.Width) - 1,
		Bottom: floorDiv(dirty.Max.Y, s.Height) - 1,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// SubtractRect returns the portion of a not covered by b, but only when that
// portion is itself a rectangle: b must span a's full width or full height
// for anything to be removed. When b covers a entirely the result is empty;
// when nothing rectangular can be removed the result is a unchanged.
func SubtractRect(a, b image.Rectangle) image.Rectangle {
	i := a.Intersect(b)
	if i.Empty() {
		return a
	}
	if i == a {
		return image.Rectangle{}
	}
	if i.Min.X == a.Min.X && i.Max.X == a.Max.X {
		switch {
		case i.Min.Y == a.Min.Y:
			return image.Rect(a.Min.X, i.Max.Y, a.Max.X, a.Max.Y)
		case i.Max.Y == a.Max.Y:
			return image.Rect(a.Min.X, a.Min.Y, a.Max.X, i.Min.Y)
		}
	}
	if i.Min.Y == a.Min.Y && i.Max.Y == a.Max.Y {
		switch {
		case i.Min.X == a.Min.X:
			return image.Rect(i.Max.X, a.Min.Y, a.Max.X, a.Max.Y)
		case i.Max.X == a.Max.X:
			return image.Rect(a.Min.X, a.Min.Y, i.Min.X, a.Max.Y)
		}
	}
	return a
}
