package render

import (
	"image"

	"github.com/thisnullptr/cellframe"
	"github.com/thisnullptr/cellframe/text"
)

// GridLines is a bitmask naming which edges of a cell get a grid line.
type GridLines uint8

const (
	GridLineTop GridLines = 1 << iota
	GridLineLeft
	GridLineBottom
	GridLineRight

	GridLineNone GridLines = 0
)

// CursorOptions describes one cursor draw.
type CursorOptions struct {
	// Coord is the cursor's cell position.
	Coord cellframe.CellPoint

	// HeightPercent is the cell fraction a legacy cursor covers, measured
	// from the cell bottom. Other styles ignore it.
	HeightPercent int

	// DoubleWidth widens the cursor by one extra cell.
	DoubleWidth bool

	// Style selects the cursor shape.
	Style cellframe.CursorStyle

	// Color, when non-nil, overrides the standing foreground brush for
	// this draw only.
	Color *cellframe.RGBA
}

// Engine is the paint/present contract between the character-grid owner
// and a display backend.
//
// The caller serializes access: invalidation arrives between sessions,
// drawing happens inside a StartPaint/EndPaint bracket, and Present may run
// after the paint lock is released. Engines are not internally
// synchronized.
type Engine interface {
	// Enable makes the engine ready to paint. Enabling an enabled engine
	// fails with ErrInvalidState.
	Enable() error

	// Disable tears down display resources, abruptly closing any open
	// session. Disabling a disabled engine fails with ErrInvalidState.
	Disable() error

	// Invalidate marks a cell rectangle as needing redraw.
	Invalidate(r cellframe.CellRect) error

	// InvalidateCursor marks the one cell under the cursor.
	InvalidateCursor(pos cellframe.CellPoint) error

	// InvalidatePixels marks a pixel rectangle as needing redraw.
	InvalidatePixels(r image.Rectangle) error

	// InvalidateSelection marks every given cell rectangle.
	InvalidateSelection(rects []cellframe.CellRect) error

	// InvalidateScroll records that previously drawn content moved by a
	// whole-cell delta, so the next present can shift it instead of
	// redrawing it.
	InvalidateScroll(delta cellframe.CellDelta) error

	// InvalidateAll marks the entire display.
	InvalidateAll() error

	// StartPaint opens a paint session, rebuilding display resources if
	// the target size changed.
	StartPaint() error

	// EndPaint closes the session and stages the frame for Present. The
	// accumulated dirty and scroll state is consumed whether or not the
	// frame succeeded.
	EndPaint() error

	// Present pushes the staged frame at the display. Without a staged
	// frame it is a no-op.
	Present() error

	// PaintBackground prepares the frame background inside the dirty
	// region.
	PaintBackground() error

	// PaintBufferLine draws one line of text spanning cells columns at
	// the given coordinate.
	PaintBufferLine(line string, cells int, coord cellframe.CellPoint) error

	// PaintBufferGridLines draws the named cell edges for a horizontal
	// run of cells.
	PaintBufferGridLines(lines GridLines, color cellframe.RGBA, coord cellframe.CellPoint, cells int) error

	// PaintSelection highlights a cell rectangle without disturbing the
	// standing brushes.
	PaintSelection(rect cellframe.CellRect) error

	// PaintCursor draws the cursor overlay.
	PaintCursor(opts CursorOptions) error

	// UpdateDrawingBrushes sets the standing foreground and background
	// colors for subsequent draws.
	UpdateDrawingBrushes(fg, bg cellframe.RGBA) error

	// UpdateFont resolves and applies a font, fixing the cell size until
	// the next update.
	UpdateFont(req text.FontRequest) (text.FontInfo, error)

	// GetDirtyRectInChars reports the accumulated dirty region in cells.
	GetDirtyRectInChars() cellframe.CellRect

	// GetFontSize reports the current cell size in pixels.
	GetFontSize() cellframe.CellSize

	// IsGlyphWide reports whether the glyph occupies two cells.
	IsGlyphWide(s string) bool

	// UpdateTitle notifies the host of a title change. Fire and forget.
	UpdateTitle(title string) error
}
