package render

import (
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/thisnullptr/cellframe"
	"github.com/thisnullptr/cellframe/text"
)

// defaultCellAttribute is bright red on black, the conventional boot-time
// console attribute.
const defaultCellAttribute uint8 = 0x0C

// cellCharSize is the nominal pixel footprint CellEngine reports for one
// character. The engine never touches pixels itself; the size only feeds
// the geometry queries of the shared contract.
var cellCharSize = cellframe.CellSize{Width: 8, Height: 12}

// gridCell is one character position in the engine's shadow buffers.
type gridCell struct {
	r    rune
	attr uint8
	// wide marks the lead cell of a double-width glyph; the following
	// cell holds a zero rune as its continuation.
	wide bool
}

// CellEngine paints the character grid by diffing whole rows against the
// previously shown frame and writing only the changed cells into a
// terminal screen. It keeps no dirty rectangle; every frame reports the
// full display dirty and repaints every line it is given.
type CellEngine struct {
	screen tcell.Screen

	width, height int
	old, next     [][]gridCell

	attr uint8

	enabled  bool
	painting bool
}

// NewCellEngine creates an engine writing at an initialized tcell screen.
func NewCellEngine(screen tcell.Screen) *CellEngine {
	return &CellEngine{
		screen: screen,
		attr:   defaultCellAttribute,
	}
}

// Enable makes the engine ready to paint.
func (e *CellEngine) Enable() error {
	if e.enabled {
		return fmt.Errorf("render: enable: %w", ErrInvalidState)
	}
	e.enabled = true
	return nil
}

// Disable stops painting and forgets the shadow buffers.
func (e *CellEngine) Disable() error {
	if !e.enabled {
		return fmt.Errorf("render: disable: %w", ErrInvalidState)
	}
	e.enabled = false
	e.painting = false
	e.old, e.next = nil, nil
	e.width, e.height = 0, 0
	return nil
}

// Invalidate is accepted and ignored: the engine repaints whatever lines
// the caller hands it, with no region tracking.
func (e *CellEngine) Invalidate(cellframe.CellRect) error { return nil }

// InvalidateCursor is accepted and ignored.
func (e *CellEngine) InvalidateCursor(cellframe.CellPoint) error { return nil }

// InvalidatePixels is accepted and ignored.
func (e *CellEngine) InvalidatePixels(image.Rectangle) error { return nil }

// InvalidateSelection is accepted and ignored.
func (e *CellEngine) InvalidateSelection([]cellframe.CellRect) error { return nil }

// InvalidateScroll is accepted and ignored; scrolled content is simply
// rewritten.
func (e *CellEngine) InvalidateScroll(cellframe.CellDelta) error { return nil }

// InvalidateAll is accepted and ignored.
func (e *CellEngine) InvalidateAll() error { return nil }

// StartPaint opens a paint session, resizing the shadow buffers when the
// screen size changed.
func (e *CellEngine) StartPaint() error {
	if e.screen == nil {
		return fmt.Errorf("render: start paint: %w", ErrInvalidHandle)
	}
	if e.painting {
		return fmt.Errorf("render: start paint: %w", ErrInvalidState)
	}
	if !e.enabled {
		return nil
	}

	w, h := e.screen.Size()
	if w != e.width || h != e.height {
		e.width, e.height = w, h
		e.old = makeGrid(w, h, e.attr)
		e.next = makeGrid(w, h, e.attr)
		e.screen.Clear()
	}
	e.painting = true
	return nil
}

// EndPaint closes the session and flushes the screen.
func (e *CellEngine) EndPaint() error {
	if !e.painting {
		return fmt.Errorf("render: end paint: %w", ErrInvalidArgument)
	}
	e.painting = false
	e.screen.Show()
	return nil
}

// Present is a no-op: EndPaint already flushed the screen.
func (e *CellEngine) Present() error { return nil }

// PaintBackground rotates the just-shown frame into the comparison buffer
// and blanks the working frame. Blank cells carry attribute zero, not the
// current brush; the brush colors only what is painted afterwards.
func (e *CellEngine) PaintBackground() error {
	if err := e.requireSession("paint background"); err != nil {
		return err
	}
	e.old, e.next = e.next, e.old
	for y := range e.next {
		blankRow(e.next[y], 0)
	}
	return nil
}

// PaintBufferLine writes one line into the working frame and immediately
// blits the cells that differ from the previous frame.
func (e *CellEngine) PaintBufferLine(line string, cells int, coord cellframe.CellPoint) error {
	if err := e.requireSession("paint buffer line"); err != nil {
		return err
	}
	if coord.Y < 0 || coord.Y >= e.height || coord.X < 0 || coord.X >= e.width {
		return nil
	}

	row := e.next[coord.Y]
	x := coord.X
	for _, r := range line {
		if x >= e.width || x-coord.X >= cells {
			break
		}
		w := runewidth.RuneWidth(r)
		row[x] = gridCell{r: r, attr: e.attr, wide: w >= 2}
		x++
		if w >= 2 && x < e.width {
			row[x] = gridCell{attr: e.attr}
			x++
		}
	}

	e.flushRow(coord.Y)
	return nil
}

// PaintBufferGridLines is not supported by the cell backend; the call is
// accepted and ignored.
func (e *CellEngine) PaintBufferGridLines(GridLines, cellframe.RGBA, cellframe.CellPoint, int) error {
	return e.requireSession("paint grid lines")
}

// PaintSelection rewrites the selected cells with their colors reversed.
func (e *CellEngine) PaintSelection(rect cellframe.CellRect) error {
	if err := e.requireSession("paint selection"); err != nil {
		return err
	}
	for y := rect.Top; y <= rect.Bottom && y < e.height; y++ {
		if y < 0 {
			continue
		}
		for x := rect.Left; x <= rect.Right && x < e.width; x++ {
			if x < 0 {
				continue
			}
			c := e.next[y][x]
			c.attr = c.attr>>4 | c.attr<<4
			e.next[y][x] = c
		}
		e.flushRow(y)
	}
	return nil
}

// PaintCursor moves the terminal's own cursor; the style is the screen's
// to choose.
func (e *CellEngine) PaintCursor(opts CursorOptions) error {
	if err := e.requireSession("paint cursor"); err != nil {
		return err
	}
	e.screen.ShowCursor(opts.Coord.X, opts.Coord.Y)
	return nil
}

// UpdateDrawingBrushes maps the colors onto the nearest legacy console
// attribute, which colors everything drawn afterwards.
func (e *CellEngine) UpdateDrawingBrushes(fg, bg cellframe.RGBA) error {
	e.attr = cellframe.AttributeFromColors(fg, bg)
	return nil
}

// UpdateFont accepts any request as-is; the terminal's font is not ours to
// change.
func (e *CellEngine) UpdateFont(req text.FontRequest) (text.FontInfo, error) {
	family := req.Family
	if family == "" {
		family = text.DefaultFamily
	}
	return text.FontInfo{Family: family, Weight: req.Weight}, nil
}

// GetDirtyRectInChars reports the whole display: the engine has no finer
// tracking.
func (e *CellEngine) GetDirtyRectInChars() cellframe.CellRect {
	if e.width == 0 || e.height == 0 {
		return cellframe.CellRect{}
	}
	return cellframe.CellRect{Right: e.width - 1, Bottom: e.height - 1}
}

// GetFontSize reports the nominal character footprint.
func (e *CellEngine) GetFontSize() cellframe.CellSize {
	return cellCharSize
}

// IsGlyphWide reports whether the glyph occupies two cells.
func (e *CellEngine) IsGlyphWide(s string) bool {
	return runewidth.StringWidth(s) >= 2
}

// UpdateTitle sets the terminal window title when the screen supports it.
func (e *CellEngine) UpdateTitle(title string) error {
	e.screen.SetTitle(title)
	return nil
}

// flushRow writes the cells of row y that differ from the previously shown
// frame, then records them as shown.
func (e *CellEngine) flushRow(y int) {
	for x := 0; x < e.width; x++ {
		c := e.next[y][x]
		if c == e.old[y][x] {
			continue
		}
		e.old[y][x] = c
		if c.r == 0 {
			// Continuation cell of a wide glyph; the screen renders
			// it as part of the lead cell.
			continue
		}
		e.screen.SetContent(x, y, c.r, nil, styleFromAttribute(c.attr))
	}
}

func (e *CellEngine) requireSession(op string) error {
	if !e.painting {
		return fmt.Errorf("render: %s: %w", op, ErrInvalidState)
	}
	return nil
}

func styleFromAttribute(attr uint8) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.PaletteColor(int(attr & 0x0F))).
		Background(tcell.PaletteColor(int(attr >> 4)))
}

func makeGrid(w, h int, attr uint8) [][]gridCell {
	grid := make([][]gridCell, h)
	for y := range grid {
		grid[y] = make([]gridCell, w)
		blankRow(grid[y], attr)
	}
	return grid
}

func blankRow(row []gridCell, attr uint8) {
	for i := range row {
		row[i] = gridCell{r: ' ', attr: attr}
	}
}

var _ Engine = (*CellEngine)(nil)
