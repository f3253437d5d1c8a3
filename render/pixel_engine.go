package render

import (
	"fmt"
	"image"

	"github.com/mattn/go-runewidth"

	"github.com/thisnullptr/cellframe"
	"github.com/thisnullptr/cellframe/surface"
	"github.com/thisnullptr/cellframe/text"
)

// Target supplies the drawing destination's current pixel size on demand.
// The host window (or pseudo-terminal) implements this.
type Target interface {
	Size() image.Point
}

// TargetFunc adapts a function to the Target interface.
type TargetFunc func() image.Point

func (f TargetFunc) Size() image.Point { return f() }

// PixelOption configures a PixelEngine.
type PixelOption func(*PixelEngine)

// WithPresenter sets the display flip collaborator. Without one, Present
// drops staged frames silently.
func WithPresenter(p surface.Presenter) PixelOption {
	return func(e *PixelEngine) { e.presenter = p }
}

// WithDevice passes a GPU device handle through to the surface backend.
func WithDevice(d surface.DeviceHandle) PixelOption {
	return func(e *PixelEngine) { e.device = d }
}

// WithBackend pins the surface backend by registry name. The default is
// the best available backend.
func WithBackend(name string) PixelOption {
	return func(e *PixelEngine) { e.backend = name }
}

// WithCursorHeightRange sets the clamp range for the legacy cursor's
// height percentage.
func WithCursorHeightRange(min, max int) PixelOption {
	return func(e *PixelEngine) {
		e.minCursorPercent = min
		e.maxCursorPercent = max
	}
}

// WithTitleChannel sets the channel UpdateTitle notifies. Sends never
// block; a full channel drops the update.
func WithTitleChannel(ch chan<- string) PixelOption {
	return func(e *PixelEngine) { e.titleCh = ch }
}

// WithFontCollection replaces the default embedded font collection.
func WithFontCollection(c *text.Collection) PixelOption {
	return func(e *PixelEngine) { e.fonts = c }
}

// PixelEngine paints the character grid into a pixel surface, tracking a
// dirty rectangle and scroll delta so each present carries the smallest
// possible update.
//
// Callers follow the cycle: invalidate, StartPaint, draw, EndPaint,
// Present. The engine owns its swap chain exclusively and rebuilds it
// wholesale whenever the target size changes.
type PixelEngine struct {
	target    Target
	presenter surface.Presenter
	device    surface.DeviceHandle
	backend   string

	fonts *text.Collection
	face  *text.Face

	fg, bg cellframe.RGBA

	minCursorPercent int
	maxCursorPercent int

	titleCh chan<- string

	track tracker

	enabled  bool
	painting bool

	chain *surface.SwapChain
	size  image.Point

	presentReady  bool
	presentParams surface.PresentParams
}

// NewPixelEngine creates an engine drawing at the given target. The engine
// starts disabled with the default monospace font at 16 pixels, white on
// black.
func NewPixelEngine(target Target, opts ...PixelOption) (*PixelEngine, error) {
	e := &PixelEngine{
		target:           target,
		fg:               cellframe.White,
		bg:               cellframe.Black,
		minCursorPercent: cellframe.DefaultMinCursorHeightPercent,
		maxCursorPercent: cellframe.DefaultMaxCursorHeightPercent,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.fonts == nil {
		fonts, err := text.NewCollection()
		if err != nil {
			return nil, fmt.Errorf("render: new engine: %w", err)
		}
		e.fonts = fonts
	}

	if _, err := e.UpdateFont(text.FontRequest{Family: text.DefaultFamily, Height: 16}); err != nil {
		return nil, err
	}
	return e, nil
}

// Enable makes the engine ready to paint. Resources are built lazily by
// the first StartPaint.
func (e *PixelEngine) Enable() error {
	if e.enabled {
		return fmt.Errorf("render: enable: %w", ErrInvalidState)
	}
	e.enabled = true
	return nil
}

// Disable releases all surface resources, abruptly closing any open paint
// session first.
func (e *PixelEngine) Disable() error {
	if !e.enabled {
		return fmt.Errorf("render: disable: %w", ErrInvalidState)
	}
	e.enabled = false
	if e.painting {
		e.painting = false
		if e.chain != nil {
			e.chain.Back().EndDraw()
		}
	}
	e.presentReady = false
	e.presentParams = surface.PresentParams{}
	e.releaseResources()
	return nil
}

// Invalidate marks a cell rectangle as needing redraw.
func (e *PixelEngine) Invalidate(r cellframe.CellRect) error {
	e.track.or(r.Pixels(e.cell()), e.displayRect())
	return nil
}

// InvalidateCursor marks the one cell under the cursor.
func (e *PixelEngine) InvalidateCursor(pos cellframe.CellPoint) error {
	return e.Invalidate(cellframe.CellRectFromPoint(pos))
}

// InvalidatePixels marks a pixel rectangle as needing redraw.
func (e *PixelEngine) InvalidatePixels(r image.Rectangle) error {
	e.track.or(r, e.displayRect())
	return nil
}

// InvalidateSelection marks every given cell rectangle.
func (e *PixelEngine) InvalidateSelection(rects []cellframe.CellRect) error {
	for _, r := range rects {
		if err := e.Invalidate(r); err != nil {
			return err
		}
	}
	return nil
}

// InvalidateScroll shifts the dirty region by a whole-cell delta and marks
// the strips the shift revealed. A zero delta is a no-op.
func (e *PixelEngine) InvalidateScroll(delta cellframe.CellDelta) error {
	e.track.addScroll(delta, e.cell(), e.displayRect())
	return nil
}

// InvalidateAll marks the entire display.
func (e *PixelEngine) InvalidateAll() error {
	e.track.all(e.displayRect())
	return nil
}

// StartPaint opens a paint session. It rebuilds the swap chain when there
// is none or the target size changed since the last session; a size change
// always tears down and recreates, never patches. Calling it on a disabled
// engine succeeds without opening a session.
func (e *PixelEngine) StartPaint() error {
	if e.target == nil {
		return fmt.Errorf("render: start paint: %w", ErrInvalidHandle)
	}
	if e.painting {
		return fmt.Errorf("render: start paint: %w", ErrInvalidState)
	}
	if !e.enabled {
		return nil
	}

	size := e.target.Size()
	if e.chain == nil || size != e.size {
		e.releaseResources()
		if err := e.createResources(size); err != nil {
			return fmt.Errorf("render: start paint: %w", err)
		}
	}

	if err := e.chain.Back().BeginDraw(); err != nil {
		e.releaseResources()
		return fmt.Errorf("render: start paint: %w", err)
	}
	e.painting = true
	return nil
}

// EndPaint closes the session and stages the frame's present parameters.
// The dirty and scroll state is consumed either way, so a failed frame is
// dropped rather than retried; on failure the surface is assumed corrupted
// and its resources are released.
func (e *PixelEngine) EndPaint() error {
	if !e.painting {
		return fmt.Errorf("render: end paint: %w", ErrInvalidArgument)
	}
	e.painting = false

	err := e.chain.Back().EndDraw()
	dirty, used, scroll := e.track.consume()
	if err != nil {
		e.presentReady = false
		e.releaseResources()
		cellframe.Logger().Warn("frame dropped: batch end failed", "err", err)
		return fmt.Errorf("render: end paint: %w", err)
	}

	e.presentParams = buildPresentParams(dirty, used, scroll, e.displayRect())
	e.presentReady = true
	return nil
}

// Present pushes the staged frame at the presenter and clears the staged
// parameters. Without a staged frame it is a no-op. A flip or
// front-to-back copy failure releases the surface resources so the next
// StartPaint rebuilds from scratch.
func (e *PixelEngine) Present() error {
	if !e.presentReady {
		return nil
	}
	params := e.presentParams
	e.presentReady = false
	e.presentParams = surface.PresentParams{}

	if e.presenter == nil || e.chain == nil {
		return nil
	}
	if err := e.chain.Present(e.presenter, params); err != nil {
		e.releaseResources()
		return fmt.Errorf("%w: %v", ErrPresentation, err)
	}
	return nil
}

// PaintBackground fills the dirty region with the background color, or the
// whole surface when nothing is marked.
func (e *PixelEngine) PaintBackground() error {
	if err := e.requireSession("paint background"); err != nil {
		return err
	}
	back := e.chain.Back()
	if e.track.used {
		back.FillRect(e.track.invalid.Intersect(e.displayRect()), e.bg)
		return nil
	}
	back.Clear(e.bg)
	return nil
}

// PaintBufferLine draws one line of text spanning cells columns. The
// background under the line is always filled first; simple runs draw as a
// uniform-advance glyph run, anything needing contextual shaping goes
// through a full layout.
func (e *PixelEngine) PaintBufferLine(line string, cells int, coord cellframe.CellPoint) error {
	if err := e.requireSession("paint buffer line"); err != nil {
		return err
	}

	shaped, err := text.ShapeLine(e.face, line, coord, cells, e.size)
	if err != nil {
		return fmt.Errorf("render: paint buffer line: %w", err)
	}

	back := e.chain.Back()
	back.FillRect(shaped.Bounds, e.bg)
	switch shaped.Kind {
	case text.ShapeFast:
		back.DrawGlyphRun(e.face, shaped.Glyphs, shaped.Origin, shaped.Advance, e.fg)
	case text.ShapeLayout:
		back.DrawLayout(e.face, shaped.Layout, shaped.Origin, e.fg)
	}
	return nil
}

// PaintBufferGridLines draws the named edges for a horizontal run of
// cells. Bottom and right edges sit on the last pixel inside the cell.
func (e *PixelEngine) PaintBufferGridLines(lines GridLines, color cellframe.RGBA, coord cellframe.CellPoint, cells int) error {
	if err := e.requireSession("paint grid lines"); err != nil {
		return err
	}
	if lines == GridLineNone || cells <= 0 {
		return nil
	}

	cell := e.cell()
	origin := coord.PixelOrigin(cell)
	back := e.chain.Back()
	for i := 0; i < cells; i++ {
		x := origin.X + i*cell.Width
		right := x + cell.Width - 1
		bottom := origin.Y + cell.Height - 1
		if lines&GridLineTop != 0 {
			back.DrawLine(image.Pt(x, origin.Y), image.Pt(right, origin.Y), color)
		}
		if lines&GridLineBottom != 0 {
			back.DrawLine(image.Pt(x, bottom), image.Pt(right, bottom), color)
		}
		if lines&GridLineLeft != 0 {
			back.DrawLine(image.Pt(x, origin.Y), image.Pt(x, bottom), color)
		}
		if lines&GridLineRight != 0 {
			back.DrawLine(image.Pt(right, origin.Y), image.Pt(right, bottom), color)
		}
	}
	return nil
}

// PaintSelection highlights a cell rectangle with the foreground color at
// half opacity. The standing brushes are untouched.
func (e *PixelEngine) PaintSelection(rect cellframe.CellRect) error {
	if err := e.requireSession("paint selection"); err != nil {
		return err
	}
	px := rect.Pixels(e.cell()).Intersect(e.displayRect())
	e.chain.Back().FillRect(px, e.fg.WithAlpha(0.5))
	return nil
}

// PaintCursor draws the cursor overlay at its cell position.
func (e *PixelEngine) PaintCursor(opts CursorOptions) error {
	if err := e.requireSession("paint cursor"); err != nil {
		return err
	}

	rect, paint, err := cellframe.CursorRect(
		opts.Coord, e.cell(), opts.Style, opts.HeightPercent, opts.DoubleWidth,
		e.minCursorPercent, e.maxCursorPercent,
	)
	if err != nil {
		return fmt.Errorf("render: paint cursor: %w", err)
	}

	color := e.fg
	if opts.Color != nil {
		color = *opts.Color
	}

	back := e.chain.Back()
	if paint == cellframe.CursorPaintOutline {
		back.StrokeRect(rect, color)
		return nil
	}
	back.FillRect(rect, color)
	return nil
}

// UpdateDrawingBrushes sets the standing foreground and background colors.
func (e *PixelEngine) UpdateDrawingBrushes(fg, bg cellframe.RGBA) error {
	e.fg, e.bg = fg, bg
	return nil
}

// UpdateFont resolves the requested font and derives the cell size from
// it. The cell size stays fixed until the next update.
func (e *PixelEngine) UpdateFont(req text.FontRequest) (text.FontInfo, error) {
	src := e.fonts.Resolve(req.Family, req.Weight, req.Style, req.Stretch)
	face, err := text.NewFace(src, req.Height)
	if err != nil {
		return text.FontInfo{}, fmt.Errorf("render: update font: %w", err)
	}
	e.face = face
	cellframe.Logger().Debug("font updated",
		"family", src.Name(), "height", req.Height,
		"cellWidth", face.Cell.Width, "cellHeight", face.Cell.Height)
	return text.FontInfo{Family: src.Name(), Weight: req.Weight}, nil
}

// GetDirtyRectInChars reports the accumulated dirty region in inclusive
// cell coordinates. Without any marked region it is the zero rectangle.
func (e *PixelEngine) GetDirtyRectInChars() cellframe.CellRect {
	if !e.track.used {
		return cellframe.CellRect{}
	}
	return cellframe.DirtyRectInCells(e.track.invalid, e.cell())
}

// GetFontSize reports the current cell size in pixels.
func (e *PixelEngine) GetFontSize() cellframe.CellSize {
	return e.cell()
}

// IsGlyphWide reports whether the glyph occupies two cells.
func (e *PixelEngine) IsGlyphWide(s string) bool {
	return runewidth.StringWidth(s) >= 2
}

// UpdateTitle notifies the title channel without blocking; with no channel
// configured, or a full one, the update is dropped.
func (e *PixelEngine) UpdateTitle(title string) error {
	if e.titleCh == nil {
		return nil
	}
	select {
	case e.titleCh <- title:
	default:
	}
	return nil
}

func (e *PixelEngine) cell() cellframe.CellSize {
	if e.face == nil {
		return cellframe.CellSize{}
	}
	return e.face.Cell
}

func (e *PixelEngine) displayRect() image.Rectangle {
	if e.size != (image.Point{}) {
		return image.Rectangle{Max: e.size}
	}
	if e.target != nil {
		return image.Rectangle{Max: e.target.Size()}
	}
	return image.Rectangle{}
}

func (e *PixelEngine) createResources(size image.Point) error {
	chain, err := surface.NewSwapChain(e.backend, surface.Options{
		Width:  size.X,
		Height: size.Y,
		Device: e.device,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResourceCreation, err)
	}
	e.chain = chain
	e.size = size
	cellframe.Logger().Debug("surface resources created", "width", size.X, "height", size.Y)
	return nil
}

func (e *PixelEngine) releaseResources() {
	if e.chain != nil {
		e.chain.Close()
		e.chain = nil
	}
	e.size = image.Point{}
}

func (e *PixelEngine) requireSession(op string) error {
	if !e.painting || e.chain == nil {
		return fmt.Errorf("render: %s: %w", op, ErrInvalidState)
	}
	return nil
}

var _ Engine = (*PixelEngine)(nil)
