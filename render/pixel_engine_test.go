package render

import (
	"errors"
	"image"
	"testing"

	"github.com/thisnullptr/cellframe"
	"github.com/thisnullptr/cellframe/surface"
	"github.com/thisnullptr/cellframe/text"
)

type capturePresenter struct {
	frames []*image.RGBA
	params []surface.PresentParams
	err    error
}

func (p *capturePresenter) Present(frame *image.RGBA, params surface.PresentParams) error {
	if p.err != nil {
		return p.err
	}
	p.frames = append(p.frames, frame)
	p.params = append(p.params, params)
	return nil
}

func newTestEngine(t *testing.T, opts ...PixelOption) (*PixelEngine, *capturePresenter) {
	t.Helper()
	p := &capturePresenter{}
	size := image.Pt(320, 192)
	opts = append([]PixelOption{WithPresenter(p), WithBackend("image")}, opts...)
	e, err := NewPixelEngine(TargetFunc(func() image.Point { return size }), opts...)
	if err != nil {
		t.Fatalf("NewPixelEngine: %v", err)
	}
	if err := e.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	return e, p
}

func TestPixelEngineEnableDisableSequencing(t *testing.T) {
	e, _ := newTestEngine(t)

	if err := e.Enable(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("double Enable: got %v, want ErrInvalidState", err)
	}
	if err := e.Disable(); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if err := e.Disable(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("double Disable: got %v, want ErrInvalidState", err)
	}
}

func TestPixelEnginePaintSequencing(t *testing.T) {
	e, _ := newTestEngine(t)

	if err := e.EndPaint(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("EndPaint without session: got %v, want ErrInvalidArgument", err)
	}
	if err := e.StartPaint(); err != nil {
		t.Fatalf("StartPaint: %v", err)
	}
	if err := e.StartPaint(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("nested StartPaint: got %v, want ErrInvalidState", err)
	}
	if err := e.EndPaint(); err != nil {
		t.Fatalf("EndPaint: %v", err)
	}
	if err := e.EndPaint(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("second EndPaint: got %v, want ErrInvalidArgument", err)
	}
}

func TestPixelEngineStartPaintWithoutTarget(t *testing.T) {
	e := &PixelEngine{}
	if err := e.StartPaint(); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("StartPaint without target: got %v, want ErrInvalidHandle", err)
	}
}

func TestPixelEngineStartPaintDisabledOpensNoSession(t *testing.T) {
	p := &capturePresenter{}
	e, err := NewPixelEngine(
		TargetFunc(func() image.Point { return image.Pt(64, 32) }),
		WithPresenter(p), WithBackend("image"),
	)
	if err != nil {
		t.Fatalf("NewPixelEngine: %v", err)
	}

	if err := e.StartPaint(); err != nil {
		t.Fatalf("StartPaint while disabled: %v", err)
	}
	if e.painting {
		t.Error("disabled StartPaint opened a session")
	}
	if e.chain != nil {
		t.Error("disabled StartPaint allocated resources")
	}
}

func TestPixelEngineDrawOutsideSession(t *testing.T) {
	e, _ := newTestEngine(t)

	ops := map[string]func() error{
		"PaintBackground": e.PaintBackground,
		"PaintBufferLine": func() error { return e.PaintBufferLine("hi", 2, cellframe.CellPoint{}) },
		"PaintSelection":  func() error { return e.PaintSelection(cellframe.CellRect{Right: 1}) },
		"PaintCursor":     func() error { return e.PaintCursor(CursorOptions{Style: cellframe.CursorFullBox}) },
		"PaintGridLines": func() error {
			return e.PaintBufferGridLines(GridLineTop, cellframe.White, cellframe.CellPoint{}, 1)
		},
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrInvalidState) {
			t.Errorf("%s outside session: got %v, want ErrInvalidState", name, err)
		}
	}
}

func TestPixelEngineResizeRecreatesResources(t *testing.T) {
	size := image.Pt(320, 192)
	p := &capturePresenter{}
	e, err := NewPixelEngine(
		TargetFunc(func() image.Point { return size }),
		WithPresenter(p), WithBackend("image"),
	)
	if err != nil {
		t.Fatalf("NewPixelEngine: %v", err)
	}
	e.Enable()

	if err := e.StartPaint(); err != nil {
		t.Fatalf("StartPaint: %v", err)
	}
	first := e.chain
	e.EndPaint()

	size = image.Pt(640, 384)
	if err := e.StartPaint(); err != nil {
		t.Fatalf("StartPaint after resize: %v", err)
	}
	defer e.EndPaint()

	if e.chain == first {
		t.Error("resize did not recreate the swap chain")
	}
	if e.size != size {
		t.Errorf("resource size = %v, want %v", e.size, size)
	}
}

func TestPixelEngineEndPaintStagesPlanAndClearsTracker(t *testing.T) {
	e, _ := newTestEngine(t)
	cell := e.GetFontSize()

	e.Invalidate(cellframe.CellRect{Right: 9, Bottom: 0})
	e.InvalidateScroll(cellframe.CellDelta{DY: -1})

	if err := e.StartPaint(); err != nil {
		t.Fatalf("StartPaint: %v", err)
	}
	e.PaintBackground()
	if err := e.EndPaint(); err != nil {
		t.Fatalf("EndPaint: %v", err)
	}

	if !e.presentReady {
		t.Fatal("EndPaint staged no plan")
	}
	if len(e.presentParams.Dirty) != 1 {
		t.Fatalf("plan dirty = %v, want one rect", e.presentParams.Dirty)
	}
	if e.presentParams.Offset == nil || e.presentParams.Offset.Y != -cell.Height {
		t.Errorf("plan offset = %v, want DY %d", e.presentParams.Offset, -cell.Height)
	}
	if e.track.used || e.track.scroll != (image.Point{}) {
		t.Error("EndPaint left dirty/scroll state behind")
	}
}

func TestPixelEnginePresentDeliversAndClearsPlan(t *testing.T) {
	e, p := newTestEngine(t)

	e.InvalidateAll()
	e.StartPaint()
	e.PaintBackground()
	e.PaintBufferLine("hello", 5, cellframe.CellPoint{X: 1, Y: 1})
	if err := e.EndPaint(); err != nil {
		t.Fatalf("EndPaint: %v", err)
	}
	if err := e.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}

	if len(p.frames) != 1 {
		t.Fatalf("presenter got %d frames, want 1", len(p.frames))
	}
	if e.presentReady {
		t.Error("plan not cleared after present")
	}
	if err := e.Present(); err != nil || len(p.frames) != 1 {
		t.Errorf("second Present must be a no-op; err=%v frames=%d", err, len(p.frames))
	}
}

func TestPixelEnginePresentFailureReleasesResources(t *testing.T) {
	e, p := newTestEngine(t)
	p.err = errors.New("device lost")

	e.InvalidateAll()
	e.StartPaint()
	e.PaintBackground()
	e.EndPaint()

	if err := e.Present(); !errors.Is(err, ErrPresentation) {
		t.Fatalf("Present: got %v, want ErrPresentation", err)
	}
	if e.chain != nil {
		t.Error("presentation failure must release surface resources")
	}

	// The next paint rebuilds from scratch.
	p.err = nil
	if err := e.StartPaint(); err != nil {
		t.Fatalf("StartPaint after failure: %v", err)
	}
	if e.chain == nil {
		t.Error("StartPaint did not rebuild resources")
	}
	e.EndPaint()
}

func TestPixelEngineEndPaintFailureClearsState(t *testing.T) {
	e, _ := newTestEngine(t)

	e.Invalidate(cellframe.CellRect{Right: 4, Bottom: 0})
	e.InvalidateScroll(cellframe.CellDelta{DX: 1})
	if err := e.StartPaint(); err != nil {
		t.Fatalf("StartPaint: %v", err)
	}

	// Corrupt the surface mid-session; closing the batch then fails.
	e.chain.Back().Close()

	if err := e.EndPaint(); !errors.Is(err, surface.ErrClosed) {
		t.Fatalf("EndPaint on corrupted surface: got %v, want ErrClosed", err)
	}
	if e.presentReady {
		t.Error("failed EndPaint staged a plan")
	}
	if e.chain != nil {
		t.Error("failed EndPaint must release surface resources")
	}
	if e.track.used || e.track.scroll != (image.Point{}) {
		t.Error("failed EndPaint left dirty/scroll state behind")
	}

	// The dropped frame is not retried; the next paint rebuilds.
	if err := e.StartPaint(); err != nil {
		t.Fatalf("StartPaint after failure: %v", err)
	}
	if e.chain == nil {
		t.Error("StartPaint did not rebuild resources")
	}
	e.EndPaint()
}

func TestPixelEngineDisableClosesOpenSession(t *testing.T) {
	e, p := newTestEngine(t)

	e.InvalidateAll()
	e.StartPaint()
	e.PaintBackground()
	if err := e.Disable(); err != nil {
		t.Fatalf("Disable mid-session: %v", err)
	}

	if e.painting {
		t.Error("Disable left the session open")
	}
	if e.chain != nil {
		t.Error("Disable must release surface resources")
	}
	if err := e.Present(); err != nil || len(p.frames) != 0 {
		t.Errorf("Present after Disable must be a no-op; err=%v frames=%d", err, len(p.frames))
	}
	if err := e.EndPaint(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("EndPaint after Disable: got %v, want ErrInvalidArgument", err)
	}
}

func TestPixelEngineSelectionKeepsBrushes(t *testing.T) {
	e, _ := newTestEngine(t)
	fg, bg := cellframe.RGB(1, 0, 0), cellframe.RGB(0, 0, 1)
	e.UpdateDrawingBrushes(fg, bg)

	e.StartPaint()
	e.PaintSelection(cellframe.CellRect{Right: 2, Bottom: 0})
	e.EndPaint()

	if e.fg != fg || e.bg != bg {
		t.Errorf("selection mutated brushes: fg=%v bg=%v", e.fg, e.bg)
	}
}

func TestPixelEngineCursorUnknownStyle(t *testing.T) {
	e, _ := newTestEngine(t)
	e.StartPaint()
	defer e.EndPaint()

	err := e.PaintCursor(CursorOptions{Style: cellframe.CursorStyle(99)})
	if !errors.Is(err, cellframe.ErrNotImplemented) {
		t.Errorf("unknown cursor style: got %v, want ErrNotImplemented", err)
	}
}

func TestPixelEngineDirtyRectInChars(t *testing.T) {
	e, _ := newTestEngine(t)

	if got := e.GetDirtyRectInChars(); got != (cellframe.CellRect{}) {
		t.Errorf("clean engine dirty = %+v, want zero", got)
	}

	marked := cellframe.CellRect{Left: 2, Top: 1, Right: 6, Bottom: 3}
	e.Invalidate(marked)
	if got := e.GetDirtyRectInChars(); got != marked {
		t.Errorf("dirty in chars = %+v, want %+v", got, marked)
	}
}

func TestPixelEngineUpdateFontSetsCellSize(t *testing.T) {
	e, _ := newTestEngine(t)

	small := e.GetFontSize()

	info, err := e.UpdateFont(text.FontRequest{Family: text.DefaultFamily, Height: 32})
	if err != nil {
		t.Fatalf("UpdateFont: %v", err)
	}
	if info.Family != text.DefaultFamily {
		t.Errorf("resolved family = %q, want %q", info.Family, text.DefaultFamily)
	}

	large := e.GetFontSize()
	if large.Width <= small.Width || large.Height <= small.Height {
		t.Errorf("cell did not grow with the font: %+v -> %+v", small, large)
	}
}

func TestPixelEngineIsGlyphWide(t *testing.T) {
	e, _ := newTestEngine(t)
	tests := []struct {
		glyph string
		want  bool
	}{
		{"a", false},
		{"漢", true},
		{"ｱ", false},
	}
	for _, tt := range tests {
		if got := e.IsGlyphWide(tt.glyph); got != tt.want {
			t.Errorf("IsGlyphWide(%q) = %v, want %v", tt.glyph, got, tt.want)
		}
	}
}

func TestPixelEngineUpdateTitle(t *testing.T) {
	ch := make(chan string, 1)
	e, _ := newTestEngine(t, WithTitleChannel(ch))

	e.UpdateTitle("one")
	if got := <-ch; got != "one" {
		t.Errorf("title = %q, want %q", got, "one")
	}

	// A full channel never blocks; the update is dropped.
	ch <- "stale"
	if err := e.UpdateTitle("two"); err != nil {
		t.Errorf("UpdateTitle on full channel: %v", err)
	}
}
