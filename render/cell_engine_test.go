package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/thisnullptr/cellframe"
)

func newSimEngine(t *testing.T) (*CellEngine, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)

	e := NewCellEngine(screen)
	if err := e.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	return e, screen
}

func readScreenLine(screen tcell.Screen, x, y, width int) string {
	runes := make([]rune, 0, width)
	for i := 0; i < width; i++ {
		ch, _, _, _ := screen.GetContent(x+i, y)
		if ch == 0 {
			ch = ' '
		}
		runes = append(runes, ch)
	}
	return strings.TrimRight(string(runes), " ")
}

func TestCellEnginePaintSequencing(t *testing.T) {
	e, _ := newSimEngine(t)

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
}

func TestCellEngineStartPaintWithoutScreen(t *testing.T) {
	e := &CellEngine{enabled: true}
	if err := e.StartPaint(); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("StartPaint without screen: got %v, want ErrInvalidHandle", err)
	}
}

func TestCellEnginePaintBufferLine(t *testing.T) {
	e, screen := newSimEngine(t)

	e.StartPaint()
	e.PaintBackground()
	if err := e.PaintBufferLine("hello", 5, cellframe.CellPoint{X: 2, Y: 1}); err != nil {
		t.Fatalf("PaintBufferLine: %v", err)
	}
	e.EndPaint()

	if got := readScreenLine(screen, 0, 1, 10); got != "  hello" {
		t.Errorf("row 1 = %q, want %q", got, "  hello")
	}
}

func TestCellEngineDiffSkipsUnchangedCells(t *testing.T) {
	e, screen := newSimEngine(t)

	paint := func(line string) {
		e.StartPaint()
		e.PaintBackground()
		e.PaintBufferLine(line, len(line), cellframe.CellPoint{})
		e.EndPaint()
	}
	paint("abc")

	// Clear the screen behind the engine's back; an unchanged cell must
	// not be rewritten, a changed one must.
	screen.SetContent(0, 0, '?', nil, tcell.StyleDefault)
	screen.SetContent(2, 0, '?', nil, tcell.StyleDefault)
	paint("abX")

	if ch, _, _, _ := screen.GetContent(0, 0); ch != '?' {
		t.Errorf("unchanged cell was rewritten: %q", ch)
	}
	if ch, _, _, _ := screen.GetContent(2, 0); ch != 'X' {
		t.Errorf("changed cell not rewritten: %q", ch)
	}
}

func TestCellEngineWideGlyphContinuation(t *testing.T) {
	e, screen := newSimEngine(t)

	e.StartPaint()
	e.PaintBackground()
	e.PaintBufferLine("漢x", 3, cellframe.CellPoint{})
	e.EndPaint()

	if ch, _, _, _ := screen.GetContent(0, 0); ch != '漢' {
		t.Errorf("lead cell = %q, want 漢", ch)
	}
	// The wide glyph spans two cells; x lands in the third.
	if ch, _, _, _ := screen.GetContent(2, 0); ch != 'x' {
		t.Errorf("cell after wide glyph = %q, want x", ch)
	}
}

func TestCellEngineSelectionReversesAttribute(t *testing.T) {
	e, _ := newSimEngine(t)
	e.UpdateDrawingBrushes(cellframe.White, cellframe.Black)

	e.StartPaint()
	e.PaintBackground()
	e.PaintBufferLine("sel", 3, cellframe.CellPoint{})
	before := e.next[0][0].attr
	if err := e.PaintSelection(cellframe.CellRect{Right: 2, Bottom: 0}); err != nil {
		t.Fatalf("PaintSelection: %v", err)
	}
	e.EndPaint()

	want := before>>4 | before<<4
	if got := e.next[0][0].attr; got != want {
		t.Errorf("selected attr = %#x, want %#x", got, want)
	}
}

func TestCellEngineBackgroundBlanksToZeroAttribute(t *testing.T) {
	e, _ := newSimEngine(t)
	e.UpdateDrawingBrushes(cellframe.White, cellframe.Black)

	e.StartPaint()
	e.PaintBackground()
	e.EndPaint()

	blank := e.next[0][0]
	if blank.r != ' ' || blank.attr != 0 {
		t.Errorf("blank cell = %+v, want a space with attribute zero", blank)
	}
	if e.attr == 0 {
		t.Error("blanking must not touch the standing brush")
	}
}

func TestCellEngineDirtyRectIsFullDisplay(t *testing.T) {
	e, screen := newSimEngine(t)

	e.StartPaint()
	e.EndPaint()

	w, h := screen.Size()
	want := cellframe.CellRect{Right: w - 1, Bottom: h - 1}
	if got := e.GetDirtyRectInChars(); got != want {
		t.Errorf("dirty = %+v, want %+v", got, want)
	}
}

func TestCellEngineBrushMapsToLegacyAttribute(t *testing.T) {
	e, _ := newSimEngine(t)

	e.UpdateDrawingBrushes(cellframe.RGB(1, 0, 0), cellframe.RGB(0, 0, 0))
	if e.attr != 0x0C {
		t.Errorf("attr = %#x, want 0x0C (bright red on black)", e.attr)
	}
}

func TestCellEngineResizeReallocatesBuffers(t *testing.T) {
	e, screen := newSimEngine(t)

	e.StartPaint()
	e.EndPaint()
	w := e.width

	screen.SetSize(w+10, 5)
	e.StartPaint()
	e.EndPaint()

	if e.width != w+10 || e.height != 5 {
		t.Errorf("buffers = %dx%d, want %dx%d", e.width, e.height, w+10, 5)
	}
	if len(e.next) != 5 || len(e.next[0]) != w+10 {
		t.Errorf("shadow buffer not reallocated")
	}
}
