// Command cellframe-demo paints a small terminal grid with cursor and
// selection overlays and writes the presented frame to a PNG.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/thisnullptr/cellframe"
	"github.com/thisnullptr/cellframe/render"
	"github.com/thisnullptr/cellframe/surface"
	"github.com/thisnullptr/cellframe/text"
)

func main() {
	var (
		cols    = flag.Int("cols", 40, "grid width in cells")
		rows    = flag.Int("rows", 10, "grid height in cells")
		height  = flag.Int("font-height", 20, "font height in pixels")
		output  = flag.String("output", "cellframe-demo.png", "output file")
		verbose = flag.Bool("v", false, "log engine internals")
	)
	flag.Parse()

	if *verbose {
		cellframe.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var frame *image.RGBA
	presenter := surface.PresenterFunc(func(f *image.RGBA, _ surface.PresentParams) error {
		frame = f
		return nil
	})

	var size image.Point
	engine, err := render.NewPixelEngine(
		render.TargetFunc(func() image.Point { return size }),
		render.WithPresenter(presenter),
		render.WithBackend("image"),
	)
	if err != nil {
		log.Fatalf("create engine: %v", err)
	}

	if _, err := engine.UpdateFont(text.FontRequest{Family: text.DefaultFamily, Height: *height}); err != nil {
		log.Fatalf("update font: %v", err)
	}

	cell := engine.GetFontSize()
	size = image.Pt(*cols*cell.Width, *rows*cell.Height)

	if err := engine.Enable(); err != nil {
		log.Fatalf("enable: %v", err)
	}
	engine.InvalidateAll()

	if err := engine.StartPaint(); err != nil {
		log.Fatalf("start paint: %v", err)
	}
	paintGrid(engine, *cols, *rows)
	if err := engine.EndPaint(); err != nil {
		log.Fatalf("end paint: %v", err)
	}
	if err := engine.Present(); err != nil {
		log.Fatalf("present: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, frame); err != nil {
		log.Fatalf("encode png: %v", err)
	}
	log.Printf("wrote %s (%dx%d)", *output, frame.Bounds().Dx(), frame.Bounds().Dy())
}

func paintGrid(engine *render.PixelEngine, cols, rows int) {
	engine.UpdateDrawingBrushes(cellframe.RGB(0.85, 0.85, 0.85), cellframe.RGB(0.05, 0.05, 0.1))
	engine.PaintBackground()

	lines := []string{
		"cellframe demo",
		"",
		"plain ascii takes the fast path",
		"café naïve — combining marks fall back",
		"שלום mixed direction text",
	}
	for i, line := range lines {
		engine.PaintBufferLine(line, cols, cellframe.CellPoint{Y: i})
	}

	engine.PaintBufferGridLines(
		render.GridLineTop|render.GridLineBottom,
		cellframe.RGB(0.3, 0.3, 0.5),
		cellframe.CellPoint{Y: 6}, cols,
	)

	engine.PaintSelection(cellframe.CellRect{Left: 0, Top: 2, Right: 10, Bottom: 2})

	engine.PaintCursor(render.CursorOptions{
		Coord: cellframe.CellPoint{X: 14, Y: 0},
		Style: cellframe.CursorFullBox,
	})
	engine.PaintCursor(render.CursorOptions{
		Coord:         cellframe.CellPoint{X: 16, Y: 0},
		Style:         cellframe.CursorLegacy,
		HeightPercent: 50,
	})
}
