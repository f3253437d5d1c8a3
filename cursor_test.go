package cellframe

import (
	"errors"
	"image"
	"testing"
)

func TestCursorRect(t *testing.T) {
	cell := CellSize{Width: 8, Height: 16}
	pos := CellPoint{X: 2, Y: 1}
	base := image.Rect(16, 16, 24, 32)

	tests := []struct {
		name          string
		style         CursorStyle
		heightPercent int
		doubleWidth   bool
		wantRect      image.Rectangle
		wantPaint     CursorPaint
	}{
		{
			"full box",
			CursorFullBox, 0, false,
			base, CursorPaintFill,
		},
		{
			"full box double width",
			CursorFullBox, 0, true,
			image.Rect(16, 16, 32, 32), CursorPaintFill,
		},
		{
			"empty box outlines",
			CursorEmptyBox, 0, false,
			base, CursorPaintOutline,
		},
		{
			"vertical bar",
			CursorVerticalBar, 0, false,
			image.Rect(16, 16, 17, 32), CursorPaintFill,
		},
		{
			"underscore",
			CursorUnderscore, 0, false,
			image.Rect(16, 31, 24, 32), CursorPaintFill,
		},
		{
			// 0% clamps up to the minimum: 16 * 25 / 100 = 4 pixels tall.
			"legacy zero percent clamps to min",
			CursorLegacy, 0, false,
			image.Rect(16, 28, 24, 32), CursorPaintFill,
		},
		{
			"legacy 100 percent covers the cell",
			CursorLegacy, 100, false,
			base, CursorPaintFill,
		},
		{
			"legacy over 100 clamps to max",
			CursorLegacy, 250, false,
			base, CursorPaintFill,
		},
		{
			// 16 * 50 / 100 = 8 pixels from the bottom.
			"legacy half height",
			CursorLegacy, 50, false,
			image.Rect(16, 24, 24, 32), CursorPaintFill,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect, paint, err := CursorRect(pos, cell, tt.style, tt.heightPercent, tt.doubleWidth,
				DefaultMinCursorHeightPercent, DefaultMaxCursorHeightPercent)
			if err != nil {
				t.Fatalf("CursorRect returned error: %v", err)
			}
			if rect != tt.wantRect {
				t.Errorf("rect = %v, want %v", rect, tt.wantRect)
			}
			if paint != tt.wantPaint {
				t.Errorf("paint = %v, want %v", paint, tt.wantPaint)
			}
		})
	}
}

func TestCursorRectUnknownStyle(t *testing.T) {
	_, _, err := CursorRect(CellPoint{}, CellSize{Width: 8, Height: 16}, CursorStyle(99), 50, false,
		DefaultMinCursorHeightPercent, DefaultMaxCursorHeightPercent)
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("err = %v, want ErrNotImplemented", err)
	}
}
