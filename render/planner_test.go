package render

import (
	"image"
	"testing"
)

func TestBuildPresentParamsDirtyOnly(t *testing.T) {
	display := image.Rect(0, 0, 640, 384)
	dirty := image.Rect(0, 0, 64, 16)

	params := buildPresentParams(dirty, true, image.Point{}, display)

	if len(params.Dirty) != 1 || params.Dirty[0] != dirty {
		t.Errorf("Dirty = %v, want [%v]", params.Dirty, dirty)
	}
	if params.Scroll != nil || params.Offset != nil {
		t.Error("zero scroll must omit scroll fields")
	}
}

func TestBuildPresentParamsScrollPreservesRemainder(t *testing.T) {
	display := image.Rect(0, 0, 640, 384)
	// Dirty band across the top; the rest of the display scrolls.
	dirty := image.Rect(0, 0, 640, 16)
	offset := image.Pt(0, -16)

	params := buildPresentParams(dirty, true, offset, display)

	wantScroll := image.Rect(0, 16, 640, 384)
	if params.Scroll == nil || *params.Scroll != wantScroll {
		t.Fatalf("Scroll = %v, want %v", params.Scroll, wantScroll)
	}
	if params.Offset == nil || *params.Offset != offset {
		t.Errorf("Offset = %v, want %v", params.Offset, offset)
	}
}

func TestBuildPresentParamsFullDirtyDropsScroll(t *testing.T) {
	display := image.Rect(0, 0, 640, 384)

	params := buildPresentParams(display, true, image.Pt(8, 0), display)

	if params.Scroll != nil || params.Offset != nil {
		t.Error("nothing preserved: scroll fields must be omitted")
	}
	if len(params.Dirty) != 1 || params.Dirty[0] != display {
		t.Errorf("Dirty = %v, want full display", params.Dirty)
	}
}

func TestBuildPresentParamsNothingMarked(t *testing.T) {
	display := image.Rect(0, 0, 640, 384)

	params := buildPresentParams(image.Rectangle{}, false, image.Point{}, display)

	if params.Dirty != nil || params.Scroll != nil || params.Offset != nil {
		t.Errorf("empty frame produced params %+v", params)
	}
}
