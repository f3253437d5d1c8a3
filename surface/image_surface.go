// Copyright 2026 The cellframe Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/draw"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/thisnullptr/cellframe"
	"github.com/thisnullptr/cellframe/text"
)

func init() {
	Register("image", 10, func(opts Options) (Surface, error) {
		return NewImageSurface(opts)
	}, nil)
}

// ImageSurface is a CPU-based surface that renders to an *image.RGBA.
// Glyph outlines are filled with an anti-aliased scanline rasterizer.
//
// This is the default software backend, registered under the name "image".
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	// rast is reused across glyph fills within a batch.
	rast *vector.Rasterizer

	drawing bool
	closed  bool
}

// NewImageSurface creates a new CPU-based surface. Non-positive dimensions
// are clamped to one pixel. The Device and Format options are ignored; the
// backing image is always RGBA.
func NewImageSurface(opts Options) (*ImageSurface, error) {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		rast:   vector.NewRasterizer(width, height),
	}, nil
}

// Width returns the surface width in pixels.
func (s *ImageSurface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *ImageSurface) Height() int { return s.height }

// BeginDraw opens a draw batch.
func (s *ImageSurface) BeginDraw() error {
	if s.closed {
		return ErrClosed
	}
	if s.drawing {
		return ErrBatchOpen
	}
	s.drawing = true
	return nil
}

// EndDraw closes the current draw batch. The CPU backend draws eagerly, so
// there is nothing to flush.
func (s *ImageSurface) EndDraw() error {
	if s.closed {
		return ErrClosed
	}
	if !s.drawing {
		return ErrNoBatch
	}
	s.drawing = false
	return nil
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c cellframe.RGBA) {
	if s.closed {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c.Color()), image.Point{}, draw.Src)
}

// FillRect fills a pixel rectangle with the given color.
func (s *ImageSurface) FillRect(r image.Rectangle, c cellframe.RGBA) {
	if s.closed {
		return
	}
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c.Color()), image.Point{}, draw.Over)
}

// StrokeRect draws a one-pixel outline just inside the rectangle.
func (s *ImageSurface) StrokeRect(r image.Rectangle, c cellframe.RGBA) {
	if s.closed || r.Empty() {
		return
	}
	s.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	s.FillRect(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	if r.Dy() > 2 {
		s.FillRect(image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1), c)
		s.FillRect(image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1), c)
	}
}

// DrawLine draws a one-pixel line between two points. Only horizontal and
// vertical lines are anti-alias free; diagonals use a simple DDA.
func (s *ImageSurface) DrawLine(from, to image.Point, c cellframe.RGBA) {
	if s.closed {
		return
	}
	switch {
	case from.Y == to.Y:
		x0, x1 := from.X, to.X
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		s.FillRect(image.Rect(x0, from.Y, x1+1, from.Y+1), c)
	case from.X == to.X:
		y0, y1 := from.Y, to.Y
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		s.FillRect(image.Rect(from.X, y0, from.X+1, y1+1), c)
	default:
		dx := to.X - from.X
		dy := to.Y - from.Y
		steps := max(abs(dx), abs(dy))
		col := c.Color()
		for i := 0; i <= steps; i++ {
			x := from.X + dx*i/steps
			y := from.Y + dy*i/steps
			if image.Pt(x, y).In(s.img.Bounds()) {
				s.img.Set(x, y, col)
			}
		}
	}
}

// DrawGlyphRun draws a run of glyphs with a uniform advance, anchored at
// origin on the text baseline.
func (s *ImageSurface) DrawGlyphRun(face *text.Face, glyphs []text.GlyphID, origin image.Point, advance float64, c cellframe.RGBA) {
	if s.closed || face == nil || len(glyphs) == 0 {
		return
	}
	x := float64(origin.X)
	for _, g := range glyphs {
		s.fillGlyph(face, g, x, float64(origin.Y), c)
		x += advance
	}
}

// DrawLayout draws a fully laid-out line anchored at the layout box's
// top-left corner. Glyph positions inside the layout are already
// baseline-relative, so they are only translated.
func (s *ImageSurface) DrawLayout(face *text.Face, layout *text.Layout, origin image.Point, c cellframe.RGBA) {
	if s.closed || face == nil || layout == nil {
		return
	}
	for _, pg := range layout.Glyphs {
		s.fillGlyph(face, pg.Glyph, float64(origin.X)+pg.X, float64(origin.Y)+pg.Y, c)
	}
}

// DrawImage draws an image with its top-left corner at the given position.
func (s *ImageSurface) DrawImage(img image.Image, at image.Point) {
	if s.closed || img == nil {
		return
	}
	r := img.Bounds().Sub(img.Bounds().Min).Add(at)
	draw.Draw(s.img, r, img, img.Bounds().Min, draw.Src)
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Close releases the surface. Close is idempotent.
func (s *ImageSurface) Close() error {
	s.closed = true
	return nil
}

// fillGlyph rasterizes one glyph outline with its baseline origin at
// (x, y). Segment coordinates from the font are y-down and
// baseline-relative, so they translate directly into image space.
func (s *ImageSurface) fillGlyph(face *text.Face, g text.GlyphID, x, y float64, c cellframe.RGBA) {
	segments, err := face.Source.GlyphOutline(g, face.Size)
	if err != nil || len(segments) == 0 {
		return
	}

	s.rast.Reset(s.width, s.height)
	s.rast.DrawOp = draw.Over

	ox := float32(x)
	oy := float32(y)
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			s.rast.MoveTo(ox+fixedToF32(seg.Args[0].X), oy+fixedToF32(seg.Args[0].Y))
		case sfnt.SegmentOpLineTo:
			s.rast.LineTo(ox+fixedToF32(seg.Args[0].X), oy+fixedToF32(seg.Args[0].Y))
		case sfnt.SegmentOpQuadTo:
			s.rast.QuadTo(
				ox+fixedToF32(seg.Args[0].X), oy+fixedToF32(seg.Args[0].Y),
				ox+fixedToF32(seg.Args[1].X), oy+fixedToF32(seg.Args[1].Y),
			)
		case sfnt.SegmentOpCubeTo:
			s.rast.CubeTo(
				ox+fixedToF32(seg.Args[0].X), oy+fixedToF32(seg.Args[0].Y),
				ox+fixedToF32(seg.Args[1].X), oy+fixedToF32(seg.Args[1].Y),
				ox+fixedToF32(seg.Args[2].X), oy+fixedToF32(seg.Args[2].Y),
			)
		}
	}
	s.rast.ClosePath()
	s.rast.Draw(s.img, s.img.Bounds(), image.NewUniform(c.Color()), image.Point{})
}

func fixedToF32(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
