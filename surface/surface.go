// Copyright 2026 The cellframe Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/thisnullptr/cellframe"
	"github.com/thisnullptr/cellframe/text"
)

// Sentinel errors for the surface package.
var (
	// ErrBatchOpen is returned when a draw batch is begun twice.
	ErrBatchOpen = errors.New("surface: draw batch already open")

	// ErrNoBatch is returned when a batch is ended without being begun.
	ErrNoBatch = errors.New("surface: no draw batch open")

	// ErrClosed is returned when a closed surface is used.
	ErrClosed = errors.New("surface: surface is closed")

	// ErrUnsupportedFormat is returned when a backend cannot provide the
	// requested texture format.
	ErrUnsupportedFormat = errors.New("surface: unsupported texture format")
)

// Options configures surface creation.
type Options struct {
	// Width and Height are the surface dimensions in pixels.
	Width, Height int

	// Device optionally provides GPU device access for accelerated
	// backends. CPU backends ignore it. When nil, NullDeviceHandle is
	// assumed.
	Device DeviceHandle

	// Format is the desired texture format. The zero value selects the
	// backend's default.
	Format gputypes.TextureFormat
}

// Surface is a batch-oriented 2D drawing target.
//
// All drawing must happen between BeginDraw and EndDraw. Surfaces are not
// safe for concurrent use; the owning engine serializes access.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// BeginDraw opens a draw batch. It fails if a batch is already open.
	BeginDraw() error

	// EndDraw closes the current draw batch and flushes pending
	// operations. A failure leaves the surface contents undefined.
	EndDraw() error

	// Clear fills the entire surface with the given color.
	Clear(c cellframe.RGBA)

	// FillRect fills a pixel rectangle with the given color.
	FillRect(r image.Rectangle, c cellframe.RGBA)

	// StrokeRect draws a one-pixel outline just inside the rectangle.
	StrokeRect(r image.Rectangle, c cellframe.RGBA)

	// DrawLine draws a one-pixel line between two points.
	DrawLine(from, to image.Point, c cellframe.RGBA)

	// DrawGlyphRun draws a run of glyphs with a uniform advance, anchored
	// at origin on the text baseline.
	DrawGlyphRun(face *text.Face, glyphs []text.GlyphID, origin image.Point, advance float64, c cellframe.RGBA)

	// DrawLayout draws a fully laid-out line anchored at the layout
	// box's top-left corner.
	DrawLayout(face *text.Face, layout *text.Layout, origin image.Point, c cellframe.RGBA)

	// DrawImage draws an image with its top-left corner at the given
	// position.
	DrawImage(img image.Image, at image.Point)

	// Snapshot returns a copy of the current surface contents.
	Snapshot() *image.RGBA

	// Close releases the surface's resources. Close is idempotent.
	Close() error
}
