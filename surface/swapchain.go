// Copyright 2026 The cellframe Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"
	"image"
)

// ErrNilPresenter is returned when a swap chain is presented without a
// presenter.
var ErrNilPresenter = errors.New("surface: nil presenter")

// PresentParams restricts a present to the regions that actually changed.
// A zero value means "present everything".
type PresentParams struct {
	// Dirty lists the changed pixel rectangles. Empty means the whole
	// frame changed.
	Dirty []image.Rectangle

	// Scroll, when non-nil, names the pixel rectangle whose prior
	// contents were translated by Offset before the dirty regions were
	// repainted.
	Scroll *image.Rectangle

	// Offset is the scroll translation in pixels. Only meaningful when
	// Scroll is set.
	Offset *image.Point
}

// Presenter receives completed frames from a SwapChain. The terminal host
// implements this to push pixels at the screen, a window, or an encoder.
type Presenter interface {
	Present(frame *image.RGBA, params PresentParams) error
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(frame *image.RGBA, params PresentParams) error

func (f PresenterFunc) Present(frame *image.RGBA, params PresentParams) error {
	return f(frame, params)
}

// SwapChain pairs two surfaces. Drawing always targets the back surface;
// Present hands the back frame to a Presenter, flips the pair, and copies
// the just-presented frame into the new back surface so that partial
// repaints start from complete contents.
type SwapChain struct {
	back  Surface
	front Surface
}

// NewSwapChain creates a swap chain of two surfaces from the named backend
// (or the best available backend when name is empty).
func NewSwapChain(name string, opts Options) (*SwapChain, error) {
	create := func() (Surface, error) {
		if name == "" {
			return New(opts)
		}
		return NewByName(name, opts)
	}

	back, err := create()
	if err != nil {
		return nil, fmt.Errorf("surface: create back buffer: %w", err)
	}
	front, err := create()
	if err != nil {
		back.Close()
		return nil, fmt.Errorf("surface: create front buffer: %w", err)
	}
	return &SwapChain{back: back, front: front}, nil
}

// Back returns the surface drawing should target.
func (sc *SwapChain) Back() Surface { return sc.back }

// Size returns the chain's dimensions in pixels.
func (sc *SwapChain) Size() image.Point {
	return image.Pt(sc.back.Width(), sc.back.Height())
}

// Present pushes the back surface at the presenter, flips the buffers, and
// seeds the new back surface with the presented frame. Any failure is
// returned and the chain is left unflipped.
func (sc *SwapChain) Present(p Presenter, params PresentParams) error {
	if p == nil {
		return ErrNilPresenter
	}

	frame := sc.back.Snapshot()
	if err := p.Present(frame, params); err != nil {
		return err
	}

	sc.back, sc.front = sc.front, sc.back
	return sc.copyFrontToBack()
}

// Close releases both surfaces.
func (sc *SwapChain) Close() error {
	err := sc.back.Close()
	if err2 := sc.front.Close(); err == nil {
		err = err2
	}
	return err
}

// copyFrontToBack replays the presented frame into the back surface so
// the next paint can redraw only its dirty regions.
func (sc *SwapChain) copyFrontToBack() error {
	if err := sc.back.BeginDraw(); err != nil {
		return err
	}
	sc.back.DrawImage(sc.front.Snapshot(), image.Point{})
	return sc.back.EndDraw()
}
