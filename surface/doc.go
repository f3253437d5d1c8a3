// Copyright 2026 The cellframe Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the drawing targets the rendering engine paints
// into and the presentation plumbing that hands finished frames to a
// display.
//
// A Surface is a batch-oriented 2D canvas; a SwapChain pairs two surfaces
// so the engine can draw incrementally against the previously shown frame
// and present only the changed region. Backends register themselves with
// the package registry; the built-in "image" backend renders to an
// *image.RGBA on the CPU.
package surface
