// Package cellframe implements a terminal-grid rendering engine: it turns a
// character-cell buffer into painted frames, tracking which regions changed
// since the last frame and presenting only the minimal necessary update.
//
// The root package holds the pure pieces shared by every backend: cell and
// pixel geometry, rectangle algebra, color conversion, and cursor shape
// computation. The render subpackage provides the paint/present engines, the
// surface subpackage the drawing targets and presentation plumbing, and the
// text subpackage font resolution and glyph shaping.
package cellframe
