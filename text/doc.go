// Package text provides font resolution, cell metric derivation, and glyph
// shaping for terminal-grid rendering.
//
// Shaping a line of text makes a single performance-sensitive decision: a
// run that needs no contextual shaping is drawn as one glyph run with
// uniform per-cell advances (the fast path), while anything else falls back
// to a full HarfBuzz layout via go-text/typesetting, which handles
// ligatures, combining marks, and bidirectional text at higher cost.
package text
