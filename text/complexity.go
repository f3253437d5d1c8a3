package text

import (
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/bidi"
)

// Complexity analyzes a line of text and reports whether it can be drawn as
// a uniform-advance glyph run without contextual shaping.
//
// It scans the leading simple prefix of the line and returns whether the
// entire line is simple, the number of runes in that prefix, and the glyph
// indices for the prefix. A rune is simple when it is a self-contained
// grapheme cluster (no combining marks), has left-to-right bidi behavior,
// is not a control character, and maps to a glyph in the font.
//
// The fast path applies only when simple is true, which requires the whole
// line to have been consumed by the scan.
func Complexity(line string, src *FontSource) (simple bool, consumed int, glyphs []GlyphID) {
	total := 0
	for range line {
		total++
	}
	if total == 0 {
		return false, 0, nil
	}

	glyphs = make([]GlyphID, 0, total)

	g := uniseg.NewGraphemes(line)
	for g.Next() {
		runes := g.Runes()
		if len(runes) != 1 {
			break
		}
		r := runes[0]
		if !simpleRune(r) {
			break
		}
		id := src.GlyphIndex(r)
		if id == 0 {
			break
		}
		glyphs = append(glyphs, id)
		consumed++
	}

	return consumed == total, consumed, glyphs
}

// simpleRune reports whether r can take the uniform-advance path on its own.
func simpleRune(r rune) bool {
	if r < 0x20 || r == 0x7F {
		return false
	}
	if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) {
		return false
	}

	p, _ := bidi.LookupString(string(r))
	switch p.Class() {
	case bidi.R, bidi.AL, bidi.AN, bidi.RLO, bidi.RLE, bidi.RLI:
		return false
	}
	return true
}
