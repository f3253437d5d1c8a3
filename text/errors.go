package text

import "errors"

// Sentinel errors for the text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoReferenceGlyph is returned when the reference glyph used for
	// cell sizing is missing from the font.
	ErrNoReferenceGlyph = errors.New("text: font has no reference glyph")

	// ErrBadMetrics is returned when a font reports metrics that cannot
	// produce a usable cell size.
	ErrBadMetrics = errors.New("text: unusable font metrics")
)
