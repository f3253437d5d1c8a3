package text

import (
	"bytes"
	"fmt"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// GlyphID is a glyph index within a font.
type GlyphID uint16

// FontSource represents a loaded font file.
// One FontSource can create multiple Face instances at different cell
// heights. FontSource is heavyweight and should be shared.
//
// FontSource methods are safe for concurrent use; the underlying sfnt
// buffer is guarded internally.
type FontSource struct {
	data []byte
	font *opentype.Font
	name string
	upem int

	mu  sync.Mutex
	buf sfnt.Buffer

	// gotext holds the lazily parsed go-text font used only by the
	// fallback layout path. gtfont.Font is read-only once parsed.
	gotextOnce sync.Once
	gotext     *gtfont.Font
	gotextErr  error
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}

	s := &FontSource{
		data: append([]byte(nil), data...),
		font: f,
		upem: int(f.UnitsPerEm()),
	}
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		s.name = name
	}
	return s, nil
}

// Name returns the font family name, or "" if the font does not carry one.
func (s *FontSource) Name() string { return s.name }

// UnitsPerEm returns the design units per em for the font.
func (s *FontSource) UnitsPerEm() int { return s.upem }

// GlyphIndex returns the glyph index for a rune, or 0 if the font has no
// glyph for it.
func (s *FontSource) GlyphIndex(r rune) GlyphID {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.font.GlyphIndex(&s.buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}

// glyphAdvanceDesign returns the advance of a glyph in font design units.
func (s *FontSource) glyphAdvanceDesign(g GlyphID) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	adv, err := s.font.GlyphAdvance(&s.buf, sfnt.GlyphIndex(g), fixed.I(s.upem), xfont.HintingNone)
	if err != nil {
		return 0, fmt.Errorf("text: glyph advance: %w", err)
	}
	return fixedToFloat(adv), nil
}

// metricsDesign returns the ascent and descent in font design units.
// Both values are positive distances from the baseline.
func (s *FontSource) metricsDesign() (ascent, descent float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.font.Metrics(&s.buf, fixed.I(s.upem), xfont.HintingNone)
	if err != nil {
		return 0, 0, fmt.Errorf("text: font metrics: %w", err)
	}
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent), nil
}

// GlyphOutline loads the outline segments for a glyph at the given pixel
// size. The segments are positioned relative to the glyph origin on the
// baseline.
func (s *FontSource) GlyphOutline(g GlyphID, ppem float64) (sfnt.Segments, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	segs, err := s.font.LoadGlyph(&s.buf, sfnt.GlyphIndex(g), floatToFixed(ppem), nil)
	if err != nil {
		return nil, fmt.Errorf("text: load glyph %d: %w", g, err)
	}
	return segs, nil
}

// goTextFont parses the font with go-text/typesetting for the fallback
// layout path. The parse happens at most once per source.
func (s *FontSource) goTextFont() (*gtfont.Font, error) {
	s.gotextOnce.Do(func() {
		face, err := gtfont.ParseTTF(bytes.NewReader(s.data))
		if err != nil {
			s.gotextErr = fmt.Errorf("text: parse font for layout: %w", err)
			return
		}
		s.gotext = face.Font
	})
	return s.gotext, s.gotextErr
}

// floatToFixed converts a float64 pixel size to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a 26.6 fixed point value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
