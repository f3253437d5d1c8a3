package text

import (
	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"
)

// PositionedGlyph is one glyph of a laid-out line, positioned relative to
// the top-left corner of the line's bounding box.
type PositionedGlyph struct {
	Glyph GlyphID
	X, Y  float64
}

// Layout is the fallback result for a line that needs full shaping. It holds
// individually positioned glyphs produced by HarfBuzz shaping, which handles
// ligatures, combining marks, and right-to-left text.
type Layout struct {
	Glyphs []PositionedGlyph

	// MaxWidth and MaxHeight bound the layout box.
	MaxWidth, MaxHeight float64

	// ColorFont requests color glyph (emoji) rendering where the drawing
	// backend supports it. Always set for the fallback path.
	ColorFont bool
}

// NewLayout shapes the whole line with go-text/typesetting.
//
// The glyph positions are relative to the layout box's top-left corner, with
// the pen starting on the baseline at baselineY.
func NewLayout(face *Face, line string, maxWidth, maxHeight float64) (*Layout, error) {
	fnt, err := face.Source.goTextFont()
	if err != nil {
		return nil, err
	}

	runes := []rune(line)
	dir := baseDirection(runes)

	// gtfont.Face is cheap to create and not safe for concurrent use, so
	// each layout gets its own around the shared parsed font.
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      gtfont.NewFace(fnt),
		Size:      floatToFixed(face.Size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	var hb shaping.HarfbuzzShaper
	out := hb.Shape(input)

	baselineY := float64(face.BaselineY())

	glyphs := make([]PositionedGlyph, 0, len(out.Glyphs))
	var penX float64
	for _, g := range out.Glyphs {
		glyphs = append(glyphs, PositionedGlyph{
			Glyph: GlyphID(g.GlyphID),
			X:     penX + fixedToFloat(g.XOffset),
			Y:     baselineY - fixedToFloat(g.YOffset),
		})
		penX += fixedToFloat(g.XAdvance)
	}

	return &Layout{
		Glyphs:    glyphs,
		MaxWidth:  maxWidth,
		MaxHeight: maxHeight,
		ColorFont: true,
	}, nil
}

// baseDirection picks the paragraph direction from the first strong rune.
func baseDirection(runes []rune) di.Direction {
	for _, r := range runes {
		p, _ := bidi.LookupString(string(r))
		switch p.Class() {
		case bidi.L:
			return di.DirectionLTR
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		}
	}
	return di.DirectionLTR
}

// detectScript inspects the runes and returns the script of the first
// non-space character. Mixed-script lines shape under the first script,
// matching the single-run layout model.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
