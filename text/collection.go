package text

import (
	"sync"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight is a font weight on the OpenType 100..900 scale.
type Weight int

// Common weights.
const (
	WeightNormal Weight = 400
	WeightBold   Weight = 700
)

// Style selects between upright and slanted faces.
type Style int

// Styles.
const (
	StyleNormal Style = iota
	StyleItalic
	StyleOblique
)

// Stretch is the glyph spacing class of a face.
type Stretch int

// Stretches.
const (
	StretchNormal Stretch = iota
	StretchCondensed
	StretchExpanded
)

// FontRequest describes the font a caller would like to draw with.
type FontRequest struct {
	Family  string
	Weight  Weight
	Style   Style
	Stretch Stretch

	// Height is the desired cell height in pixels.
	Height int
}

// FontInfo describes the font that was actually chosen.
type FontInfo struct {
	Family string
	Weight Weight
}

// DefaultFamily is the family used when a requested one cannot be found.
const DefaultFamily = "Go Mono"

// Collection resolves family names to font sources.
//
// A new Collection starts with the embedded Go fonts registered: "Go Mono"
// (the default, monospaced) and "Go". Hosts that enumerate real system
// fonts can register additional families.
type Collection struct {
	mu      sync.RWMutex
	sources map[string]*FontSource
}

// NewCollection creates a collection pre-populated with the embedded fonts.
func NewCollection() (*Collection, error) {
	c := &Collection{sources: make(map[string]*FontSource)}

	for _, f := range []struct {
		family string
		data   []byte
	}{
		{"Go Mono", gomono.TTF},
		{"Go", goregular.TTF},
	} {
		if err := c.Register(f.family, f.data); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register parses the font data and makes it resolvable under family.
// Registering an existing family replaces it.
func (c *Collection) Register(family string, data []byte) error {
	src, err := NewFontSource(data)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[family] = src
	return nil
}

// Resolve returns the source for the requested family, falling back to
// DefaultFamily when the family is unknown. Weight, style, and stretch are
// accepted for interface parity with real system collections; the embedded
// families carry a single regular face.
func (c *Collection) Resolve(family string, _ Weight, _ Style, _ Stretch) *FontSource {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if src, ok := c.sources[family]; ok {
		return src
	}
	return c.sources[DefaultFamily]
}
