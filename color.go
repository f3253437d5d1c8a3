package cellframe

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// WithAlpha returns the same color with its alpha component replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
		A: float64(a) / 65535,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// FromColorRef converts a 0x00BBGGRR packed color (GDI byte order) to RGBA.
func FromColorRef(ref uint32) RGBA {
	return RGBA{
		R: float64(ref&0x0000FF) / 255,
		G: float64((ref&0x00FF00)>>8) / 255,
		B: float64((ref&0xFF0000)>>16) / 255,
		A: 1.0,
	}
}

// Common colors.
var (
	Black = RGB(0, 0, 0)
	White = RGB(1, 1, 1)
)

// legacyPalette is the 16-color console palette indexed by a 4-bit
// legacy color attribute.
var legacyPalette = [16]RGBA{
	RGB(0, 0, 0),          // black
	RGB(0, 0, 0.5),        // dark blue
	RGB(0, 0.5, 0),        // dark green
	RGB(0, 0.5, 0.5),      // dark cyan
	RGB(0.5, 0, 0),        // dark red
	RGB(0.5, 0, 0.5),      // dark magenta
	RGB(0.5, 0.5, 0),      // dark yellow
	RGB(0.75, 0.75, 0.75), // gray
	RGB(0.5, 0.5, 0.5),    // dark gray
	RGB(0, 0, 1),          // blue
	RGB(0, 1, 0),          // green
	RGB(0, 1, 1),          // cyan
	RGB(1, 0, 0),          // red
	RGB(1, 0, 1),          // magenta
	RGB(1, 1, 0),          // yellow
	RGB(1, 1, 1),          // white
}

// ColorFromAttribute converts a legacy color attribute to a foreground and
// background color. The low nibble selects the foreground, the high nibble
// the background.
func ColorFromAttribute(attr uint8) (fg, bg RGBA) {
	return legacyPalette[attr&0x0F], legacyPalette[(attr>>4)&0x0F]
}

// AttributeFromColors maps a foreground/background pair back to the nearest
// legacy color attribute by Euclidean distance within the console palette.
func AttributeFromColors(fg, bg RGBA) uint8 {
	return uint8(nearestLegacyIndex(bg))<<4 | uint8(nearestLegacyIndex(fg))
}

func nearestLegacyIndex(c RGBA) int {
	best, bestDist := 0, 4.0
	for i, p := range legacyPalette {
		dr := c.R - p.R
		dg := c.G - p.G
		db := c.B - p.B
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
