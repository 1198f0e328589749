// Package palette produces the four display colors used to draw cell states.
// Colors have no effect on simulation semantics.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Size is the number of colors in a palette, one per cell state.
const Size = 4

// Palette holds one color per cell state. Index 0 is the inactive background.
type Palette [Size]colorful.Color

// Default palette: slate background, cyan, green, orange.
var Default = MustParse([]string{"#f1f5f9", "#06b6d4", "#22c55e", "#f97316"})

// Fixed colors used by renderers around the palette.
var (
	AntColor   = mustHex("#ef4444") // Red ant
	Backdrop   = mustHex("#0f172a") // Canvas behind the cells
	EmptyColor = mustHex("#1e293b") // Inactive cell outside art mode
)

// Parse builds a palette from exactly four hex strings.
func Parse(hexes []string) (Palette, error) {
	var p Palette
	if len(hexes) != Size {
		return p, fmt.Errorf("palette: need %d colors, got %d", Size, len(hexes))
	}
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return p, fmt.Errorf("palette: color %d: %w", i, err)
		}
		p[i] = c
	}
	return p, nil
}

// MustParse is like Parse but panics on error.
func MustParse(hexes []string) Palette {
	p, err := Parse(hexes)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseColor parses a single hex color.
func ParseColor(h string) (colorful.Color, error) {
	c, err := colorful.Hex(h)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("palette: %w", err)
	}
	return c, nil
}

func mustHex(h string) colorful.Color {
	c, err := colorful.Hex(h)
	if err != nil {
		panic(err)
	}
	return c
}

// Random generates four vibrant colors with hues spread a quarter turn apart
// from a random base, each jittered by up to 15 degrees.
func Random(rng *rand.Rand) Palette {
	var p Palette
	base := rng.Float64() * 360

	for i := range p {
		hue := math.Mod(base+float64(i)*90+(rng.Float64()*30-15)+360, 360)
		sat := 0.70 + rng.Float64()*0.30
		light := 0.45 + rng.Float64()*0.25
		p[i] = colorful.Hsl(hue, sat, light).Clamped()
	}
	return p
}

// Color returns the color for a cell state. States wrap modulo 4.
func (p Palette) Color(state uint8) colorful.Color {
	return p[int(state)%Size]
}

// RGBA returns the color for a cell state as an opaque RGBA value.
func (p Palette) RGBA(state uint8) color.RGBA {
	return ToRGBA(p.Color(state))
}

// Hex returns the hex strings of the palette.
func (p Palette) Hex() []string {
	out := make([]string, Size)
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}

// ToRGBA converts a colorful color into an opaque RGBA value.
func ToRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
