package palette

import (
	"math"
	"math/rand"
	"testing"
)

func TestDefault(t *testing.T) {
	want := []string{"#f1f5f9", "#06b6d4", "#22c55e", "#f97316"}
	got := Default.Hex()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("color %d = %s, expected %s", i, got[i], want[i])
		}
	}

	c := Default.RGBA(1)
	if c.R != 0x06 || c.G != 0xb6 || c.B != 0xd4 || c.A != 0xff {
		t.Errorf("RGBA(1) = %+v", c)
	}
	if Default.Color(5) != Default[1] {
		t.Error("Color should wrap states modulo 4")
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]string{"#000000"}); err == nil {
		t.Error("expected error for short palette")
	}
	if _, err := Parse([]string{"#000000", "#111111", "nope", "#333333"}); err == nil {
		t.Error("expected error for bad hex")
	}
}

func TestRandomRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for range 50 {
		p := Random(rng)
		var hues [Size]float64
		for i, c := range p {
			h, s, l := c.Hsl()
			hues[i] = h
			// Allow for rounding through RGB.
			if s < 0.65 || s > 1.0001 {
				t.Errorf("saturation %.3f out of range", s)
			}
			if l < 0.43 || l > 0.72 {
				t.Errorf("lightness %.3f out of range", l)
			}
		}

		// Neighbouring hues sit roughly a quarter turn apart.
		for i := 1; i < Size; i++ {
			d := math.Mod(hues[i]-hues[i-1]+360, 360)
			if d < 55 || d > 125 {
				t.Errorf("hue gap %.1f between %d and %d", d, i-1, i)
			}
		}
	}
}

func TestRandomDeterministic(t *testing.T) {
	a := Random(rand.New(rand.NewSource(9)))
	b := Random(rand.New(rand.NewSource(9)))
	if a != b {
		t.Error("expected same seed to produce the same palette")
	}
}
