package systems

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// LerpColor interpolates channel-wise between a and b. t is clamped to [0, 1],
// so the endpoints are returned exactly.
func LerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	t = Clamp01(t)
	ch := func(x, y uint8) uint8 {
		return uint8(math.Round(Lerp(float64(x), float64(y), t)))
	}
	return color.NRGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}

// AdjustBrightness adds delta to every colour channel, clamped to [0, 255]. Alpha is kept.
func AdjustBrightness(c color.NRGBA, delta int) color.NRGBA {
	ch := func(v uint8) uint8 {
		return uint8(Clamp(int(v)+delta, 0, 255))
	}
	return color.NRGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

// Gradient3 maps t in [0, 1] across three stops with two chained interpolations:
// low to high over the first half, high to peak over the second.
func Gradient3(low, high, peak color.NRGBA, t float64) color.NRGBA {
	t = Clamp01(t)
	if t < 0.5 {
		return LerpColor(low, high, t*2)
	}
	return LerpColor(high, peak, (t-0.5)*2)
}

// WithAlpha returns c with alpha set from a in [0, 1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(Clamp01(a) * 255))
	return c
}

// HSL converts hue (degrees), saturation and lightness to an opaque colour.
func HSL(h, s, l float64) color.NRGBA {
	r, g, b := colorful.Hsl(math.Mod(h, 360), s, l).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
