package surface

import (
	"image/color"
	"math"
)

// GradientKind selects linear or radial interpolation.
type GradientKind int

const (
	GradientLinear GradientKind = iota
	GradientRadial
)

// Stop is a gradient colour stop at Offset in [0, 1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient is a linear gradient between two points or a radial gradient between two
// concentric circles. Stops must be sorted by offset.
type Gradient struct {
	Kind   GradientKind
	X0, Y0 float64
	X1, Y1 float64
	R0, R1 float64
	Stops  []Stop
}

// Linear returns a gradient along the segment (x0,y0)-(x1,y1).
func Linear(x0, y0, x1, y1 float64, stops ...Stop) *Gradient {
	return &Gradient{Kind: GradientLinear, X0: x0, Y0: y0, X1: x1, Y1: y1, Stops: stops}
}

// Radial returns a gradient between circles of radius r0 and r1 centred at (cx, cy).
func Radial(cx, cy, r0, r1 float64, stops ...Stop) *Gradient {
	return &Gradient{Kind: GradientRadial, X0: cx, Y0: cy, X1: cx, Y1: cy, R0: r0, R1: r1, Stops: stops}
}

// Param returns the gradient parameter at a point, clamped to [0, 1].
func (g *Gradient) Param(x, y float64) float64 {
	var t float64
	switch g.Kind {
	case GradientRadial:
		span := g.R1 - g.R0
		if span == 0 {
			return 0
		}
		t = (math.Hypot(x-g.X0, y-g.Y0) - g.R0) / span
	default:
		dx, dy := g.X1-g.X0, g.Y1-g.Y0
		l2 := dx*dx + dy*dy
		if l2 == 0 {
			return 0
		}
		t = ((x-g.X0)*dx + (y-g.Y0)*dy) / l2
	}
	return math.Max(0, math.Min(1, t))
}

// ColorAt samples the gradient at parameter t.
func (g *Gradient) ColorAt(t float64) color.NRGBA {
	if len(g.Stops) == 0 {
		return color.NRGBA{}
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return mix(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return g.Stops[len(g.Stops)-1].Color
}

// At samples the gradient at a point.
func (g *Gradient) At(x, y float64) color.NRGBA {
	return g.ColorAt(g.Param(x, y))
}

// Paint is a solid colour or a gradient.
type Paint struct {
	Color    color.NRGBA
	Gradient *Gradient
}

// Solid returns a solid colour paint.
func Solid(c color.NRGBA) Paint {
	return Paint{Color: c}
}

// Fill returns a gradient paint.
func Fill(g *Gradient) Paint {
	return Paint{Gradient: g}
}

// At returns the paint colour at a point.
func (p Paint) At(x, y float64) color.NRGBA {
	if p.Gradient != nil {
		return p.Gradient.At(x, y)
	}
	return p.Color
}

func mix(a, b color.NRGBA, t float64) color.NRGBA {
	l := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}

// RGBA builds a colour from 8-bit channels and a [0,1] alpha.
func RGBA(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))}
}

// Fade scales a colour's alpha by f.
func Fade(c color.NRGBA, f float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * math.Max(0, math.Min(1, f))))
	return c
}
