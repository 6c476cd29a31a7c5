package renderer

import (
	"math"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/surface"
)

// SunRenderer draws the pulsing corner sun of the nature scene.
type SunRenderer struct {
	cfg  config.SunConfig
	time float64
}

// NewSunRenderer creates a sun renderer.
func NewSunRenderer(cfg config.SunConfig) *SunRenderer {
	return &SunRenderer{cfg: cfg}
}

// Step advances the pulse phase by one frame.
func (r *SunRenderer) Step() {
	r.time += r.cfg.PulseSpeed
}

// Pulse returns the current size factor, 1 ± pulse_amount.
func (r *SunRenderer) Pulse() float64 {
	return 1 + math.Sin(r.time)*r.cfg.PulseAmount
}

// Center returns the sun centre; it sits above the top-left corner so only a quadrant shows.
func (r *SunRenderer) Center() (float64, float64) {
	return r.cfg.Glow * 0.8, -r.cfg.Glow * 0.4
}

// Draw renders rays, glow passes and corona rings. seconds drives the ray shimmer.
// Every composite or clip change is scoped by Save/Restore.
func (r *SunRenderer) Draw(c surface.Canvas, seconds float64) {
	pulse := r.Pulse()
	sx, sy := r.Center()

	r.drawRays(c, sx, sy, pulse, seconds)

	c.Save()
	c.Clip(surface.Rect{X: 0, Y: 0, W: sx + r.cfg.Glow*1.2, H: r.cfg.Glow * 2 * pulse})

	glow := r.cfg.Glow
	c.FillCircle(sx, sy, glow, surface.Fill(surface.Radial(sx, sy, 0, glow,
		surface.Stop{Offset: 0, Color: surface.RGBA(255, 230, 100, 0.9)},
		surface.Stop{Offset: 0.5, Color: surface.RGBA(255, 180, 50, 0.6)},
		surface.Stop{Offset: 0.9, Color: surface.RGBA(255, 120, 0, 0.2)},
		surface.Stop{Offset: 1, Color: surface.RGBA(255, 100, 0, 0)},
	)))

	mid := glow * 0.7
	c.FillCircle(sx, sy, mid, surface.Fill(surface.Radial(sx, sy, 0, mid,
		surface.Stop{Offset: 0, Color: surface.RGBA(255, 240, 180, 0.95)},
		surface.Stop{Offset: 0.7, Color: surface.RGBA(255, 200, 80, 0.8)},
		surface.Stop{Offset: 1, Color: surface.RGBA(255, 150, 0, 0)},
	)))

	core := r.cfg.Radius
	c.SetShadow(40, surface.RGBA(255, 200, 100, 0.8))
	c.FillCircle(sx, sy, core, surface.Fill(surface.Radial(sx, sy, 0, core,
		surface.Stop{Offset: 0, Color: surface.RGBA(255, 245, 209, 1)},
		surface.Stop{Offset: 0.7, Color: surface.RGBA(255, 224, 102, 1)},
		surface.Stop{Offset: 1, Color: surface.RGBA(255, 165, 0, 1)},
	)))
	c.SetShadow(0, surface.RGBA(0, 0, 0, 0))

	for i := 1; i <= r.cfg.CoronaRings; i++ {
		rr := core * (1.05 + float64(i)*0.18)
		alpha := math.Max(0, 0.12-float64(i)*0.02)
		c.StrokeCircle(sx, sy, rr, math.Max(1, float64(6-i)), surface.Fill(surface.Radial(sx, sy, rr*0.6, rr,
			surface.Stop{Offset: 0, Color: surface.RGBA(255, 210, 120, alpha)},
			surface.Stop{Offset: 1, Color: surface.RGBA(255, 140, 40, 0)},
		)))
	}

	c.Restore()
}

// drawRays draws additive wedges around the full circle with time-driven jitter.
func (r *SunRenderer) drawRays(c surface.Canvas, sx, sy, pulse, seconds float64) {
	n := r.cfg.Rays
	if n <= 0 {
		return
	}
	length := r.cfg.Radius * 2.5 * pulse
	inner := r.cfg.Radius * 0.72

	c.Save()
	c.SetComposite(surface.CompositeAdd)
	for i := 0; i < n; i++ {
		fi := float64(i)
		t := 0.0
		if n > 1 {
			t = fi / float64(n-1)
		}
		angle := t*2*math.Pi + math.Sin(seconds*0.25+fi*0.2)*0.03
		rayPulse := 0.95 + math.Sin(seconds*0.8+fi*0.5)*0.1
		width := 2.6 + math.Sin(seconds*0.8+fi)*1.2
		outer := inner + length*rayPulse

		sin, cos := math.Sincos(angle)
		at := func(along, across float64) (float64, float64) {
			return sx + along*cos - across*sin, sy + along*sin + across*cos
		}
		x0, y0 := at(inner, 0)
		x1, y1 := at(outer, -width)
		x2, y2 := at(outer, width)
		ex, ey := at(length, 0)

		wedge := surface.NewPath().MoveTo(x0, y0).LineTo(x1, y1).LineTo(x2, y2).Close()
		c.FillPath(wedge, surface.Fill(surface.Linear(sx, sy, ex, ey,
			surface.Stop{Offset: 0, Color: surface.RGBA(255, 250, 210, 0.22*rayPulse)},
			surface.Stop{Offset: 0.2, Color: surface.RGBA(255, 220, 150, 0.16*rayPulse)},
			surface.Stop{Offset: 1, Color: surface.RGBA(255, 170, 60, 0)},
		)))
	}
	c.Restore()
}
