package renderer

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/backdrop/camera"
	"github.com/pthm-cable/backdrop/surface"
	"github.com/pthm-cable/backdrop/systems"
)

// Dots draws each point as a filled circle at (X*sx, Y*sy) with its alpha clamped to
// [minAlpha, 1]. Pools storing pixel positions pass sx = sy = 1.
func Dots(c surface.Canvas, pool *systems.Pool, sx, sy float64, col color.NRGBA, minAlpha float64) {
	pool.Each(func(pt systems.Point) {
		a := systems.Clamp(pt.Alpha, minAlpha, 1)
		if a <= 0 || pt.Size <= 0 {
			return
		}
		c.FillCircle(pt.X*sx, pt.Y*sy, pt.Size, surface.Solid(surface.Fade(col, a)))
	})
}

// GlowDots draws each point with a soft halo three times its size, like a box-shadowed
// DOM star.
func GlowDots(c surface.Canvas, pool *systems.Pool, sx, sy float64, col color.NRGBA) {
	pool.Each(func(pt systems.Point) {
		if pt.Alpha <= 0 {
			return
		}
		x, y := pt.X*sx, pt.Y*sy
		halo := pt.Size * 3
		c.FillCircle(x, y, halo, surface.Fill(surface.Radial(x, y, pt.Size/2, halo,
			surface.Stop{Offset: 0, Color: surface.Fade(col, pt.Alpha*0.5)},
			surface.Stop{Offset: 1, Color: surface.Fade(col, 0)},
		)))
		c.FillCircle(x, y, pt.Size/2, surface.Solid(surface.Fade(col, pt.Alpha)))
	})
}

// Rain draws each drop as a vertical streak of its length.
func Rain(c surface.Canvas, pool *systems.Pool, col color.NRGBA) {
	pool.Each(func(pt systems.Point) {
		c.StrokeLine(pt.X, pt.Y, pt.X, pt.Y+pt.Length, 1, surface.Solid(surface.Fade(col, pt.Alpha)))
	})
}

// Drift projects camera-space particles and draws those within 50px of the viewport.
func Drift(c surface.Canvas, pool *systems.Pool, fov float64, origin r2.Vec, col color.NRGBA) {
	w, h := c.Size()
	pool.Each(func(pt systems.Point) {
		screen, scale, ok := camera.Project(r3.Vec{X: pt.X, Y: pt.Y, Z: pt.Z}, fov, origin)
		if !ok {
			return
		}
		if screen.X <= -50 || screen.X >= float64(w)+50 || screen.Y <= -50 || screen.Y >= float64(h)+50 {
			return
		}
		a := min(1, pt.Alpha*scale)
		c.FillCircle(screen.X, screen.Y, pt.Size*scale, surface.Solid(surface.Fade(col, a)))
	})
}
