// Package camera provides the perspective projection and pointer-following camera used by
// the pseudo-3D effects.
package camera

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// CullScale is the smallest projected scale that is still drawn.
const CullScale = 0.05

// Project maps a camera-space point to the screen: scale = fov/(fov+z) and
// screen = origin + (x, y)*scale. ok is false when the point is too distant or behind
// the camera to draw.
func Project(p r3.Vec, fov float64, origin r2.Vec) (screen r2.Vec, scale float64, ok bool) {
	depth := fov + p.Z
	if depth <= 0 {
		return r2.Vec{}, 0, false
	}
	scale = fov / depth
	screen = r2.Add(origin, r2.Scale(scale, r2.Vec{X: p.X, Y: p.Y}))
	return screen, scale, scale >= CullScale
}

// Camera follows the pointer with exponential smoothing and shifts its projection origin
// toward it for a parallax feel.
type Camera struct {
	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Raw and smoothed pointer in viewport coordinates
	Pointer r2.Vec
	Smooth  r2.Vec

	// Smoothing factor per frame in (0, 1]
	Smoothing float64
}

// New creates a camera with the pointer resting at the viewport centre.
func New(viewportW, viewportH, smoothing float64) *Camera {
	c := &Camera{Smoothing: smoothing}
	c.Resize(viewportW, viewportH)
	c.Smooth = c.Pointer
	return c
}

// Resize updates the viewport dimensions. Pointer state is kept.
func (c *Camera) Resize(viewportW, viewportH float64) {
	first := c.ViewportW == 0 && c.ViewportH == 0
	c.ViewportW, c.ViewportH = viewportW, viewportH
	if first {
		c.Pointer = r2.Vec{X: viewportW / 2, Y: viewportH / 2}
	}
}

// MoveTo records a raw pointer position.
func (c *Camera) MoveTo(x, y float64) {
	c.Pointer = r2.Vec{X: x, Y: y}
}

// Update moves the smoothed pointer a fraction of the way to the raw pointer.
func (c *Camera) Update() {
	c.Smooth = r2.Add(c.Smooth, r2.Scale(c.Smoothing, r2.Sub(c.Pointer, c.Smooth)))
}

// Origin returns the projection origin: the point at fraction (fx, fy) of the viewport,
// shifted toward the smoothed pointer by parallax.
func (c *Camera) Origin(fx, fy, parallax float64) r2.Vec {
	base := r2.Vec{X: c.ViewportW * fx, Y: c.ViewportH * fy}
	centre := r2.Vec{X: c.ViewportW / 2, Y: c.ViewportH / 2}
	return r2.Add(base, r2.Scale(parallax, r2.Sub(c.Smooth, centre)))
}
