package renderer

import (
	"image/color"

	"github.com/pthm-cable/backdrop/surface"
)

// Sky fills the rectangle with a vertical gradient from top to bottom.
func Sky(c surface.Canvas, r surface.Rect, top, bottom color.NRGBA) {
	c.FillRect(r, surface.Fill(surface.Linear(0, r.Y, 0, r.Y+r.H,
		surface.Stop{Offset: 0, Color: top},
		surface.Stop{Offset: 1, Color: bottom},
	)))
}

// Band fills a horizontal band that fades in from transparent at y0 to col at the middle
// and back out at y1.
func Band(c surface.Canvas, width, y0, y1 float64, col color.NRGBA) {
	c.FillRect(surface.Rect{X: 0, Y: y0, W: width, H: y1 - y0}, surface.Fill(surface.Linear(0, y0, 0, y1,
		surface.Stop{Offset: 0, Color: surface.Fade(col, 0)},
		surface.Stop{Offset: 0.5, Color: col},
		surface.Stop{Offset: 1, Color: surface.Fade(col, 0)},
	)))
}
