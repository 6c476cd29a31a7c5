package renderer

import (
	"image/color"

	"github.com/pthm-cable/backdrop/surface"
)

// SynthSun draws the synthwave sun: a vertical gradient disc with a glow, cut by
// horizontal scanlines that thicken toward the horizon. The erase composite is scoped.
func SynthSun(c surface.Canvas, x, y, r float64, top, bottom color.NRGBA, scanlines int) {
	c.Save()
	c.SetShadow(40, bottom)
	c.FillCircle(x, y-r*0.6, r, surface.Fill(surface.Linear(x, y-r*2, x, y,
		surface.Stop{Offset: 0, Color: top},
		surface.Stop{Offset: 1, Color: bottom},
	)))
	c.SetShadow(0, color.NRGBA{})

	c.SetComposite(surface.CompositeErase)
	cut := surface.Solid(color.NRGBA{A: 255})
	for i := 0; i < scanlines; i++ {
		f := float64(i) / float64(scanlines)
		c.FillRect(surface.Rect{X: x - r - 10, Y: y - r + f*r, W: r*2 + 20, H: r*0.05 + f*r*0.15}, cut)
	}
	c.Restore()
}
