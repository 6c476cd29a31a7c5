package renderer

import (
	"image/color"
	"math"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/surface"
	"github.com/pthm-cable/backdrop/systems"
)

var (
	shadowTint  = surface.RGBA(0, 0, 0, 1)
	highlight   = surface.RGBA(255, 255, 255, 1)
	windowFrame = surface.RGBA(0x65, 0x43, 0x21, 1)
)

// LandscapeRenderer rasterises a generated scene. It is called once per layout, not per
// frame.
type LandscapeRenderer struct {
	pal config.ScenePalette
}

// NewLandscapeRenderer creates a landscape renderer.
func NewLandscapeRenderer(pal config.ScenePalette) *LandscapeRenderer {
	return &LandscapeRenderer{pal: pal}
}

// Draw clears the canvas and paints the scene back to front: ridges, grass, blades,
// flowers, then objects in placement order.
func (r *LandscapeRenderer) Draw(c surface.Canvas, s *systems.Scene) {
	c.Clear()
	for _, ridge := range s.Ridges {
		r.ridge(c, s.Width, ridge)
	}

	c.FillRect(surface.Rect{X: 0, Y: s.GrassTop, W: s.Width, H: s.Height - s.GrassTop},
		surface.Fill(surface.Linear(0, s.GrassTop, 0, s.Height,
			surface.Stop{Offset: 0, Color: r.pal.GrassTop.NRGBA},
			surface.Stop{Offset: 1, Color: r.pal.GrassBottom.NRGBA},
		)))

	blade := surface.Solid(r.pal.Blade.NRGBA)
	for _, b := range s.Blades {
		p := surface.NewPath().MoveTo(b.Root.X, b.Root.Y).QuadTo(b.Ctrl.X, b.Ctrl.Y, b.Tip.X, b.Tip.Y)
		c.StrokePath(p, 1.5, blade)
	}

	for _, f := range s.Flowers {
		r.flower(c, f)
	}

	for _, o := range s.Objects {
		switch o.Kind {
		case systems.KindHouse:
			r.house(c, o)
		case systems.KindTree:
			r.tree(c, o)
		case systems.KindBush:
			r.bush(c, o)
		}
	}
}

func (r *LandscapeRenderer) ridge(c surface.Canvas, width float64, rd systems.Ridge) {
	p := surface.NewPath().MoveTo(rd.Start.X, rd.Start.Y)
	for _, seg := range rd.Segments {
		p.QuadTo(seg.Ctrl.X, seg.Ctrl.Y, seg.To.X, seg.To.Y)
	}
	p.LineTo(width+50, rd.Floor).LineTo(-50, rd.Floor).Close()

	c.Save()
	c.SetShadow(15*rd.Detail, surface.Fade(shadowTint, 0.2))
	c.FillPath(p, surface.Fill(surface.Linear(0, rd.Top, 0, rd.Floor,
		surface.Stop{Offset: 0, Color: rd.TopColor},
		surface.Stop{Offset: 1, Color: rd.Base},
	)))
	c.SetShadow(0, color.NRGBA{})
	if rd.Detail > 0.5 {
		c.FillPath(p, surface.Fill(surface.Linear(0, rd.Top, 0, rd.Floor,
			surface.Stop{Offset: 0, Color: surface.Fade(highlight, 0.1)},
			surface.Stop{Offset: 1, Color: surface.Fade(highlight, 0)},
		)))
	}
	c.Restore()
}

func (r *LandscapeRenderer) flower(c surface.Canvas, f systems.Flower) {
	stem := surface.NewPath().MoveTo(f.Center.X, f.Center.Y).QuadTo(f.StemCtrl.X, f.StemCtrl.Y, f.StemEnd.X, f.StemEnd.Y)
	c.StrokePath(stem, 1, surface.Solid(systems.AdjustBrightness(r.pal.Blade.NRGBA, -20)))

	petal := surface.Solid(f.Color)
	n := float64(len(f.Petals))
	for i, size := range f.Petals {
		angle := float64(i) / n * 2 * math.Pi
		px := f.Center.X + math.Cos(angle)*f.Size*1.5
		py := f.Center.Y + math.Sin(angle)*f.Size*1.5
		c.FillEllipse(px, py, size, size*0.5, angle, petal)
	}
	c.FillCircle(f.Center.X, f.Center.Y, f.Size*0.7, surface.Solid(r.pal.FlowerHeart.NRGBA))
}

func (r *LandscapeRenderer) house(c surface.Canvas, o systems.SceneryObject) {
	x, y, w, h := o.X-o.W/2, o.Y, o.W, o.H
	wall, roof := o.Primary, o.Roof

	c.FillEllipse(x+w/2, y+h, w*0.8, h*0.1, 0, surface.Solid(surface.Fade(shadowTint, 0.3)))

	c.FillRect(surface.Rect{X: x, Y: y, W: w, H: h}, surface.Fill(surface.Linear(x, y, x+w, y,
		surface.Stop{Offset: 0, Color: systems.AdjustBrightness(wall, 15)},
		surface.Stop{Offset: 1, Color: systems.AdjustBrightness(wall, -15)},
	)))
	boards := surface.Solid(systems.AdjustBrightness(wall, -10))
	for i := 1; i < 4; i++ {
		ly := y + h*float64(i)/4
		c.StrokeLine(x, ly, x+w, ly, 1, boards)
	}

	apex := y - w/3
	roofPath := surface.NewPath().MoveTo(x-5, y).LineTo(x+w/2, apex).LineTo(x+w+5, y).Close()
	c.FillPath(roofPath, surface.Fill(surface.Linear(x, y, x, apex,
		surface.Stop{Offset: 0, Color: systems.AdjustBrightness(roof, -20)},
		surface.Stop{Offset: 1, Color: systems.AdjustBrightness(roof, 20)},
	)))
	c.StrokeLine(x+w/2, apex, x+w/2, y, 2, surface.Solid(systems.AdjustBrightness(roof, -30)))

	r.window(c, x+w*0.15, y+h*0.2, w*0.3, h*0.25)
	r.window(c, x+w*0.55, y+h*0.2, w*0.3, h*0.25)
	r.door(c, x+w*0.35, y+h*0.5, w*0.3, h*0.5)
}

func (r *LandscapeRenderer) window(c surface.Canvas, x, y, w, h float64) {
	c.FillRect(surface.Rect{X: x, Y: y, W: w, H: h}, surface.Solid(windowFrame))
	glass := r.pal.Window.NRGBA
	c.FillRect(surface.Rect{X: x + 2, Y: y + 2, W: w - 4, H: h - 4}, surface.Fill(surface.Linear(x, y, x+w, y+h,
		surface.Stop{Offset: 0, Color: glass},
		surface.Stop{Offset: 0.5, Color: systems.AdjustBrightness(glass, 30)},
		surface.Stop{Offset: 1, Color: glass},
	)))
	cross := surface.Solid(surface.Fade(shadowTint, 0.2))
	c.StrokeLine(x+w/2, y+2, x+w/2, y+h-2, 1, cross)
	c.StrokeLine(x+2, y+h/2, x+w-2, y+h/2, 1, cross)
	bevel(c, x, y, w, h, 0.2)
}

func (r *LandscapeRenderer) door(c surface.Canvas, x, y, w, h float64) {
	c.FillRect(surface.Rect{X: x, Y: y, W: w, H: h}, surface.Solid(r.pal.Door.NRGBA))
	c.FillRect(surface.Rect{X: x + 2, Y: y + 2, W: w - 4, H: h - 2}, surface.Fill(surface.Linear(x, y, x+w, y,
		surface.Stop{Offset: 0, Color: r.pal.Door.NRGBA},
		surface.Stop{Offset: 1, Color: r.pal.Trunk.NRGBA},
	)))
	c.FillCircle(x+w-10, y+h/2, 3, surface.Solid(r.pal.FlowerHeart.NRGBA))
	c.StrokeRect(surface.Rect{X: x + 5, Y: y + 5, W: w - 10, H: h - 10}, 1, surface.Solid(surface.Fade(shadowTint, 0.2)))
	bevel(c, x, y, w, h, 0.1)
}

// bevel strokes a light edge along the left and top sides.
func bevel(c surface.Canvas, x, y, w, h, alpha float64) {
	p := surface.NewPath().MoveTo(x+1, y+h-2).LineTo(x+1, y+1).LineTo(x+w-1, y+1)
	c.StrokePath(p, 1, surface.Solid(surface.Fade(highlight, alpha)))
}

func (r *LandscapeRenderer) tree(c surface.Canvas, o systems.SceneryObject) {
	x, y, w, h := o.X, o.Y, o.W, o.H
	bark := r.pal.Door.NRGBA

	c.FillEllipse(x, y, w*0.6, w*0.1, 0, surface.Solid(surface.Fade(shadowTint, 0.2)))

	c.FillRect(surface.Rect{X: x - w/8, Y: y - h/2, W: w / 4, H: h / 2}, surface.Fill(surface.Linear(x-w/8, y-h/2, x+w/8, y,
		surface.Stop{Offset: 0, Color: bark},
		surface.Stop{Offset: 1, Color: r.pal.Trunk.NRGBA},
	)))
	rings := surface.Solid(systems.AdjustBrightness(bark, -10))
	for i := 1; i < 3; i++ {
		ly := y - h/2 + float64(i)*h/4
		c.StrokeLine(x-w/8, ly, x+w/8, ly, 1, rings)
	}

	cy := y - h*0.7
	shells := []struct {
		rx, ry       float64
		inner, outer int
	}{
		{w / 2 * 1.2, h / 3, 30, -20},
		{w / 2 * 0.8, h / 3.5, 20, -10},
		{w / 2 * 0.5, h / 4, 40, 10},
	}
	for _, s := range shells {
		c.FillEllipse(x, cy, s.rx, s.ry, 0, surface.Fill(surface.Radial(x, cy, 0, s.rx,
			surface.Stop{Offset: 0, Color: systems.AdjustBrightness(o.Primary, s.inner)},
			surface.Stop{Offset: 1, Color: systems.AdjustBrightness(o.Primary, s.outer)},
		)))
	}
	c.FillEllipse(x+w/6, y-h*0.75, w/4, h/8, 0, surface.Solid(surface.Fade(highlight, 0.1)))
}

func (r *LandscapeRenderer) bush(c surface.Canvas, o systems.SceneryObject) {
	x, y, w, h := o.X, o.Y, o.W, o.H

	c.FillEllipse(x, y+h*0.8, w*0.6, h*0.2, 0, surface.Solid(surface.Fade(shadowTint, 0.15)))

	foliage := surface.Fill(surface.Radial(x, y, 0, math.Max(w, h),
		surface.Stop{Offset: 0, Color: systems.AdjustBrightness(o.Primary, 20)},
		surface.Stop{Offset: 1, Color: systems.AdjustBrightness(o.Primary, -20)},
	))
	for _, l := range o.Lobes {
		c.FillEllipse(x+l.DX, y+l.DY, l.W/2, l.H, 0, foliage)
	}

	c.FillEllipse(x, y, w/2, h, 0, surface.Fill(surface.Radial(x-w/4, y-h/4, 0, w/2,
		surface.Stop{Offset: 0, Color: surface.Fade(highlight, 0.15)},
		surface.Stop{Offset: 1, Color: surface.Fade(highlight, 0)},
	)))
}
