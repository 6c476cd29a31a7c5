package effects

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/renderer"
	"github.com/pthm-cable/backdrop/surface"
	"github.com/pthm-cable/backdrop/systems"
)

// synthDecor draws the synthwave sky, shimmering stars and striped sun behind the grid,
// and the floor glow in front of it. The grid itself only shows below the horizon.
type synthDecor struct {
	cfg   config.SynthwaveConfig
	stars *systems.Pool
	rng   *rand.Rand
}

// NewSynthwave mounts the synthwave effect: the cyberpunk terrain grid with its sky.
func NewSynthwave(env Env) Effect {
	t := newTerrain(env, NameCyberpunk)
	if t == nil {
		return inert{}
	}
	t.decor = &synthDecor{cfg: env.Config.Synthwave, stars: systems.NewPool(), rng: t.rng}
	t.decor.resize(t.c.Size())
	t.start()
	return t
}

func (d *synthDecor) horizon(h float64) float64 {
	return h * d.cfg.HorizonY
}

// below returns the region under the horizon.
func (d *synthDecor) below(w, h float64) surface.Rect {
	hy := d.horizon(h)
	return surface.Rect{X: 0, Y: hy, W: w, H: h - hy}
}

func (d *synthDecor) resize(width, height int) {
	n := systems.CountFor(0, d.cfg.StarDensity, width, height)
	d.stars.Regenerate(n, func(_ int, pt *systems.Point) {
		pt.X = d.rng.Float64()
		pt.Y = d.rng.Float64() * d.cfg.HorizonY
		pt.Size = d.rng.Float64()*1.5 + 0.5
		pt.Alpha = d.rng.Float64()
		pt.Speed = 0.02 + d.rng.Float64()*0.05
	})
}

func (d *synthDecor) background(c surface.Canvas, now time.Duration) {
	w, h := c.Size()
	fw, fh := float64(w), float64(h)
	hy := d.horizon(fh)

	renderer.Sky(c, surface.Rect{W: fw, H: hy}, d.cfg.SkyTop.NRGBA, d.cfg.SkyBottom.NRGBA)

	ms := float64(now.Milliseconds())
	d.stars.Update(func(pt *systems.Point) {
		systems.Shimmer(pt, ms)
	})
	renderer.Dots(c, d.stars, fw, fh, surface.RGBA(255, 255, 255, 1), 0.1)

	renderer.SynthSun(c, fw/2, hy-fh*0.05, fh*d.cfg.SunRadius, d.cfg.SunTop.NRGBA, d.cfg.SunBottom.NRGBA, d.cfg.Scanlines)

	c.FillRect(d.below(fw, fh), surface.Solid(d.cfg.Floor.NRGBA))
}

func (d *synthDecor) foreground(c surface.Canvas) {
	w, h := c.Size()
	fw, fh := float64(w), float64(h)
	hy := d.horizon(fh)
	top := hy - fh*0.15
	c.FillRect(surface.Rect{X: 0, Y: top, W: fw, H: hy - top}, surface.Fill(surface.Linear(0, top, 0, hy,
		surface.Stop{Offset: 0, Color: surface.Fade(d.cfg.Glow.NRGBA, 0)},
		surface.Stop{Offset: 1, Color: systems.WithAlpha(d.cfg.Glow.NRGBA, 0.4)},
	)))
}
