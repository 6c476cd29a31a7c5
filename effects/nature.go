package effects

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/renderer"
	"github.com/pthm-cable/backdrop/surface"
	"github.com/pthm-cable/backdrop/systems"
)

// Nature is the layered landscape: an animated sky and sun, twinkling stars, a static
// landscape raster along the bottom, and rain over everything.
//
// The landscape is drawn once per layout. Only the sky, stars and rain draw per frame.
type Nature struct {
	m   *mount
	cfg config.NatureConfig
	rng *rand.Rand

	sky, land, rain surface.Canvas
	stars           *stars
	sun             *renderer.SunRenderer
	painter         *renderer.LandscapeRenderer
	scene           *systems.Scene
	drops           *systems.Pool

	start time.Duration
	began bool
}

// NewNature mounts the landscape effect.
func NewNature(env Env) Effect {
	cfg := env.Config.Nature
	m := newMount(env, NameNature)
	e := &Nature{
		m:       m,
		cfg:     cfg,
		rng:     env.rng(),
		sun:     renderer.NewSunRenderer(cfg.Sun),
		painter: renderer.NewLandscapeRenderer(cfg.Landscape.Palette),
		drops:   systems.NewPool(),
	}

	layers := []struct {
		dst   *surface.Canvas
		layer surface.Layer
	}{
		{&e.sky, surface.Layer{Name: "nature-sky", Z: -4}},
		{nil, starLayer("nature-stars", -3, cfg.Stars)},
		{&e.land, surface.Layer{Name: "nature-landscape", Z: -2, Anchor: surface.AnchorBottom, HeightFrac: cfg.Landscape.HeightFrac}},
		{&e.rain, surface.Layer{Name: "nature-rain", Z: -1}},
	}
	for _, l := range layers {
		c, err := m.surface(l.layer)
		if err != nil {
			m.release()
			return inert{}
		}
		if l.dst != nil {
			*l.dst = c
		} else {
			e.stars = newStars(cfg.Stars, c, e.rng)
		}
	}

	e.layout()
	m.loop(e.frame)
	return e
}

// layout regenerates everything sized by the viewport: the scene raster and the rain.
func (e *Nature) layout() {
	w, h := e.land.Size()
	e.scene = systems.GenerateScene(e.rng, float64(w), float64(h), e.cfg.Landscape)
	e.painter.Draw(e.land, e.scene)

	rw, rh := e.rain.Size()
	rc := e.cfg.Rain
	n := systems.CountFor(0, rc.Density, rw, rh)
	e.drops.Regenerate(n, func(_ int, pt *systems.Point) {
		pt.X = e.rng.Float64() * float64(rw)
		pt.Y = -e.rng.Float64() * float64(rh)
		pt.Length = rc.MinLength + e.rng.Float64()*rc.LengthRange
		pt.Speed = rc.MinSpeed + e.rng.Float64()*rc.SpeedRange
		pt.Alpha = rc.MinAlpha + e.rng.Float64()*rc.AlphaRange
	})
}

func (e *Nature) frame(now time.Duration) {
	if !e.began {
		e.start, e.began = now, true
	}
	seconds := (now - e.start).Seconds()

	w, h := e.sky.Size()
	e.sun.Step()
	e.sky.Clear()
	renderer.Sky(e.sky, surface.Rect{W: float64(w), H: float64(h)}, e.cfg.Sky.Top.NRGBA, e.cfg.Sky.Bottom.NRGBA)
	e.sun.Draw(e.sky, seconds)

	e.stars.draw(seconds)

	rw, rh := e.rain.Size()
	e.rain.Clear()
	e.drops.Update(func(pt *systems.Point) {
		systems.Fall(pt, e.rng, float64(rw), float64(rh))
	})
	renderer.Rain(e.rain, e.drops, e.cfg.Rain.Color.NRGBA)
}

// Scene returns the scene currently drawn into the landscape layer.
func (e *Nature) Scene() *systems.Scene {
	return e.scene
}

// Resize regenerates the landscape raster, the rain and the stars.
func (e *Nature) Resize(width, height int) {
	e.layout()
	e.stars.seed()
}

// Destroy stops the effect.
func (e *Nature) Destroy() {
	e.m.release()
}
