package effects

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/renderer"
	"github.com/pthm-cable/backdrop/surface"
	"github.com/pthm-cable/backdrop/systems"
)

// Minimal is a full-page field of small points that fade in and out.
type Minimal struct {
	m    *mount
	cfg  config.MinimalConfig
	c    surface.Canvas
	pool *systems.Pool
	rng  *rand.Rand
}

// NewMinimal mounts the minimalist particle field.
func NewMinimal(env Env) Effect {
	cfg := env.Config.Minimal
	m := newMount(env, NameMinimal)
	c, err := m.surface(surface.Layer{
		Name:       "minimal",
		Z:          -1,
		Opaque:     true,
		Background: cfg.Background.NRGBA,
	})
	if err != nil {
		m.release()
		return inert{}
	}
	e := &Minimal{m: m, cfg: cfg, c: c, pool: systems.NewPool(), rng: env.rng()}
	e.seed()
	m.loop(e.frame)
	return e
}

func (e *Minimal) seed() {
	w, h := e.c.Size()
	n := systems.CountFor(e.cfg.Count, e.cfg.Density, w, h)
	e.pool.Regenerate(n, func(_ int, pt *systems.Point) {
		pt.X = e.rng.Float64() * float64(w)
		pt.Y = e.rng.Float64() * float64(h)
		pt.Size = e.rng.Float64() * e.cfg.MaxRadius
		pt.Alpha = e.rng.Float64()
		pt.Speed = e.cfg.MinSpeed + e.rng.Float64()*e.cfg.SpeedRange
	})
}

func (e *Minimal) frame(time.Duration) {
	w, h := e.c.Size()
	e.c.FillRect(surface.Rect{W: float64(w), H: float64(h)}, surface.Solid(e.cfg.Background.NRGBA))
	e.pool.Update(systems.Twinkle)
	renderer.Dots(e.c, e.pool, 1, 1, e.cfg.Star.NRGBA, 0)
}

// Resize regenerates every point for the new viewport.
func (e *Minimal) Resize(width, height int) {
	e.seed()
}

// Destroy stops the effect.
func (e *Minimal) Destroy() {
	e.m.release()
}
