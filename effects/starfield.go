package effects

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/renderer"
	"github.com/pthm-cable/backdrop/surface"
	"github.com/pthm-cable/backdrop/systems"
)

// stars is a layer of glowing points on an ease-in-out brightness cycle. Positions are
// stored as fractions of the layer so a resize only rescales them.
type stars struct {
	cfg  config.StarfieldConfig
	c    surface.Canvas
	pool *systems.Pool
	rng  *rand.Rand
}

func newStars(cfg config.StarfieldConfig, c surface.Canvas, rng *rand.Rand) *stars {
	s := &stars{cfg: cfg, c: c, pool: systems.NewPool(), rng: rng}
	s.seed()
	return s
}

func (s *stars) seed() {
	cfg := s.cfg
	s.pool.Regenerate(max(cfg.Count, 0), func(_ int, pt *systems.Point) {
		pt.X = s.rng.Float64()
		pt.Y = s.rng.Float64()
		pt.Size = cfg.MinSize + s.rng.Float64()*cfg.SizeRange
		pt.Base = 0.1 + s.rng.Float64()*0.9
		pt.Alpha = pt.Base
		pt.Period = cfg.MinPeriod + s.rng.Float64()*cfg.PeriodRange
		pt.Phase = s.rng.Float64() * cfg.MaxDelay
	})
}

func (s *stars) draw(seconds float64) {
	w, h := s.c.Size()
	s.c.Clear()
	s.pool.Update(func(pt *systems.Point) {
		systems.Cycle(pt, seconds, s.rng, s.cfg.FlickerChance)
	})
	renderer.GlowDots(s.c, s.pool, float64(w), float64(h), s.cfg.Color.NRGBA)
}

func starLayer(name string, z int, cfg config.StarfieldConfig) surface.Layer {
	return surface.Layer{Name: name, Z: z, Anchor: surface.AnchorTop, HeightFrac: cfg.HeightFrac}
}

// Starfield is a standalone layer of twinkling stars over the top of the page.
type Starfield struct {
	m     *mount
	stars *stars
	start time.Duration
	began bool
}

// NewStarfield mounts the starfield effect.
func NewStarfield(env Env) Effect {
	m := newMount(env, NameStarfield)
	c, err := m.surface(starLayer("starfield", -1, env.Config.Starfield))
	if err != nil {
		m.release()
		return inert{}
	}
	s := &Starfield{m: m, stars: newStars(env.Config.Starfield, c, env.rng())}
	m.loop(s.frame)
	return s
}

func (s *Starfield) frame(now time.Duration) {
	if !s.began {
		s.start, s.began = now, true
	}
	s.stars.draw((now - s.start).Seconds())
}

// Resize regenerates the stars. The cycle clock keeps running.
func (s *Starfield) Resize(width, height int) {
	s.stars.seed()
}

// Destroy stops the effect.
func (s *Starfield) Destroy() {
	s.m.release()
}
