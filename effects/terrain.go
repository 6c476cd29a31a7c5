package effects

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/backdrop/camera"
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/renderer"
	"github.com/pthm-cable/backdrop/surface"
	"github.com/pthm-cable/backdrop/systems"
)

// State is the lifecycle stage of a terrain effect.
type State int

const (
	StateUninitialized State = iota
	StateRunning
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Terrain flies a camera over a wireframe height field. The pointer pushes the grid
// around and clicks send out pulse rings when the variant enables them.
type Terrain struct {
	m     *mount
	name  string
	cfg   config.TerrainConfig
	c     surface.Canvas
	rng   *rand.Rand
	state State

	grid      *systems.Grid
	painter   *renderer.GridRenderer
	cam       *camera.Camera
	pulses    *systems.Pulses
	particles *systems.Pool

	decor *synthDecor // Synthwave sky, sun and floor (nil for plain terrains)
}

// NewTerrain returns a constructor for the named terrain variant. Unknown variants
// construct an inert effect.
func NewTerrain(name string) Constructor {
	return func(env Env) Effect {
		t := newTerrain(env, name)
		if t == nil {
			return inert{}
		}
		t.start()
		return t
	}
}

func newTerrain(env Env, name string) *Terrain {
	cfg, ok := env.Config.Terrain(name)
	if !ok {
		env.logger().Warn("unknown terrain variant", "terrain", name)
		return nil
	}
	m := newMount(env, name)
	c, err := m.surface(surface.Layer{
		Name:       name,
		Z:          -1,
		Opaque:     true,
		Background: cfg.Background.NRGBA,
	})
	if err != nil {
		m.release()
		return nil
	}
	w, h := c.Size()
	t := &Terrain{
		m:         m,
		name:      name,
		cfg:       cfg,
		c:         c,
		rng:       env.rng(),
		grid:      systems.NewGrid(cfg),
		painter:   renderer.NewGridRenderer(cfg),
		cam:       camera.New(float64(w), float64(h), cfg.Mouse.Smooth),
		pulses:    systems.NewPulses(cfg.Pulse),
		particles: systems.NewPool(),
	}
	t.grid.Resize(w)
	if cfg.Particles.Enabled {
		v := t.volume()
		t.particles.Regenerate(max(cfg.Particles.Count, 0), func(_ int, pt *systems.Point) {
			systems.Respawn3D(pt, t.rng, v)
		})
	}
	return t
}

// start registers input listeners and begins the frame loop.
func (t *Terrain) start() {
	t.m.listen(surface.EventPointerMove, func(ev surface.Event) {
		t.cam.MoveTo(ev.X, ev.Y)
	})
	if t.cfg.Pulse.Enabled {
		t.m.listen(surface.EventPointerDown, func(ev surface.Event) {
			t.pulses.Add(ev.X, ev.Y)
		})
	}
	t.state = StateRunning
	t.m.loop(t.frame)
}

func (t *Terrain) volume() systems.Volume {
	w, h := t.c.Size()
	return systems.Volume{Width: float64(w), Height: float64(h)}
}

func (t *Terrain) frame(now time.Duration) {
	t.grid.Advance()
	t.cam.Update()
	t.pulses.Step()

	w, h := t.c.Size()
	fw, fh := float64(w), float64(h)
	t.c.Clear()

	if t.decor != nil {
		t.decor.background(t.c, now)
	}
	if t.cfg.HorizonGlow {
		t.painter.HorizonGlow(t.c, fw, fh*0.4+(t.cam.Smooth.Y-fh/2)*0.05)
	}

	origin := t.cam.Origin(0.5, t.cfg.OriginY, t.cfg.Parallax)
	if t.cfg.Particles.Enabled {
		v := t.volume()
		t.particles.Update(func(pt *systems.Point) {
			systems.Drift3D(pt, t.cfg.Particles.Speed, t.rng, v)
		})
		porigin := t.cam.Origin(0.5, 0.5, t.cfg.Particles.Parallax)
		renderer.Drift(t.c, t.particles, t.cfg.FOV, porigin, t.cfg.Particle.NRGBA)
	}

	points := t.grid.Sample(origin, t.cam.Smooth, t.pulses)
	if t.decor != nil {
		t.c.Save()
		t.c.Clip(t.decor.below(fw, fh))
		t.painter.Draw(t.c, t.grid, points)
		t.c.Restore()
		t.decor.foreground(t.c)
		return
	}
	t.painter.Draw(t.c, t.grid, points)
}

// State returns the lifecycle stage.
func (t *Terrain) State() State {
	return t.state
}

// Offset returns the flight offset.
func (t *Terrain) Offset() float64 {
	return t.grid.Offset()
}

// Cols returns the current grid column count.
func (t *Terrain) Cols() int {
	return t.grid.Cols()
}

// Pulses returns the active pulse rings.
func (t *Terrain) Pulses() *systems.Pulses {
	return t.pulses
}

// Resize recomputes the column count from the new width. The flight offset, pointer and
// pulses carry over.
func (t *Terrain) Resize(width, height int) {
	if t.state != StateRunning {
		return
	}
	t.grid.Resize(width)
	t.cam.Resize(float64(width), float64(height))
	if t.decor != nil {
		t.decor.resize(width, height)
	}
}

// Destroy stops the effect.
func (t *Terrain) Destroy() {
	t.state = StateDestroyed
	t.m.release()
}
