package effects

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/backdrop/surface"
)

// mount records everything an effect acquires from the host and releases it once.
type mount struct {
	host     surface.Host
	name     string
	log      *slog.Logger
	observer FrameObserver

	surfaces  []surface.Canvas
	listeners []surface.ListenerID

	step     func(now time.Duration)
	frame    surface.FrameID
	pending  bool
	active   bool
	released bool
}

func newMount(env Env, name string) *mount {
	return &mount{
		host:     env.Host,
		name:     name,
		log:      env.logger().With("effect", name),
		observer: env.Observer,
	}
}

// surface creates a layer owned by this mount.
func (m *mount) surface(layer surface.Layer) (surface.Canvas, error) {
	c, err := m.host.CreateSurface(layer)
	if err != nil {
		m.log.Debug("surface unavailable", "layer", layer.Name, "error", err)
		return nil, err
	}
	m.surfaces = append(m.surfaces, c)
	return c, nil
}

// listen registers an event listener owned by this mount.
func (m *mount) listen(kind surface.EventKind, fn func(surface.Event)) {
	m.listeners = append(m.listeners, m.host.AddListener(kind, fn))
}

// loop starts calling step once per frame until release.
func (m *mount) loop(step func(now time.Duration)) {
	if m.released {
		return
	}
	m.step = step
	m.active = true
	m.schedule()
}

func (m *mount) schedule() {
	m.frame = m.host.RequestFrame(m.tick)
	m.pending = true
}

// tick runs one frame. A callback that fires after release does nothing.
func (m *mount) tick(now time.Duration) {
	if !m.active {
		return
	}
	m.pending = false
	start := time.Now()
	m.step(now)
	if m.observer != nil {
		m.observer.ObserveFrame(m.name, time.Since(start))
	}
	if m.active {
		m.schedule()
	}
}

// release stops the loop and gives back every listener and surface. Later calls are no-ops.
func (m *mount) release() {
	if m.released {
		return
	}
	m.released = true
	m.active = false
	if m.pending {
		m.host.CancelFrame(m.frame)
		m.pending = false
	}
	for _, id := range m.listeners {
		m.host.RemoveListener(id)
	}
	for _, c := range m.surfaces {
		m.host.RemoveSurface(c)
	}
	m.listeners = nil
	m.surfaces = nil
	m.log.Debug("effect released")
}
