// Package manager selects, persists and swaps the mounted background effect.
package manager

import (
	"log/slog"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/effects"
	"github.com/pthm-cable/backdrop/prefs"
	"github.com/pthm-cable/backdrop/surface"
)

// Reasons passed to a SwitchObserver.
const (
	ReasonInitialize = "initialize"
	ReasonSelect     = "select"
	ReasonResize     = "resize"
	ReasonRebuild    = "rebuild"
	ReasonBreakpoint = "breakpoint"
	ReasonClose      = "close"
)

// SwitchObserver is told whenever the mounted effect changes. to is empty when nothing
// is mounted afterwards.
type SwitchObserver interface {
	ObserveSwitch(from, to, reason string, width int)
}

// Options configures a Manager. Zero fields take their value from config.ManagerConfig.
type Options struct {
	Breakpoint    int
	DefaultEffect string
	PreferenceKey string

	Logger   *slog.Logger
	Observer effects.FrameObserver // Frame timings of mounted effects
	Switches SwitchObserver
	Seed     int64 // Base seed; each mount offsets it
}

// Manager mounts at most one effect at a time.
type Manager struct {
	host  surface.Host
	reg   *effects.Registry
	store prefs.Store
	cfg   *config.Config
	opts  Options
	log   *slog.Logger

	current     effects.Effect
	currentName string
	missing     string // Last unknown name, warned about once
	mounts      int64

	resizeID    surface.ListenerID
	initialized bool
}

// New creates a manager. Nothing is mounted until Initialize.
func New(host surface.Host, reg *effects.Registry, store prefs.Store, cfg *config.Config, opts Options) *Manager {
	if opts.Breakpoint == 0 {
		opts.Breakpoint = cfg.Manager.Breakpoint
	}
	if opts.DefaultEffect == "" {
		opts.DefaultEffect = cfg.Manager.DefaultEffect
	}
	if opts.PreferenceKey == "" {
		opts.PreferenceKey = cfg.Manager.PreferenceKey
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if store == nil {
		store = prefs.NewMemory()
	}
	return &Manager{host: host, reg: reg, store: store, cfg: cfg, opts: opts, log: log}
}

// Initialize mounts the stored preference when the viewport is wide enough and starts
// following viewport resizes. Later calls do nothing.
func (m *Manager) Initialize() {
	if m.initialized {
		return
	}
	m.initialized = true
	m.resizeID = m.host.AddListener(surface.EventResize, func(surface.Event) {
		m.HandleResize()
	})

	name := m.Preference()
	if m.wide() {
		m.persist(name)
		m.mount(name, ReasonInitialize)
	}
}

// SwitchEffect replaces the mounted effect with name and stores the choice. It does
// nothing below the breakpoint. An unknown name leaves nothing mounted.
func (m *Manager) SwitchEffect(name string) {
	if !m.wide() {
		return
	}
	from := m.currentName
	m.unmount()
	m.persist(name)
	m.mountFrom(from, name, ReasonSelect)
}

// HandleResize reacts to a viewport change: it mounts the preference when the viewport
// grows past the breakpoint, resizes the mounted effect while it stays above, and
// unmounts below. Effects that cannot resize are rebuilt.
func (m *Manager) HandleResize() {
	w, h := m.host.Viewport()
	if !m.wide() {
		if m.current != nil {
			from := m.currentName
			m.unmount()
			m.notify(from, "", ReasonBreakpoint)
		}
		return
	}
	switch {
	case m.current == nil:
		m.mount(m.Preference(), ReasonResize)
	default:
		if r, ok := m.current.(effects.Resizer); ok {
			r.Resize(w, h)
			return
		}
		name := m.currentName
		m.unmount()
		m.mountFrom(name, name, ReasonRebuild)
	}
}

// Close unmounts the current effect and stops following resizes.
func (m *Manager) Close() {
	if m.current != nil {
		from := m.currentName
		m.unmount()
		m.notify(from, "", ReasonClose)
	}
	if m.initialized {
		m.host.RemoveListener(m.resizeID)
		m.initialized = false
	}
}

// Current returns the name of the mounted effect, or "" when nothing is mounted.
func (m *Manager) Current() string {
	return m.currentName
}

// Effect returns the mounted effect, or nil.
func (m *Manager) Effect() effects.Effect {
	return m.current
}

// Preference returns the stored effect name, or the default when none is stored or the
// store fails.
func (m *Manager) Preference() string {
	name, ok, err := m.store.Load(m.opts.PreferenceKey)
	if err != nil {
		m.log.Warn("loading effect preference", "key", m.opts.PreferenceKey, "error", err)
	}
	if err != nil || !ok || name == "" {
		return m.opts.DefaultEffect
	}
	return name
}

func (m *Manager) wide() bool {
	w, _ := m.host.Viewport()
	return w >= m.opts.Breakpoint
}

func (m *Manager) persist(name string) {
	if err := m.store.Save(m.opts.PreferenceKey, name); err != nil {
		m.log.Warn("saving effect preference", "key", m.opts.PreferenceKey, "error", err)
	}
}

func (m *Manager) mount(name, reason string) {
	m.mountFrom(m.currentName, name, reason)
}

func (m *Manager) mountFrom(from, name, reason string) {
	ctor, ok := m.reg.Lookup(name)
	if !ok {
		if name != m.missing {
			m.log.Warn("unknown effect", "effect", name)
			m.missing = name
		}
		if from != "" {
			m.notify(from, "", reason)
		}
		return
	}
	m.missing = ""
	m.mounts++
	m.current = ctor(effects.Env{
		Host:     m.host,
		Config:   m.cfg,
		Logger:   m.log,
		Seed:     m.opts.Seed + m.mounts,
		Observer: m.opts.Observer,
	})
	m.currentName = name
	m.notify(from, name, reason)
}

func (m *Manager) unmount() {
	if m.current == nil {
		return
	}
	m.current.Destroy()
	m.current = nil
	m.currentName = ""
}

func (m *Manager) notify(from, to, reason string) {
	w, _ := m.host.Viewport()
	m.log.Info("effect switched", "from", from, "to", to, "reason", reason, "width", w, "breakpoint", m.opts.Breakpoint)
	if m.opts.Switches != nil {
		m.opts.Switches.ObserveSwitch(from, to, reason, w)
	}
}
