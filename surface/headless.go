package surface

import (
	"slices"
	"sort"
	"time"
)

// Headless is a Host without a display. Frames run when Step is called and every
// surface is a Recorder. It backs the -headless mode and the package tests.
type Headless struct {
	width, height int
	clock         time.Duration
	nextID        uint64

	// FailSurfaces makes CreateSurface fail, as a page without a 2D context would.
	FailSurfaces bool

	surfaces  []*mounted
	frames    []frame
	listeners []listener
}

type mounted struct {
	layer    Layer
	recorder *Recorder
}

type frame struct {
	id FrameID
	fn FrameFunc
}

type listener struct {
	id   ListenerID
	kind EventKind
	fn   func(Event)
}

// NewHeadless creates a headless host with the given viewport.
func NewHeadless(width, height int) *Headless {
	return &Headless{width: width, height: height}
}

func (h *Headless) Viewport() (int, int) {
	return h.width, h.height
}

func (h *Headless) CreateSurface(layer Layer) (Canvas, error) {
	if h.FailSurfaces {
		return nil, ErrNoContext
	}
	w, ht := layer.Size(h.width, h.height)
	m := &mounted{layer: layer, recorder: NewRecorder(w, ht)}
	h.surfaces = append(h.surfaces, m)
	return m.recorder, nil
}

// RemoveSurface detaches a surface; unknown surfaces are ignored.
func (h *Headless) RemoveSurface(c Canvas) {
	h.surfaces = slices.DeleteFunc(h.surfaces, func(m *mounted) bool {
		return Canvas(m.recorder) == c
	})
}

func (h *Headless) RequestFrame(fn FrameFunc) FrameID {
	h.nextID++
	id := FrameID(h.nextID)
	h.frames = append(h.frames, frame{id: id, fn: fn})
	return id
}

func (h *Headless) CancelFrame(id FrameID) {
	h.frames = slices.DeleteFunc(h.frames, func(f frame) bool { return f.id == id })
}

func (h *Headless) AddListener(kind EventKind, fn func(Event)) ListenerID {
	h.nextID++
	id := ListenerID(h.nextID)
	h.listeners = append(h.listeners, listener{id: id, kind: kind, fn: fn})
	return id
}

func (h *Headless) RemoveListener(id ListenerID) {
	h.listeners = slices.DeleteFunc(h.listeners, func(l listener) bool { return l.id == id })
}

// Step advances the clock by dt and runs every callback scheduled before the call.
// Callbacks requested during the step run on the next one.
func (h *Headless) Step(dt time.Duration) {
	h.clock += dt
	pending := h.frames
	h.frames = nil
	for _, f := range pending {
		f.fn(h.clock)
	}
}

// Run calls Step n times.
func (h *Headless) Run(n int, dt time.Duration) {
	for i := 0; i < n; i++ {
		h.Step(dt)
	}
}

// Now returns the host clock.
func (h *Headless) Now() time.Duration {
	return h.clock
}

// Pending returns the scheduled frame callbacks without running them.
func (h *Headless) Pending() []FrameFunc {
	out := make([]FrameFunc, len(h.frames))
	for i, f := range h.frames {
		out[i] = f.fn
	}
	return out
}

// Dispatch delivers an event to the listeners registered for its kind.
func (h *Headless) Dispatch(ev Event) {
	for _, l := range slices.Clone(h.listeners) {
		if l.kind == ev.Kind {
			l.fn(ev)
		}
	}
}

// Resize changes the viewport, resizes every surface, then dispatches EventResize.
func (h *Headless) Resize(width, height int) {
	h.width, h.height = width, height
	for _, m := range h.surfaces {
		m.recorder.SetSize(m.layer.Size(width, height))
	}
	h.Dispatch(Event{Kind: EventResize, Width: width, Height: height})
}

// Attached returns the number of surfaces currently attached.
func (h *Headless) Attached() int {
	return len(h.surfaces)
}

// Listeners returns the number of listeners registered for kind.
func (h *Headless) Listeners(kind EventKind) int {
	n := 0
	for _, l := range h.listeners {
		if l.kind == kind {
			n++
		}
	}
	return n
}

// Layers returns the attached layers in stacking order.
func (h *Headless) Layers() []Layer {
	out := make([]Layer, len(h.surfaces))
	for i, m := range h.surfaces {
		out[i] = m.layer
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// Recorder returns the attached surface with the given layer name.
func (h *Headless) Recorder(name string) (*Recorder, bool) {
	for _, m := range h.surfaces {
		if m.layer.Name == name {
			return m.recorder, true
		}
	}
	return nil, false
}
