// Package surface defines the drawing target and page services an effect runs against.
//
// A Host plays the role of the document: it hands out layered drawing surfaces, schedules
// per-frame callbacks, and delivers pointer and resize events. Effects never reach for global
// state; they get a Host injected and must give back everything they took from it.
package surface

import (
	"errors"
	"image/color"
	"math"
	"time"
)

// ErrNoContext is returned when a host cannot provide a drawing surface.
var ErrNoContext = errors.New("surface: drawing context unavailable")

// Anchor selects which viewport edge a partial-height layer is pinned to.
type Anchor int

const (
	AnchorTop Anchor = iota
	AnchorBottom
)

// Layer describes a drawing surface requested from a Host.
type Layer struct {
	Name       string
	Z          int        // Stacking order; negative values sit behind page content
	Anchor     Anchor     // Edge for partial-height layers
	HeightFrac float64    // Fraction of the viewport height (0 means full height)
	Opaque     bool       // Surface has no alpha channel
	Background color.NRGBA // Fill applied by Clear on opaque layers
}

// Size returns the surface size for the given viewport.
func (l Layer) Size(viewportW, viewportH int) (int, int) {
	w := max(viewportW, 0)
	h := max(viewportH, 0)
	if l.HeightFrac > 0 && l.HeightFrac < 1 {
		h = int(math.Floor(float64(h) * l.HeightFrac))
	}
	return w, h
}

// Offset returns the surface's top edge in viewport coordinates.
func (l Layer) Offset(viewportH int) int {
	if l.Anchor != AnchorBottom {
		return 0
	}
	_, h := l.Size(0, viewportH)
	return max(viewportH, 0) - h
}

// EventKind identifies an input event.
type EventKind int

const (
	EventPointerMove EventKind = iota
	EventPointerDown
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventPointerMove:
		return "pointer_move"
	case EventPointerDown:
		return "pointer_down"
	case EventResize:
		return "resize"
	}
	return "unknown"
}

// Event carries viewport-space input.
type Event struct {
	Kind          EventKind
	X, Y          float64 // Pointer position
	Width, Height int     // Viewport size for EventResize
}

// FrameFunc is called once per display refresh with the host clock.
type FrameFunc func(now time.Duration)

// FrameID identifies a scheduled frame callback.
type FrameID uint64

// ListenerID identifies a registered event listener.
type ListenerID uint64

// Host is the page an effect mounts into.
//
// All callbacks run on the host's goroutine, one at a time.
type Host interface {
	Viewport() (width, height int)

	CreateSurface(layer Layer) (Canvas, error)
	RemoveSurface(c Canvas)

	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)

	AddListener(kind EventKind, fn func(Event)) ListenerID
	RemoveListener(id ListenerID)
}
