// Package rlhost runs effects in a raylib window. Each surface is a render texture;
// frames run once per display refresh and the layers are composited by Z order.
package rlhost

import (
	"image/color"
	"slices"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/surface"
)

type frame struct {
	id surface.FrameID
	fn surface.FrameFunc
}

type listener struct {
	id   surface.ListenerID
	kind surface.EventKind
	fn   func(surface.Event)
}

// Host implements surface.Host on top of an open raylib window.
type Host struct {
	width, height int
	page          color.NRGBA
	start         time.Time
	nextID        uint64

	surfaces  []*Canvas
	frames    []frame
	listeners []listener

	bound   *Canvas // Canvas whose texture mode is active
	pointer rl.Vector2
}

// New creates a host for the current window. The window must already be open.
func New(page color.NRGBA) *Host {
	return &Host{
		width:  rl.GetScreenWidth(),
		height: rl.GetScreenHeight(),
		page:   page,
		start:  time.Now(),
	}
}

func (h *Host) Viewport() (int, int) {
	return h.width, h.height
}

func (h *Host) CreateSurface(layer surface.Layer) (surface.Canvas, error) {
	if !rl.IsWindowReady() {
		return nil, surface.ErrNoContext
	}
	w, ht := layer.Size(h.width, h.height)
	c := newCanvas(h, layer, w, ht)
	if c.target.ID == 0 {
		return nil, surface.ErrNoContext
	}
	h.surfaces = append(h.surfaces, c)

	// New textures start undefined.
	c.Clear()
	h.unbind()
	return c, nil
}

// RemoveSurface unloads a surface's texture; unknown surfaces are ignored.
func (h *Host) RemoveSurface(sc surface.Canvas) {
	h.surfaces = slices.DeleteFunc(h.surfaces, func(c *Canvas) bool {
		if surface.Canvas(c) != sc {
			return false
		}
		if h.bound == c {
			h.unbind()
		}
		c.release()
		return true
	})
}

func (h *Host) RequestFrame(fn surface.FrameFunc) surface.FrameID {
	h.nextID++
	id := surface.FrameID(h.nextID)
	h.frames = append(h.frames, frame{id: id, fn: fn})
	return id
}

func (h *Host) CancelFrame(id surface.FrameID) {
	h.frames = slices.DeleteFunc(h.frames, func(f frame) bool { return f.id == id })
}

func (h *Host) AddListener(kind surface.EventKind, fn func(surface.Event)) surface.ListenerID {
	h.nextID++
	id := surface.ListenerID(h.nextID)
	h.listeners = append(h.listeners, listener{id: id, kind: kind, fn: fn})
	return id
}

func (h *Host) RemoveListener(id surface.ListenerID) {
	h.listeners = slices.DeleteFunc(h.listeners, func(l listener) bool { return l.id == id })
}

// bind makes c the texture drawing target.
func (h *Host) bind(c *Canvas) {
	if h.bound == c {
		return
	}
	h.unbind()
	rl.BeginTextureMode(c.target)
	h.bound = c
}

func (h *Host) unbind() {
	if h.bound != nil {
		rl.EndTextureMode()
		h.bound = nil
	}
}

func (h *Host) dispatch(ev surface.Event) {
	for _, l := range slices.Clone(h.listeners) {
		if l.kind == ev.Kind {
			l.fn(ev)
		}
	}
}

// Poll turns window input into events: pointer moves, left clicks and resizes.
// Surfaces are reallocated at their new size before the resize event goes out.
func (h *Host) Poll() {
	if rl.IsWindowResized() {
		h.width, h.height = rl.GetScreenWidth(), rl.GetScreenHeight()
		for _, c := range h.surfaces {
			c.release()
			c.allocate(c.layer.Size(h.width, h.height))
			c.Clear()
		}
		h.unbind()
		h.dispatch(surface.Event{Kind: surface.EventResize, Width: h.width, Height: h.height})
	}

	pos := rl.GetMousePosition()
	if pos != h.pointer {
		h.pointer = pos
		h.dispatch(surface.Event{Kind: surface.EventPointerMove, X: float64(pos.X), Y: float64(pos.Y)})
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		h.dispatch(surface.Event{Kind: surface.EventPointerDown, X: float64(pos.X), Y: float64(pos.Y)})
	}
}

// RunFrame runs every frame callback scheduled before the call.
func (h *Host) RunFrame() {
	now := time.Since(h.start)
	pending := h.frames
	h.frames = nil
	for _, f := range pending {
		f.fn(now)
	}
	h.unbind()
}

// Compose draws the page colour, every layer in Z order, then overlay on top.
func (h *Host) Compose(overlay func()) {
	h.unbind()
	layers := slices.Clone(h.surfaces)
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].layer.Z < layers[j].layer.Z })

	rl.BeginDrawing()
	rl.ClearBackground(rgba(h.page, 1))
	for _, c := range layers {
		w, ht := float32(c.width), float32(c.height)
		// Render textures are stored upside down.
		src := rl.Rectangle{X: 0, Y: 0, Width: w, Height: -ht}
		dst := rl.Rectangle{X: 0, Y: float32(c.layer.Offset(h.height)), Width: w, Height: ht}
		rl.DrawTexturePro(c.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
	}
	if overlay != nil {
		overlay()
	}
	rl.EndDrawing()
}

// Close unloads every remaining surface.
func (h *Host) Close() {
	h.unbind()
	for _, c := range h.surfaces {
		c.release()
	}
	h.surfaces = nil
	h.frames = nil
	h.listeners = nil
}
