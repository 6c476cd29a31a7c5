package surface

import (
	"image/color"
	"math"
)

// Composite selects how drawn pixels combine with the surface.
type Composite int

const (
	CompositeNormal Composite = iota // Source over
	CompositeAdd                     // Additive ("lighter")
	CompositeErase                   // Cut out ("destination-out")
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Intersect returns the overlap of two rectangles (zero size when disjoint).
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.X+r.W, o.X+o.W)
	y1 := math.Min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// State is the scoped drawing state saved and restored by Save/Restore.
type State struct {
	Alpha       float64
	Composite   Composite
	Clip        *Rect
	ShadowBlur  float64
	ShadowColor color.NRGBA
}

// Canvas is a 2D drawing surface.
//
// Coordinates are surface pixels with the origin at the top-left corner.
type Canvas interface {
	Size() (width, height int)
	Clear()

	Save()
	Restore()
	SetAlpha(a float64)
	SetComposite(op Composite)
	Clip(r Rect)
	SetShadow(blur float64, c color.NRGBA)

	FillRect(r Rect, p Paint)
	StrokeRect(r Rect, width float64, p Paint)
	FillCircle(cx, cy, radius float64, p Paint)
	StrokeCircle(cx, cy, radius, width float64, p Paint)
	FillEllipse(cx, cy, rx, ry, rotation float64, p Paint)
	FillPath(path *Path, p Paint)
	StrokePath(path *Path, width float64, p Paint)
	StrokeLine(x0, y0, x1, y1, width float64, p Paint)
}

// StateStack implements the Save/Restore bookkeeping shared by canvas backends.
type StateStack struct {
	cur   State
	saved []State
}

// NewStateStack returns a stack holding the default state.
func NewStateStack() StateStack {
	return StateStack{cur: State{Alpha: 1}}
}

// Current returns the active state.
func (s *StateStack) Current() State {
	return s.cur
}

// Depth returns the number of unmatched Save calls.
func (s *StateStack) Depth() int {
	return len(s.saved)
}

func (s *StateStack) Save() {
	st := s.cur
	if st.Clip != nil {
		c := *st.Clip
		st.Clip = &c
	}
	s.saved = append(s.saved, st)
}

// Restore pops the last saved state; extra calls are ignored.
func (s *StateStack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *StateStack) SetAlpha(a float64) {
	s.cur.Alpha = math.Max(0, math.Min(1, a))
}

func (s *StateStack) SetComposite(op Composite) {
	s.cur.Composite = op
}

// Clip narrows the clip region to its intersection with r.
func (s *StateStack) Clip(r Rect) {
	if s.cur.Clip != nil {
		r = s.cur.Clip.Intersect(r)
	}
	s.cur.Clip = &r
}

func (s *StateStack) SetShadow(blur float64, c color.NRGBA) {
	s.cur.ShadowBlur = math.Max(0, blur)
	s.cur.ShadowColor = c
}

// Reset drops all saved states and returns to the default state.
func (s *StateStack) Reset() {
	s.cur = State{Alpha: 1}
	s.saved = s.saved[:0]
}
