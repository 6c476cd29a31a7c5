package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Selector is a column of buttons, one per effect, anchored to the top-right corner.
type Selector struct {
	Theme   Theme
	names   []string
	visible bool
}

// NewSelector creates a selector for the given effect names.
func NewSelector(names []string) *Selector {
	return &Selector{Theme: DefaultTheme(), names: names, visible: true}
}

// Toggle shows or hides the selector.
func (s *Selector) Toggle() {
	s.visible = !s.visible
}

// Visible reports whether the selector is drawn.
func (s *Selector) Visible() bool {
	return s.visible
}

// Panel returns the selector's panel rectangle for a screen width.
func (s *Selector) Panel(screenW int32) rl.Rectangle {
	t := s.Theme
	w := t.ButtonWidth + 2*t.Padding
	h := int32(len(s.names))*(t.ButtonHeight+t.Padding/2) + t.Padding + t.LineHeight + t.Padding/2
	return rl.Rectangle{X: float32(screenW - w - t.Padding), Y: float32(t.Padding), Width: float32(w), Height: float32(h)}
}

// Buttons returns one button rectangle per effect name, top to bottom.
func (s *Selector) Buttons(screenW int32) []rl.Rectangle {
	t := s.Theme
	p := s.Panel(screenW)
	y := p.Y + float32(t.Padding+t.LineHeight)
	out := make([]rl.Rectangle, len(s.names))
	for i := range s.names {
		out[i] = rl.Rectangle{X: p.X + float32(t.Padding), Y: y, Width: float32(t.ButtonWidth), Height: float32(t.ButtonHeight)}
		y += float32(t.ButtonHeight + t.Padding/2)
	}
	return out
}

// Draw renders the selector and returns the name of the clicked effect, or "".
// current is highlighted.
func (s *Selector) Draw(screenW int32, current string) string {
	if !s.visible {
		return ""
	}
	t := s.Theme
	p := s.Panel(screenW)
	rl.DrawRectangleRec(p, t.PanelBg)
	rl.DrawRectangleLinesEx(p, 1, t.PanelBorder)
	rl.DrawText("Background", int32(p.X)+t.Padding, int32(p.Y)+t.Padding/2, t.FontSize, t.LabelColor)

	picked := ""
	for i, r := range s.Buttons(screenW) {
		name := s.names[i]
		if gui.Button(r, name) {
			picked = name
		}
		if name == current {
			rl.DrawRectangleLinesEx(r, 2, t.ActiveColor)
		}
	}
	return picked
}
