package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds what the status line shows.
type HUDData struct {
	Effect     string // Empty when nothing is mounted
	FPS        int32
	MeanUS     float64 // Mean frame callback time of the mounted effect
	Width      int
	Breakpoint int
}

// Status formats the status line.
func (d HUDData) Status() string {
	if d.Effect == "" {
		if d.Width < d.Breakpoint {
			return fmt.Sprintf("no background below %dpx (viewport %dpx) | FPS: %d", d.Breakpoint, d.Width, d.FPS)
		}
		return fmt.Sprintf("no background | FPS: %d", d.FPS)
	}
	return fmt.Sprintf("%s | FPS: %d | frame: %.0fus", d.Effect, d.FPS, d.MeanUS)
}

// HUD renders the status line in the bottom-left corner.
type HUD struct {
	Theme Theme
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{Theme: DefaultTheme()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData, screenH int32) {
	t := h.Theme
	text := data.Status()
	w := rl.MeasureText(text, t.FontSize)
	y := screenH - t.LineHeight - 2*t.Padding
	rl.DrawRectangle(t.Padding, y, w+2*t.Padding, t.LineHeight+t.Padding, t.PanelBg)
	rl.DrawText(text, 2*t.Padding, y+t.Padding/2, t.FontSize, t.ValueColor)
}
