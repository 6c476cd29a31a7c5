package ui

import (
	"strings"
	"testing"
)

func TestSelectorLayout(t *testing.T) {
	s := NewSelector([]string{"canyon", "cyberpunk", "minimal", "nature"})
	panel := s.Panel(1280)
	buttons := s.Buttons(1280)

	if len(buttons) != 4 {
		t.Fatalf("expected 4 buttons, got %d", len(buttons))
	}
	if panel.X+panel.Width > 1280 {
		t.Errorf("panel overflows the screen: %+v", panel)
	}
	for i, b := range buttons {
		if b.X < panel.X || b.X+b.Width > panel.X+panel.Width {
			t.Errorf("button %d outside the panel horizontally", i)
		}
		if b.Y+b.Height > panel.Y+panel.Height {
			t.Errorf("button %d below the panel", i)
		}
		if i > 0 && b.Y <= buttons[i-1].Y+buttons[i-1].Height-1 {
			t.Errorf("button %d overlaps button %d", i, i-1)
		}
	}
}

func TestSelectorToggle(t *testing.T) {
	s := NewSelector(nil)
	if !s.Visible() {
		t.Fatal("expected visible by default")
	}
	s.Toggle()
	if s.Visible() {
		t.Error("expected hidden after toggle")
	}
}

func TestHUDStatus(t *testing.T) {
	tests := []struct {
		name     string
		data     HUDData
		contains string
	}{
		{"mounted", HUDData{Effect: "nature", FPS: 60, MeanUS: 812, Width: 1280, Breakpoint: 769}, "nature | FPS: 60 | frame: 812us"},
		{"below breakpoint", HUDData{FPS: 60, Width: 600, Breakpoint: 769}, "below 769px"},
		{"unknown effect", HUDData{FPS: 60, Width: 1280, Breakpoint: 769}, "no background |"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.Status(); !strings.Contains(got, tt.contains) {
				t.Errorf("expected %q in %q", tt.contains, got)
			}
		})
	}
}
