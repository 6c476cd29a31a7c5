// Package ui draws the overlay controls: the effect selector and a small status line.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg      rl.Color
	PanelBorder  rl.Color
	LabelColor   rl.Color
	ValueColor   rl.Color
	ActiveColor  rl.Color
	Padding      int32
	LineHeight   int32
	ButtonWidth  int32
	ButtonHeight int32
	FontSize     int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:      rl.Color{R: 20, G: 25, B: 30, A: 200},
		PanelBorder:  rl.Color{R: 60, G: 70, B: 80, A: 255},
		LabelColor:   rl.LightGray,
		ValueColor:   rl.White,
		ActiveColor:  rl.Color{R: 0, G: 255, B: 136, A: 255},
		Padding:      10,
		LineHeight:   16,
		ButtonWidth:  110,
		ButtonHeight: 26,
		FontSize:     12,
	}
}
