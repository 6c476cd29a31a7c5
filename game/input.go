package game

import rl "github.com/gen2brain/raylib-go/raylib"

// effectKeys select effects by their position in the selector.
var effectKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.selector.Toggle()
	}

	names := g.registry.Names()
	for i, key := range effectKeys {
		if i < len(names) && rl.IsKeyPressed(key) {
			g.picked = names[i]
		}
	}

	if rl.IsKeyPressed(rl.KeyC) {
		g.cycle()
	}
}
