// Landscape preview tool - regenerates the nature scene with sliders for the placement rules.
//
// Usage: go run ./cmd/scenepreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/renderer"
	"github.com/pthm-cable/backdrop/rlhost"
	"github.com/pthm-cable/backdrop/surface"
	"github.com/pthm-cable/backdrop/systems"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	panelWidth   = 300
)

// slider binds one integer placement parameter to a slider row.
type slider struct {
	label    string
	value    *int
	min, max float32
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	land := cfg.Nature.Landscape
	seed := int64(1)

	rl.InitWindow(windowWidth, windowHeight, "Landscape Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	host := rlhost.New(cfg.Screen.Page.NRGBA)
	defer host.Close()

	sky, err := host.CreateSurface(surface.Layer{Name: "sky", Z: -2})
	if err != nil {
		slog.Error("creating sky surface", "error", err)
		os.Exit(1)
	}
	ground, err := host.CreateSurface(surface.Layer{Name: "landscape", Z: -1, Anchor: surface.AnchorBottom, HeightFrac: land.HeightFrac})
	if err != nil {
		slog.Error("creating landscape surface", "error", err)
		os.Exit(1)
	}
	painter := renderer.NewLandscapeRenderer(land.Palette)

	sliders := []slider{
		{"Houses (max)", &land.Houses.Max, 0, 6},
		{"Trees (max)", &land.Trees.Max, 0, 16},
		{"Bushes (max)", &land.Bushes.Max, 0, 16},
		{"Flowers", &land.Flowers, 0, 200},
		{"Grass blades", &land.GrassBlades, 0, 600},
	}

	var scene *systems.Scene
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			w, h := sky.Size()
			sky.Clear()
			renderer.Sky(sky, surface.Rect{W: float64(w), H: float64(h)}, cfg.Nature.Sky.Top.NRGBA, cfg.Nature.Sky.Bottom.NRGBA)

			gw, gh := ground.Size()
			ground.Clear()
			scene = systems.GenerateScene(rand.New(rand.NewSource(seed)), float64(gw), float64(gh), land)
			painter.Draw(ground, scene)
			needsRegen = false
		}

		host.Compose(func() {
			panelX := float32(windowWidth - panelWidth)
			panelY := float32(10)
			rl.DrawRectangle(int32(panelX)-10, 0, panelWidth+10, windowHeight, rl.Fade(rl.Black, 0.6))

			rl.DrawText("Landscape", int32(panelX), int32(panelY), 20, rl.RayWhite)
			panelY += 35

			for _, s := range sliders {
				rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.LightGray)
				panelY += 18
				v := gui.SliderBar(
					rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 70, Height: 20},
					"", "",
					float32(*s.value), s.min, s.max,
				)
				rl.DrawText(fmt.Sprintf("%d", *s.value), int32(panelX+panelWidth-60), int32(panelY+2), 16, rl.RayWhite)
				if n := int(v + 0.5); n != *s.value {
					*s.value = n
					needsRegen = true
				}
				panelY += 35
			}

			// Keep min <= max so placement ranges stay valid
			for _, oc := range []*config.ObjectConfig{&land.Houses, &land.Trees, &land.Bushes} {
				oc.Min = min(oc.Min, oc.Max)
			}

			if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
				seed = rand.Int63()
				needsRegen = true
			}
			if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
				land = cfg.Nature.Landscape
				needsRegen = true
			}
			panelY += 45

			if scene != nil {
				counts := fmt.Sprintf("houses %d  trees %d  bushes %d",
					len(scene.Positions(systems.KindHouse)),
					len(scene.Positions(systems.KindTree)),
					len(scene.Positions(systems.KindBush)))
				rl.DrawText(counts, int32(panelX), int32(panelY), 14, rl.LightGray)
				rl.DrawText(fmt.Sprintf("seed %d", seed), int32(panelX), int32(panelY+20), 14, rl.LightGray)
			}
		})
	}
}
