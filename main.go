package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without a window")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	cycle := flag.Int("cycle", 0, "Switch to the next effect every N frames (0 = never)")
	effect := flag.String("effect", "", "Initial effect (empty = stored preference)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:        rngSeed,
		Headless:    *headless,
		OutputDir:   *outputDir,
		CycleFrames: *cycle,
		Effect:      *effect,
	}

	if *headless {
		g, err := game.NewGameWithOptions(cfg, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"width", cfg.Screen.Width,
			"height", cfg.Screen.Height,
			"max_frames", *maxFrames,
			"cycle", *cycle,
		)

		for {
			g.UpdateHeadless()

			if *maxFrames > 0 && int(g.Frame()) >= *maxFrames {
				slog.Info("max frames reached", "frame", g.Frame())
				return
			}
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && int(g.Frame()) >= *maxFrames {
			break
		}
	}
}
