// Package game wires the host, the effects manager, telemetry and the overlay UI into a
// run loop, windowed or headless.
package game

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/effects"
	"github.com/pthm-cable/backdrop/manager"
	"github.com/pthm-cable/backdrop/prefs"
	"github.com/pthm-cable/backdrop/rlhost"
	"github.com/pthm-cable/backdrop/surface"
	"github.com/pthm-cable/backdrop/telemetry"
	"github.com/pthm-cable/backdrop/ui"
)

// Options configures a run.
type Options struct {
	Seed        int64
	Headless    bool
	OutputDir   string // CSV logs and config snapshot (empty = off)
	CycleFrames int    // Switch to the next effect every N frames (0 = never)
	Effect      string // Initial effect, overriding the stored preference
}

// Game owns one page: a host with at most one mounted effect.
type Game struct {
	cfg  *config.Config
	opts Options

	headless *surface.Headless // Set in headless mode
	window   *rlhost.Host      // Set in windowed mode
	host     surface.Host

	registry *effects.Registry
	manager  *manager.Manager
	perf     *telemetry.PerfCollector
	output   *telemetry.OutputManager
	switches *telemetry.SwitchLog

	selector *ui.Selector
	hud      *ui.HUD
	picked   string

	frame    int64
	logEvery int64
	dt       time.Duration
}

// NewGameWithOptions creates a game. In windowed mode the raylib window must be open.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		opts:     opts,
		registry: effects.Builtin(),
		perf:     telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
	}

	fps := max(cfg.Screen.TargetFPS, 1)
	g.dt = time.Second / time.Duration(fps)
	g.logEvery = int64(cfg.Telemetry.LogInterval * float64(fps))

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	g.output = output
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	g.switches = telemetry.NewSwitchLog(output, g.Frame)

	var store prefs.Store
	if opts.Headless {
		g.headless = surface.NewHeadless(cfg.Screen.Width, cfg.Screen.Height)
		g.host = g.headless
		store = prefs.NewMemory()
	} else {
		g.window = rlhost.New(cfg.Screen.Page.NRGBA)
		g.host = g.window
		g.selector = ui.NewSelector(g.registry.Names())
		g.hud = ui.NewHUD()
		store = openStore(cfg.Manager.AppName)
	}

	g.manager = manager.New(g.host, g.registry, store, cfg, manager.Options{
		Observer: g.perf,
		Switches: g.switches,
		Seed:     opts.Seed,
	})
	g.manager.Initialize()
	if opts.Effect != "" {
		g.manager.SwitchEffect(opts.Effect)
	}
	return g, nil
}

// openStore opens the persisted preference store, or an in-memory one when the user data
// directory is unavailable.
func openStore(appName string) prefs.Store {
	s, err := prefs.Open(appName)
	if err != nil {
		slog.Warn("preference storage unavailable, using memory", "error", err)
		return prefs.NewGdataStore(nil)
	}
	return s
}

// Update advances the windowed page by one display frame.
func (g *Game) Update() {
	g.handleInput()
	g.window.Poll()
	g.window.RunFrame()
	g.perf.RecordFrame()
	g.afterFrame()
}

// Draw composites the layers and the overlay UI.
func (g *Game) Draw() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	g.window.Compose(func() {
		if name := g.selector.Draw(w, g.manager.Current()); name != "" {
			g.picked = name
		}
		vw, _ := g.host.Viewport()
		g.hud.Draw(ui.HUDData{
			Effect:     g.manager.Current(),
			FPS:        rl.GetFPS(),
			MeanUS:     g.perf.Stats(g.manager.Current()).MeanUS,
			Width:      vw,
			Breakpoint: g.cfg.Manager.Breakpoint,
		}, h)
	})
	if g.picked != "" {
		g.manager.SwitchEffect(g.picked)
		g.picked = ""
	}
}

// UpdateHeadless advances the headless page by one frame.
func (g *Game) UpdateHeadless() {
	g.headless.Step(g.dt)
	g.afterFrame()
	if g.opts.CycleFrames > 0 && g.frame%int64(g.opts.CycleFrames) == 0 {
		g.cycle()
	}
}

func (g *Game) afterFrame() {
	g.frame++
	if g.logEvery > 0 && g.frame%g.logEvery == 0 {
		g.logPerfStats()
	}
}

// cycle switches to the effect after the current one in name order.
func (g *Game) cycle() {
	names := g.registry.Names()
	if len(names) == 0 {
		return
	}
	next := names[0]
	for i, name := range names {
		if name == g.manager.Current() {
			next = names[(i+1)%len(names)]
			break
		}
	}
	g.manager.SwitchEffect(next)
}

// Frame returns the number of frames run.
func (g *Game) Frame() int64 {
	return g.frame
}

// Current returns the mounted effect name.
func (g *Game) Current() string {
	return g.manager.Current()
}

// Host returns the page host.
func (g *Game) Host() surface.Host {
	return g.host
}

// Switches returns every effect switch so far.
func (g *Game) Switches() []telemetry.Switch {
	return g.switches.Entries()
}

// Perf returns the frame timing collector.
func (g *Game) Perf() *telemetry.PerfCollector {
	return g.perf
}

// Unload tears the page down and flushes output.
func (g *Game) Unload() {
	g.manager.Close()
	g.logPerfStats()
	if err := g.output.Close(); err != nil {
		slog.Warn("closing output", "error", err)
	}
	if g.window != nil {
		g.window.Close()
	}
}
