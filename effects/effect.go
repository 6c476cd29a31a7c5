// Package effects implements the animated backgrounds and the lifecycle they share.
//
// An effect is constructed against a surface.Host and starts animating immediately.
// Destroy gives back every surface, listener and frame callback it took. Effects that can
// adapt to a new viewport implement Resizer; the rest are rebuilt by the manager.
package effects

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/surface"
)

// Effect is one mounted background.
type Effect interface {
	// Destroy stops the animation loop, removes listeners and detaches surfaces.
	// It is called exactly once per mounted lifetime.
	Destroy()
}

// Resizer is implemented by effects that adapt to a new viewport in place. width and
// height are the new viewport size. Hosts resize their surfaces before calling it, so
// partial-height layers can read their own size.
type Resizer interface {
	Resize(width, height int)
}

// FrameObserver receives the time spent in each frame callback.
type FrameObserver interface {
	ObserveFrame(effect string, d time.Duration)
}

// Env is what an effect is constructed with.
type Env struct {
	Host     surface.Host
	Config   *config.Config
	Logger   *slog.Logger
	Seed     int64
	Observer FrameObserver // Optional
}

func (e Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

func (e Env) rng() *rand.Rand {
	return rand.New(rand.NewSource(e.Seed))
}

// Constructor builds and starts an effect.
type Constructor func(env Env) Effect

// inert is returned when an effect could not acquire its surfaces.
type inert struct{}

func (inert) Destroy() {}
