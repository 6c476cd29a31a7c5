package systems

import (
	"math"
	"slices"

	"github.com/pthm-cable/backdrop/config"
)

// Pulse is an expanding ring started by a click.
type Pulse struct {
	X, Y     float64
	Radius   float64
	Strength float64
}

// Pulses is the set of active pulses of one terrain.
type Pulses struct {
	cfg    config.PulseConfig
	active []Pulse
}

// NewPulses creates an empty pulse set. A disabled config ignores Add.
func NewPulses(cfg config.PulseConfig) *Pulses {
	return &Pulses{cfg: cfg}
}

// Add starts a pulse at full strength.
func (p *Pulses) Add(x, y float64) {
	if !p.cfg.Enabled {
		return
	}
	p.active = append(p.active, Pulse{X: x, Y: y, Strength: 1})
}

// Step grows every pulse and decays its strength, dropping pulses whose strength fell
// below the threshold.
func (p *Pulses) Step() {
	for i := range p.active {
		p.active[i].Radius += p.cfg.Speed
		p.active[i].Strength *= p.cfg.Decay
	}
	p.active = slices.DeleteFunc(p.active, func(pu Pulse) bool {
		return pu.Strength < p.cfg.Threshold
	})
}

// Len returns the number of active pulses.
func (p *Pulses) Len() int {
	return len(p.active)
}

// Active returns the active pulses. The slice is only valid until the next Step.
func (p *Pulses) Active() []Pulse {
	return p.active
}

// Displacement returns the upward screen displacement at (x, y) from every pulse ring
// passing through it.
func (p *Pulses) Displacement(x, y float64) float64 {
	var d float64
	w := p.cfg.Width
	if w <= 0 {
		return 0
	}
	for _, pu := range p.active {
		ring := math.Abs(math.Hypot(x-pu.X, y-pu.Y) - pu.Radius)
		if ring < w {
			d += math.Cos(ring/w*math.Pi/2) * p.cfg.Force * pu.Strength
		}
	}
	return d
}
