package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/backdrop/config"
)

func TestPulseDecayTermination(t *testing.T) {
	cfg := config.PulseConfig{Enabled: true, Speed: 3, Force: 150, Decay: 0.97, Width: 40, Threshold: 0.01}
	p := NewPulses(cfg)
	p.Add(100, 100)

	want := int(math.Ceil(math.Log(cfg.Threshold) / math.Log(cfg.Decay)))
	if want != 152 {
		t.Fatalf("expected removal frame 152, computed %d", want)
	}

	for n := 1; n < want; n++ {
		p.Step()
		if p.Len() != 1 {
			t.Fatalf("frame %d: pulse removed early", n)
		}
		got := p.Active()[0].Strength
		exp := math.Pow(cfg.Decay, float64(n))
		if math.Abs(got-exp) > 1e-12 {
			t.Fatalf("frame %d: expected strength %g, got %g", n, exp, got)
		}
		if r := p.Active()[0].Radius; math.Abs(r-float64(n)*cfg.Speed) > 1e-9 {
			t.Fatalf("frame %d: expected radius %g, got %g", n, float64(n)*cfg.Speed, r)
		}
	}

	p.Step()
	if p.Len() != 0 {
		t.Errorf("expected pulse removed at frame %d", want)
	}
}

func TestPulseDisabled(t *testing.T) {
	p := NewPulses(config.PulseConfig{Enabled: false, Decay: 0.9, Width: 10})
	p.Add(1, 2)
	if p.Len() != 0 {
		t.Errorf("expected disabled pulses to ignore clicks, got %d", p.Len())
	}
}

func TestPulseDisplacement(t *testing.T) {
	p := NewPulses(config.PulseConfig{Enabled: true, Speed: 10, Force: 100, Decay: 0.5, Width: 20, Threshold: 0.01})
	p.Add(0, 0)
	p.Step() // radius 10, strength 0.5

	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{"on the ring", 10, 0, 50},
		{"inside band", 0, 20, math.Cos(0.5*math.Pi/2) * 50},
		{"outside band", 40, 0, 0},
	}
	for _, tc := range tests {
		if got := p.Displacement(tc.x, tc.y); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: expected %g, got %g", tc.name, tc.want, got)
		}
	}
}
