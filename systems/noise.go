package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/backdrop/config"
)

type wave func(float64) float64

func waveFunc(name string) wave {
	if name == "cos" {
		return math.Cos
	}
	return math.Sin
}

type term struct {
	amp, fx, fz, phase float64
	fn                 wave

	mod              bool
	mfx, mfz, mphase float64
	mfn              wave
}

// HeightField is a pure elevation function over grid coordinates built from a sum of
// waves plus optional simplex detail. It holds no mutable state after construction.
type HeightField struct {
	terms     []term
	amplitude float64
	norm      float64

	detail      opensimplex.Noise
	detailAmp   float64
	detailScale float64
}

// NewHeightField builds a height field scaled so |At| never exceeds amplitude.
func NewHeightField(cfg config.NoiseConfig, amplitude float64) *HeightField {
	h := &HeightField{amplitude: amplitude}
	for _, t := range cfg.Terms {
		tm := term{amp: t.Amp, fx: t.FX, fz: t.FZ, phase: t.Phase, fn: waveFunc(t.Wave)}
		if t.Mod != nil {
			tm.mod = true
			tm.mfx, tm.mfz, tm.mphase = t.Mod.FX, t.Mod.FZ, t.Mod.Phase
			tm.mfn = waveFunc(t.Mod.Wave)
		}
		h.terms = append(h.terms, tm)
		h.norm += math.Abs(t.Amp)
	}
	if cfg.Detail.Amp != 0 {
		h.detail = opensimplex.New(cfg.Detail.Seed)
		h.detailAmp = cfg.Detail.Amp
		h.detailScale = cfg.Detail.Scale
		h.norm += math.Abs(cfg.Detail.Amp)
	}
	return h
}

// Amplitude returns the bound on |At|.
func (h *HeightField) Amplitude() float64 {
	return h.amplitude
}

// At returns the elevation at column x and row z for a flight offset.
// Only z+offset matters, so shifting z and offset by opposite amounts is a no-op.
func (h *HeightField) At(x, z, offset float64) float64 {
	if h.norm == 0 {
		return 0
	}
	zz := z + offset
	var v float64
	for _, t := range h.terms {
		s := t.amp * t.fn(t.fx*x+t.fz*zz+t.phase)
		if t.mod {
			s *= t.mfn(t.mfx*x + t.mfz*zz + t.mphase)
		}
		v += s
	}
	if h.detail != nil {
		v += h.detailAmp * h.detail.Eval2(x*h.detailScale, zz*h.detailScale)
	}
	// Normalising already bounds v; the clamp absorbs rounding.
	return Clamp(v/h.norm, -1, 1) * h.amplitude
}

// Normalized maps an elevation to [0, 1] across ±amplitude.
func (h *HeightField) Normalized(v float64) float64 {
	if h.amplitude == 0 {
		return 0.5
	}
	return Clamp01((v + h.amplitude) / (2 * h.amplitude))
}
