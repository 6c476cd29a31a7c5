package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/backdrop/config"
)

func testTerrain(t *testing.T, name string) config.TerrainConfig {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	tc, ok := cfg.Terrain(name)
	if !ok {
		t.Fatalf("terrain %q missing from defaults", name)
	}
	return tc
}

func TestHeightFieldDeterministic(t *testing.T) {
	for _, name := range []string{"wireframe", "canyon", "cyberpunk"} {
		tc := testTerrain(t, name)
		a := NewHeightField(tc.Noise, tc.Amplitude)
		b := NewHeightField(tc.Noise, tc.Amplitude)

		for x := 0.0; x < 20; x += 1.5 {
			for z := 0.0; z < 20; z += 2.5 {
				h1 := a.At(x, z, -3.25)
				h2 := a.At(x, z, -3.25)
				if h1 != h2 {
					t.Errorf("%s: At(%g,%g) not repeatable: %g vs %g", name, x, z, h1, h2)
				}
				if h3 := b.At(x, z, -3.25); h1 != h3 {
					t.Errorf("%s: two fields with one config disagree at (%g,%g)", name, x, z)
				}
			}
		}
	}
}

func TestHeightFieldScrollIdentity(t *testing.T) {
	tc := testTerrain(t, "canyon")
	h := NewHeightField(tc.Noise, tc.Amplitude)

	// Integer-valued arguments keep z+offset exact
	for _, shift := range []float64{1, 4, 17} {
		for z := 0.0; z < 10; z++ {
			got := h.At(3, z+shift, -20-shift)
			want := h.At(3, z, -20)
			if got != want {
				t.Errorf("shift %g row %g: expected %g, got %g", shift, z, want, got)
			}
		}
	}
}

func TestHeightFieldBounded(t *testing.T) {
	for _, name := range []string{"wireframe", "canyon", "cyberpunk"} {
		tc := testTerrain(t, name)
		h := NewHeightField(tc.Noise, tc.Amplitude)
		for x := -50.0; x < 50; x += 0.7 {
			for z := -50.0; z < 50; z += 0.9 {
				v := h.At(x, z, 0)
				if math.Abs(v) > tc.Amplitude {
					t.Fatalf("%s: |At(%g,%g)| = %g exceeds amplitude %g", name, x, z, v, tc.Amplitude)
				}
				if n := h.Normalized(v); n < 0 || n > 1 {
					t.Fatalf("%s: normalized %g outside [0,1]", name, n)
				}
			}
		}
	}
}

func TestHeightFieldContinuous(t *testing.T) {
	tc := testTerrain(t, "wireframe")
	h := NewHeightField(tc.Noise, tc.Amplitude)

	prev := h.At(5, 0, 0)
	for z := 0.01; z < 10; z += 0.01 {
		v := h.At(5, z, 0)
		if math.Abs(v-prev) > tc.Amplitude*0.05 {
			t.Fatalf("jump of %g at z=%g", v-prev, z)
		}
		prev = v
	}
}

func TestHeightFieldEmpty(t *testing.T) {
	h := NewHeightField(config.NoiseConfig{}, 100)
	if v := h.At(1, 2, 3); v != 0 {
		t.Errorf("expected flat field, got %g", v)
	}
}
