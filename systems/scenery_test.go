package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/backdrop/config"
)

func testLandscape(t *testing.T) config.LandscapeConfig {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg.Nature.Landscape
}

func TestSceneSpacing(t *testing.T) {
	lc := testLandscape(t)

	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		// Narrow widths force rejections and under-fill
		width := 300 + float64(seed%10)*150
		s := GenerateScene(rng, width, 288, lc)

		for _, kind := range []Kind{KindHouse, KindTree, KindBush} {
			pos := s.Positions(kind)
			spacing := Spacing(lc, kind)
			for i := range pos {
				for j := i + 1; j < len(pos); j++ {
					if d := math.Abs(pos[i] - pos[j]); d < spacing {
						t.Fatalf("seed %d: %s at %g and %g are %g apart, want >= %g",
							seed, kind, pos[i], pos[j], d, spacing)
					}
				}
			}
		}
	}
}

func TestSceneAvoidance(t *testing.T) {
	lc := testLandscape(t)
	rng := rand.New(rand.NewSource(42))
	s := GenerateScene(rng, 1920, 432, lc)

	// Trees avoid houses, bushes avoid everything, using their own spacing
	for _, tree := range s.Positions(KindTree) {
		for _, house := range s.Positions(KindHouse) {
			if math.Abs(tree-house) < Spacing(lc, KindTree) {
				t.Errorf("tree at %g too close to house at %g", tree, house)
			}
		}
	}
	for _, o := range s.Objects {
		if o.Kind != KindBush {
			continue
		}
		for _, other := range s.Objects {
			if other.Kind == KindBush {
				continue
			}
			if math.Abs(o.X-other.X) < Spacing(lc, KindBush) {
				t.Errorf("bush at %g too close to %s at %g", o.X, other.Kind, other.X)
			}
		}
	}
}

func TestSceneCounts(t *testing.T) {
	lc := testLandscape(t)
	rng := rand.New(rand.NewSource(7))
	s := GenerateScene(rng, 4000, 400, lc)

	if n := len(s.Positions(KindHouse)); n < lc.Houses.Min || n > lc.Houses.Max {
		t.Errorf("expected %d-%d houses on a wide layer, got %d", lc.Houses.Min, lc.Houses.Max, n)
	}
	if n := len(s.Positions(KindTree)); n > lc.Trees.Max {
		t.Errorf("expected at most %d trees, got %d", lc.Trees.Max, n)
	}
	if len(s.Blades) != lc.GrassBlades {
		t.Errorf("expected %d blades, got %d", lc.GrassBlades, len(s.Blades))
	}
	if len(s.Flowers) != lc.Flowers {
		t.Errorf("expected %d flowers, got %d", lc.Flowers, len(s.Flowers))
	}
	if len(s.Ridges) != len(lc.Ridges) {
		t.Errorf("expected %d ridges, got %d", len(lc.Ridges), len(s.Ridges))
	}
	for _, f := range s.Flowers {
		if n := len(f.Petals); n != 5 && n != 7 && n != 9 {
			t.Errorf("expected 5, 7 or 9 petals, got %d", n)
		}
	}
}

func TestSceneUnderfill(t *testing.T) {
	lc := testLandscape(t)
	lc.Houses.Min, lc.Houses.Max = 10, 10
	rng := rand.New(rand.NewSource(1))

	// Only one house fits in a 200px layer with 225px spacing
	s := GenerateScene(rng, 200, 300, lc)
	if n := len(s.Positions(KindHouse)); n != 1 {
		t.Errorf("expected under-filled single house, got %d", n)
	}
}

func TestSceneDegenerate(t *testing.T) {
	lc := testLandscape(t)
	s := GenerateScene(rand.New(rand.NewSource(1)), 0, 0, lc)
	if len(s.Objects) != 0 || len(s.Blades) != 0 {
		t.Errorf("expected empty scene for zero size, got %d objects", len(s.Objects))
	}
}
