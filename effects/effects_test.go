package effects

import (
	"testing"
	"time"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/surface"
	"github.com/pthm-cable/backdrop/systems"
)

const frameTime = 16 * time.Millisecond

func testEnv(t *testing.T, host surface.Host) Env {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return Env{Host: host, Config: cfg, Seed: 42}
}

func TestRegistryNames(t *testing.T) {
	want := []string{"canyon", "cyberpunk", "minimal", "nature", "starfield", "wireframe"}
	got := Builtin().Names()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if _, ok := Builtin().Lookup("matrix"); ok {
		t.Error("expected unknown name to be missing")
	}
}

func TestTeardownReleasesEverything(t *testing.T) {
	reg := Builtin()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			host := surface.NewHeadless(1280, 720)
			ctor, _ := reg.Lookup(name)
			e := ctor(testEnv(t, host))

			host.Run(3, frameTime)
			if host.Attached() == 0 {
				t.Fatal("expected surfaces while mounted")
			}
			if len(host.Pending()) != 1 {
				t.Fatalf("expected one pending frame, got %d", len(host.Pending()))
			}

			var recorders []*surface.Recorder
			for _, l := range host.Layers() {
				r, _ := host.Recorder(l.Name)
				recorders = append(recorders, r)
			}
			captured := host.Pending()

			e.Destroy()
			if host.Attached() != 0 {
				t.Errorf("expected no surfaces after destroy, got %d", host.Attached())
			}
			if len(host.Pending()) != 0 {
				t.Errorf("expected no pending frames after destroy, got %d", len(host.Pending()))
			}
			for _, kind := range []surface.EventKind{surface.EventPointerMove, surface.EventPointerDown, surface.EventResize} {
				if n := host.Listeners(kind); n != 0 {
					t.Errorf("expected no %s listeners, got %d", kind, n)
				}
			}

			// A callback captured before destroy must neither draw nor reschedule.
			before := make([]int, len(recorders))
			for i, r := range recorders {
				before[i] = r.Ops()
			}
			for _, fn := range captured {
				fn(host.Now() + frameTime)
			}
			for i, r := range recorders {
				if r.Ops() != before[i] {
					t.Errorf("surface %d drew after destroy", i)
				}
			}
			if len(host.Pending()) != 0 {
				t.Error("stale callback rescheduled itself")
			}

			e.Destroy()
		})
	}
}

func TestSurfaceFailureIsSilent(t *testing.T) {
	reg := Builtin()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			host := surface.NewHeadless(1280, 720)
			host.FailSurfaces = true
			ctor, _ := reg.Lookup(name)
			e := ctor(testEnv(t, host))

			host.Run(2, frameTime)
			if host.Attached() != 0 || len(host.Pending()) != 0 {
				t.Errorf("expected nothing mounted, got %d surfaces and %d frames", host.Attached(), len(host.Pending()))
			}
			if host.Listeners(surface.EventPointerMove) != 0 {
				t.Error("expected no listeners")
			}
			e.Destroy()
		})
	}
}

func TestUnknownTerrainIsInert(t *testing.T) {
	host := surface.NewHeadless(1280, 720)
	e := NewTerrain("volcano")(testEnv(t, host))
	if _, ok := e.(*Terrain); ok {
		t.Fatal("expected an inert effect")
	}
	if host.Attached() != 0 || len(host.Pending()) != 0 {
		t.Error("expected nothing mounted")
	}
	e.Destroy()
}

func TestTerrainLifecycle(t *testing.T) {
	host := surface.NewHeadless(1280, 720)
	tr := NewTerrain(NameWireframe)(testEnv(t, host)).(*Terrain)

	if tr.State() != StateRunning {
		t.Fatalf("expected running, got %s", tr.State())
	}
	if host.Listeners(surface.EventPointerDown) != 1 {
		t.Errorf("expected a pointer-down listener for pulses")
	}
	tr.Destroy()
	if tr.State() != StateDestroyed {
		t.Errorf("expected destroyed, got %s", tr.State())
	}
	tr.Resize(800, 600)
}

func TestCanyonHasNoPulses(t *testing.T) {
	host := surface.NewHeadless(1280, 720)
	e := NewTerrain(NameCanyon)(testEnv(t, host))
	defer e.Destroy()

	if host.Listeners(surface.EventPointerDown) != 0 {
		t.Error("expected no pointer-down listener when pulses are disabled")
	}
	if host.Listeners(surface.EventPointerMove) != 1 {
		t.Error("expected a pointer-move listener")
	}
}

func TestTerrainResizeKeepsState(t *testing.T) {
	host := surface.NewHeadless(1280, 720)
	env := testEnv(t, host)
	tr := NewTerrain(NameWireframe)(env).(*Terrain)
	defer tr.Destroy()

	host.Dispatch(surface.Event{Kind: surface.EventPointerDown, X: 400, Y: 300})
	host.Run(10, frameTime)

	offset := tr.Offset()
	pulses := tr.Pulses().Len()
	if offset >= 0 {
		t.Fatalf("expected the flight offset to decrease, got %f", offset)
	}
	if pulses != 1 {
		t.Fatalf("expected one live pulse, got %d", pulses)
	}

	host.Resize(900, 700)
	tr.Resize(900, 700)

	if tr.Offset() != offset {
		t.Errorf("offset changed on resize: %f -> %f", offset, tr.Offset())
	}
	if tr.Pulses().Len() != pulses {
		t.Errorf("pulses changed on resize: %d -> %d", pulses, tr.Pulses().Len())
	}
	tc, _ := env.Config.Terrain(NameWireframe)
	if want := systems.Columns(900, tc.ColDivisor, tc.ColPadding); tr.Cols() != want {
		t.Errorf("expected %d columns, got %d", want, tr.Cols())
	}
}

func TestTerrainResizeUsesViewport(t *testing.T) {
	host := surface.NewHeadless(1280, 720)
	env := testEnv(t, host)
	tr := NewTerrain(NameWireframe)(env).(*Terrain)
	defer tr.Destroy()

	// The surface still has the old size; the new viewport comes from the arguments.
	tr.Resize(900, 500)
	tc, _ := env.Config.Terrain(NameWireframe)
	if want := systems.Columns(900, tc.ColDivisor, tc.ColPadding); tr.Cols() != want {
		t.Errorf("expected %d columns, got %d", want, tr.Cols())
	}
	if tr.cam.ViewportW != 900 || tr.cam.ViewportH != 500 {
		t.Errorf("camera viewport = %vx%v, want 900x500", tr.cam.ViewportW, tr.cam.ViewportH)
	}
}

func TestTerrainZeroViewport(t *testing.T) {
	host := surface.NewHeadless(0, 0)
	tr := NewTerrain(NameWireframe)(testEnv(t, host)).(*Terrain)
	defer tr.Destroy()

	host.Run(3, frameTime)
	if tr.Cols() != 0 {
		t.Errorf("expected 0 columns, got %d", tr.Cols())
	}
}

func TestSynthwaveScanlinesEveryFrame(t *testing.T) {
	host := surface.NewHeadless(1280, 720)
	env := testEnv(t, host)
	e := NewSynthwave(env)
	defer e.Destroy()

	host.Run(4, frameTime)
	rec, ok := host.Recorder(NameCyberpunk)
	if !ok {
		t.Fatal("expected the cyberpunk surface")
	}
	if got, want := rec.CompositeOps(surface.CompositeErase), 4*env.Config.Synthwave.Scanlines; got != want {
		t.Errorf("expected %d erased scanlines, got %d", want, got)
	}
	if rec.Depth() != 0 || rec.Current().Clip != nil {
		t.Error("expected the horizon clip to be restored")
	}
}

func TestNatureLandscapeDrawnOncePerLayout(t *testing.T) {
	host := surface.NewHeadless(1280, 720)
	e := NewNature(testEnv(t, host))
	defer e.Destroy()

	host.Run(5, frameTime)
	land, ok := host.Recorder("nature-landscape")
	if !ok {
		t.Fatal("expected the landscape surface")
	}
	if n := land.Count(surface.OpClear); n != 1 {
		t.Errorf("expected one landscape paint, got %d", n)
	}
	if _, h := land.Size(); h != 288 {
		t.Errorf("expected a 288px landscape layer, got %d", h)
	}

	host.Resize(1024, 600)
	e.(Resizer).Resize(1024, 600)
	host.Run(2, frameTime)
	if n := land.Count(surface.OpClear); n != 2 {
		t.Errorf("expected a repaint after resize, got %d paints", n)
	}
	if s := e.(*Nature).Scene(); s.Width != 1024 {
		t.Errorf("expected the scene regenerated at width 1024, got %f", s.Width)
	}
}

func TestNatureLayerOrder(t *testing.T) {
	host := surface.NewHeadless(1280, 720)
	e := NewNature(testEnv(t, host))
	defer e.Destroy()

	want := []string{"nature-sky", "nature-stars", "nature-landscape", "nature-rain"}
	layers := host.Layers()
	if len(layers) != len(want) {
		t.Fatalf("expected %d layers, got %d", len(want), len(layers))
	}
	for i, l := range layers {
		if l.Name != want[i] {
			t.Errorf("layer %d: expected %s, got %s", i, want[i], l.Name)
		}
		if l.Z >= 0 {
			t.Errorf("layer %s should sit behind page content", l.Name)
		}
	}
}

type countingObserver struct {
	frames map[string]int
}

func (o *countingObserver) ObserveFrame(effect string, _ time.Duration) {
	o.frames[effect]++
}

func TestFrameObserver(t *testing.T) {
	host := surface.NewHeadless(1280, 720)
	obs := &countingObserver{frames: map[string]int{}}
	env := testEnv(t, host)
	env.Observer = obs
	e := NewMinimal(env)

	host.Run(7, frameTime)
	e.Destroy()
	host.Run(3, frameTime)

	if obs.frames[NameMinimal] != 7 {
		t.Errorf("expected 7 observed frames, got %d", obs.frames[NameMinimal])
	}
}
