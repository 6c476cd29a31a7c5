package surface

import (
	"image/color"
	"math"
	"testing"
	"time"
)

func TestLayerSize(t *testing.T) {
	tests := []struct {
		name       string
		layer      Layer
		vw, vh     int
		wantW      int
		wantH      int
		wantOffset int
	}{
		{"full", Layer{}, 1024, 768, 1024, 768, 0},
		{"top half", Layer{HeightFrac: 0.5}, 1024, 768, 1024, 384, 0},
		{"bottom 40%", Layer{HeightFrac: 0.4, Anchor: AnchorBottom}, 1000, 500, 1000, 200, 300},
		{"degenerate", Layer{HeightFrac: 0.4}, -5, -5, 0, 0, 0},
	}
	for _, tc := range tests {
		w, h := tc.layer.Size(tc.vw, tc.vh)
		if w != tc.wantW || h != tc.wantH {
			t.Errorf("%s: expected %dx%d, got %dx%d", tc.name, tc.wantW, tc.wantH, w, h)
		}
		if off := tc.layer.Offset(tc.vh); off != tc.wantOffset {
			t.Errorf("%s: expected offset %d, got %d", tc.name, tc.wantOffset, off)
		}
	}
}

func TestStateStackSaveRestore(t *testing.T) {
	s := NewStateStack()
	s.SetComposite(CompositeAdd)
	s.Save()
	s.SetComposite(CompositeErase)
	s.Clip(Rect{X: 0, Y: 0, W: 100, H: 100})
	s.Clip(Rect{X: 50, Y: 50, W: 100, H: 100})

	clip := s.Current().Clip
	if clip == nil || clip.X != 50 || clip.W != 50 || clip.H != 50 {
		t.Errorf("expected intersected clip 50,50 50x50, got %+v", clip)
	}

	s.Restore()
	if s.Current().Composite != CompositeAdd {
		t.Errorf("expected composite restored to add, got %v", s.Current().Composite)
	}
	if s.Current().Clip != nil {
		t.Error("expected clip cleared after restore")
	}

	// Unbalanced restore is ignored
	s.Restore()
	s.Restore()
	if s.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", s.Depth())
	}
}

func TestGradientStops(t *testing.T) {
	black := color.NRGBA{A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	g := Linear(0, 0, 0, 100, Stop{0, black}, Stop{1, white})

	if c := g.At(0, 0); c != black {
		t.Errorf("expected black at start, got %+v", c)
	}
	if c := g.At(0, 100); c != white {
		t.Errorf("expected white at end, got %+v", c)
	}
	if c := g.At(0, 200); c != white {
		t.Errorf("expected clamp past end, got %+v", c)
	}
	mid := g.At(0, 50)
	if mid.R < 127 || mid.R > 128 {
		t.Errorf("expected mid grey, got %+v", mid)
	}

	r := Radial(0, 0, 0, 10, Stop{0, white}, Stop{1, black})
	if c := r.At(10, 0); c != black {
		t.Errorf("expected black at outer radius, got %+v", c)
	}
}

func TestSpansSquare(t *testing.T) {
	p := NewPath().MoveTo(0, 0).LineTo(10, 0).LineTo(10, 10).LineTo(0, 10).Close()
	rows := 0
	Spans(p.Flatten(), func(y int, x0, x1 float64) {
		rows++
		if x0 != 0 || x1 != 10 {
			t.Errorf("row %d: expected span 0..10, got %f..%f", y, x0, x1)
		}
	})
	if rows != 10 {
		t.Errorf("expected 10 rows, got %d", rows)
	}
}

func TestFlattenQuad(t *testing.T) {
	p := NewPath().MoveTo(0, 0).QuadTo(5, 10, 10, 0)
	polys := p.Flatten()
	if len(polys) != 1 {
		t.Fatalf("expected 1 polyline, got %d", len(polys))
	}
	pts := polys[0]
	if len(pts) != curveSteps+1 {
		t.Errorf("expected %d points, got %d", curveSteps+1, len(pts))
	}
	last := pts[len(pts)-1]
	if math.Abs(last.X-10) > 1e-9 || math.Abs(last.Y) > 1e-9 {
		t.Errorf("expected curve to end at (10,0), got %+v", last)
	}
	// Apex of the curve is half way to the control point
	mid := pts[curveSteps/2]
	if math.Abs(mid.Y-5) > 1e-9 {
		t.Errorf("expected apex y=5, got %f", mid.Y)
	}
}

func TestHeadlessFrames(t *testing.T) {
	h := NewHeadless(800, 600)
	calls := 0
	var tick FrameFunc
	tick = func(time.Duration) {
		calls++
		h.RequestFrame(tick)
	}
	h.RequestFrame(tick)
	h.Run(5, 16*time.Millisecond)

	if calls != 5 {
		t.Errorf("expected 5 calls, got %d", calls)
	}
	if len(h.Pending()) != 1 {
		t.Errorf("expected 1 pending frame, got %d", len(h.Pending()))
	}
	if h.Now() != 80*time.Millisecond {
		t.Errorf("expected clock 80ms, got %v", h.Now())
	}

	id := h.RequestFrame(func(time.Duration) { t.Error("cancelled frame ran") })
	h.CancelFrame(id)
	h.Step(time.Millisecond)
}

func TestHeadlessSurfacesAndListeners(t *testing.T) {
	h := NewHeadless(1000, 500)
	c, err := h.CreateSurface(Layer{Name: "land", Z: -2, HeightFrac: 0.4, Anchor: AnchorBottom})
	if err != nil {
		t.Fatal(err)
	}
	if w, ht := c.Size(); w != 1000 || ht != 200 {
		t.Errorf("expected 1000x200, got %dx%d", w, ht)
	}

	got := 0
	id := h.AddListener(EventResize, func(ev Event) { got = ev.Width })
	h.Resize(1200, 600)
	if got != 1200 {
		t.Errorf("expected resize listener to see 1200, got %d", got)
	}
	if w, ht := c.Size(); w != 1200 || ht != 240 {
		t.Errorf("expected surface resized to 1200x240, got %dx%d", w, ht)
	}

	h.RemoveListener(id)
	if h.Listeners(EventResize) != 0 {
		t.Error("expected listener removed")
	}
	h.RemoveSurface(c)
	if h.Attached() != 0 {
		t.Errorf("expected no surfaces, got %d", h.Attached())
	}

	h.FailSurfaces = true
	if _, err := h.CreateSurface(Layer{}); err != ErrNoContext {
		t.Errorf("expected ErrNoContext, got %v", err)
	}
}
