package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/backdrop/config"
)

func TestColumns(t *testing.T) {
	tests := []struct {
		width   int
		divisor float64
		padding int
		want    int
	}{
		{1280, 35, 15, 52},
		{1280, 30, 10, 53},
		{0, 35, 15, 0},
		{-100, 35, 15, 0},
		{10, 35, -5, 0},
	}
	for _, tc := range tests {
		if got := Columns(tc.width, tc.divisor, tc.padding); got != tc.want {
			t.Errorf("Columns(%d, %g, %d) = %d, want %d", tc.width, tc.divisor, tc.padding, got, tc.want)
		}
	}
}

func TestGridResizeKeepsOffset(t *testing.T) {
	g := NewGrid(testTerrain(t, "wireframe"))
	g.Resize(1280)
	for i := 0; i < 10; i++ {
		g.Advance()
	}
	off := g.Offset()
	if math.Abs(off+0.5) > 1e-9 {
		t.Errorf("expected offset -0.5 after 10 frames, got %f", off)
	}

	g.Resize(800)
	if g.Offset() != off {
		t.Errorf("expected resize to keep offset %f, got %f", off, g.Offset())
	}
	if g.Cols() != 38 {
		t.Errorf("expected 38 columns, got %d", g.Cols())
	}
	if g.Rows() != 80 {
		t.Errorf("expected 80 rows, got %d", g.Rows())
	}
}

func TestGridFade(t *testing.T) {
	wire := NewGrid(testTerrain(t, "wireframe"))
	canyon := NewGrid(testTerrain(t, "canyon"))

	tests := []struct {
		name string
		g    *Grid
		row  int
		want float64
	}{
		{"wireframe first row hidden", wire, 0, 0},
		{"wireframe second row", wire, 1, 1},
		{"wireframe far fade", wire, 74, 1 - (74-68)/12.0},
		{"canyon near fade", canyon, 2, 0.4},
		{"canyon middle", canyon, 20, 1},
		{"canyon far fade", canyon, 45, 1 - (45-35)/15.0},
	}
	for _, tc := range tests {
		if got := tc.g.Fade(tc.row); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: expected %f, got %f", tc.name, tc.want, got)
		}
	}
}

func TestGridSampleAndEdges(t *testing.T) {
	cfg := testTerrain(t, "wireframe")
	g := NewGrid(cfg)
	g.Resize(1280)

	origin := r2.Vec{X: 640, Y: 360}
	points := g.Sample(origin, r2.Vec{X: -1e6, Y: -1e6}, nil)
	if len(points) != g.Cols()*g.Rows() {
		t.Fatalf("expected %d points, got %d", g.Cols()*g.Rows(), len(points))
	}

	edges := 0
	g.Edges(points, cfg.Diagonals, func(e Edge) {
		edges++
		if e.Opacity <= 0.01 || e.Opacity > 1 {
			t.Fatalf("edge with opacity %f drawn", e.Opacity)
		}
		if e.Height < 0 || e.Height > 1 {
			t.Fatalf("edge height %f outside [0,1]", e.Height)
		}
	})
	if edges == 0 {
		t.Error("expected edges to be drawn")
	}

	// Culling every vertex yields no strokes
	for i := range points {
		points[i].Visible = false
	}
	g.Edges(points, true, func(Edge) { t.Fatal("edge drawn from culled vertex") })
}

func TestGridPointerPush(t *testing.T) {
	cfg := testTerrain(t, "wireframe")
	g := NewGrid(cfg)
	g.Resize(1280)
	origin := r2.Vec{X: 640, Y: 360}

	far := append([]GridPoint(nil), g.Sample(origin, r2.Vec{X: -1e6, Y: -1e6}, nil)...)
	target := far[10*g.Cols()+g.Cols()/2].Screen
	near := g.Sample(origin, target, nil)

	got := near[10*g.Cols()+g.Cols()/2].Screen.Y - target.Y
	if math.Abs(got-cfg.Mouse.Force) > 1e-9 {
		t.Errorf("expected full push %f under the pointer, got %f", cfg.Mouse.Force, got)
	}
}

func TestGridPulseDisplacement(t *testing.T) {
	cfg := testTerrain(t, "wireframe")
	g := NewGrid(cfg)
	g.Resize(1280)
	origin := r2.Vec{X: 640, Y: 360}
	away := r2.Vec{X: -1e6, Y: -1e6}

	base := append([]GridPoint(nil), g.Sample(origin, away, nil)...)
	i := 10*g.Cols() + g.Cols()/2

	pulses := NewPulses(cfg.Pulse)
	pulses.Add(base[i].Screen.X, base[i].Screen.Y)
	lifted := g.Sample(origin, away, pulses)

	want := cfg.Pulse.Force
	if got := base[i].Screen.Y - lifted[i].Screen.Y; math.Abs(got-want) > 1e-9 {
		t.Errorf("expected vertex lifted by %f, got %f", want, got)
	}
}

func TestGridEmptyConfig(t *testing.T) {
	g := NewGrid(config.TerrainConfig{ColDivisor: 35})
	g.Resize(0)
	if pts := g.Sample(r2.Vec{}, r2.Vec{}, nil); len(pts) != 0 {
		t.Errorf("expected no points, got %d", len(pts))
	}
}
