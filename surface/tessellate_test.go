package surface

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

// ridgePath mimics a landscape ridge: a curved chain closed down to a floor that
// reaches past both edges.
func ridgePath() *Path {
	return NewPath().MoveTo(0, 40).
		QuadTo(50, 10, 100, 30).
		QuadTo(150, 60, 200, 20).
		LineTo(250, 100).LineTo(-50, 100).Close()
}

func triArea(t Triangle) float64 {
	return signedArea(t[:]) / 2
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		path     *Path
		want     ShapeKind
		wantRing int
	}{
		{"ray wedge", NewPath().MoveTo(10, 10).LineTo(80, 4).LineTo(80, 16).Close(), ShapeConvex, 3},
		{"clockwise wedge", NewPath().MoveTo(10, 10).LineTo(80, 16).LineTo(80, 4).Close(), ShapeConvex, 3},
		{"ellipse", EllipsePath(50, 50, 30, 10, 0.4, 32), ShapeConvex, 32},
		{"ridge", ridgePath(), ShapeBand, 0},
		{"roof", NewPath().MoveTo(0, 50).LineTo(30, 20).LineTo(60, 50).Close(), ShapeConvex, 3},
		{"notch", NewPath().MoveTo(0, 0).LineTo(30, 0).LineTo(30, 30).LineTo(15, 10).LineTo(0, 30).Close(), ShapeConcave, 5},
		{"collinear", NewPath().MoveTo(0, 0).LineTo(10, 10).LineTo(20, 20).Close(), ShapeEmpty, 0},
		{"point", NewPath().MoveTo(5, 5).LineTo(5, 5), ShapeEmpty, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			polys := tt.path.Flatten()
			var sh Shape
			if len(polys) > 0 {
				sh = Classify(polys[0])
			}
			if sh.Kind != tt.want {
				t.Fatalf("kind = %v, want %v", sh.Kind, tt.want)
			}
			if tt.wantRing > 0 && len(sh.Ring) != tt.wantRing {
				t.Errorf("ring has %d vertices, want %d", len(sh.Ring), tt.wantRing)
			}
			if sh.Kind != ShapeEmpty && signedArea(sh.Ring) >= 0 {
				t.Errorf("ring not counter-clockwise on screen: area %f", signedArea(sh.Ring))
			}
		})
	}
}

func TestBandStripCoversBand(t *testing.T) {
	sh := Classify(ridgePath().Flatten()[0])
	if sh.Kind != ShapeBand {
		t.Fatalf("expected a band, got %v", sh.Kind)
	}
	b := sh.Band
	if b.Floor != 100 || b.Chain[0].X != -50 || b.Chain[len(b.Chain)-1].X != 250 {
		t.Fatalf("unexpected band: floor %f, chain %v..%v", b.Floor, b.Chain[0], b.Chain[len(b.Chain)-1])
	}
	want := -signedArea(sh.Ring) / 2

	area := func(strip []r2.Vec) float64 {
		var sum float64
		for _, tri := range StripTriangles(strip) {
			a := triArea(tri)
			if a > 1e-9 {
				t.Fatalf("strip triangle wound clockwise: %v", tri)
			}
			sum -= a
		}
		return sum
	}

	if got := area(b.Strip(b.Top(), b.Floor)); math.Abs(got-want) > 1e-6 {
		t.Errorf("full strip area %f, want %f", got, want)
	}

	// Horizontal slices tile the band exactly
	var sliced float64
	top := b.Top()
	const n = 7
	step := (b.Floor - top) / n
	for i := 0; i < n; i++ {
		sliced += area(b.Strip(top+float64(i)*step, top+float64(i+1)*step))
	}
	if math.Abs(sliced-want) > 1e-6 {
		t.Errorf("sliced area %f, want %f", sliced, want)
	}

	if b.Strip(b.Floor, b.Floor+10) != nil {
		t.Error("expected no strip below the floor")
	}
}

func TestFanCellsCoverRing(t *testing.T) {
	tests := []struct {
		name  string
		path  *Path
		rings int
	}{
		{"wedge one ring", NewPath().MoveTo(10, 10).LineTo(80, 4).LineTo(80, 16).Close(), 1},
		{"wedge", NewPath().MoveTo(10, 10).LineTo(80, 4).LineTo(80, 16).Close(), 4},
		{"ellipse", EllipsePath(0, 0, 40, 20, 1, 24), 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := Classify(tt.path.Flatten()[0])
			want := -signedArea(sh.Ring) / 2
			hub := Centroid(sh.Ring)
			if !Inside(sh.Ring, hub) {
				t.Fatalf("centroid %v outside ring", hub)
			}
			cells := FanCells(sh.Ring, hub, tt.rings)
			if wantN := len(sh.Ring) * (2*tt.rings - 1); len(cells) != wantN {
				t.Errorf("got %d cells, want %d", len(cells), wantN)
			}
			var sum float64
			for _, c := range cells {
				a := triArea(c)
				if a > 1e-9 {
					t.Fatalf("cell wound clockwise: %v", c)
				}
				sum -= a
			}
			if math.Abs(sum-want) > 1e-6 {
				t.Errorf("cells cover %f, want %f", sum, want)
			}
		})
	}
}

func TestInside(t *testing.T) {
	sh := Classify(NewPath().MoveTo(0, 0).LineTo(10, 0).LineTo(10, 10).LineTo(0, 10).Close().Flatten()[0])
	if !Inside(sh.Ring, r2.Vec{X: 5, Y: 5}) || !Inside(sh.Ring, r2.Vec{X: 0, Y: 5}) {
		t.Error("expected interior and edge points inside")
	}
	if Inside(sh.Ring, r2.Vec{X: 11, Y: 5}) {
		t.Error("expected outside point rejected")
	}
}
