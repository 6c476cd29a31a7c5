package surface

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ShapeKind classifies a flattened polygon for triangle-based backends.
type ShapeKind int

const (
	ShapeEmpty   ShapeKind = iota // Fewer than three non-collinear vertices
	ShapeConvex                   // Drawn as one triangle fan
	ShapeBand                     // x-monotone chain closed along a horizontal floor
	ShapeConcave                  // Anything else
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeConvex:
		return "convex"
	case ShapeBand:
		return "band"
	case ShapeConcave:
		return "concave"
	}
	return "empty"
}

// Triangle is three vertices in screen counter-clockwise order, the winding raylib
// draws with back-face culling on.
type Triangle [3]r2.Vec

// Centroid returns the mean of the vertices.
func (t Triangle) Centroid() r2.Vec {
	return r2.Scale(1.0/3, r2.Add(r2.Add(t[0], t[1]), t[2]))
}

// Shape is a classified polygon.
type Shape struct {
	Kind ShapeKind
	Ring []r2.Vec // Distinct vertices in screen counter-clockwise order
	Band Band     // Set when Kind is ShapeBand
}

// Band is the area between an x-monotone chain and a horizontal floor below it.
// The chain runs left to right and both of its ends lie on the floor.
type Band struct {
	Chain []r2.Vec
	Floor float64
}

// signedArea returns twice the shoelace area. With y pointing down it is negative for
// vertices that run counter-clockwise on screen.
func signedArea(ring []r2.Vec) float64 {
	var a float64
	for i := range ring {
		p, q := ring[i], ring[(i+1)%len(ring)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a
}

func cross(o, a, b r2.Vec) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// ring drops repeated and collinear vertices and orients the rest counter-clockwise
// on screen.
func ring(poly []r2.Vec) []r2.Vec {
	pts := make([]r2.Vec, 0, len(poly))
	for _, v := range poly {
		if len(pts) == 0 || v != pts[len(pts)-1] {
			pts = append(pts, v)
		}
	}
	for len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}

	out := pts[:0:0]
	for i := range pts {
		prev := pts[(i+len(pts)-1)%len(pts)]
		next := pts[(i+1)%len(pts)]
		if cross(prev, pts[i], next) != 0 {
			out = append(out, pts[i])
		}
	}
	if signedArea(out) > 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// convex reports whether every turn of a counter-clockwise ring goes the same way
// and the ring winds around only once.
func convex(r []r2.Vec) bool {
	var turn float64
	for i := range r {
		c := cross(r[i], r[(i+1)%len(r)], r[(i+2)%len(r)])
		if c > 0 {
			return false
		}
		a := math.Atan2(r[(i+2)%len(r)].Y-r[(i+1)%len(r)].Y, r[(i+2)%len(r)].X-r[(i+1)%len(r)].X) -
			math.Atan2(r[(i+1)%len(r)].Y-r[i].Y, r[(i+1)%len(r)].X-r[i].X)
		for a > math.Pi {
			a -= 2 * math.Pi
		}
		for a <= -math.Pi {
			a += 2 * math.Pi
		}
		turn += a
	}
	return math.Abs(turn) < 2*math.Pi+1e-6
}

// band finds a horizontal floor edge at the ring's lowest screen row and checks that
// the rest of the ring is an x-monotone chain above it.
func band(r []r2.Vec) (Band, bool) {
	floor := math.Inf(-1)
	for _, v := range r {
		floor = math.Max(floor, v.Y)
	}
	n := len(r)
	for i := range r {
		a, b := r[i], r[(i+1)%n]
		if a.Y != floor || b.Y != floor {
			continue
		}
		chain := make([]r2.Vec, 0, n)
		for k := 1; k <= n; k++ {
			chain = append(chain, r[(i+k)%n])
		}
		if chain[0].X > chain[len(chain)-1].X {
			for l, m := 0, len(chain)-1; l < m; l, m = l+1, m-1 {
				chain[l], chain[m] = chain[m], chain[l]
			}
		}
		for k := 1; k < len(chain); k++ {
			if chain[k].X <= chain[k-1].X {
				return Band{}, false
			}
		}
		return Band{Chain: chain, Floor: floor}, true
	}
	return Band{}, false
}

// Classify sorts one flattened subpath into the cheapest triangle layout that covers it.
func Classify(poly []r2.Vec) Shape {
	r := ring(poly)
	if len(r) < 3 {
		return Shape{Kind: ShapeEmpty}
	}
	if convex(r) {
		return Shape{Kind: ShapeConvex, Ring: r}
	}
	if b, ok := band(r); ok {
		return Shape{Kind: ShapeBand, Ring: r, Band: b}
	}
	return Shape{Kind: ShapeConcave, Ring: r}
}

// Top returns the highest screen row of the chain.
func (b Band) Top() float64 {
	top := b.Floor
	for _, v := range b.Chain {
		top = math.Min(top, v.Y)
	}
	return top
}

// Strip returns the part of the band between rows y0 and y1 as triangle strip points:
// alternating chain and floor-side vertices from left to right. Chain crossings of
// y0 and y1 get their own columns so neighbouring slices meet exactly.
func (b Band) Strip(y0, y1 float64) []r2.Vec {
	y1 = math.Min(y1, b.Floor)
	if y1 <= y0 || len(b.Chain) < 2 {
		return nil
	}
	clampY := func(y float64) float64 { return math.Max(y0, math.Min(y, y1)) }

	xs := []r2.Vec{b.Chain[0]}
	for i := 1; i < len(b.Chain); i++ {
		p, q := b.Chain[i-1], b.Chain[i]
		var cuts []float64
		for _, level := range [2]float64{y0, y1} {
			if (p.Y-level)*(q.Y-level) < 0 {
				cuts = append(cuts, (level-p.Y)/(q.Y-p.Y))
			}
		}
		if len(cuts) == 2 && cuts[0] > cuts[1] {
			cuts[0], cuts[1] = cuts[1], cuts[0]
		}
		for _, t := range cuts {
			xs = append(xs, r2.Vec{X: p.X + t*(q.X-p.X), Y: p.Y + t*(q.Y-p.Y)})
		}
		xs = append(xs, q)
	}

	strip := make([]r2.Vec, 0, 2*len(xs))
	for _, v := range xs {
		strip = append(strip, r2.Vec{X: v.X, Y: clampY(v.Y)}, r2.Vec{X: v.X, Y: y1})
	}
	return strip
}

// StripTriangles expands strip points into triangles with the alternating winding a
// triangle strip uses.
func StripTriangles(strip []r2.Vec) []Triangle {
	if len(strip) < 3 {
		return nil
	}
	tris := make([]Triangle, 0, len(strip)-2)
	for i := 2; i < len(strip); i++ {
		if i%2 == 0 {
			tris = append(tris, Triangle{strip[i], strip[i-2], strip[i-1]})
		} else {
			tris = append(tris, Triangle{strip[i], strip[i-1], strip[i-2]})
		}
	}
	return tris
}

// FanCells splits a convex ring into triangles around hub, cutting every spoke into
// rings equal steps. Backends colour each cell at its centroid to approximate a
// gradient. hub must lie inside the ring.
func FanCells(r []r2.Vec, hub r2.Vec, rings int) []Triangle {
	rings = max(rings, 1)
	at := func(v r2.Vec, t float64) r2.Vec {
		return r2.Add(hub, r2.Scale(t, r2.Sub(v, hub)))
	}
	tris := make([]Triangle, 0, len(r)*(2*rings-1))
	for i := range r {
		a, b := r[i], r[(i+1)%len(r)]
		for k := 0; k < rings; k++ {
			t0 := float64(k) / float64(rings)
			t1 := float64(k+1) / float64(rings)
			if k == 0 {
				tris = append(tris, Triangle{hub, at(a, t1), at(b, t1)})
				continue
			}
			tris = append(tris,
				Triangle{at(a, t0), at(a, t1), at(b, t1)},
				Triangle{at(a, t0), at(b, t1), at(b, t0)},
			)
		}
	}
	return tris
}

// Inside reports whether v lies inside or on a convex counter-clockwise ring.
func Inside(r []r2.Vec, v r2.Vec) bool {
	for i := range r {
		if cross(r[i], r[(i+1)%len(r)], v) > 0 {
			return false
		}
	}
	return len(r) >= 3
}

// Centroid returns the vertex mean of a ring.
func Centroid(r []r2.Vec) r2.Vec {
	var c r2.Vec
	for _, v := range r {
		c = r2.Add(c, v)
	}
	return r2.Scale(1/float64(max(len(r), 1)), c)
}
