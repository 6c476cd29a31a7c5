package surface

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

type segKind int

const (
	segMove segKind = iota
	segLine
	segQuad
	segClose
)

type segment struct {
	kind     segKind
	ctrl, to r2.Vec
}

// Path is a sequence of subpaths built from lines and quadratic curves.
type Path struct {
	segs []segment
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

func (p *Path) MoveTo(x, y float64) *Path {
	p.segs = append(p.segs, segment{kind: segMove, to: r2.Vec{X: x, Y: y}})
	return p
}

func (p *Path) LineTo(x, y float64) *Path {
	p.segs = append(p.segs, segment{kind: segLine, to: r2.Vec{X: x, Y: y}})
	return p
}

// QuadTo adds a quadratic Bézier curve with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	p.segs = append(p.segs, segment{kind: segQuad, ctrl: r2.Vec{X: cx, Y: cy}, to: r2.Vec{X: x, Y: y}})
	return p
}

func (p *Path) Close() *Path {
	p.segs = append(p.segs, segment{kind: segClose})
	return p
}

// Len returns the number of recorded segments.
func (p *Path) Len() int {
	return len(p.segs)
}

// curveSteps is the number of line segments a quadratic curve is flattened into.
const curveSteps = 12

// Flatten converts the path to polylines, one per subpath.
// Closed subpaths repeat their first point at the end.
func (p *Path) Flatten() [][]r2.Vec {
	var out [][]r2.Vec
	var cur []r2.Vec
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, s := range p.segs {
		switch s.kind {
		case segMove:
			flush()
			cur = []r2.Vec{s.to}
		case segLine:
			if len(cur) == 0 {
				cur = []r2.Vec{s.to}
				continue
			}
			cur = append(cur, s.to)
		case segQuad:
			if len(cur) == 0 {
				cur = []r2.Vec{s.ctrl}
			}
			from := cur[len(cur)-1]
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				u := 1 - t
				cur = append(cur, r2.Vec{
					X: u*u*from.X + 2*u*t*s.ctrl.X + t*t*s.to.X,
					Y: u*u*from.Y + 2*u*t*s.ctrl.Y + t*t*s.to.Y,
				})
			}
		case segClose:
			if len(cur) > 0 {
				cur = append(cur, cur[0])
			}
			flush()
		}
	}
	flush()
	return out
}

// Bounds returns the bounding box of the flattened path.
func (p *Path) Bounds() Rect {
	polys := p.Flatten()
	if len(polys) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, v := range poly {
			minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
			minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
		}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// EllipsePath returns a closed polygonal ellipse rotated by rotation radians.
func EllipsePath(cx, cy, rx, ry, rotation float64, steps int) *Path {
	if steps < 3 {
		steps = 3
	}
	sin, cos := math.Sincos(rotation)
	p := NewPath()
	for i := 0; i < steps; i++ {
		a := float64(i) / float64(steps) * 2 * math.Pi
		ex, ey := math.Cos(a)*rx, math.Sin(a)*ry
		x := cx + ex*cos - ey*sin
		y := cy + ex*sin + ey*cos
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	return p.Close()
}

// Spans scan-converts polygons with the even-odd rule, calling fn once per covered
// horizontal span at pixel-centre rows. Open polylines are treated as closed.
func Spans(polys [][]r2.Vec, fn func(y int, x0, x1 float64)) {
	type edge struct{ a, b r2.Vec }
	var edges []edge
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, poly := range polys {
		n := len(poly)
		for i := 0; i < n; i++ {
			a, b := poly[i], poly[(i+1)%n]
			if a.Y == b.Y {
				continue
			}
			edges = append(edges, edge{a, b})
			minY = math.Min(minY, math.Min(a.Y, b.Y))
			maxY = math.Max(maxY, math.Max(a.Y, b.Y))
		}
	}
	if len(edges) == 0 {
		return
	}

	var xs []float64
	for y := int(math.Floor(minY)); float64(y) <= maxY; y++ {
		sy := float64(y) + 0.5
		xs = xs[:0]
		for _, e := range edges {
			lo, hi := e.a, e.b
			if lo.Y > hi.Y {
				lo, hi = hi, lo
			}
			if sy < lo.Y || sy >= hi.Y {
				continue
			}
			t := (sy - lo.Y) / (hi.Y - lo.Y)
			xs = append(xs, lo.X+t*(hi.X-lo.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			if xs[i+1] > xs[i] {
				fn(y, xs[i], xs[i+1])
			}
		}
	}
}
