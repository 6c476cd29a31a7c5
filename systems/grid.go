package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/backdrop/camera"
	"github.com/pthm-cable/backdrop/config"
)

// GridPoint is one projected terrain vertex.
type GridPoint struct {
	Screen  r2.Vec
	Scale   float64
	Height  float64 // Elevation before the slope is applied
	Visible bool    // False when culled by camera.CullScale
}

// Grid samples a height field over a fixed number of rows and a viewport-dependent number
// of columns. Nothing is cached between frames: every Sample recomputes all vertices from
// the flight offset.
type Grid struct {
	cfg    config.TerrainConfig
	field  *HeightField
	cols   int
	offset float64
	points []GridPoint
}

// NewGrid creates a grid for a terrain variant.
func NewGrid(cfg config.TerrainConfig) *Grid {
	return &Grid{cfg: cfg, field: NewHeightField(cfg.Noise, cfg.Amplitude)}
}

// Resize recomputes the column count from the viewport width only.
func (g *Grid) Resize(width int) {
	g.cols = Columns(width, g.cfg.ColDivisor, g.cfg.ColPadding)
}

// Advance moves the camera forward by one frame.
func (g *Grid) Advance() {
	g.offset -= g.cfg.Speed
}

// Cols returns the column count.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the row count.
func (g *Grid) Rows() int { return max(g.cfg.Rows, 0) }

// Offset returns the flight offset.
func (g *Grid) Offset() float64 { return g.offset }

// Field returns the height field.
func (g *Grid) Field() *HeightField { return g.field }

// Sample projects every vertex around origin and applies the pointer push and pulse
// rings. Displacement sources see the undisplaced projection.
func (g *Grid) Sample(origin, pointer r2.Vec, pulses *Pulses) []GridPoint {
	rows, cols := g.Rows(), g.cols
	n := rows * cols
	if cap(g.points) < n {
		g.points = make([]GridPoint, n)
	}
	g.points = g.points[:n]

	size := g.cfg.CellSize
	for z := 0; z < rows; z++ {
		for x := 0; x < cols; x++ {
			h := g.field.At(float64(x), float64(z), g.offset)
			world := r3.Vec{
				X: (float64(x) - float64(cols)/2) * size,
				Y: h + g.cfg.CameraHeight - float64(z)*g.cfg.Slope,
				Z: float64(z)*size + g.cfg.CameraZ,
			}
			screen, scale, ok := camera.Project(world, g.cfg.FOV, origin)
			p := GridPoint{Screen: screen, Scale: scale, Height: h, Visible: ok}
			if ok {
				dy := g.push(r2.Norm(r2.Sub(pointer, screen)))
				if pulses != nil {
					dy -= pulses.Displacement(screen.X, screen.Y)
				}
				p.Screen.Y += dy
			}
			g.points[z*cols+x] = p
		}
	}
	return g.points
}

// push returns the pointer displacement at screen distance d.
func (g *Grid) push(d float64) float64 {
	m := g.cfg.Mouse
	if m.Radius <= 0 || d >= m.Radius {
		return 0
	}
	if m.Mode == "sine" {
		return math.Sin((1-d/m.Radius)*math.Pi) * m.Force
	}
	return math.Cos(d/m.Radius*math.Pi/2) * m.Force
}

// Fade returns the stroke opacity of a row: faded in over the first FadeNear rows and out
// past FadeFarStart of the rows.
func (g *Grid) Fade(row int) float64 {
	rows := float64(g.Rows())
	z := float64(row)
	opacity := 1.0
	far := g.cfg.FadeFarStart
	if far > 0 && far < 1 && z > rows*far {
		opacity = 1 - (z-rows*far)/(rows*(1-far))
	}
	if g.cfg.FadeNear > 0 && z < g.cfg.FadeNear {
		opacity = z / g.cfg.FadeNear
	}
	return Clamp01(opacity)
}

// Edge is a stroke between two grid vertices.
type Edge struct {
	From, To r2.Vec
	Height   float64 // Normalised elevation of the From vertex
	Opacity  float64
}

// Edges returns the strokes for sampled points: right, back and optionally diagonal
// neighbours. A stroke is skipped when either endpoint is culled or the row is faded out.
func (g *Grid) Edges(points []GridPoint, diagonals bool, fn func(Edge)) {
	rows, cols := g.Rows(), g.cols
	if len(points) < rows*cols {
		return
	}
	for z := 0; z < rows; z++ {
		opacity := g.Fade(z)
		if opacity <= 0.01 {
			continue
		}
		for x := 0; x < cols; x++ {
			i := z*cols + x
			p := points[i]
			if !p.Visible {
				continue
			}
			e := Edge{From: p.Screen, Height: g.field.Normalized(p.Height), Opacity: opacity}
			link := func(j int) {
				if q := points[j]; q.Visible {
					e.To = q.Screen
					fn(e)
				}
			}
			if x < cols-1 {
				link(i + 1)
			}
			if z < rows-1 {
				link(i + cols)
			}
			if diagonals && x < cols-1 && z < rows-1 {
				link(i + cols + 1)
			}
		}
	}
}
