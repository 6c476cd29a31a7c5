package rlhost

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/backdrop/surface"
)

// GL blend factors for the erase composite: dst = dst * (1 - src.a).
const (
	glZero             = 0
	glOneMinusSrcAlpha = 0x0303
	glFuncAdd          = 0x8006
)

// Canvas draws into a render texture owned by the host.
type Canvas struct {
	surface.StateStack
	host   *Host
	layer  surface.Layer
	target rl.RenderTexture2D
	width  int
	height int
}

func newCanvas(h *Host, layer surface.Layer, width, height int) *Canvas {
	c := &Canvas{StateStack: surface.NewStateStack(), host: h, layer: layer}
	c.allocate(width, height)
	return c
}

func (c *Canvas) allocate(width, height int) {
	c.width, c.height = width, height
	c.target = rl.LoadRenderTexture(int32(max(width, 1)), int32(max(height, 1)))
	rl.SetTextureFilter(c.target.Texture, rl.FilterBilinear)
}

func (c *Canvas) release() {
	if c.target.ID != 0 {
		rl.UnloadRenderTexture(c.target)
		c.target = rl.RenderTexture2D{}
	}
}

func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

func (c *Canvas) Clear() {
	c.host.bind(c)
	if c.layer.Opaque {
		rl.ClearBackground(rgba(c.layer.Background, 1))
		return
	}
	rl.ClearBackground(rl.Blank)
}

// draw binds the texture and applies composite and clip around fn.
func (c *Canvas) draw(fn func()) {
	st := c.Current()
	if st.Clip != nil && st.Clip.Empty() {
		return
	}
	c.host.bind(c)

	switch st.Composite {
	case surface.CompositeAdd:
		rl.BeginBlendMode(rl.BlendAdditive)
	case surface.CompositeErase:
		rl.SetBlendFactors(glZero, glOneMinusSrcAlpha, glFuncAdd)
		rl.BeginBlendMode(rl.BlendCustom)
	}
	if st.Clip != nil {
		r := st.Clip
		rl.BeginScissorMode(int32(r.X), int32(r.Y), int32(math.Ceil(r.W)), int32(math.Ceil(r.H)))
	}

	fn()

	if st.Clip != nil {
		rl.EndScissorMode()
	}
	if st.Composite != surface.CompositeNormal {
		rl.EndBlendMode()
	}
}

// col converts a paint colour, applying the global alpha.
func (c *Canvas) col(n color.NRGBA) color.RGBA {
	return rgba(n, c.Current().Alpha)
}

func rgba(n color.NRGBA, alpha float64) color.RGBA {
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: uint8(math.Round(float64(n.A) * alpha))}
}

// shadow approximates a blurred drop shadow with a few widening translucent passes.
func (c *Canvas) shadow(fn func(grow float32, col color.RGBA)) {
	st := c.Current()
	if st.ShadowBlur <= 0 || st.ShadowColor.A == 0 {
		return
	}
	const passes = 4
	for i := passes; i >= 1; i-- {
		f := float64(i) / passes
		fn(float32(st.ShadowBlur*f*0.5), c.col(surface.Fade(st.ShadowColor, 0.25*(1-f)+0.05)))
	}
}

func (c *Canvas) FillRect(r surface.Rect, p surface.Paint) {
	if r.Empty() {
		return
	}
	c.draw(func() {
		c.shadow(func(grow float32, col color.RGBA) {
			rl.DrawRectangleRec(rl.Rectangle{
				X: float32(r.X) - grow, Y: float32(r.Y) - grow,
				Width: float32(r.W) + 2*grow, Height: float32(r.H) + 2*grow,
			}, col)
		})
		if p.Gradient == nil {
			rl.DrawRectangleRec(rect(r), c.col(p.Color))
			return
		}
		c.bands(r, p.Gradient)
	})
}

// bands fills r with a gradient as strips along the gradient's dominant axis.
func (c *Canvas) bands(r surface.Rect, g *surface.Gradient) {
	vertical := math.Abs(g.Y1-g.Y0) >= math.Abs(g.X1-g.X0) || g.Kind == surface.GradientRadial
	length := r.W
	if vertical {
		length = r.H
	}
	n := int(math.Ceil(length / 4))
	n = max(1, min(n, 96))
	step := length / float64(n)
	for i := 0; i < n; i++ {
		a := float64(i) * step
		var band surface.Rect
		var col color.NRGBA
		if vertical {
			band = surface.Rect{X: r.X, Y: r.Y + a, W: r.W, H: step + 0.5}
			col = g.At(r.X+r.W/2, band.Y+step/2)
		} else {
			band = surface.Rect{X: r.X + a, Y: r.Y, W: step + 0.5, H: r.H}
			col = g.At(band.X+step/2, r.Y+r.H/2)
		}
		rl.DrawRectangleRec(rect(band), c.col(col))
	}
}

func (c *Canvas) StrokeRect(r surface.Rect, width float64, p surface.Paint) {
	c.draw(func() {
		rl.DrawRectangleLinesEx(rect(r), float32(width), c.col(p.At(r.X+r.W/2, r.Y+r.H/2)))
	})
}

func (c *Canvas) FillCircle(cx, cy, radius float64, p surface.Paint) {
	if radius <= 0 {
		return
	}
	centre := rl.Vector2{X: float32(cx), Y: float32(cy)}
	c.draw(func() {
		c.shadow(func(grow float32, col color.RGBA) {
			rl.DrawCircleV(centre, float32(radius)+grow, col)
		})
		g := p.Gradient
		switch {
		case g == nil:
			rl.DrawCircleV(centre, float32(radius), c.col(p.Color))
		case g.Kind == surface.GradientRadial && g.X0 == cx && g.Y0 == cy:
			c.rings(centre, radius, p)
		default:
			c.fillPolys(surface.EllipsePath(cx, cy, radius, radius, 0, segments(radius)).Flatten(), p)
		}
	})
}

// rings fills a disc with a concentric gradient as non-overlapping annuli.
func (c *Canvas) rings(centre rl.Vector2, radius float64, p surface.Paint) {
	n := max(4, min(int(radius/3), 48))
	step := radius / float64(n)
	seg := int32(segments(radius))
	for i := 0; i < n; i++ {
		inner := float64(i) * step
		mid := inner + step/2
		col := c.col(p.At(float64(centre.X)+mid, float64(centre.Y)))
		rl.DrawRing(centre, float32(inner), float32(inner+step), 0, 360, seg, col)
	}
}

func segments(radius float64) int {
	return max(16, min(int(radius), 96))
}

func (c *Canvas) StrokeCircle(cx, cy, radius, width float64, p surface.Paint) {
	c.draw(func() {
		inner := float32(math.Max(0, radius-width/2))
		outer := float32(radius + width/2)
		rl.DrawRing(rl.Vector2{X: float32(cx), Y: float32(cy)}, inner, outer, 0, 360, int32(segments(radius)), c.col(p.At(cx, cy-radius)))
	})
}

func (c *Canvas) FillEllipse(cx, cy, rx, ry, rotation float64, p surface.Paint) {
	if rx <= 0 || ry <= 0 {
		return
	}
	c.draw(func() {
		if rotation == 0 && p.Gradient == nil {
			rl.DrawEllipse(int32(cx), int32(cy), float32(rx), float32(ry), c.col(p.Color))
			return
		}
		c.fillPolys(surface.EllipsePath(cx, cy, rx, ry, rotation, segments(math.Max(rx, ry))).Flatten(), p)
	})
}

func (c *Canvas) FillPath(path *surface.Path, p surface.Paint) {
	polys := path.Flatten()
	if len(polys) == 0 {
		return
	}
	c.draw(func() {
		c.shadow(func(grow float32, col color.RGBA) {
			// Shadows of arbitrary paths are drawn as a lifted copy.
			lift := r2.Vec{Y: -float64(grow)}
			for _, poly := range polys {
				moved := make([]r2.Vec, len(poly))
				for i, v := range poly {
					moved[i] = r2.Add(v, lift)
				}
				c.fillShape(surface.Classify(moved), col)
			}
		})
		c.fillPolys(polys, p)
	})
}

// fillPolys fills each subpath with raylib triangles. Solid paints use one fan or strip
// per shape; gradients are cut into cells coloured at their centroid.
func (c *Canvas) fillPolys(polys [][]r2.Vec, p surface.Paint) {
	for _, poly := range polys {
		sh := surface.Classify(poly)
		switch {
		case sh.Kind == surface.ShapeEmpty:
		case sh.Kind == surface.ShapeConcave:
			c.fillSpans(sh.Ring, func(x, y float64) color.RGBA { return c.col(p.At(x, y)) })
		case p.Gradient == nil:
			c.fillShape(sh, c.col(p.Color))
		case sh.Kind == surface.ShapeConvex:
			c.fillCells(sh.Ring, p)
		default:
			c.fillBand(sh.Band, p)
		}
	}
}

// fillShape draws a convex or band shape in one colour.
func (c *Canvas) fillShape(sh surface.Shape, col color.RGBA) {
	switch sh.Kind {
	case surface.ShapeConvex:
		if len(sh.Ring) == 3 {
			rl.DrawTriangle(vec(sh.Ring[0]), vec(sh.Ring[1]), vec(sh.Ring[2]), col)
			return
		}
		rl.DrawTriangleFan(vecs(sh.Ring), col)
	case surface.ShapeBand:
		rl.DrawTriangleStrip(vecs(sh.Band.Strip(sh.Band.Top(), sh.Band.Floor)), col)
	case surface.ShapeConcave:
		c.fillSpans(sh.Ring, func(float64, float64) color.RGBA { return col })
	}
}

// cellRings is how many rings a gradient cell fan uses for a shape of the given extent.
func cellRings(extent float64) int {
	return max(1, min(int(extent/24), 8))
}

func (c *Canvas) fillCells(ring []r2.Vec, p surface.Paint) {
	g := p.Gradient
	hub := r2.Vec{X: g.X0, Y: g.Y0}
	if !surface.Inside(ring, hub) {
		hub = surface.Centroid(ring)
	}
	var extent float64
	for _, v := range ring {
		extent = max(extent, r2.Norm(r2.Sub(v, hub)))
	}
	for _, t := range surface.FanCells(ring, hub, cellRings(extent)) {
		m := t.Centroid()
		rl.DrawTriangle(vec(t[0]), vec(t[1]), vec(t[2]), c.col(p.At(m.X, m.Y)))
	}
}

// fillBand slices a band into horizontal strips. A vertical gradient is uniform along
// each slice; other gradients colour every strip triangle on its own.
func (c *Canvas) fillBand(b surface.Band, p surface.Paint) {
	g := p.Gradient
	top := b.Top()
	n := cellRings(b.Floor - top)
	step := (b.Floor - top) / float64(n)
	vertical := g.Kind == surface.GradientLinear && g.X0 == g.X1
	for i := 0; i < n; i++ {
		y0 := top + float64(i)*step
		strip := b.Strip(y0, y0+step)
		if vertical {
			rl.DrawTriangleStrip(vecs(strip), c.col(p.At(g.X0, y0+step/2)))
			continue
		}
		for _, t := range surface.StripTriangles(strip) {
			m := t.Centroid()
			rl.DrawTriangle(vec(t[0]), vec(t[1]), vec(t[2]), c.col(p.At(m.X, m.Y)))
		}
	}
}

// fillSpans scan-converts a concave polygon into one-pixel-high rows. None of the
// built-in renderers draw concave fills; this keeps arbitrary paths correct.
func (c *Canvas) fillSpans(ring []r2.Vec, at func(x, y float64) color.RGBA) {
	surface.Spans([][]r2.Vec{ring}, func(y int, x0, x1 float64) {
		rl.DrawRectangleRec(rl.Rectangle{X: float32(x0), Y: float32(y), Width: float32(x1 - x0), Height: 1}, at((x0+x1)/2, float64(y)+0.5))
	})
}

func (c *Canvas) StrokePath(path *surface.Path, width float64, p surface.Paint) {
	polys := path.Flatten()
	c.draw(func() {
		for _, poly := range polys {
			for i := 1; i < len(poly); i++ {
				a, b := poly[i-1], poly[i]
				col := c.col(p.At((a.X+b.X)/2, (a.Y+b.Y)/2))
				rl.DrawLineEx(vec(a), vec(b), float32(width), col)
			}
		}
	})
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, p surface.Paint) {
	c.draw(func() {
		rl.DrawLineEx(rl.Vector2{X: float32(x0), Y: float32(y0)}, rl.Vector2{X: float32(x1), Y: float32(y1)}, float32(width), c.col(p.At(x0, y0)))
	})
}

func rect(r surface.Rect) rl.Rectangle {
	return rl.Rectangle{X: float32(r.X), Y: float32(r.Y), Width: float32(r.W), Height: float32(r.H)}
}

func vec(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}

func vecs(vs []r2.Vec) []rl.Vector2 {
	out := make([]rl.Vector2, len(vs))
	for i, v := range vs {
		out[i] = vec(v)
	}
	return out
}
