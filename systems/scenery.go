package systems

import (
	"image/color"
	"math"
	"math/rand"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/backdrop/config"
)

// Kind identifies a scenery object class.
type Kind string

const (
	KindHouse Kind = "house"
	KindTree  Kind = "tree"
	KindBush  Kind = "bush"
)

// RidgeSegment is one quadratic curve of a ridgeline.
type RidgeSegment struct {
	Ctrl, To r2.Vec
}

// Ridge is a mountain band: a curved ridgeline closed down to Floor.
type Ridge struct {
	Start    r2.Vec
	Segments []RidgeSegment
	Top      float64 // Band top, used for the fill gradient
	Floor    float64
	Detail   float64
	TopColor color.NRGBA
	Base     color.NRGBA
}

// Blade is a curved grass stroke.
type Blade struct {
	Root, Ctrl, Tip r2.Vec
}

// Flower is a stem with radially arranged petals.
type Flower struct {
	Center   r2.Vec
	Size     float64
	Petals   []float64 // Per-petal size
	Color    color.NRGBA
	StemCtrl r2.Vec
	StemEnd  r2.Vec
}

// Lobe is one foliage ellipse of a bush, relative to the bush anchor.
type Lobe struct {
	DX, DY, W, H float64
}

// SceneryObject is a placed house, tree or bush. X is the horizontal centre; Y is the
// top edge for houses and the ground line for trees and bushes.
type SceneryObject struct {
	Kind    Kind
	X, Y    float64
	W, H    float64
	Primary color.NRGBA // Walls, foliage or bush colour
	Roof    color.NRGBA
	Lobes   []Lobe
}

// Scene is the generated content of the landscape layer.
type Scene struct {
	Width, Height float64
	GrassTop      float64
	Ridges        []Ridge
	Blades        []Blade
	Flowers       []Flower
	Objects       []SceneryObject
}

// Positions returns the x positions of every object of kind, in placement order.
func (s *Scene) Positions(kind Kind) []float64 {
	var out []float64
	for _, o := range s.Objects {
		if o.Kind == kind {
			out = append(out, o.X)
		}
	}
	return out
}

// Spacing returns the minimum spacing an object kind keeps from the kinds it avoids.
func Spacing(cfg config.LandscapeConfig, kind Kind) float64 {
	return cfg.MinSpacing * objectConfig(cfg, kind).Spacing
}

func objectConfig(cfg config.LandscapeConfig, kind Kind) config.ObjectConfig {
	switch kind {
	case KindHouse:
		return cfg.Houses
	case KindTree:
		return cfg.Trees
	default:
		return cfg.Bushes
	}
}

// GenerateScene builds a landscape for a layer of the given size. Objects are placed by
// rejection sampling: a candidate is accepted only when it keeps its spacing from every
// placed object of the kinds it avoids. After cfg.Attempts failures the object is skipped.
func GenerateScene(rng *rand.Rand, width, height float64, cfg config.LandscapeConfig) *Scene {
	s := &Scene{Width: width, Height: height, GrassTop: height * cfg.GrassTop}
	if width <= 0 || height <= 0 {
		return s
	}

	for _, rc := range cfg.Ridges {
		s.Ridges = append(s.Ridges, genRidge(rng, width, height, rc))
	}

	for i := 0; i < cfg.GrassBlades; i++ {
		x := rng.Float64() * width
		h := 5 + rng.Float64()*15
		y := s.GrassTop + rng.Float64()*height*0.2
		curve := 2 + rng.Float64()*6
		s.Blades = append(s.Blades, Blade{
			Root: r2.Vec{X: x, Y: y},
			Ctrl: r2.Vec{X: x + (rng.Float64()-0.5)*10, Y: y - h*0.5},
			Tip:  r2.Vec{X: x + (rng.Float64()-0.5)*curve, Y: y - h},
		})
	}

	pal := cfg.Palette
	for i := 0; i < cfg.Flowers; i++ {
		x := rng.Float64() * width
		y := s.GrassTop + rng.Float64()*(height-s.GrassTop)
		size := 2 + rng.Float64()*3
		petals := make([]float64, 5+rng.Intn(3)*2)
		for p := range petals {
			petals[p] = size * (0.8 + rng.Float64()*0.4)
		}
		hue := pal.FlowerHue[0] + rng.Float64()*(pal.FlowerHue[1]-pal.FlowerHue[0])
		s.Flowers = append(s.Flowers, Flower{
			Center:   r2.Vec{X: x, Y: y},
			Size:     size,
			Petals:   petals,
			Color:    HSL(hue, 0.7, 0.7),
			StemCtrl: r2.Vec{X: x + (rng.Float64()-0.5)*5, Y: y + 15},
			StemEnd:  r2.Vec{X: x + (rng.Float64()-0.5)*3, Y: y + 30},
		})
	}

	for _, kind := range []Kind{KindHouse, KindTree, KindBush} {
		oc := objectConfig(cfg, kind)
		count := oc.Min
		if oc.Max > oc.Min {
			count += rng.Intn(oc.Max - oc.Min + 1)
		}
		spacing := Spacing(cfg, kind)
		for i := 0; i < count; i++ {
			x, ok := s.place(rng, width, oc, spacing, cfg.Attempts)
			if !ok {
				continue
			}
			s.Objects = append(s.Objects, newObject(rng, kind, x, s.GrassTop, pal))
		}
	}
	return s
}

// place draws candidate positions until one keeps its spacing or attempts run out.
func (s *Scene) place(rng *rand.Rand, width float64, oc config.ObjectConfig, spacing float64, attempts int) (float64, bool) {
	span := math.Max(0, width-2*oc.Margin)
	for a := 0; a < attempts; a++ {
		x := oc.Margin + rng.Float64()*span
		if s.clear(x, oc.Avoid, spacing) {
			return x, true
		}
	}
	return 0, false
}

func (s *Scene) clear(x float64, avoid []string, spacing float64) bool {
	for _, o := range s.Objects {
		if !slices.Contains(avoid, string(o.Kind)) {
			continue
		}
		if math.Abs(o.X-x) < spacing {
			return false
		}
	}
	return true
}

func newObject(rng *rand.Rand, kind Kind, x, grassTop float64, pal config.ScenePalette) SceneryObject {
	o := SceneryObject{Kind: kind, X: x}
	switch kind {
	case KindHouse:
		o.W = 40 + rng.Float64()*40
		o.H = 40 + rng.Float64()*40
		o.Y = grassTop - o.H
		i := rng.Intn(len(pal.Walls))
		o.Primary = pal.Walls[i].NRGBA
		o.Roof = pal.Roofs[i%len(pal.Roofs)].NRGBA
	case KindTree:
		o.W = 20 + rng.Float64()*30
		o.H = 50 + rng.Float64()*60
		o.Y = grassTop + rng.Float64()*20 - 10
		o.Primary = pal.Foliage[rng.Intn(len(pal.Foliage))].NRGBA
	case KindBush:
		o.W = 30 + rng.Float64()*40
		o.H = 15 + rng.Float64()*25
		o.Y = grassTop + rng.Float64()*15
		o.Primary = AdjustBrightness(pal.Bush.NRGBA, rng.Intn(31)-15)
		for i := 0; i < 3; i++ {
			o.Lobes = append(o.Lobes, Lobe{
				DX: (rng.Float64() - 0.5) * o.W * 0.2,
				DY: (rng.Float64() - 0.5) * o.H * 0.2,
				W:  o.W * (0.8 + rng.Float64()*0.4),
				H:  o.H * (0.8 + rng.Float64()*0.4),
			})
		}
	}
	return o
}

// genRidge builds a ridgeline with every third point raised into a peak. Detail scales
// both peak height and the shadow the renderer casts, so nearer bands stand out more.
func genRidge(rng *rand.Rand, width, height float64, rc config.RidgeConfig) Ridge {
	top := height * rc.Top
	band := height * rc.Height
	r := Ridge{
		Top:      top,
		Floor:    top + band,
		Detail:   rc.Detail,
		TopColor: rc.TopColor.NRGBA,
		Base:     rc.Base.NRGBA,
	}
	segments := max(3, int(math.Floor(float64(rc.Peaks)*1.5)))
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		px := t * width
		py := top + rng.Float64()*band*0.2*rc.Detail
		if i%3 == 0 {
			py = top - rng.Float64()*band*0.4*rc.Detail
		}
		wobble := math.Sin(t*math.Pi*2) * band * 0.1 * rc.Detail
		if i == 0 {
			r.Start = r2.Vec{X: px, Y: py + wobble}
			continue
		}
		r.Segments = append(r.Segments, RidgeSegment{
			Ctrl: r2.Vec{X: (t - 0.5/float64(segments)) * width, Y: top + rng.Float64()*band*0.3*rc.Detail + wobble},
			To:   r2.Vec{X: px, Y: py + wobble},
		})
	}
	return r
}
