package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
)

// Point is one animated particle. Fields are shared across the particle variants; each
// update rule reads only the ones it needs.
type Point struct {
	X, Y, Z float64
	Size    float64
	Alpha   float64
	Speed   float64
	Base    float64 // Resting brightness
	Phase   float64 // Seconds of delay before a cycle starts
	Period  float64 // Seconds per cycle
	Length  float64 // Rain streak length
}

// Pool holds a fixed number of points as entities in an ECS world.
// The count only changes when Regenerate is called.
type Pool struct {
	world  *ecs.World
	mapper *ecs.Map1[Point]
	filter ecs.Filter1[Point]
	n      int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	p := &Pool{}
	p.reset()
	return p
}

func (p *Pool) reset() {
	p.world = ecs.NewWorld()
	p.mapper = ecs.NewMap1[Point](p.world)
	p.filter = *ecs.NewFilter1[Point](p.world)
	p.n = 0
}

// Regenerate discards every point and creates n new ones initialised by seed.
// Negative n yields an empty pool.
func (p *Pool) Regenerate(n int, seed func(i int, pt *Point)) {
	p.reset()
	for i := 0; i < n; i++ {
		var pt Point
		seed(i, &pt)
		p.mapper.NewEntity(&pt)
		p.n++
	}
}

// Update calls fn on every point; fn mutates the point in place.
func (p *Pool) Update(fn func(pt *Point)) {
	query := p.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// Each calls fn with a copy of every point.
func (p *Pool) Each(fn func(pt Point)) {
	query := p.filter.Query()
	for query.Next() {
		fn(*query.Get())
	}
}

// Len returns the number of live points.
func (p *Pool) Len() int {
	n := 0
	query := p.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Twinkle advances alpha by speed and reverses direction when alpha leaves [0, 1].
func Twinkle(pt *Point) {
	pt.Alpha += pt.Speed
	if pt.Alpha > 1 || pt.Alpha < 0 {
		pt.Speed = -pt.Speed
		pt.Alpha = Clamp01(pt.Alpha)
	}
}

// Shimmer nudges alpha by a slow sine of the wall clock in milliseconds, kept in [0.1, 1].
func Shimmer(pt *Point, ms float64) {
	pt.Alpha = Clamp(pt.Alpha+math.Sin(ms*pt.Speed*0.1)*0.05, 0.1, 1)
}

// Cycle sets alpha from an ease-in-out brightness cycle: 0.2 at the period edges, 1 at
// the middle, scaled by the point's base brightness. With flicker > 0, each call has that
// chance to re-roll the base brightness.
func Cycle(pt *Point, seconds float64, rng *rand.Rand, flicker float64) {
	if flicker > 0 && rng.Float64() < flicker {
		pt.Base = 0.1 + rng.Float64()*0.9
	}
	local := seconds - pt.Phase
	if local < 0 || pt.Period <= 0 {
		pt.Alpha = pt.Base
		return
	}
	u := math.Mod(local, pt.Period) / pt.Period
	tri := 1 - math.Abs(1-2*u)
	eased := 0.5 - 0.5*math.Cos(math.Pi*tri)
	pt.Alpha = Clamp01(pt.Base * (0.2 + 0.8*eased))
}

// Volume is the region drifting points are respawned into.
type Volume struct {
	Width, Height float64
}

// Respawn3D places a point at a random position far from the camera.
func Respawn3D(pt *Point, rng *rand.Rand, v Volume) {
	pt.X = (rng.Float64() - 0.5) * v.Width * 3
	pt.Y = (rng.Float64()-0.5)*v.Height*4 - v.Height*0.5
	pt.Z = rng.Float64()*3000 + 100
	pt.Size = rng.Float64()*2 + 0.5
	pt.Alpha = rng.Float64()
}

// Drift3D moves a point toward the camera and respawns it once it passes z = 10.
func Drift3D(pt *Point, speed float64, rng *rand.Rand, v Volume) {
	pt.Z -= speed * 8
	if pt.Z < 10 {
		Respawn3D(pt, rng, v)
	}
}

// Fall moves a rain drop down by its speed and returns it above the top edge at a random
// x once it leaves the bottom.
func Fall(pt *Point, rng *rand.Rand, width, height float64) {
	pt.Y += pt.Speed
	if pt.Y > height {
		pt.Y = -pt.Length
		pt.X = rng.Float64() * width
	}
}
