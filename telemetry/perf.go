package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// window is a ring buffer of frame durations in microseconds.
type window struct {
	samples    []float64
	writeIndex int
	count      int
	total      int // Frames observed since the effect was first seen
}

func (w *window) add(us float64) {
	w.samples[w.writeIndex] = us
	w.writeIndex = (w.writeIndex + 1) % len(w.samples)
	if w.count < len(w.samples) {
		w.count++
	}
	w.total++
}

// PerfCollector tracks per-effect frame callback durations over a rolling window.
// It satisfies effects.FrameObserver.
type PerfCollector struct {
	windowSize int
	windows    map[string]*window

	// Display frame timing (windowed host only)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to keep per effect (e.g., 120 for 2 seconds at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		windows:    make(map[string]*window),
	}
}

// ObserveFrame records the time one effect spent in a frame callback.
func (p *PerfCollector) ObserveFrame(effect string, d time.Duration) {
	w, ok := p.windows[effect]
	if !ok {
		w = &window{samples: make([]float64, p.windowSize)}
		p.windows[effect] = w
	}
	w.add(float64(d) / float64(time.Microsecond))
}

// RecordFrame records display frame timing.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// Effects returns the names of every effect observed so far, sorted.
func (p *PerfCollector) Effects() []string {
	names := make([]string, 0, len(p.windows))
	for name := range p.windows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PerfStats holds aggregated frame statistics for one effect.
type PerfStats struct {
	Effect  string
	Samples int // Frames in the window
	Frames  int // Frames observed in total

	// Frame callback timing in microseconds
	MeanUS float64
	StdUS  float64
	MinUS  float64
	MaxUS  float64
	P95US  float64

	// Display timing (windowed host)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window for one effect.
func (p *PerfCollector) Stats(effect string) PerfStats {
	s := PerfStats{Effect: effect, FrameDuration: p.frameDuration}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}

	w, ok := p.windows[effect]
	if !ok || w.count == 0 {
		return s
	}

	xs := make([]float64, w.count)
	copy(xs, w.samples[:w.count])
	sort.Float64s(xs)

	s.Samples = w.count
	s.Frames = w.total
	s.MeanUS, s.StdUS = stat.MeanStdDev(xs, nil)
	if w.count < 2 {
		s.StdUS = 0
	}
	s.MinUS = xs[0]
	s.MaxUS = xs[len(xs)-1]
	s.P95US = stat.Quantile(0.95, stat.Empirical, xs, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("effect", s.Effect),
		slog.Int("samples", s.Samples),
		slog.Float64("mean_us", s.MeanUS),
		slog.Float64("std_us", s.StdUS),
		slog.Float64("max_us", s.MaxUS),
		slog.Float64("p95_us", s.P95US),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Frame   int64   `csv:"frame"`
	Effect  string  `csv:"effect"`
	Samples int     `csv:"samples"`
	Frames  int     `csv:"frames"`
	MeanUS  float64 `csv:"mean_us"`
	StdUS   float64 `csv:"std_us"`
	MinUS   float64 `csv:"min_us"`
	MaxUS   float64 `csv:"max_us"`
	P95US   float64 `csv:"p95_us"`
	FPS     float64 `csv:"fps"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(frame int64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:   frame,
		Effect:  s.Effect,
		Samples: s.Samples,
		Frames:  s.Frames,
		MeanUS:  s.MeanUS,
		StdUS:   s.StdUS,
		MinUS:   s.MinUS,
		MaxUS:   s.MaxUS,
		P95US:   s.P95US,
		FPS:     s.FPS,
	}
}
