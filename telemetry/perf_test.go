package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for _, us := range []int{100, 200, 300, 400} {
		pc.ObserveFrame("canyon", time.Duration(us)*time.Microsecond)
	}

	stats := pc.Stats("canyon")
	if stats.Samples != 4 || stats.Frames != 4 {
		t.Errorf("expected 4 samples and frames, got %d and %d", stats.Samples, stats.Frames)
	}
	if math.Abs(stats.MeanUS-250) > 1e-9 {
		t.Errorf("expected mean 250us, got %f", stats.MeanUS)
	}
	if stats.MinUS != 100 || stats.MaxUS != 400 {
		t.Errorf("expected min 100 and max 400, got %f and %f", stats.MinUS, stats.MaxUS)
	}
	if stats.StdUS <= 0 {
		t.Error("expected positive standard deviation")
	}
	if stats.P95US != 400 {
		t.Errorf("expected p95 400us, got %f", stats.P95US)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.ObserveFrame("minimal", time.Duration(i)*time.Millisecond)
	}

	stats := pc.Stats("minimal")
	if stats.Samples != 5 {
		t.Errorf("expected window of 5, got %d", stats.Samples)
	}
	if stats.Frames != 10 {
		t.Errorf("expected 10 frames observed, got %d", stats.Frames)
	}
	// Only the last five frames (5..9ms) remain
	if stats.MinUS != 5000 {
		t.Errorf("expected oldest sample 5000us, got %f", stats.MinUS)
	}
}

func TestPerfCollector_SeparateEffects(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.ObserveFrame("nature", time.Millisecond)
	pc.ObserveFrame("wireframe", 2*time.Millisecond)
	pc.ObserveFrame("nature", time.Millisecond)

	names := pc.Effects()
	if len(names) != 2 || names[0] != "nature" || names[1] != "wireframe" {
		t.Fatalf("expected [nature wireframe], got %v", names)
	}
	if pc.Stats("nature").Samples != 2 {
		t.Errorf("expected 2 nature samples, got %d", pc.Stats("nature").Samples)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	pc := NewPerfCollector(0)
	stats := pc.Stats("missing")
	if stats.Samples != 0 || stats.MeanUS != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}

	pc.ObserveFrame("single", time.Millisecond)
	if s := pc.Stats("single"); s.StdUS != 0 || s.MeanUS != 1000 {
		t.Errorf("expected mean 1000us and zero deviation, got %+v", s)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.ObserveFrame("cyberpunk", 500*time.Microsecond)

	row := pc.Stats("cyberpunk").ToCSV(120)
	if row.Frame != 120 || row.Effect != "cyberpunk" || row.MeanUS != 500 {
		t.Errorf("unexpected csv row: %+v", row)
	}
}
