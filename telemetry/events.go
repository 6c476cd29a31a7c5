// Package telemetry records frame timings and effect switches, and writes them as CSV.
package telemetry

import "log/slog"

// Switch records one change of the mounted effect.
type Switch struct {
	Frame  int64  `csv:"frame"`
	From   string `csv:"from"`
	To     string `csv:"to"` // Empty when nothing was mounted
	Reason string `csv:"reason"`
	Width  int    `csv:"width"`
}

// SwitchLog collects switches and optionally writes each one through an OutputManager.
// It satisfies manager.SwitchObserver.
type SwitchLog struct {
	out     *OutputManager
	frame   func() int64
	entries []Switch
}

// NewSwitchLog creates a switch log. out may be nil; frame reports the current frame
// number and may be nil.
func NewSwitchLog(out *OutputManager, frame func() int64) *SwitchLog {
	return &SwitchLog{out: out, frame: frame}
}

// ObserveSwitch records a switch.
func (l *SwitchLog) ObserveSwitch(from, to, reason string, width int) {
	s := Switch{From: from, To: to, Reason: reason, Width: width}
	if l.frame != nil {
		s.Frame = l.frame()
	}
	l.entries = append(l.entries, s)
	if err := l.out.WriteSwitch(s); err != nil {
		slog.Warn("writing switch", "error", err)
	}
}

// Entries returns every recorded switch in order.
func (l *SwitchLog) Entries() []Switch {
	return l.entries
}
