package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/backdrop/config"
)

// OutputManager writes run output: perf.csv, switches.csv and a config.yaml snapshot.
type OutputManager struct {
	dir          string
	perfFile     *os.File
	switchesFile *os.File

	// Track if headers have been written
	perfHeaderWritten     bool
	switchesHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	f, err = os.Create(filepath.Join(dir, "switches.csv"))
	if err != nil {
		om.perfFile.Close()
		return nil, fmt.Errorf("creating switches.csv: %w", err)
	}
	om.switchesFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// writeRecords marshals records, with headers only on the first write to a file.
func writeRecords(records any, w io.Writer, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, w); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, w)
}

// WritePerf writes one effect's performance stats to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame int64) error {
	if om == nil {
		return nil
	}
	records := []PerfStatsCSV{stats.ToCSV(frame)}
	if err := writeRecords(records, om.perfFile, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteSwitch writes a switch record to switches.csv.
func (om *OutputManager) WriteSwitch(s Switch) error {
	if om == nil {
		return nil
	}
	if err := writeRecords([]Switch{s}, om.switchesFile, &om.switchesHeaderWritten); err != nil {
		return fmt.Errorf("writing switch: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.perfFile, om.switchesFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
