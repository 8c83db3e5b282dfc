package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/rigid/config"
)

// Output file names inside the output directory.
const (
	TelemetryFile = "telemetry.csv"
	PerfFile      = "perf.csv"
	BookmarksFile = "bookmarks.csv"
	ConfigFile    = "config.yaml"
)

// csvTable appends rows to one CSV file, writing the header with the first row.
type csvTable struct {
	name          string
	file          *os.File
	headerWritten bool
}

func openTable(dir, name string) (*csvTable, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvTable{name: name, file: f}, nil
}

// append writes records, which must be a slice of csv-tagged structs.
func (t *csvTable) append(records any) error {
	var err error
	if !t.headerWritten {
		err = gocsv.Marshal(records, t.file)
	} else {
		err = gocsv.MarshalWithoutHeaders(records, t.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", t.name, err)
	}
	t.headerWritten = true
	return nil
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir       string
	telemetry *csvTable
	perf      *csvTable
	bookmarks *csvTable
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled); all methods accept a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, t := range []struct {
		dst  **csvTable
		name string
	}{
		{&om.telemetry, TelemetryFile},
		{&om.perf, PerfFile},
		{&om.bookmarks, BookmarksFile},
	} {
		table, err := openTable(dir, t.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*t.dst = table
	}
	return om, nil
}

// WriteConfig saves the run's configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.append([]WindowStats{stats})
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.perf.append([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.append([]Bookmark{b})
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

	var errs []error
	for _, t := range []*csvTable{om.telemetry, om.perf, om.bookmarks} {
		if t == nil {
			continue
		}
		if err := t.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", t.name, err))
		}
	}
	return errors.Join(errs...)
}
