package observables

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrBadRunID indicates an empty run identifier.
var ErrBadRunID = errors.New("observables: run identifier must not be empty")

// Writer appends measurement records to per-observable files under one
// output directory. File names follow <observable>-<runID>.dat.
type Writer struct {
	dir   string
	runID string
}

// NewWriter creates dir if needed and returns a writer for runID.
func NewWriter(dir, runID string) (*Writer, error) {
	if runID == "" {
		return nil, ErrBadRunID
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("observables: create output dir: %w", err)
	}
	return &Writer{dir: dir, runID: runID}, nil
}

// Path returns the data file path for the named observable.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s-%s.dat", name, w.runID))
}

// Append writes one record line to the named observable's file.
func (w *Writer) Append(name, line string) error {
	f, err := os.OpenFile(w.Path(name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("observables: open %s: %w", name, err)
	}
	if _, err := fmt.Fprintln(f, line); err != nil {
		f.Close()
		return fmt.Errorf("observables: append %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("observables: close %s: %w", name, err)
	}
	return nil
}
