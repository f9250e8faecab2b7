// Package changelog writes the plain-text record of every substitution and
// rename performed during a run.
package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ekaya-inc/ekaya-rekey/pkg/models"
)

// Recorder appends changes to a durable log.
type Recorder interface {
	Record(change models.Change) error
}

// Log is an append-only change log backed by a single file.
// The file is opened and closed on every write, so no handle is held between calls.
type Log struct {
	path string
}

var _ Recorder = (*Log)(nil)

// New returns a Log writing to path. Nothing is created until the first Record.
func New(path string) *Log {
	return &Log{path: path}
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Reset removes any log left by a previous run.
func (l *Log) Reset() error {
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove change log %s: %w", l.path, err)
	}
	return nil
}

// Record appends one line for change.
func (l *Log) Record(change models.Change) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open change log: %w", err)
	}

	if _, err := f.WriteString(FormatLine(change)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write change log: %w", err)
	}
	return f.Close()
}

// FormatLine renders a change as a single newline-terminated log line.
func FormatLine(change models.Change) string {
	return fmt.Sprintf("In file %s: '%s' replaced with '%s'\n", change.Path, change.Original, change.Updated)
}
