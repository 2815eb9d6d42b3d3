// Package runlog records launches to the user's log file and maintains
// the last-run breadcrumb.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/runoshun/gpurun/internal/domain"
)

// Ensure Writer implements domain.RunLogger interface.
var _ domain.RunLogger = (*Writer)(nil)

// Writer appends launch lines and overwrites the last-run summary.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Append writes one launch line to the log file at path.
func (w *Writer) Append(path string, entry domain.RunLogEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	// G302: Log files are append-only and may be tailed by other tools
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(formatEntry(entry)); err != nil {
		return fmt.Errorf("write log line: %w", err)
	}
	return nil
}

// formatEntry renders one launch record as a single line.
// Format: 2026-08-21T15:30:04Z cwd=/home/user cmd=pvkrun glxgears
func formatEntry(entry domain.RunLogEntry) string {
	return fmt.Sprintf("%s cwd=%s cmd=%s\n",
		entry.Time.Format(time.RFC3339),
		entry.Dir,
		strings.Join(entry.Argv, " "),
	)
}

// WriteLastRun atomically replaces the last-run summary at path.
// Outcome fields are omitted while the run is still pending, which is
// the case when the process image is replaced instead of spawned.
func (w *Writer) WriteLastRun(path string, run *domain.Run) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "id: %s\n", run.ID)
	fmt.Fprintf(&b, "started: %s\n", run.Started.Format(time.RFC3339))
	fmt.Fprintf(&b, "dir: %s\n", run.Dir)
	fmt.Fprintf(&b, "strategy: %s\n", run.Strategy)
	fmt.Fprintf(&b, "command: %s\n", run.CommandLine())
	if run.Outcome != "" {
		fmt.Fprintf(&b, "outcome: %s\n", run.Outcome)
		fmt.Fprintf(&b, "exit: %d\n", run.ExitCode)
	}
	if run.CaptureLog != "" {
		fmt.Fprintf(&b, "capture: %s\n", run.CaptureLog)
	}

	return writeAtomic(path, []byte(b.String()), 0o600)
}

func writeAtomic(path string, content []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, perm); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
