package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// runIDStamp is the timestamp layout embedded in run IDs.
const runIDStamp = "20060102-150405"

// RunID builds the identifier for a run from the target command and
// its start time.
// Format: <sanitized command name>_<yyyymmdd-hhmmss>
func RunID(command string, started time.Time) string {
	name := SanitizeCommandName(command)
	if name == "" {
		name = "run"
	}
	return fmt.Sprintf("%s_%s", name, started.Format(runIDStamp))
}

// CaptureLogName returns the capture log file name for a run.
func CaptureLogName(runID string) string {
	return runID + ".log.zst"
}

// HistoryStorePath returns the path to the runs.yaml file.
func HistoryStorePath(stateDir string) string {
	return filepath.Join(stateDir, "runs.yaml")
}

// LastRunPath returns the path to the last-run breadcrumb file.
func LastRunPath(stateDir string) string {
	return filepath.Join(stateDir, "last-run.log")
}

// CapturesDir returns the path to the capture log directory.
func CapturesDir(stateDir string) string {
	return filepath.Join(stateDir, "captures")
}

// unsafeNameChars matches anything not safe in a run ID or file name.
var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeCommandName reduces a command to a token usable in run IDs
// and file names: the base name with unsafe characters collapsed to
// hyphens and leading/trailing separators trimmed.
func SanitizeCommandName(command string) string {
	base := filepath.Base(command)
	base = unsafeNameChars.ReplaceAllString(base, "-")
	return strings.Trim(base, "-.")
}
