package domain

import (
	"context"
	"io"
	"time"
)

// ProcessSpec describes a composed command ready to run.
// Fields are ordered to minimize memory padding.
type ProcessSpec struct {
	Tee      io.Writer // Optional copy of the child's stdout and stderr
	Dir      string    // Working directory for the child
	Argv     []string  // Full command line; Argv[0] is resolved via PATH
	ExtraEnv []string  // Appended to the inherited environment, KEY=VALUE form
}

// ProcessResult describes a finished child process.
type ProcessResult struct {
	ExitCode int  // Child exit code; signaled children map to 128+N
	Signaled bool // Child was terminated by a signal
}

// ProcessRunner spawns composed commands.
type ProcessRunner interface {
	// Run starts the command with inherited standard streams and blocks
	// until it exits. A non-zero child exit is not an error; failing to
	// start the child is.
	Run(ctx context.Context, spec ProcessSpec) (ProcessResult, error)

	// Replace replaces the current process image with the command.
	// It only returns on failure.
	Replace(spec ProcessSpec) error
}

// RunLogEntry is one launch log line.
type RunLogEntry struct {
	Time time.Time // Launch time
	Dir  string    // Working directory of the launch
	Argv []string  // Composed command
}

// RunLogger writes the plain-text launch records.
type RunLogger interface {
	// Append adds exactly one line for the entry to the log at path.
	Append(path string, entry RunLogEntry) error

	// WriteLastRun overwrites the last-run breadcrumb at path.
	WriteLastRun(path string, run *Run) error
}

// RunRepository manages run history persistence.
type RunRepository interface {
	// Append adds a completed run to the history.
	Append(run *Run) error

	// List retrieves all runs, newest first.
	List() ([]*Run, error)

	// Get retrieves a run by ID.
	Get(id string) (*Run, error)

	// Remove deletes a run by ID.
	Remove(id string) error

	// Prune keeps the newest keep runs and returns the removed ones.
	Prune(keep int) ([]*Run, error)
}

// CaptureStore manages compressed child-output logs.
type CaptureStore interface {
	// Create opens a new compressed capture log for a run and returns
	// the writer together with the log's path.
	Create(runID string) (io.WriteCloser, string, error)

	// Open returns a reader over the decompressed capture log at path.
	Open(path string) (io.ReadCloser, error)

	// Remove deletes the capture log at path.
	Remove(path string) error
}

// Announcer reports launch progress and warnings to the user.
type Announcer interface {
	// Banner prints the pre-launch summary for an invocation.
	Banner(inv *Invocation)

	// Warnf reports a non-fatal problem.
	Warnf(format string, args ...any)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults + global + local).
	Load() (*Config, error)
}

// ConfigManager manages configuration files on disk.
type ConfigManager interface {
	// GetGlobalConfigInfo returns the global config file info.
	GetGlobalConfigInfo() ConfigInfo

	// GetLocalConfigInfo returns the launch directory config file info.
	GetLocalConfigInfo() ConfigInfo

	// InitGlobalConfig writes the starter global config file.
	InitGlobalConfig(cfg *Config) error

	// InitLocalConfig writes a starter gpurun.toml in the launch directory.
	InitLocalConfig(cfg *Config) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
