package domain

import (
	"strings"
	"time"
)

// Run is one recorded launch in the history store.
type Run struct {
	ID         string    `yaml:"id"`
	Strategy   Strategy  `yaml:"strategy"`
	Argv       []string  `yaml:"argv"`
	Dir        string    `yaml:"dir"`
	Started    time.Time `yaml:"started"`
	Finished   time.Time `yaml:"finished"`
	ExitCode   int       `yaml:"exitCode"`
	Outcome    Outcome   `yaml:"outcome"`
	CaptureLog string    `yaml:"captureLog,omitempty"`
}

// CommandLine returns the run's argv as one space-joined line.
func (r *Run) CommandLine() string {
	return strings.Join(r.Argv, " ")
}

// Elapsed returns the run's wall-clock duration.
func (r *Run) Elapsed() time.Duration {
	if r.Finished.Before(r.Started) {
		return 0
	}
	return r.Finished.Sub(r.Started)
}
