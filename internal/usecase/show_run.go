package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/runoshun/gpurun/internal/domain"
)

// ShowRunInput contains the parameters for showing a recorded run.
type ShowRunInput struct {
	ID      string // Run ID (required)
	OpenLog bool   // Also open the run's capture log for reading
}

// ShowRunOutput contains the result of showing a run.
// Log is non-nil only when OpenLog was requested; the caller owns it
// and must close it.
type ShowRunOutput struct {
	Run *domain.Run
	Log io.ReadCloser
}

// ShowRun is the use case for displaying a single recorded run.
type ShowRun struct {
	runs     domain.RunRepository
	captures domain.CaptureStore
}

// NewShowRun creates a new ShowRun use case.
func NewShowRun(runs domain.RunRepository, captures domain.CaptureStore) *ShowRun {
	return &ShowRun{
		runs:     runs,
		captures: captures,
	}
}

// Execute retrieves the run and, when requested, opens its capture log.
func (uc *ShowRun) Execute(_ context.Context, in ShowRunInput) (*ShowRunOutput, error) {
	run, err := uc.runs.Get(in.ID)
	if err != nil {
		return nil, err
	}

	out := &ShowRunOutput{Run: run}

	if in.OpenLog {
		if run.CaptureLog == "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoCaptureLog, in.ID)
		}
		log, err := uc.captures.Open(run.CaptureLog)
		if err != nil {
			return nil, fmt.Errorf("open capture log: %w", err)
		}
		out.Log = log
	}

	return out, nil
}
