package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/gpurun/internal/domain"
)

// ListRunsInput contains the parameters for listing recorded runs.
type ListRunsInput struct {
	Limit int // Maximum number of runs to return (0 = all)
}

// ListRunsOutput contains the result of listing runs.
type ListRunsOutput struct {
	Runs []*domain.Run // Recorded runs, newest first
}

// ListRuns is the use case for listing run history.
type ListRuns struct {
	runs domain.RunRepository
}

// NewListRuns creates a new ListRuns use case.
func NewListRuns(runs domain.RunRepository) *ListRuns {
	return &ListRuns{runs: runs}
}

// Execute lists recorded runs, newest first.
func (uc *ListRuns) Execute(_ context.Context, in ListRunsInput) (*ListRunsOutput, error) {
	runs, err := uc.runs.List()
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	if in.Limit > 0 && len(runs) > in.Limit {
		runs = runs[:in.Limit]
	}

	return &ListRunsOutput{Runs: runs}, nil
}
