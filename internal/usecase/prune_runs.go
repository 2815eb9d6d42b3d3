package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/gpurun/internal/domain"
)

// PruneRunsInput contains the parameters for pruning run history.
type PruneRunsInput struct {
	Keep   int  // Number of newest runs to keep; negative uses the configured limit
	DryRun bool // If true, only list what would be pruned
}

// PruneRunsOutput contains the result of pruning runs.
type PruneRunsOutput struct {
	Pruned      []*domain.Run // Runs that were (or would be) removed
	RemovedLogs []string      // Capture logs that were removed
}

// PruneRuns is the use case for trimming run history and the capture
// logs of the removed runs.
type PruneRuns struct {
	configLoader domain.ConfigLoader
	runs         domain.RunRepository
	captures     domain.CaptureStore
	announcer    domain.Announcer
}

// NewPruneRuns creates a new PruneRuns use case.
func NewPruneRuns(configLoader domain.ConfigLoader, runs domain.RunRepository, captures domain.CaptureStore, announcer domain.Announcer) *PruneRuns {
	return &PruneRuns{
		configLoader: configLoader,
		runs:         runs,
		captures:     captures,
		announcer:    announcer,
	}
}

// Execute removes all but the newest runs from the history. Capture
// logs of pruned runs are removed best-effort: a failed removal warns
// but the prune itself still succeeds.
func (uc *PruneRuns) Execute(_ context.Context, in PruneRunsInput) (*PruneRunsOutput, error) {
	keep := in.Keep
	if keep < 0 {
		cfg, err := uc.configLoader.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		keep = cfg.History.Limit
	}

	if in.DryRun {
		runs, err := uc.runs.List()
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		out := &PruneRunsOutput{}
		if len(runs) > keep {
			out.Pruned = runs[keep:]
		}
		return out, nil
	}

	pruned, err := uc.runs.Prune(keep)
	if err != nil {
		return nil, fmt.Errorf("prune runs: %w", err)
	}

	out := &PruneRunsOutput{Pruned: pruned}
	for _, run := range pruned {
		if run.CaptureLog == "" {
			continue
		}
		if err := uc.captures.Remove(run.CaptureLog); err != nil {
			uc.announcer.Warnf("remove capture log %s: %v", run.CaptureLog, err)
			continue
		}
		out.RemovedLogs = append(out.RemovedLogs, run.CaptureLog)
	}

	return out, nil
}
