// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/runoshun/gpurun/internal/domain"
)

// LaunchInput contains the parameters for launching a command on the GPU.
// Fields are ordered to minimize memory padding.
type LaunchInput struct {
	Strategy  string   // Strategy name; empty uses the configured default
	Dir       string   // Working directory of the launch (resolved by the caller)
	LogPath   string   // Launch log override; empty uses the configured path
	Target    []string // Command and arguments to run (required)
	Capture   *bool    // Output capture override; nil uses the configured value
	Quiet     *bool    // Banner suppression override; nil uses the configured value
	NoHistory bool     // Skip the history record for this run
	Exec      bool     // Replace the process image instead of spawn+wait
}

// LaunchOutput contains the result of a completed launch.
type LaunchOutput struct {
	Run      *domain.Run // The recorded run
	ExitCode int         // Child exit code, relayed unchanged
}

// Launch is the use case for running a command on the discrete GPU.
type Launch struct {
	configLoader domain.ConfigLoader
	runner       domain.ProcessRunner
	runLog       domain.RunLogger
	runs         domain.RunRepository
	captures     domain.CaptureStore
	announcer    domain.Announcer
	clock        domain.Clock
	stateDir     string // gpurun state directory (breadcrumb lives here)
}

// NewLaunch creates a new Launch use case.
func NewLaunch(
	configLoader domain.ConfigLoader,
	runner domain.ProcessRunner,
	runLog domain.RunLogger,
	runs domain.RunRepository,
	captures domain.CaptureStore,
	announcer domain.Announcer,
	clock domain.Clock,
	stateDir string,
) *Launch {
	return &Launch{
		configLoader: configLoader,
		runner:       runner,
		runLog:       runLog,
		runs:         runs,
		captures:     captures,
		announcer:    announcer,
		clock:        clock,
		stateDir:     stateDir,
	}
}

// Execute composes the command for the selected strategy, records the
// launch, runs the child and relays its exit code. Logging, breadcrumb
// and history are best-effort: their failures warn but never stop the
// launch or change the exit code.
func (uc *Launch) Execute(ctx context.Context, in LaunchInput) (*LaunchOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	strategy, def, err := cfg.StrategyFor(in.Strategy)
	if err != nil {
		return nil, err
	}

	logPath := in.LogPath
	if logPath == "" {
		logPath = cfg.Launch.Log
	}

	inv, err := domain.NewInvocation(strategy, def, in.Target, in.Dir, logPath)
	if err != nil {
		return nil, err
	}

	capture := cfg.Capture.Enabled
	if in.Capture != nil {
		capture = *in.Capture
	}
	if capture && in.Exec {
		return nil, domain.ErrCaptureWithExec
	}

	quiet := cfg.Launch.Quiet
	if in.Quiet != nil {
		quiet = *in.Quiet
	}
	if !quiet {
		uc.announcer.Banner(inv)
	}

	started := uc.clock.Now()

	// The launch log line goes out before the spawn so it exists no
	// matter how the child ends.
	if inv.LogPath != "" {
		entry := domain.RunLogEntry{
			Time: started,
			Dir:  inv.Dir,
			Argv: inv.Argv,
		}
		if appendErr := uc.runLog.Append(inv.LogPath, entry); appendErr != nil {
			uc.announcer.Warnf("launch log: %v", appendErr)
		}
	}

	run := &domain.Run{
		ID:       domain.RunID(in.Target[0], started),
		Strategy: strategy,
		Argv:     inv.Argv,
		Dir:      inv.Dir,
		Started:  started,
	}

	// Pending breadcrumb first: if the machine dies mid-game, the last
	// launch is still on disk.
	uc.writeBreadcrumb(run)

	spec := domain.ProcessSpec{
		Dir:      inv.Dir,
		Argv:     inv.Argv,
		ExtraEnv: inv.EnvStrings(),
	}

	if in.Exec {
		// Replace only returns on failure.
		execErr := uc.runner.Replace(spec)
		return nil, &domain.LaunchError{Argv0: inv.Argv[0], Err: execErr}
	}

	var captureW io.WriteCloser
	if capture {
		w, path, createErr := uc.captures.Create(run.ID)
		if createErr != nil {
			uc.announcer.Warnf("output capture: %v", createErr)
		} else {
			captureW = w
			spec.Tee = w
			run.CaptureLog = path
		}
	}

	result, runErr := uc.runner.Run(ctx, spec)

	if captureW != nil {
		if closeErr := captureW.Close(); closeErr != nil {
			uc.announcer.Warnf("close capture log: %v", closeErr)
		}
	}

	run.Finished = uc.clock.Now()
	recordHistory := cfg.History.Enabled && !in.NoHistory

	if runErr != nil {
		// The child never started; drop the empty capture file.
		if run.CaptureLog != "" {
			_ = uc.captures.Remove(run.CaptureLog)
			run.CaptureLog = ""
		}
		run.ExitCode = domain.ExitLaunch
		run.Outcome = domain.OutcomeLaunchError
		uc.writeBreadcrumb(run)
		if recordHistory {
			uc.appendHistory(run)
		}
		return nil, &domain.LaunchError{Argv0: inv.Argv[0], Err: runErr}
	}

	run.ExitCode = result.ExitCode
	run.Outcome = domain.OutcomeForExit(result.ExitCode, result.Signaled)
	uc.writeBreadcrumb(run)
	if recordHistory {
		uc.appendHistory(run)
	}

	return &LaunchOutput{Run: run, ExitCode: result.ExitCode}, nil
}

// writeBreadcrumb overwrites the last-run summary, warning on failure.
func (uc *Launch) writeBreadcrumb(run *domain.Run) {
	path := domain.LastRunPath(uc.stateDir)
	if err := uc.runLog.WriteLastRun(path, run); err != nil {
		uc.announcer.Warnf("last-run breadcrumb: %v", err)
	}
}

// appendHistory records the completed run, warning on failure.
func (uc *Launch) appendHistory(run *domain.Run) {
	if err := uc.runs.Append(run); err != nil {
		uc.announcer.Warnf("record history: %v", err)
	}
}
