// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runoshun/gpurun/internal/domain"
	"github.com/runoshun/gpurun/internal/infra/banner"
	"github.com/runoshun/gpurun/internal/infra/capture"
	"github.com/runoshun/gpurun/internal/infra/config"
	"github.com/runoshun/gpurun/internal/infra/executor"
	"github.com/runoshun/gpurun/internal/infra/runlog"
	"github.com/runoshun/gpurun/internal/infra/runstore"
	"github.com/runoshun/gpurun/internal/usecase"
)

// Paths holds the resolved application paths.
type Paths struct {
	WorkDir    string // Launch directory (cwd or the -C override)
	StateDir   string // $XDG_STATE_HOME/gpurun or ~/.local/state/gpurun
	StorePath  string // Path to runs.yaml
	CaptureDir string // Directory holding compressed capture logs
}

// resolvePaths resolves the application paths for a launch directory.
// The capture directory honors a [capture] dir override from config.
func resolvePaths(workDir, captureDirOverride string) (Paths, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, fmt.Errorf("%w: %v", domain.ErrHomeNotFound, err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	stateDir := domain.StateDir(stateHome)

	captureDir := captureDirOverride
	if captureDir == "" {
		captureDir = domain.CapturesDir(stateDir)
	}

	return Paths{
		WorkDir:    workDir,
		StateDir:   stateDir,
		StorePath:  domain.HistoryStorePath(stateDir),
		CaptureDir: captureDir,
	}, nil
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Runner        domain.ProcessRunner
	RunLog        domain.RunLogger
	Runs          domain.RunRepository
	Captures      domain.CaptureStore
	Announcer     domain.Announcer
	Clock         domain.Clock

	// Pointer fields
	Logger *slog.Logger

	// Configuration
	Paths Paths
}

// New creates a new Container rooted at the given launch directory.
func New(workDir string) (*Container, error) {
	configLoader := config.NewLoader(workDir)

	// The capture directory can be moved via config; ignore load errors
	// here so a broken config file still leaves a usable container (the
	// launch path reports the error itself).
	var captureDirOverride string
	if cfg, err := configLoader.Load(); err == nil {
		captureDirOverride = cfg.Capture.Dir
	}

	paths, err := resolvePaths(workDir, captureDirOverride)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	return &Container{
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(workDir),
		Runner:        executor.NewClient(),
		RunLog:        runlog.NewWriter(),
		Runs:          runstore.New(paths.StorePath),
		Captures:      capture.New(paths.CaptureDir),
		Announcer:     banner.New(os.Stderr),
		Clock:         domain.RealClock{},
		Logger:        logger,
		Paths:         paths,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(
	paths Paths,
	configLoader domain.ConfigLoader,
	configManager domain.ConfigManager,
	runner domain.ProcessRunner,
	runLog domain.RunLogger,
	runs domain.RunRepository,
	captures domain.CaptureStore,
	announcer domain.Announcer,
	clock domain.Clock,
) *Container {
	return &Container{
		ConfigLoader:  configLoader,
		ConfigManager: configManager,
		Runner:        runner,
		RunLog:        runLog,
		Runs:          runs,
		Captures:      captures,
		Announcer:     announcer,
		Clock:         clock,
		Logger:        slog.New(slog.NewTextHandler(os.Stderr, nil)),
		Paths:         paths,
	}
}

// UseCase factory methods

// LaunchUseCase returns a new Launch use case.
func (c *Container) LaunchUseCase() *usecase.Launch {
	return usecase.NewLaunch(c.ConfigLoader, c.Runner, c.RunLog, c.Runs, c.Captures, c.Announcer, c.Clock, c.Paths.StateDir)
}

// ListRunsUseCase returns a new ListRuns use case.
func (c *Container) ListRunsUseCase() *usecase.ListRuns {
	return usecase.NewListRuns(c.Runs)
}

// ShowRunUseCase returns a new ShowRun use case.
func (c *Container) ShowRunUseCase() *usecase.ShowRun {
	return usecase.NewShowRun(c.Runs, c.Captures)
}

// PruneRunsUseCase returns a new PruneRuns use case.
func (c *Container) PruneRunsUseCase() *usecase.PruneRuns {
	return usecase.NewPruneRuns(c.ConfigLoader, c.Runs, c.Captures, c.Announcer)
}

// ListStrategiesUseCase returns a new ListStrategies use case.
func (c *Container) ListStrategiesUseCase() *usecase.ListStrategies {
	return usecase.NewListStrategies(c.ConfigLoader)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
