package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/gpurun/internal/domain"
	"github.com/runoshun/gpurun/internal/testutil"
)

func TestShowRun_Execute(t *testing.T) {
	// Setup
	repo := testutil.NewMockRunRepository()
	run := &domain.Run{
		ID:       "glxgears_20260821-153004",
		Strategy: domain.StrategyVulkan,
		Argv:     []string{"pvkrun", "glxgears"},
		Started:  time.Date(2026, 8, 21, 15, 30, 4, 0, time.UTC),
	}
	require.NoError(t, repo.Append(run))
	uc := NewShowRun(repo, testutil.NewMockCaptureStore())

	// Execute
	out, err := uc.Execute(context.Background(), ShowRunInput{ID: run.ID})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, run, out.Run)
	assert.Nil(t, out.Log)
}

func TestShowRun_Execute_NotFound(t *testing.T) {
	// Setup
	uc := NewShowRun(testutil.NewMockRunRepository(), testutil.NewMockCaptureStore())

	// Execute
	_, err := uc.Execute(context.Background(), ShowRunInput{ID: "missing"})

	// Assert
	require.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestShowRun_Execute_OpenLog(t *testing.T) {
	// Setup
	repo := testutil.NewMockRunRepository()
	require.NoError(t, repo.Append(&domain.Run{
		ID:         "game_20260821-153004",
		CaptureLog: "/captures/game_20260821-153004.log.zst",
	}))
	captures := testutil.NewMockCaptureStore()
	captures.OpenData = "child output\n"
	uc := NewShowRun(repo, captures)

	// Execute
	out, err := uc.Execute(context.Background(), ShowRunInput{
		ID:      "game_20260821-153004",
		OpenLog: true,
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, out.Log)
	data, readErr := io.ReadAll(out.Log)
	require.NoError(t, readErr)
	assert.Equal(t, "child output\n", string(data))
	require.NoError(t, out.Log.Close())
}

func TestShowRun_Execute_OpenLogWithoutCapture(t *testing.T) {
	// Setup
	repo := testutil.NewMockRunRepository()
	require.NoError(t, repo.Append(&domain.Run{ID: "plain_20260821-153004"}))
	uc := NewShowRun(repo, testutil.NewMockCaptureStore())

	// Execute
	_, err := uc.Execute(context.Background(), ShowRunInput{
		ID:      "plain_20260821-153004",
		OpenLog: true,
	})

	// Assert
	require.ErrorIs(t, err, domain.ErrNoCaptureLog)
}
