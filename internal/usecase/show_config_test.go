package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/gpurun/internal/testutil"
)

func TestShowConfig_Execute(t *testing.T) {
	// Setup
	manager := testutil.NewMockConfigManager()
	manager.GlobalConfigInfo.Exists = true
	manager.GlobalConfigInfo.Content = "[launch]\nstrategy = \"gl\"\n"
	loader := testutil.NewMockConfigLoader()
	loader.Config.Launch.Strategy = "gl"
	uc := NewShowConfig(manager, loader)

	// Execute
	out, err := uc.Execute(context.Background(), ShowConfigInput{})

	// Assert
	require.NoError(t, err)
	assert.True(t, out.GlobalConfig.Exists)
	assert.Equal(t, "/home/test/.config/gpurun/config.toml", out.GlobalConfig.Path)
	assert.False(t, out.LocalConfig.Exists)
	assert.Equal(t, "/test/gpurun.toml", out.LocalConfig.Path)
	assert.Equal(t, "gl", out.EffectiveConfig.Launch.Strategy)
}

func TestShowConfig_Execute_LoadError(t *testing.T) {
	// Setup
	loader := testutil.NewMockConfigLoader()
	loader.LoadErr = errors.New("bad toml")
	uc := NewShowConfig(testutil.NewMockConfigManager(), loader)

	// Execute
	_, err := uc.Execute(context.Background(), ShowConfigInput{})

	// Assert
	require.Error(t, err)
}
