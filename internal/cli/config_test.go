package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/gpurun/internal/domain"
)

func TestConfigShowCommand(t *testing.T) {
	c, d := newTestContainer()
	d.manager.GlobalConfigInfo.Exists = true
	d.loader.Config.Launch.Strategy = "gl"

	stdout, _, err := execute(t, c, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, stdout, "[Loaded from]")
	assert.Contains(t, stdout, "/home/test/.config/gpurun/config.toml")
	assert.Contains(t, stdout, "/test/gpurun.toml (not found)")
	assert.Contains(t, stdout, "[Effective Config]")
	assert.Contains(t, stdout, "strategy = 'gl'")
}

func TestConfigInitCommand_Local(t *testing.T) {
	c, d := newTestContainer()

	stdout, _, err := execute(t, c, "config", "init")

	require.NoError(t, err)
	assert.True(t, d.manager.InitLocalCalled)
	assert.Contains(t, stdout, "Created config file: /test/gpurun.toml")
}

func TestConfigInitCommand_Global(t *testing.T) {
	c, d := newTestContainer()

	stdout, _, err := execute(t, c, "config", "init", "--global")

	require.NoError(t, err)
	assert.True(t, d.manager.InitGlobalCalled)
	assert.Contains(t, stdout, "/home/test/.config/gpurun/config.toml")
}

func TestConfigInitCommand_AlreadyExists(t *testing.T) {
	c, d := newTestContainer()
	d.manager.InitLocalErr = domain.ErrConfigExists

	_, _, err := execute(t, c, "config", "init")

	require.ErrorIs(t, err, domain.ErrConfigExists)
}
