package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/gpurun/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load_NoConfigFiles(t *testing.T) {
	// Setup: empty directories, no config anywhere
	localDir := t.TempDir()
	globalDir := t.TempDir()

	// Load config
	loader := NewLoaderWithGlobalDir(localDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	// Verify: default config is returned
	assert.Equal(t, string(domain.DefaultStrategy), cfg.Launch.Strategy)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, domain.DefaultHistoryLimit, cfg.History.Limit)
	assert.False(t, cfg.Capture.Enabled)
	assert.Contains(t, cfg.Strategies, "vulkan")
	assert.Contains(t, cfg.Strategies, "gl")
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_GlobalConfigOnly(t *testing.T) {
	// Setup
	localDir := t.TempDir()
	globalDir := t.TempDir()

	// Write global config only
	globalConfig := `
[launch]
strategy = "gl"
log = "/var/log/gpurun.log"

[history]
limit = 50
`
	err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(globalConfig), 0644)
	require.NoError(t, err)

	// Load config
	loader := NewLoaderWithGlobalDir(localDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	// Verify
	assert.Equal(t, "gl", cfg.Launch.Strategy)
	assert.Equal(t, "/var/log/gpurun.log", cfg.Launch.Log)
	assert.Equal(t, 50, cfg.History.Limit)
	assert.True(t, cfg.History.Enabled) // Default survives for untouched fields
}

func TestLoader_Load_LocalConfigOnly(t *testing.T) {
	// Setup
	localDir := t.TempDir()
	globalDir := t.TempDir()

	// Write local config only
	localConfig := `
[launch]
strategy = "prime"
quiet = true
`
	err := os.WriteFile(filepath.Join(localDir, domain.LocalConfigFileName), []byte(localConfig), 0644)
	require.NoError(t, err)

	// Load config
	loader := NewLoaderWithGlobalDir(localDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	// Verify
	assert.Equal(t, "prime", cfg.Launch.Strategy)
	assert.True(t, cfg.Launch.Quiet)
}

func TestLoader_Load_MergeLocalOverridesGlobal(t *testing.T) {
	// Setup
	localDir := t.TempDir()
	globalDir := t.TempDir()

	// Write global config
	globalConfig := `
[launch]
strategy = "gl"
quiet = true

[capture]
enabled = true
dir = "/captures/global"
`
	err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(globalConfig), 0644)
	require.NoError(t, err)

	// Write local config (overrides some values)
	localConfig := `
[launch]
strategy = "opti"
quiet = false

[capture]
enabled = false
`
	err = os.WriteFile(filepath.Join(localDir, domain.LocalConfigFileName), []byte(localConfig), 0644)
	require.NoError(t, err)

	// Load config
	loader := NewLoaderWithGlobalDir(localDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	// Verify: local overrides global, including explicit false over true
	assert.Equal(t, "opti", cfg.Launch.Strategy)
	assert.False(t, cfg.Launch.Quiet)
	assert.False(t, cfg.Capture.Enabled)
	assert.Equal(t, "/captures/global", cfg.Capture.Dir) // From global (not overridden)
}

func TestLoader_Load_HistoryDisabled(t *testing.T) {
	// Setup: history defaults to enabled; config must be able to turn it off
	localDir := t.TempDir()
	globalDir := t.TempDir()

	globalConfig := `
[history]
enabled = false
`
	err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(globalConfig), 0644)
	require.NoError(t, err)

	// Load config
	loader := NewLoaderWithGlobalDir(localDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	// Verify
	assert.False(t, cfg.History.Enabled)
}

func TestLoader_Load_CustomStrategy(t *testing.T) {
	// Setup
	localDir := t.TempDir()
	globalDir := t.TempDir()

	globalConfig := `
[strategies.gamescope]
wrapper = "gamescope"
description = "run inside a gamescope session"

[strategies.gamescope.env]
ENABLE_VKBASALT = "1"
`
	err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(globalConfig), 0644)
	require.NoError(t, err)

	// Load config
	loader := NewLoaderWithGlobalDir(localDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	// Verify
	def, ok := cfg.Strategies["gamescope"]
	require.True(t, ok)
	assert.Equal(t, "gamescope", def.Wrapper)
	assert.Equal(t, "run inside a gamescope session", def.Description)
	assert.Equal(t, map[string]string{"ENABLE_VKBASALT": "1"}, def.Env)

	// Built-ins still present
	assert.Contains(t, cfg.Strategies, "vulkan")
}

func TestLoader_Load_BuiltinStrategyOverride(t *testing.T) {
	// Setup: redefining only the wrapper keeps the built-in description
	localDir := t.TempDir()
	globalDir := t.TempDir()

	globalConfig := `
[strategies.vulkan]
wrapper = "/opt/primus-vk/pvkrun"
`
	err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(globalConfig), 0644)
	require.NoError(t, err)

	// Load config
	loader := NewLoaderWithGlobalDir(localDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	// Verify
	def := cfg.Strategies["vulkan"]
	assert.Equal(t, "/opt/primus-vk/pvkrun", def.Wrapper)
	assert.Equal(t, domain.BuiltinStrategies()["vulkan"].Description, def.Description)
}

func TestLoader_Load_UnknownKeysWarn(t *testing.T) {
	// Setup
	localDir := t.TempDir()
	globalDir := t.TempDir()

	globalConfig := `
[launch]
strategy = "vulkan"
speed = "ludicrous"

[telemetry]
enabled = true

[strategies.vulkan]
wrapper = "pvkrun"
retries = 3
`
	err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(globalConfig), 0644)
	require.NoError(t, err)

	// Load config
	loader := NewLoaderWithGlobalDir(localDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	// Verify: unknown keys warn but never fail the load
	assert.Contains(t, cfg.Warnings, "unknown key in [launch]: speed")
	assert.Contains(t, cfg.Warnings, "unknown section: telemetry")
	assert.Contains(t, cfg.Warnings, "unknown key in [strategies.vulkan]: retries")
	assert.Equal(t, "vulkan", cfg.Launch.Strategy)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	// Setup
	localDir := t.TempDir()
	globalDir := t.TempDir()

	// Write invalid TOML
	invalidConfig := `
this is not valid toml [[[
`
	err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(invalidConfig), 0644)
	require.NoError(t, err)

	// Load config
	loader := NewLoaderWithGlobalDir(localDir, globalDir)
	cfg, err := loader.Load()

	// Verify: classed as invalid config
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Nil(t, cfg)
}

func TestLoader_LoadGlobal_NotFound(t *testing.T) {
	// Setup: empty directories
	localDir := t.TempDir()
	globalDir := t.TempDir()

	loader := NewLoaderWithGlobalDir(localDir, globalDir)
	cfg, err := loader.LoadGlobal()

	// Verify: returns error for non-existent file
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, cfg)
}

func TestLoader_Paths(t *testing.T) {
	loader := NewLoaderWithGlobalDir("/games/doom", "/home/user/.config/gpurun")

	assert.Equal(t, "/home/user/.config/gpurun/config.toml", loader.GlobalPath())
	assert.Equal(t, "/games/doom/gpurun.toml", loader.LocalPath())
}
