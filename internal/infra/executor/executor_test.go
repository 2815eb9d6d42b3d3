package executor

import (
	"bytes"
	"context"
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/runoshun/gpurun/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test on Windows")
	}

	client := NewClient()
	ctx := context.Background()

	t.Run("successful child exits zero", func(t *testing.T) {
		res, err := client.Run(ctx, domain.ProcessSpec{Argv: []string{"true"}})
		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode)
		assert.False(t, res.Signaled)
	})

	t.Run("relays child exit code unchanged", func(t *testing.T) {
		res, err := client.Run(ctx, domain.ProcessSpec{Argv: []string{"sh", "-c", "exit 3"}})
		require.NoError(t, err)
		assert.Equal(t, 3, res.ExitCode)
		assert.False(t, res.Signaled)
	})

	t.Run("runs in the given directory", func(t *testing.T) {
		dir := t.TempDir()
		var tee bytes.Buffer
		res, err := client.Run(ctx, domain.ProcessSpec{
			Argv: []string{"pwd"},
			Dir:  dir,
			Tee:  &tee,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode)
		assert.Contains(t, strings.TrimSpace(tee.String()), dir)
	})

	t.Run("extra env reaches the child", func(t *testing.T) {
		res, err := client.Run(ctx, domain.ProcessSpec{
			Argv:     []string{"sh", "-c", `test -n "$GPURUN_TEST_MARKER"`},
			ExtraEnv: []string{"GPURUN_TEST_MARKER=1"},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode)
	})

	t.Run("tee receives stdout and stderr", func(t *testing.T) {
		var tee bytes.Buffer
		res, err := client.Run(ctx, domain.ProcessSpec{
			Argv: []string{"sh", "-c", "echo out; echo err >&2"},
			Tee:  &tee,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode)
		assert.Contains(t, tee.String(), "out")
		assert.Contains(t, tee.String(), "err")
	})

	t.Run("signaled child maps to 128 plus signal", func(t *testing.T) {
		res, err := client.Run(ctx, domain.ProcessSpec{Argv: []string{"sh", "-c", "kill -TERM $$"}})
		require.NoError(t, err)
		assert.Equal(t, 143, res.ExitCode)
		assert.True(t, res.Signaled)
	})

	t.Run("missing binary is an error", func(t *testing.T) {
		_, err := client.Run(ctx, domain.ProcessSpec{Argv: []string{"nonexistent-command-xyz"}})
		require.Error(t, err)
	})
}

func TestClient_Replace(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test on Windows")
	}

	t.Run("passes resolved path and argv to exec", func(t *testing.T) {
		client := NewClient()

		var gotArgv0 string
		var gotArgv []string
		var gotEnv []string
		client.SetExecFunc(func(argv0 string, argv []string, envv []string) error {
			gotArgv0 = argv0
			gotArgv = argv
			gotEnv = envv
			return nil
		})

		err := client.Replace(domain.ProcessSpec{
			Argv:     []string{"sh", "-c", "true"},
			ExtraEnv: []string{"GPURUN_TEST_MARKER=1"},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(gotArgv0, "/sh"))
		assert.Equal(t, []string{"sh", "-c", "true"}, gotArgv)
		assert.Contains(t, gotEnv, "GPURUN_TEST_MARKER=1")
	})

	t.Run("changes directory before exec", func(t *testing.T) {
		client := NewClient()
		client.SetExecFunc(func(string, []string, []string) error { return nil })

		orig, err := os.Getwd()
		require.NoError(t, err)
		defer func() { _ = os.Chdir(orig) }()

		dir := t.TempDir()
		err = client.Replace(domain.ProcessSpec{Argv: []string{"true"}, Dir: dir})
		require.NoError(t, err)

		wd, err := os.Getwd()
		require.NoError(t, err)
		assert.Contains(t, wd, dir)
	})

	t.Run("exec failure is reported", func(t *testing.T) {
		client := NewClient()
		client.SetExecFunc(func(string, []string, []string) error {
			return assert.AnError
		})

		err := client.Replace(domain.ProcessSpec{Argv: []string{"true"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("missing binary is an error", func(t *testing.T) {
		client := NewClient()
		var called bool
		client.SetExecFunc(func(string, []string, []string) error {
			called = true
			return nil
		})

		err := client.Replace(domain.ProcessSpec{Argv: []string{"nonexistent-command-xyz"}})
		require.Error(t, err)
		assert.False(t, called, "exec must not run without a resolved binary")
	})
}

func TestNewClient(t *testing.T) {
	client := NewClient()
	assert.NotNil(t, client)
}
