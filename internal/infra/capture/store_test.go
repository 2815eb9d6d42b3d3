package capture

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/gpurun/internal/domain"
)

func TestStore_CreateAndOpen(t *testing.T) {
	// Setup
	dir := t.TempDir()
	store := New(filepath.Join(dir, "captures"))

	// Write a log through the compressing writer
	w, path, err := store.Create("glxgears_20260821-153004")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "captures", "glxgears_20260821-153004.log.zst"), path)

	payload := strings.Repeat("frame rendered\n", 200)
	_, err = io.WriteString(w, payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// Read it back decompressed
	r, err := store.Open(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))
}

func TestStore_FileIsCompressed(t *testing.T) {
	// Setup
	dir := t.TempDir()
	store := New(dir)

	w, path, err := store.Create("game_20260821-153004")
	require.NoError(t, err)
	_, err = io.WriteString(w, strings.Repeat("abcdefgh\n", 500))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// zstd frames start with the magic number 0x28B52FFD (little-endian)
	require.GreaterOrEqual(t, len(raw), 4)
	assert.True(t, bytes.HasPrefix(raw, []byte{0x28, 0xb5, 0x2f, 0xfd}), "capture file is not a zstd frame")
	assert.Less(t, len(raw), 4500, "capture file does not look compressed")
}

func TestStore_OpenMissing(t *testing.T) {
	// Setup
	dir := t.TempDir()
	store := New(dir)

	_, err := store.Open(filepath.Join(dir, "absent.log.zst"))
	assert.ErrorIs(t, err, domain.ErrNoCaptureLog)
}

func TestStore_Remove(t *testing.T) {
	// Setup
	dir := t.TempDir()
	store := New(dir)

	w, path, err := store.Create("short_20260821-153004")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// Remove deletes the file and is idempotent
	require.NoError(t, store.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Remove(path))
}

func TestStore_CreateEmptyLog(t *testing.T) {
	// Setup
	dir := t.TempDir()
	store := New(dir)

	// A process that writes nothing still leaves a valid log
	w, path, err := store.Create("quiet_20260821-153004")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := store.Open(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
}
