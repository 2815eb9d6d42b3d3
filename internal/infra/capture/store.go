// Package capture stores compressed copies of launched process output.
package capture

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/runoshun/gpurun/internal/domain"
)

// Ensure Store implements domain.CaptureStore interface.
var _ domain.CaptureStore = (*Store)(nil)

// Store writes zstd-compressed output logs under a captures directory.
type Store struct {
	dir string
}

// New creates a Store writing under dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Create opens a compressed log for the given run and returns the writer
// together with the file path.
func (s *Store) Create(runID string) (io.WriteCloser, string, error) {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return nil, "", fmt.Errorf("create captures directory: %w", err)
	}

	path := filepath.Join(s.dir, domain.CaptureLogName(runID))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o640) // #nosec G302,G304 - path is built from a sanitized run ID
	if err != nil {
		return nil, "", fmt.Errorf("create capture file: %w", err)
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, "", fmt.Errorf("create zstd writer: %w", err)
	}

	return &logWriter{enc: enc, file: f}, path, nil
}

// Open returns a reader over the decompressed log at path.
func (s *Store) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) // #nosec G304 - path comes from the run history
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoCaptureLog, path)
		}
		return nil, fmt.Errorf("open capture file: %w", err)
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}

	return &logReader{dec: dec, file: f}, nil
}

// Remove deletes the capture file at path. A missing file is not an error
// so pruning stays idempotent.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove capture file: %w", err)
	}
	return nil
}

// logWriter flushes the encoder before closing the underlying file.
type logWriter struct {
	enc  *zstd.Encoder
	file *os.File
}

func (w *logWriter) Write(p []byte) (int, error) {
	return w.enc.Write(p)
}

func (w *logWriter) Close() error {
	encErr := w.enc.Close()
	fileErr := w.file.Close()
	if encErr != nil {
		return fmt.Errorf("close zstd writer: %w", encErr)
	}
	if fileErr != nil {
		return fmt.Errorf("close capture file: %w", fileErr)
	}
	return nil
}

// logReader closes the decoder before the underlying file.
type logReader struct {
	dec  *zstd.Decoder
	file *os.File
}

func (r *logReader) Read(p []byte) (int, error) {
	return r.dec.Read(p)
}

func (r *logReader) Close() error {
	r.dec.Close()
	return r.file.Close()
}
