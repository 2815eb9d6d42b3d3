// Package runstore provides a YAML file-based implementation of RunRepository.
package runstore

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/gpurun/internal/domain"
)

// storeData represents the YAML file structure.
type storeData struct {
	Runs []*domain.Run `yaml:"runs"`
}

// Store implements domain.RunRepository using a YAML file.
// Reads take a shared flock, writes an exclusive one, so concurrent
// gpurun processes never tear the file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Ensure Store implements RunRepository.
var _ domain.RunRepository = (*Store)(nil)

// Append adds a completed run to the history.
func (s *Store) Append(run *domain.Run) error {
	return s.withLockWrite(func(data *storeData) error {
		data.Runs = append(data.Runs, run)
		return nil
	})
}

// List retrieves all runs, newest first.
func (s *Store) List() ([]*domain.Run, error) {
	var runs []*domain.Run
	err := s.withLock(func(data *storeData) error {
		runs = append(runs, data.Runs...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(runs, func(a, b *domain.Run) int {
		return b.Started.Compare(a.Started)
	})
	return runs, nil
}

// Get retrieves a run by ID.
func (s *Store) Get(id string) (*domain.Run, error) {
	var run *domain.Run
	err := s.withLock(func(data *storeData) error {
		for _, r := range data.Runs {
			if r.ID == id {
				run = r
				return nil
			}
		}
		return fmt.Errorf("%w: %s", domain.ErrRunNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// Remove deletes a run by ID.
func (s *Store) Remove(id string) error {
	return s.withLockWrite(func(data *storeData) error {
		for i, r := range data.Runs {
			if r.ID == id {
				data.Runs = slices.Delete(data.Runs, i, i+1)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", domain.ErrRunNotFound, id)
	})
}

// Prune keeps the newest keep runs and returns the removed ones.
func (s *Store) Prune(keep int) ([]*domain.Run, error) {
	if keep < 0 {
		keep = 0
	}

	var removed []*domain.Run
	err := s.withLockWrite(func(data *storeData) error {
		if len(data.Runs) <= keep {
			return nil
		}
		sorted := append([]*domain.Run(nil), data.Runs...)
		slices.SortFunc(sorted, func(a, b *domain.Run) int {
			return b.Started.Compare(a.Started)
		})
		removed = sorted[keep:]
		data.Runs = sorted[:keep]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// An absent history is an empty history
			return &storeData{}, nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var data storeData
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse history file: %w", err)
	}

	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal history data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
