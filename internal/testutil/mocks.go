// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/runoshun/gpurun/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockRunRepository is a test double for domain.RunRepository.
// Fields are ordered to minimize memory padding.
type MockRunRepository struct {
	AppendErr error
	ListErr   error
	GetErr    error
	RemoveErr error
	PruneErr  error
	Runs      []*domain.Run
}

// NewMockRunRepository creates a new MockRunRepository.
func NewMockRunRepository() *MockRunRepository {
	return &MockRunRepository{}
}

// Ensure MockRunRepository implements domain.RunRepository.
var _ domain.RunRepository = (*MockRunRepository)(nil)

// Append adds a run to the in-memory list.
func (m *MockRunRepository) Append(run *domain.Run) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Runs = append(m.Runs, run)
	return nil
}

// List returns all runs, newest first.
func (m *MockRunRepository) List() ([]*domain.Run, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	runs := append([]*domain.Run(nil), m.Runs...)
	slices.SortFunc(runs, func(a, b *domain.Run) int {
		return b.Started.Compare(a.Started)
	})
	return runs, nil
}

// Get retrieves a run by ID.
func (m *MockRunRepository) Get(id string) (*domain.Run, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, r := range m.Runs {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrRunNotFound, id)
}

// Remove deletes a run by ID.
func (m *MockRunRepository) Remove(id string) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	for i, r := range m.Runs {
		if r.ID == id {
			m.Runs = slices.Delete(m.Runs, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrRunNotFound, id)
}

// Prune keeps the newest keep runs and returns the removed ones.
func (m *MockRunRepository) Prune(keep int) ([]*domain.Run, error) {
	if m.PruneErr != nil {
		return nil, m.PruneErr
	}
	if keep < 0 {
		keep = 0
	}
	sorted := append([]*domain.Run(nil), m.Runs...)
	slices.SortFunc(sorted, func(a, b *domain.Run) int {
		return b.Started.Compare(a.Started)
	})
	if len(sorted) <= keep {
		return nil, nil
	}
	removed := sorted[keep:]
	m.Runs = sorted[:keep]
	return removed, nil
}

// MockProcessRunner is a test double for domain.ProcessRunner.
// Fields are ordered to minimize memory padding.
type MockProcessRunner struct {
	RunErr      error
	ReplaceErr  error
	RunSpec     domain.ProcessSpec // Last spec passed to Run
	ReplaceSpec domain.ProcessSpec // Last spec passed to Replace
	TeeInput    []byte             // Written to spec.Tee during Run when set
	Result      domain.ProcessResult
	RunCalls    int
	Replaced    bool
}

// Ensure MockProcessRunner implements domain.ProcessRunner.
var _ domain.ProcessRunner = (*MockProcessRunner)(nil)

// Run records the spec and returns the configured result.
func (m *MockProcessRunner) Run(_ context.Context, spec domain.ProcessSpec) (domain.ProcessResult, error) {
	m.RunCalls++
	m.RunSpec = spec
	if m.RunErr != nil {
		return domain.ProcessResult{}, m.RunErr
	}
	if spec.Tee != nil && len(m.TeeInput) > 0 {
		_, _ = spec.Tee.Write(m.TeeInput)
	}
	return m.Result, nil
}

// Replace records the spec and returns the configured error.
// A nil ReplaceErr mimics a successful exec, which never returns in
// production; tests treat a recorded call as success.
func (m *MockProcessRunner) Replace(spec domain.ProcessSpec) error {
	m.Replaced = true
	m.ReplaceSpec = spec
	return m.ReplaceErr
}

// MockRunLogger is a test double for domain.RunLogger.
// Fields are ordered to minimize memory padding.
type MockRunLogger struct {
	AppendErr   error
	LastRunErr  error
	Appended    []domain.RunLogEntry
	AppendPaths []string
	LastRuns    []*domain.Run
	LastRunPath string
}

// Ensure MockRunLogger implements domain.RunLogger.
var _ domain.RunLogger = (*MockRunLogger)(nil)

// Append records the entry.
func (m *MockRunLogger) Append(path string, entry domain.RunLogEntry) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.AppendPaths = append(m.AppendPaths, path)
	m.Appended = append(m.Appended, entry)
	return nil
}

// WriteLastRun records a copy of the run as handed in.
func (m *MockRunLogger) WriteLastRun(path string, run *domain.Run) error {
	if m.LastRunErr != nil {
		return m.LastRunErr
	}
	m.LastRunPath = path
	snapshot := *run
	m.LastRuns = append(m.LastRuns, &snapshot)
	return nil
}

// MockCaptureStore is a test double for domain.CaptureStore.
// Fields are ordered to minimize memory padding.
type MockCaptureStore struct {
	CreateErr error
	OpenErr   error
	RemoveErr error
	Captured  map[string]*bytes.Buffer // Keyed by run ID
	OpenData  string                   // Content returned by Open
	Removed   []string
	CloseErrs map[string]error // Optional close failure per run ID
}

// NewMockCaptureStore creates a new MockCaptureStore.
func NewMockCaptureStore() *MockCaptureStore {
	return &MockCaptureStore{
		Captured:  make(map[string]*bytes.Buffer),
		CloseErrs: make(map[string]error),
	}
}

// Ensure MockCaptureStore implements domain.CaptureStore.
var _ domain.CaptureStore = (*MockCaptureStore)(nil)

// Create returns an in-memory writer for the run.
func (m *MockCaptureStore) Create(runID string) (io.WriteCloser, string, error) {
	if m.CreateErr != nil {
		return nil, "", m.CreateErr
	}
	buf := &bytes.Buffer{}
	m.Captured[runID] = buf
	path := "/captures/" + domain.CaptureLogName(runID)
	return &nopWriteCloser{Writer: buf, err: m.CloseErrs[runID]}, path, nil
}

// Open returns a reader over the configured content.
func (m *MockCaptureStore) Open(_ string) (io.ReadCloser, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	return io.NopCloser(bytes.NewBufferString(m.OpenData)), nil
}

// Remove records the removed path.
func (m *MockCaptureStore) Remove(path string) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.Removed = append(m.Removed, path)
	return nil
}

type nopWriteCloser struct {
	io.Writer
	err error
}

func (w *nopWriteCloser) Close() error { return w.err }

// MockAnnouncer is a test double for domain.Announcer.
type MockAnnouncer struct {
	Banners  []*domain.Invocation
	Warnings []string
}

// Ensure MockAnnouncer implements domain.Announcer.
var _ domain.Announcer = (*MockAnnouncer)(nil)

// Banner records the invocation.
func (m *MockAnnouncer) Banner(inv *domain.Invocation) {
	m.Banners = append(m.Banners, inv)
}

// Warnf records the formatted warning.
func (m *MockAnnouncer) Warnf(format string, args ...any) {
	m.Warnings = append(m.Warnings, fmt.Sprintf(format, args...))
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a MockConfigLoader with the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitLocalErr     error
	InitGlobalErr    error
	LocalConfigInfo  domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitLocalCalled  bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		LocalConfigInfo: domain.ConfigInfo{
			Path:   "/test/gpurun.toml",
			Exists: false,
		},
		GlobalConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/gpurun/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetLocalConfigInfo returns the configured local config info.
func (m *MockConfigManager) GetLocalConfigInfo() domain.ConfigInfo {
	return m.LocalConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitLocalConfig records the call and returns the configured error.
func (m *MockConfigManager) InitLocalConfig(_ *domain.Config) error {
	m.InitLocalCalled = true
	return m.InitLocalErr
}

// InitGlobalConfig records the call and returns the configured error.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}
