package writer

import (
	"sort"
	"sync"

	"github.com/ksyq12/vhostfrag/internal/location"
)

// MockWriter is a test double for Writer
type MockWriter struct {
	dir string

	// Function mocks - set these to customize behavior
	StageFunc func(fragment location.Fragment, enabled bool) (Change, error)
	ListFunc  func() ([]string, error)

	// Call tracking - check these to verify interactions
	mu         sync.Mutex
	StageCalls []StageCall
	ListCalls  int
	staged     map[string]string
}

// StageCall records arguments passed to Stage
type StageCall struct {
	Fragment location.Fragment
	Enabled  bool
}

// NewMockWriter creates a MockWriter that keeps staged fragments in memory
func NewMockWriter(dir string) *MockWriter {
	return &MockWriter{
		dir:        dir,
		StageCalls: make([]StageCall, 0),
		staged:     make(map[string]string),
	}
}

// Dir returns the configured directory
func (m *MockWriter) Dir() string {
	return m.dir
}

// Stage records the call and invokes the mock function if set. Without a
// mock function it behaves like Staging against an in-memory directory.
func (m *MockWriter) Stage(fragment location.Fragment, enabled bool) (Change, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StageCalls = append(m.StageCalls, StageCall{Fragment: fragment, Enabled: enabled})
	if m.StageFunc != nil {
		return m.StageFunc(fragment, enabled)
	}

	id := fragment.ID.String()
	text, exists := m.staged[id]
	switch {
	case !enabled && exists:
		delete(m.staged, id)
		return ChangeRemoved, nil
	case !enabled:
		return ChangeAbsent, nil
	case exists && text == fragment.Text:
		return ChangeUnchanged, nil
	case exists:
		m.staged[id] = fragment.Text
		return ChangeUpdated, nil
	default:
		m.staged[id] = fragment.Text
		return ChangeCreated, nil
	}
}

// List records the call and invokes the mock function if set
func (m *MockWriter) List() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	ids := make([]string, 0, len(m.staged))
	for id := range m.staged {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Staged returns the text staged under id
func (m *MockWriter) Staged(id string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.staged[id]
	return text, ok
}
