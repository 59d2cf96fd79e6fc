package fsys

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mattjmcnaughton/rtree/internal/models"
)

// Mock is a scripted FileSystem for tests. Each directory path is mapped to
// either a fixed entry list or an error message; listing an unscripted path
// is an error so tests notice unexpected reads. Calls are recorded in order.
type Mock struct {
	mu        sync.Mutex
	responses map[string]mockResponse
	calls     []string
}

type mockResponse struct {
	entries []models.Entry
	errMsg  string
	failed  bool
}

// NewMock creates an empty Mock with no scripted directories
func NewMock() *Mock {
	return &Mock{responses: make(map[string]mockResponse)}
}

// SetEntries scripts a successful listing for dir
func (m *Mock) SetEntries(dir string, entries []models.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[dir] = mockResponse{entries: entries}
}

// SetError scripts a listing failure for dir with the given message
func (m *Mock) SetError(dir, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[dir] = mockResponse{errMsg: message, failed: true}
}

// Calls returns the directories listed so far, in call order
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// ReadDir implements FileSystem
func (m *Mock) ReadDir(_ context.Context, dir string) ([]models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, dir)

	resp, ok := m.responses[dir]
	if !ok {
		return nil, fmt.Errorf("no mock response for %s", dir)
	}
	if resp.failed {
		return nil, errors.New(resp.errMsg)
	}
	return append([]models.Entry(nil), resp.entries...), nil
}
