package notify

import (
	"sync"

	"github.com/mfaivrep/planif/core/model"
)

// MockPublisher records published assignments for tests.
type MockPublisher struct {
	mu       sync.Mutex
	Messages []model.Assignment
	Err      error
}

// NewMockPublisher creates a MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishAssignment records the assignment or returns the configured
// error.
func (m *MockPublisher) PublishAssignment(runID string, a model.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, a)
	return nil
}

// Close is a no-op.
func (m *MockPublisher) Close() {}
