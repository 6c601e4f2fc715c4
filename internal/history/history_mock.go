package history

import (
	"time"

	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/schema"
	"github.com/stretchr/testify/mock"
)

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, command string, configParams map[string]any) (string, error) {
	args := m.Called(startTime, command, configParams)
	return args.String(0), args.Error(1)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID string, endTime time.Time, totalVectors int) error {
	args := m.Called(runID, endTime, totalVectors)
	return args.Error(0)
}

// RecordScore implements the HistoryStore interface.
func (m *MockHistoryStore) RecordScore(runID string, result schema.ScoreResult) error {
	args := m.Called(runID, result)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

// GetAllScores implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllScores() ([]schema.ScoreRecord, error) {
	args := m.Called()
	scores, _ := args.Get(0).([]schema.ScoreRecord)
	return scores, args.Error(1)
}

// Clear implements the HistoryStore interface.
func (m *MockHistoryStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
