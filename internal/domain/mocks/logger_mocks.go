package mocks

import (
	"sync"

	"github.com/V4T54L/access-logger/internal/domain"
)

// MockLogger is a domain.Logger that records every call by severity.
type MockLogger struct {
	mu         sync.Mutex
	InfoCalls  []domain.Record
	WarnCalls  []domain.Record
	ErrorCalls []domain.Record
}

func (m *MockLogger) Info(rec domain.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InfoCalls = append(m.InfoCalls, rec)
}

func (m *MockLogger) Warn(rec domain.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WarnCalls = append(m.WarnCalls, rec)
}

func (m *MockLogger) Error(rec domain.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorCalls = append(m.ErrorCalls, rec)
}

// Infos returns a copy of the records passed to Info.
func (m *MockLogger) Infos() []domain.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Record(nil), m.InfoCalls...)
}

// Warns returns a copy of the records passed to Warn.
func (m *MockLogger) Warns() []domain.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Record(nil), m.WarnCalls...)
}

// Errors returns a copy of the records passed to Error.
func (m *MockLogger) Errors() []domain.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Record(nil), m.ErrorCalls...)
}

// Total is the number of records received across all severities.
func (m *MockLogger) Total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.InfoCalls) + len(m.WarnCalls) + len(m.ErrorCalls)
}
