// Package testutils provides shared mocks for package tests.
package testutils

import (
	"sync"

	"github.com/avolkov-dev/swingbot/logger"
)

// LogEntry is one captured log call.
type LogEntry struct {
	Level  string
	Msg    string
	Fields []logger.Field
}

// MockLogger records log calls for assertions.
type MockLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

func NewMockLogger() *MockLogger { return &MockLogger{} }

func (m *MockLogger) Info(msg string, fields ...logger.Field) {
	m.record("info", msg, fields)
}

func (m *MockLogger) Warn(msg string, fields ...logger.Field) {
	m.record("warn", msg, fields)
}

func (m *MockLogger) Error(msg string, fields ...logger.Field) {
	m.record("error", msg, fields)
}

func (m *MockLogger) record(level, msg string, fields []logger.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Msg: msg, Fields: fields})
}

// Has reports whether a message was logged at any level.
func (m *MockLogger) Has(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Entries {
		if e.Msg == msg {
			return true
		}
	}
	return false
}
