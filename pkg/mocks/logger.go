package mocks

import (
	"fmt"
	"sync"

	"github.com/herbaini/yuvpress/pkg/ports"
)

// Logger is a mock implementation of ports.Logger that records every
// formatted message by level.
type Logger struct {
	mu sync.Mutex

	DebugMessages []string
	InfoMessages  []string
	WarnMessages  []string
	ErrorMessages []string
}

// NewLogger creates a new recording logger.
func NewLogger() *Logger {
	return &Logger{}
}

func (m *Logger) Debug(msg string, args ...interface{}) {
	m.append(&m.DebugMessages, msg, args...)
}

func (m *Logger) Info(msg string, args ...interface{}) {
	m.append(&m.InfoMessages, msg, args...)
}

func (m *Logger) Warn(msg string, args ...interface{}) {
	m.append(&m.WarnMessages, msg, args...)
}

func (m *Logger) Error(msg string, args ...interface{}) {
	m.append(&m.ErrorMessages, msg, args...)
}

// WithComponent returns the same logger; component prefixes are not
// recorded.
func (m *Logger) WithComponent(component string) ports.Logger {
	return m
}

func (m *Logger) append(dst *[]string, msg string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(args) > 0 {
		*dst = append(*dst, fmt.Sprintf(msg, args...))
	} else {
		*dst = append(*dst, msg)
	}
}

var _ ports.Logger = (*Logger)(nil)
