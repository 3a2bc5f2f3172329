/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package mocklogger provides a recording logger for tests.
package mocklogger

import (
	"fmt"
	"sync"

	"github.com/coincord/ezrah-credential-go/spi/log"
)

// MockLogger records formatted messages per level.
type MockLogger struct {
	mu        sync.Mutex
	ErrorLogs []string
	WarnLogs  []string
	InfoLogs  []string
	DebugLogs []string
}

// Errorf records an error message.
func (m *MockLogger) Errorf(msg string, args ...interface{}) {
	m.record(&m.ErrorLogs, msg, args...)
}

// Warnf records a warning message.
func (m *MockLogger) Warnf(msg string, args ...interface{}) {
	m.record(&m.WarnLogs, msg, args...)
}

// Infof records an info message.
func (m *MockLogger) Infof(msg string, args ...interface{}) {
	m.record(&m.InfoLogs, msg, args...)
}

// Debugf records a debug message.
func (m *MockLogger) Debugf(msg string, args ...interface{}) {
	m.record(&m.DebugLogs, msg, args...)
}

// Warnings returns a copy of the recorded warnings.
func (m *MockLogger) Warnings() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.WarnLogs...)
}

func (m *MockLogger) record(dst *[]string, msg string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	*dst = append(*dst, fmt.Sprintf(msg, args...))
}

// Provider hands out one MockLogger per module.
type Provider struct {
	mu      sync.Mutex
	loggers map[string]*MockLogger
}

// GetLogger returns the MockLogger for module, creating it on first use.
func (p *Provider) GetLogger(module string) log.Logger {
	return p.Logger(module)
}

// Logger returns the concrete MockLogger for module.
func (p *Provider) Logger(module string) *MockLogger {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loggers == nil {
		p.loggers = map[string]*MockLogger{}
	}

	l, ok := p.loggers[module]
	if !ok {
		l = &MockLogger{}
		p.loggers[module] = l
	}

	return l
}
