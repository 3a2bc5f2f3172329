/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

// Level is a log level for a logging message.
type Level int

// Log levels. The order matters: a module logging at INFO also emits WARNING and ERROR.
const (
	ERROR Level = iota
	WARNING
	INFO
	DEBUG
)

// Logger represents a general-purpose logger.
//
// There is no Fatalf/Panicf: library code in this module reports failures through returned errors.
type Logger interface {
	Errorf(msg string, args ...interface{})
	Warnf(msg string, args ...interface{})
	Infof(msg string, args ...interface{})
	Debugf(msg string, args ...interface{})
}

// LoggerProvider is a factory for moduled loggers.
type LoggerProvider interface {
	GetLogger(module string) Logger
}
