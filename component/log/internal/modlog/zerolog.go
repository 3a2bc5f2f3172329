/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modlog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewZeroLog returns the default logger for module. Lines are JSON objects written to stderr:
//
//	{"level":"warn","module":"ezrah/dek","time":"...","message":"..."}
//
// Level filtering is done by ModLog, so the zerolog level is left at DEBUG.
func NewZeroLog(module string) *ZeroLog {
	return newZeroLog(module, os.Stderr)
}

func newZeroLog(module string, w io.Writer) *ZeroLog {
	return &ZeroLog{
		logger: zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Str("module", module).Logger(),
		module: module,
	}
}

// ZeroLog is the default logger implementation built on top of github.com/rs/zerolog.
type ZeroLog struct {
	logger zerolog.Logger
	module string
}

// Debugf logs verbose messages.
func (l *ZeroLog) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

// Infof logs general information messages.
func (l *ZeroLog) Infof(format string, args ...interface{}) {
	l.logger.Info().Msgf(format, args...)
}

// Warnf logs recoverable failures.
func (l *ZeroLog) Warnf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

// Errorf logs errors.
func (l *ZeroLog) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

// SetOutput sets the output destination for the logger.
func (l *ZeroLog) SetOutput(output io.Writer) {
	l.logger = l.logger.Output(output)
}

// SwitchLogOutput points the default logger behind a ModLog at w. It returns false for custom loggers.
// Should only be used for tests.
func SwitchLogOutput(logger interface{}, w io.Writer) bool {
	if m, ok := logger.(*ModLog); ok {
		logger = m.Unwrap()
	}

	z, ok := logger.(*ZeroLog)
	if !ok {
		return false
	}

	z.SetOutput(w)

	return true
}
