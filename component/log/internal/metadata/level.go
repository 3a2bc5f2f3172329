/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package metadata keeps the per-module log level table.
package metadata

import (
	"errors"
	"strings"
	"sync"

	"github.com/coincord/ezrah-credential-go/spi/log"
)

const (
	defaultLogLevel   = log.INFO
	defaultModuleName = ""
)

// levelNames - log level names in string, indexed by log.Level.
var levelNames = []string{ //nolint:gochecknoglobals
	"ERROR",
	"WARNING",
	"INFO",
	"DEBUG",
}

//nolint:gochecknoglobals
var (
	rwmutex = &sync.RWMutex{}
	levels  = map[string]log.Level{}
)

// SetLevel sets the log level for given module. An empty module name sets the default level.
func SetLevel(module string, level log.Level) {
	rwmutex.Lock()
	defer rwmutex.Unlock()

	levels[module] = level
}

// GetLevel returns the log level for given module, falling back to the default module and then to INFO.
func GetLevel(module string) log.Level {
	rwmutex.RLock()
	defer rwmutex.RUnlock()

	return getLevel(module)
}

// IsEnabledFor returns true if logging is enabled for given module and level.
func IsEnabledFor(module string, level log.Level) bool {
	rwmutex.RLock()
	defer rwmutex.RUnlock()

	return level <= getLevel(module)
}

// Reset drops every configured level.
func Reset() {
	rwmutex.Lock()
	defer rwmutex.Unlock()

	levels = map[string]log.Level{}
}

func getLevel(module string) log.Level {
	level, exists := levels[module]
	if exists {
		return level
	}

	level, exists = levels[defaultModuleName]
	if exists {
		return level
	}

	return defaultLogLevel
}

// ParseLevel returns the log level from a string representation. "warn" is accepted as WARNING.
func ParseLevel(level string) (log.Level, error) {
	if strings.EqualFold(level, "warn") {
		return log.WARNING, nil
	}

	for i, name := range levelNames {
		if strings.EqualFold(name, level) {
			return log.Level(i), nil
		}
	}

	return log.ERROR, errors.New("logger: invalid log level")
}

// ParseString returns string representation of given log level.
func ParseString(level log.Level) string {
	if level < 0 || int(level) >= len(levelNames) {
		return "UNKNOWN"
	}

	return levelNames[level]
}
