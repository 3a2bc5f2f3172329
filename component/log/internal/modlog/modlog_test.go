/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modlog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coincord/ezrah-credential-go/component/log/internal/metadata"
	"github.com/coincord/ezrah-credential-go/spi/log"
)

const (
	msgFormat = "brown %s jumps over the lazy %s"
	msgArg1   = "fox"
	msgArg2   = "dog"
	msgText   = "brown fox jumps over the lazy dog"
)

func TestZeroLogOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := newZeroLog("sample-module", &buf)

	logger.Warnf(msgFormat, msgArg1, msgArg2)

	line := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "warn", line["level"])
	require.Equal(t, "sample-module", line["module"])
	require.Equal(t, msgText, line["message"])
	require.NotEmpty(t, line["time"])
}

func TestModLogLevels(t *testing.T) {
	defer metadata.Reset()

	const module = "sample-module-modlog"

	var buf bytes.Buffer

	logger := NewModLog(newZeroLog(module, &buf), module)

	emitAll := func() []string {
		buf.Reset()

		logger.Errorf(msgFormat, msgArg1, msgArg2)
		logger.Warnf(msgFormat, msgArg1, msgArg2)
		logger.Infof(msgFormat, msgArg1, msgArg2)
		logger.Debugf(msgFormat, msgArg1, msgArg2)

		var out []string

		for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			if l == "" {
				continue
			}

			line := map[string]interface{}{}
			require.NoError(t, json.Unmarshal([]byte(l), &line))
			out = append(out, line["level"].(string))
		}

		return out
	}

	t.Run("default INFO", func(t *testing.T) {
		require.Equal(t, []string{"error", "warn", "info"}, emitAll())
	})

	t.Run("ERROR only", func(t *testing.T) {
		metadata.SetLevel(module, log.ERROR)
		require.Equal(t, []string{"error"}, emitAll())
	})

	t.Run("DEBUG", func(t *testing.T) {
		metadata.SetLevel(module, log.DEBUG)
		require.Equal(t, []string{"error", "warn", "info", "debug"}, emitAll())
	})
}

func TestSwitchLogOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := NewModLog(NewZeroLog("switch-module"), "switch-module")

	require.True(t, SwitchLogOutput(logger, &buf))
	logger.Errorf("boom")
	require.Contains(t, buf.String(), `"message":"boom"`)

	require.False(t, SwitchLogOutput(NewModLog(&nopLogger{}, "x"), &buf))
}

type nopLogger struct{}

func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Debugf(string, ...interface{}) {}
