package starter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logiface.Level
	}{
		{"debug", logiface.LevelDebug},
		{"", logiface.LevelInformational},
		{"INFO", logiface.LevelInformational},
		{"warn", logiface.LevelWarning},
		{"warning", logiface.LevelWarning},
		{" error ", logiface.LevelError},
		{"off", logiface.LevelDisabled},
		{"disabled", logiface.LevelDisabled},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(&buf, "info")
	require.NoError(t, err)

	log.Debug().Log("hidden")
	log.Info().Str("mode", "char").Log("mode switch")
	log.Err().Err(errors.New("boom")).Log("program failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"lvl":"info"`)
	assert.Contains(t, lines[0], `"mode":"char"`)
	assert.Contains(t, lines[0], `"msg":"mode switch"`)
	assert.Contains(t, lines[1], `"err":"boom"`)
}

func TestNewLoggerDisabled(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(&buf, "disabled")
	require.NoError(t, err)
	log.Err().Log("nothing")
	assert.Empty(t, buf.String())

	_, err = NewLogger(&buf, "chatty")
	assert.Error(t, err)
}

func TestNilLoggerIsSilent(t *testing.T) {
	var log *Logger
	assert.NotPanics(t, func() { log.Info().Str("k", "v").Log("dropped") })
}
