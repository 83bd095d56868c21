package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"json to stdout", &Config{Level: "info", Format: "json", Output: "stdout"}},
		{"console to stderr", &Config{Level: "debug", Format: "console", Output: "stderr"}},
		{"defaults", &Config{}},
		{"custom time format", &Config{TimeFormat: "2006-01-02"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, log)
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(&Config{Level: "info", Format: "json", Output: path, Service: "audiozoom"})
	require.NoError(t, err)
	log.Info("hello", zap.String("k", "v"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"service":"audiozoom"`)
}

func TestNew_BadFileOutput(t *testing.T) {
	_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "app.log")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open log output")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"bogus":   zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestTee(t *testing.T) {
	baseCore, baseLogs := observer.New(zapcore.InfoLevel)
	extraCore, extraLogs := observer.New(zapcore.InfoLevel)

	log := Tee(zap.New(baseCore), extraCore)
	log.Info("mirrored")

	assert.Equal(t, 1, baseLogs.Len())
	assert.Equal(t, 1, extraLogs.Len())

	base := zap.New(baseCore)
	assert.Same(t, base, Tee(base, nil))
}

func TestIsStdSyncError(t *testing.T) {
	assert.True(t, isStdSyncError(errors.New("sync /dev/stdout: invalid argument")))
	assert.True(t, isStdSyncError(errors.New("sync /dev/stdout: inappropriate ioctl for device")))
	assert.False(t, isStdSyncError(errors.New("disk full")))
}
