package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(nil)
		SetFormat("text")
		SetLevel("INFO")
	})
	return &buf
}

func TestLevels(t *testing.T) {
	buf := capture(t)
	SetLevel("WARN")

	Debug("debug %d", 1)
	Info("info %d", 2)
	Warn("warn %d", 3)
	Error("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "[WARN] warn 3")
	assert.Contains(t, out, "[ERROR] error 4")
}

func TestSetLevel_IgnoresUnknown(t *testing.T) {
	buf := capture(t)
	SetLevel("debug")
	SetLevel("verbose")

	Debug("still debug")
	assert.Contains(t, buf.String(), "still debug")
}

func TestJSONFormat(t *testing.T) {
	buf := capture(t)
	SetFormat("json")

	Info("hello %s", "world")

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	assert.Equal(t, "hello world", record["msg"])
	assert.Equal(t, "INFO", record["level"])
}

func TestConfigure_File(t *testing.T) {
	capture(t)
	path := filepath.Join(t.TempDir(), "memvfs.log")

	require.NoError(t, Configure("error", "text", path))
	Warn("dropped")
	Error("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "dropped"))
	assert.Contains(t, string(data), "[ERROR] kept")
}

func TestConfigure_ClosesPreviousFile(t *testing.T) {
	capture(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	require.NoError(t, Configure("info", "text", first))
	mu.RLock()
	opened := logFile
	mu.RUnlock()
	require.NotNil(t, opened)

	require.NoError(t, Configure("info", "text", second))
	_, err := opened.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed, "reconfiguring closes the previous log file")

	Info("into second")
	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), "into second")

	SetOutput(nil)
	mu.RLock()
	assert.Nil(t, logFile)
	mu.RUnlock()
}

func TestConfigure_DefaultsToStderr(t *testing.T) {
	capture(t)

	require.NoError(t, Configure("info", "text", ""))
	mu.RLock()
	defer mu.RUnlock()
	assert.Same(t, os.Stderr, output)
}

func TestConfigure_BadPath(t *testing.T) {
	capture(t)
	err := Configure("info", "text", filepath.Join(t.TempDir(), "missing", "dir", "log"))
	assert.Error(t, err)
}
