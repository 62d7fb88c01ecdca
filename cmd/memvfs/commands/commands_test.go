package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marmos91/memvfs/pkg/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with fresh flag values.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgFile, logLevel = "", ""
	readCount, readOffset, readRaw = 256, 0, false
	writeOffset, writeTruncate, writeCreate, writeRate = 0, false, false, ""
	demoWait = false

	// Keep the user's configuration out of the tests
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	cmd := GetRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "memvfs dev")
}

func TestRead_Device(t *testing.T) {
	out, err := run(t, "", "read", "zero", "--count", "4", "--raw")
	require.NoError(t, err)
	assert.Equal(t, "\x00\x00\x00\x00", out)
}

func TestRead_RawStaysCleanAtDebug(t *testing.T) {
	out, err := run(t, "", "read", "zero", "--count", "4", "--raw", "--log-level", "debug")
	require.NoError(t, err)
	assert.Equal(t, "\x00\x00\x00\x00", out)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "stderr", cfg.Logging.Output, "logs stay off stdout by default")
}

func TestRead_HexDump(t *testing.T) {
	out, err := run(t, "", "read", "zero", "--count", "16")
	require.NoError(t, err)
	assert.Contains(t, out, "00000000  00 00 00 00")
	assert.Contains(t, out, "16 bytes read, cursor at 0")
}

func TestRead_HostFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digits.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0644))

	out, err := run(t, "", "read", path, "--offset", "2", "--count", "3", "--raw")
	require.NoError(t, err)
	assert.Equal(t, "234", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data), "reading leaves the sink untouched")
}

func TestRead_SeekPastEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))

	_, err := run(t, "", "read", path, "--offset", "10")
	assert.ErrorIs(t, err, content.ErrInvalidSeek)
}

func TestWrite_HostFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digits.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0644))

	out, err := run(t, "ab", "write", path, "--offset", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "written, size 10 B")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "01234567ab", string(data))
}

func TestWrite_TruncateAndCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")

	_, err := run(t, "fresh", "write", path, "--create", "--truncate")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}

func TestWrite_Rate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rated.txt")

	_, err := run(t, "throttled", "write", path, "--create", "--rate", "1MiB")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "throttled", string(data))

	_, err = run(t, "x", "write", path, "--rate", "fast")
	assert.ErrorContains(t, err, "invalid --rate")
}

func TestWrite_FullDevice(t *testing.T) {
	_, err := run(t, "x", "write", "full")
	assert.ErrorIs(t, err, content.ErrStorageFull)
}

func TestDemo(t *testing.T) {
	out, err := run(t, "", "demo")
	require.NoError(t, err)

	assert.Contains(t, out, "buffered content")
	assert.Contains(t, out, `b read "hello"`)
	assert.Contains(t, out, `b read "memvfs"`)
	assert.Contains(t, out, "a seek with unknown origin (err=origin 7: invalid seek) a=0")
	assert.Contains(t, out, "a eof=true b eof=false")
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memvfs.yaml")

	out, err := run(t, "", "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created at: "+path)

	out, err = run(t, "", "config", "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Validation: OK")
	assert.Contains(t, out, "Content type:    buffered")

	out, err = run(t, "", "config", "show", "--config", path, "--output", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "max_size: 64MiB")

	out, err = run(t, "", "config", "schema", "--output", "")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "memvfs Configuration"`)
}
