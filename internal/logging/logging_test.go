package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetTraceEnabled(false)
	t.Cleanup(Close)

	Trace("fetch.result", map[string]interface{}{"kind": "stats"})
	assert.Empty(t, buf.String())
}

func TestTraceEnabledWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetTraceEnabled(true)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Close()
	})

	Trace("fetch.result", map[string]interface{}{"kind": "stats"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fetch.result", entry["event"])
	assert.Equal(t, "stats", entry["kind"])
	assert.Equal(t, "trace", entry["level"])
}

func TestErrorAlwaysLogs(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetTraceEnabled(false)
	t.Cleanup(Close)

	Error(nil)
	assert.Empty(t, buf.String())

	Error(errors.New("connection refused"))
	assert.Contains(t, buf.String(), "connection refused")
}

func TestConfigureCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "gomission.log")
	require.NoError(t, Configure(path))
	t.Cleanup(Close)

	Error(errors.New("written to file"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "written to file"))
}
