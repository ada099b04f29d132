package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileAppendsStructuredLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	l, err := NewFile(dir, slog.LevelInfo)
	require.NoError(t, err)
	l.Info("project opened", "rows", 3)
	l.Debug("hidden")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "project opened")
	assert.Contains(t, out, "rows=3")
	assert.NotContains(t, out, "hidden")
}

func TestNewWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelDebug)
	l.Debug("export written", "path", "x_relationships.csv")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "path=x_relationships.csv")
	assert.NoError(t, l.Close())
}

func TestCloseNilSafe(t *testing.T) {
	var l *Logger
	assert.NoError(t, l.Close())
	assert.NoError(t, Discard().Close())
}
