package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, 4) // warn

	l.Info("hidden")
	l.Warn("shown", "isbn", "123")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "isbn=123")
}

func TestNewWithFile_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookshelf.log")
	l := NewWithFile(0, path)

	l.Info("catalog ready")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "catalog ready")
}

func TestNewWithFile_EmptyPath(t *testing.T) {
	l := NewWithFile(0, "")
	assert.NotNil(t, l)
	assert.NotNil(t, l.Logger)
}
