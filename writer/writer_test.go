package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriterLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "openapi.json")

	w := &FileWriter{Path: path}
	require.NoError(t, w.Init(nil))
	require.NoError(t, w.Write([]byte(`{"openapi":`)))
	require.NoError(t, w.Write([]byte(`"3.0.3"}`)))

	// Nothing at the target until Close moves the staged file into place.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"openapi":"3.0.3"}`, string(data))

	// No staging leftovers.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileWriterWriteBeforeInit(t *testing.T) {
	w := &FileWriter{Path: filepath.Join(t.TempDir(), "x.json")}
	assert.ErrorIs(t, w.Write([]byte("x")), ErrNotInitialized)
	assert.ErrorIs(t, w.Close(), ErrNotInitialized)
}

func TestFileWriterEmptyPath(t *testing.T) {
	w := &FileWriter{}
	assert.Error(t, w.Init(nil))
}

func TestFileWriterAbort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openapi.json")

	w := &FileWriter{Path: path}
	require.NoError(t, w.Init(nil))
	require.NoError(t, w.Write([]byte("partial")))
	w.Abort()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBufferWriter(t *testing.T) {
	w := &BufferWriter{}
	require.NoError(t, w.Init(nil))
	require.NoError(t, w.Write([]byte("hello ")))
	require.NoError(t, w.Write([]byte("world")))
	require.NoError(t, w.Close())

	assert.Equal(t, "hello world", w.String())

	// Writes after close fail.
	assert.ErrorIs(t, w.Write([]byte("x")), ErrNotInitialized)

	// Re-init resets the buffer.
	require.NoError(t, w.Init(nil))
	assert.Empty(t, w.Bytes())
}

func TestBufferWriterBeforeInit(t *testing.T) {
	w := &BufferWriter{}
	assert.ErrorIs(t, w.Write([]byte("x")), ErrNotInitialized)
	assert.ErrorIs(t, w.Close(), ErrNotInitialized)
}
