// Package writer provides output sinks for generated documents. Every sink
// follows the same lifecycle: Init once, Write one or more times, Close
// exactly once. The generation pass guarantees that ordering even when it
// fails partway through.
package writer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/opsb/rolodex"
)

// ErrNotInitialized is returned when Write or Close is called before Init.
var ErrNotInitialized = errors.New("writer: not initialized")

// FileWriter writes the document to a file. Output is staged in a uniquely
// named temp file next to the target and moved into place on Close, so a
// failed pass never leaves a partial document behind.
type FileWriter struct {
	// Path is the target file. Parent directories are created as needed.
	Path string

	file    *os.File
	tmpPath string
}

// Init creates the parent directory and the temp staging file.
func (w *FileWriter) Init(_ *rolodex.Config) error {
	if w.Path == "" {
		return fmt.Errorf("writer: file path required")
	}
	if dir := filepath.Dir(w.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("writer: create output dir: %w", err)
		}
	}

	w.tmpPath = fmt.Sprintf("%s.%s.tmp", w.Path, uuid.NewString())
	file, err := os.Create(w.tmpPath)
	if err != nil {
		return fmt.Errorf("writer: create temp file: %w", err)
	}
	w.file = file
	return nil
}

// Write appends bytes to the staging file.
func (w *FileWriter) Write(p []byte) error {
	if w.file == nil {
		return ErrNotInitialized
	}
	if _, err := w.file.Write(p); err != nil {
		return fmt.Errorf("writer: %w", err)
	}
	return nil
}

// Close moves the staged file into place. On any error the staging file is
// removed and the target is left untouched.
func (w *FileWriter) Close() error {
	if w.file == nil {
		return ErrNotInitialized
	}
	file := w.file
	w.file = nil

	if err := file.Close(); err != nil {
		_ = os.Remove(w.tmpPath)
		return fmt.Errorf("writer: close temp file: %w", err)
	}
	if err := os.Rename(w.tmpPath, w.Path); err != nil {
		_ = os.Remove(w.tmpPath)
		return fmt.Errorf("writer: move into place: %w", err)
	}
	return nil
}

// Abort discards any staged output. Safe to call after Close, where it does
// nothing.
func (w *FileWriter) Abort() {
	if w.file != nil {
		_ = w.file.Close()
		w.file = nil
	}
	if w.tmpPath != "" {
		_ = os.Remove(w.tmpPath)
	}
}

// BufferWriter collects the document in memory. Used by tests and by the
// CLI's stdout mode.
type BufferWriter struct {
	buf    bytes.Buffer
	inited bool
	closed bool
}

// Init resets the buffer.
func (w *BufferWriter) Init(_ *rolodex.Config) error {
	w.buf.Reset()
	w.inited = true
	w.closed = false
	return nil
}

// Write appends bytes to the buffer.
func (w *BufferWriter) Write(p []byte) error {
	if !w.inited || w.closed {
		return ErrNotInitialized
	}
	w.buf.Write(p)
	return nil
}

// Close seals the buffer; further writes fail.
func (w *BufferWriter) Close() error {
	if !w.inited {
		return ErrNotInitialized
	}
	w.closed = true
	return nil
}

// Bytes returns the collected document.
func (w *BufferWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// String returns the collected document as a string.
func (w *BufferWriter) String() string {
	return w.buf.String()
}

// StdoutWriter streams the document to standard output.
type StdoutWriter struct{}

// Init is a no-op.
func (StdoutWriter) Init(_ *rolodex.Config) error { return nil }

// Write copies bytes to stdout.
func (StdoutWriter) Write(p []byte) error {
	_, err := os.Stdout.Write(p)
	return err
}

// Close flushes nothing; stdout stays open.
func (StdoutWriter) Close() error { return nil }
