package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/crimson-sun/chatwrap/internal/model"
)

const (
	defaultBufSize    = 32 * 1024
	defaultMaxBackups = 5
)

// Option configures a file Output.
type Option func(*Output)

// WithMaxSize sets the file size (bytes) at which rotation triggers.
// 0 (default) disables rotation.
func WithMaxSize(bytes int64) Option {
	return func(o *Output) { o.maxSize = bytes }
}

// WithMaxBackups sets how many rotated files ({path}.1 .. {path}.N) are kept.
func WithMaxBackups(n int) Option {
	return func(o *Output) { o.maxBackups = n }
}

// Output appends one JSON report per line to a file, rotating by size.
type Output struct {
	mu         sync.Mutex
	w          *bufio.Writer
	f          *os.File
	path       string
	maxSize    int64
	maxBackups int
	written    int64
}

// New opens (or creates) path for appending reports.
func New(path string, opts ...Option) (*Output, error) {
	o := &Output{path: path, maxBackups: defaultMaxBackups}
	for _, opt := range opts {
		opt(o)
	}
	if o.maxBackups < 1 {
		o.maxBackups = 1
	}
	if err := o.open(); err != nil {
		return nil, err
	}
	return o, nil
}

// Write encodes the report and appends it as a single line. A report that
// would push the file past its max size lands in a fresh file.
func (o *Output) Write(_ context.Context, report model.Report) error {
	line, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("file output: marshal: %w", err)
	}
	line = append(line, '\n')

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.maxSize > 0 && o.written > 0 && o.written+int64(len(line)) > o.maxSize {
		if err := o.rotate(); err != nil {
			return fmt.Errorf("file output: rotate: %w", err)
		}
	}

	n, err := o.w.Write(line)
	o.written += int64(n)
	if err != nil {
		return fmt.Errorf("file output: write: %w", err)
	}
	return nil
}

// Close flushes buffered reports and closes the file.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.w.Flush(); err != nil {
		o.f.Close()
		return fmt.Errorf("file output: flush: %w", err)
	}
	return o.f.Close()
}

func (o *Output) open() error {
	f, err := os.OpenFile(o.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("file output: open %s: %w", o.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("file output: stat %s: %w", o.path, err)
	}
	o.f = f
	o.w = bufio.NewWriterSize(f, defaultBufSize)
	o.written = info.Size()
	return nil
}

// rotate shifts {path}.N-1 -> {path}.N down to {path} -> {path}.1, dropping
// the oldest backup, then reopens an empty file at path.
func (o *Output) rotate() error {
	if err := o.w.Flush(); err != nil {
		return err
	}
	if err := o.f.Close(); err != nil {
		return err
	}

	os.Remove(backup(o.path, o.maxBackups))
	for i := o.maxBackups - 1; i >= 1; i-- {
		os.Rename(backup(o.path, i), backup(o.path, i+1)) // gaps are fine
	}
	if err := os.Rename(o.path, backup(o.path, 1)); err != nil {
		return err
	}
	return o.open()
}

func backup(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}
