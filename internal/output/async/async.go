package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/crimson-sun/chatwrap/internal/model"
	"github.com/crimson-sun/chatwrap/internal/output"
)

const (
	defaultBufferSize   = 64
	defaultDrainTimeout = 5 * time.Second
)

// Option configures an Async wrapper.
type Option func(*Async)

// WithBufferSize sets the channel capacity. Default: 64.
func WithBufferSize(n int) Option {
	return func(a *Async) { a.bufSize = n }
}

// WithDrainTimeout bounds how long Close waits for queued reports. Default: 5s.
func WithDrainTimeout(d time.Duration) Option {
	return func(a *Async) { a.drainTimeout = d }
}

// WithOnError sets the callback invoked when the inner output's Write fails.
// Default: logs a warning via slog.
func WithOnError(f func(error)) Option {
	return func(a *Async) { a.errFunc = f }
}

// WithDropOnFull makes Write drop the report instead of blocking when the
// buffer is full.
func WithDropOnFull() Option {
	return func(a *Async) { a.dropOnFull = true }
}

// Async hands reports to a background goroutine that writes them to the
// wrapped output, so a slow sink does not hold up summarization. Inner
// errors go to errFunc, not to the caller.
type Async struct {
	inner        output.Output
	ch           chan model.Report
	done         chan struct{}
	errFunc      func(error)
	bufSize      int
	drainTimeout time.Duration
	dropOnFull   bool
	closeOnce    sync.Once
}

// New wraps inner and starts the drain goroutine.
func New(inner output.Output, opts ...Option) *Async {
	a := &Async{
		inner:        inner,
		bufSize:      defaultBufferSize,
		drainTimeout: defaultDrainTimeout,
		errFunc:      func(err error) { slog.Warn("async output write failed", "error", err) },
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ch = make(chan model.Report, a.bufSize)
	a.done = make(chan struct{})
	go a.drain()
	return a
}

// Write queues the report. It blocks while the buffer is full unless
// WithDropOnFull is set, or until ctx is done.
func (a *Async) Write(ctx context.Context, report model.Report) error {
	if a.dropOnFull {
		select {
		case a.ch <- report:
		default:
			slog.Warn("async output buffer full, dropping report",
				"id", report.ID, "source", report.Source)
		}
		return nil
	}
	select {
	case a.ch <- report:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting reports, waits up to the drain timeout for the
// queue to empty, then closes the inner output.
func (a *Async) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.ch)
		select {
		case <-a.done:
		case <-time.After(a.drainTimeout):
			slog.Warn("async output drain timed out", "pending", len(a.ch))
		}
		err = a.inner.Close()
	})
	return err
}

func (a *Async) drain() {
	defer close(a.done)
	for report := range a.ch {
		if err := a.inner.Write(context.Background(), report); err != nil {
			a.errFunc(err)
		}
	}
}
