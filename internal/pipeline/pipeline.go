package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crimson-sun/chatwrap/internal/fetch"
	"github.com/crimson-sun/chatwrap/internal/model"
	"github.com/crimson-sun/chatwrap/internal/output"
)

const defaultWorkers = 4

// Loader turns a named upload into chat text.
type Loader interface {
	Read(name string, r io.Reader) (string, error)
}

// Fetcher downloads a remote export, returning the name to judge it by.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, []byte, error)
}

// Summarizer produces a summary from chat text.
type Summarizer interface {
	Summarize(text string) (model.Summary, error)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers bounds how many files are summarized at once. Default: 4.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithFetcher lets Run accept http(s) URLs alongside local paths.
func WithFetcher(f Fetcher) Option {
	return func(p *Pipeline) { p.fetcher = f }
}

// WithClock overrides the time source used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithIDs overrides the report ID generator. Default: random UUIDs.
func WithIDs(next func() string) Option {
	return func(p *Pipeline) { p.newID = next }
}

// Pipeline connects a loader, summarizer, and output.
type Pipeline struct {
	loader     Loader
	summarizer Summarizer
	output     output.Output
	fetcher    Fetcher
	workers    int
	now        func() time.Time
	newID      func() string
}

// New creates a Pipeline from the given components.
func New(l Loader, s Summarizer, out output.Output, opts ...Option) *Pipeline {
	p := &Pipeline{
		loader:     l,
		summarizer: s,
		output:     out,
		workers:    defaultWorkers,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process loads and summarizes a single upload. It does not write to the output.
func (p *Pipeline) Process(ctx context.Context, name string, r io.Reader) (model.Report, error) {
	if err := ctx.Err(); err != nil {
		return model.Report{}, err
	}
	text, err := p.loader.Read(name, r)
	if err != nil {
		return model.Report{}, err
	}
	summary, err := p.summarizer.Summarize(text)
	if err != nil {
		return model.Report{}, err
	}
	return model.Report{
		ID:          p.newID(),
		Source:      name,
		GeneratedAt: p.now(),
		Summary:     summary,
	}, nil
}

// Run summarizes every path (or URL, with a Fetcher) with a bounded worker pool and writes the
// reports to the output in argument order. A failing file is logged and
// skipped; the returned error joins every per-file failure.
func (p *Pipeline) Run(ctx context.Context, paths []string) error {
	type result struct {
		report model.Report
		err    error
	}
	results := make([]result, len(paths))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(p.workers, len(paths)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				report, err := p.processFile(ctx, paths[i])
				results[i] = result{report, err}
			}
		}()
	}

dispatch:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			for j := i; j < len(paths); j++ {
				results[j].err = ctx.Err()
			}
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	var errs []error
	for i, res := range results {
		if res.err != nil {
			slog.Warn("summarize failed", "path", paths[i], "error", res.err)
			errs = append(errs, fmt.Errorf("%s: %w", paths[i], res.err))
			continue
		}
		if err := p.output.Write(ctx, res.report); err != nil {
			errs = append(errs, fmt.Errorf("pipeline output: %w", err))
			continue
		}
		slog.Debug("summarized", "path", paths[i], "id", res.report.ID,
			"records", res.report.Summary.TotalRecords)
	}
	return errors.Join(errs...)
}

func (p *Pipeline) processFile(ctx context.Context, path string) (model.Report, error) {
	if p.fetcher != nil && fetch.IsURL(path) {
		name, data, err := p.fetcher.Fetch(ctx, path)
		if err != nil {
			return model.Report{}, err
		}
		return p.Process(ctx, name, bytes.NewReader(data))
	}

	f, err := os.Open(path)
	if err != nil {
		return model.Report{}, err
	}
	defer f.Close()
	return p.Process(ctx, filepath.Base(path), f)
}

// Close shuts down the output, if any.
func (p *Pipeline) Close() error {
	if p.output == nil {
		return nil
	}
	return p.output.Close()
}
