package chatwrap

import (
	"github.com/crimson-sun/chatwrap/internal/engine"
	"github.com/crimson-sun/chatwrap/internal/engine/compactor"
	"github.com/crimson-sun/chatwrap/internal/engine/stats"
	"github.com/crimson-sun/chatwrap/internal/ingest"
)

type options struct {
	year         int
	topTalkers   int
	previewChars int
	stopWords    []string
	maxBytes     int64
	extensions   []string
}

// Option configures a Summarizer.
type Option func(*options)

// WithYear sets the calendar year summarized. Default: 2025.
func WithYear(year int) Option {
	return func(o *options) {
		o.year = year
	}
}

// WithTopTalkers sets how many senders the top-talkers list holds. Default: 10.
func WithTopTalkers(n int) Option {
	return func(o *options) {
		o.topTalkers = n
	}
}

// WithStopWords replaces the built-in stop-word list used when picking the
// most used word. Matching is case-insensitive.
func WithStopWords(words []string) Option {
	return func(o *options) {
		o.stopWords = words
	}
}

// WithPreviewChars sets the longest-message preview length in characters.
// Default: 200.
func WithPreviewChars(n int) Option {
	return func(o *options) {
		o.previewChars = n
	}
}

// WithMaxBytes sets the upload ceiling enforced by SummarizeFile. Default: 5 MiB.
func WithMaxBytes(n int64) Option {
	return func(o *options) {
		o.maxBytes = n
	}
}

// WithExtensions restricts the file extensions SummarizeFile accepts.
// Default: every supported format (.txt, .zip, .gz, .zst).
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		o.extensions = exts
	}
}

func defaultOptions() options {
	return options{
		year:         engine.DefaultYear,
		topTalkers:   stats.DefaultTopTalkers,
		previewChars: compactor.DefaultPreviewChars,
		maxBytes:     ingest.DefaultMaxBytes,
	}
}
