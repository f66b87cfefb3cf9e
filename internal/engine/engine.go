package engine

import (
	"errors"
	"log/slog"

	"github.com/crimson-sun/chatwrap/internal/engine/classifier"
	"github.com/crimson-sun/chatwrap/internal/engine/filter"
	"github.com/crimson-sun/chatwrap/internal/engine/parser"
	"github.com/crimson-sun/chatwrap/internal/engine/rules"
	"github.com/crimson-sun/chatwrap/internal/engine/stats"
	"github.com/crimson-sun/chatwrap/internal/engine/tokenizer"
	"github.com/crimson-sun/chatwrap/internal/model"
)

// ErrUnrecognizedFormat is returned when the text contains no header line at
// all, which includes empty input.
var ErrUnrecognizedFormat = errors.New("engine: no chat messages recognized")

// DefaultYear is the calendar year summarized when none is configured.
const DefaultYear = 2025

// MinYear and MaxYear bound the configurable year to what a four-digit
// header date can carry.
const (
	MinYear = 1
	MaxYear = 9999
)

// ValidYear reports whether year can be used as the target year.
func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// Config holds the engine tunables.
type Config struct {
	Year         int
	TopTalkers   int
	PreviewChars int
}

// Engine orchestrates the parse → filter → stats pipeline.
// Safe for concurrent use: no component keeps per-call state.
type Engine struct {
	parser *parser.Parser
	filter *filter.Filter
	stats  *stats.Engine
}

// New creates an Engine with the provided components.
func New(p *parser.Parser, f *filter.Filter, s *stats.Engine) *Engine {
	return &Engine{parser: p, filter: f, stats: s}
}

// FromRules wires every component from a single rule set.
func FromRules(r *rules.Rules, cfg Config) *Engine {
	if cfg.Year == 0 {
		cfg.Year = DefaultYear
	}
	cls := classifier.New(r)
	return New(
		parser.New(r),
		filter.New(cfg.Year, cls),
		stats.New(cls, tokenizer.New(r), stats.Options{
			TopTalkers:   cfg.TopTalkers,
			PreviewChars: cfg.PreviewChars,
		}),
	)
}

// Parse returns the records of text in file order.
func (e *Engine) Parse(text string) []model.Record {
	return e.parser.Parse(text)
}

// Classify labels a single record.
func (e *Engine) Classify(rec model.Record) model.Label {
	return e.filter.Classify(rec)
}

// InYear reports whether rec falls in the configured year.
func (e *Engine) InYear(rec model.Record) bool {
	return e.filter.InYear(rec)
}

// Summarize parses text and computes its summary. It returns
// ErrUnrecognizedFormat when no record could be parsed. Records that parse
// but fall outside the year, or are all system events, still produce a
// summary with zero counts and null selections.
func (e *Engine) Summarize(text string) (model.Summary, error) {
	records := e.parser.Parse(text)
	if len(records) == 0 {
		return model.Summary{}, ErrUnrecognizedFormat
	}
	return e.SummarizeRecords(records), nil
}

// SummarizeRecords filters already parsed records and computes the summary.
func (e *Engine) SummarizeRecords(records []model.Record) model.Summary {
	p := e.filter.Apply(records)
	slog.Debug("summarizing chat",
		"parsed", len(records),
		"in_year", p.Total,
		"user_messages", len(p.User),
		"system_events", len(p.System))
	return e.stats.Compute(p)
}
