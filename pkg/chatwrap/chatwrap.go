package chatwrap

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/crimson-sun/chatwrap/internal/engine"
	"github.com/crimson-sun/chatwrap/internal/engine/rules"
	"github.com/crimson-sun/chatwrap/internal/ingest"
	"github.com/crimson-sun/chatwrap/internal/model"
)

// Errors callers can match with errors.Is.
var (
	ErrUnrecognizedFormat   = engine.ErrUnrecognizedFormat
	ErrTooLarge             = ingest.ErrTooLarge
	ErrUndecodable          = ingest.ErrUndecodable
	ErrUnsupportedExtension = ingest.ErrUnsupportedExtension
	ErrBadArchive           = ingest.ErrBadArchive
	ErrArchiveNoChat        = ingest.ErrArchiveNoChat
)

// Summarizer computes summaries of chat exports. Safe for concurrent use.
type Summarizer struct {
	engine *engine.Engine
	loader *ingest.Loader
	year   int
}

// New creates a Summarizer. It fails on out-of-range options or an
// unsupported extension.
func New(opts ...Option) (*Summarizer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var errs []error
	if !engine.ValidYear(o.year) {
		errs = append(errs, fmt.Errorf("year must be between %d and %d, got %d", engine.MinYear, engine.MaxYear, o.year))
	}
	if o.topTalkers < 1 {
		errs = append(errs, fmt.Errorf("top talkers must be at least 1, got %d", o.topTalkers))
	}
	if o.previewChars < 1 {
		errs = append(errs, fmt.Errorf("preview chars must be at least 1, got %d", o.previewChars))
	}
	if o.maxBytes < 1 {
		errs = append(errs, fmt.Errorf("max bytes must be positive, got %d", o.maxBytes))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("chatwrap: %w", err)
	}

	r := rules.Default()
	if o.stopWords != nil {
		r = r.WithStopWords(o.stopWords)
	}
	loader, err := ingest.NewLoader(o.maxBytes, o.extensions)
	if err != nil {
		return nil, fmt.Errorf("chatwrap: %w", err)
	}

	return &Summarizer{
		engine: engine.FromRules(r, engine.Config{
			Year:         o.year,
			TopTalkers:   o.topTalkers,
			PreviewChars: o.previewChars,
		}),
		loader: loader,
		year:   o.year,
	}, nil
}

// Year returns the calendar year being summarized.
func (s *Summarizer) Year() int {
	return s.year
}

// Summarize computes the summary of export text. It returns
// ErrUnrecognizedFormat when the text holds no chat message at all.
func (s *Summarizer) Summarize(text string) (Summary, error) {
	return s.engine.Summarize(text)
}

// SummarizeFile applies the upload rules to a named file (extension, size
// ceiling, archive unpacking, UTF-8 or UTF-16 decoding) and summarizes it.
func (s *Summarizer) SummarizeFile(name string, data []byte) (Summary, error) {
	return s.SummarizeReader(name, bytes.NewReader(data))
}

// SummarizeReader is SummarizeFile for a stream. It never reads more than
// one byte past the ceiling.
func (s *Summarizer) SummarizeReader(name string, r io.Reader) (Summary, error) {
	text, err := s.loader.Read(name, r)
	if err != nil {
		return Summary{}, err
	}
	return s.Summarize(text)
}

// Parse returns every message in text, in file order, labelled but not
// filtered by year.
func (s *Summarizer) Parse(text string) []Message {
	records := s.engine.Parse(text)
	msgs := make([]Message, len(records))
	for i, rec := range records {
		msgs[i] = messageFromRecord(rec, s.engine.Classify(rec), s.engine.InYear(rec))
	}
	return msgs
}

func messageFromRecord(rec model.Record, label model.Label, inYear bool) Message {
	kind := KindUser
	if label == model.SystemEvent {
		kind = KindSystem
	}
	return Message{
		Timestamp: rec.Timestamp,
		Sender:    rec.Sender,
		Text:      rec.Message,
		Kind:      kind,
		InYear:    inYear,
	}
}
