// Package parser turns a plaintext chat export into message records.
package parser

import (
	"strings"
	"time"

	"github.com/crimson-sun/chatwrap/internal/engine/rules"
	"github.com/crimson-sun/chatwrap/internal/model"
)

const timestampLayout = "2006/01/02 15:04:05"

// state of the record accumulator.
type state int

const (
	idle         state = iota // no record open; continuation lines are dropped
	accumulating              // a record is open and collects continuation lines
)

// Parser scans an export line by line. It holds no per-call state and is
// safe for concurrent use.
type Parser struct {
	rules *rules.Rules
}

// New creates a Parser using the header pattern from r.
func New(r *rules.Rules) *Parser {
	return &Parser{rules: r}
}

// Header reports whether line is a header line and, if so, returns the record
// it opens. A line with the header shape but an impossible date or time
// (month 13, hour 25) is not a header.
func (p *Parser) Header(line string) (model.Record, bool) {
	m := p.rules.Header().FindStringSubmatch(line)
	if m == nil {
		return model.Record{}, false
	}
	ts, err := time.ParseInLocation(timestampLayout, m[1]+" "+m[2], time.UTC)
	if err != nil {
		return model.Record{}, false
	}
	return model.Record{
		Timestamp: ts,
		Sender:    strings.TrimSpace(m[3]),
		Message:   strings.TrimSpace(m[4]),
	}, true
}

// Parse returns the records in text in file order. It never fails: input
// without a single header line yields an empty slice, and deciding whether
// that is an error is left to the caller.
func (p *Parser) Parse(text string) []model.Record {
	var (
		records []model.Record
		st      = idle
		current model.Record
		body    strings.Builder
	)

	finalize := func() {
		current.Message = body.String()
		records = append(records, current)
		body.Reset()
	}

	for _, line := range splitLines(text) {
		if rec, ok := p.Header(line); ok {
			if st == accumulating {
				finalize()
			}
			current = rec
			body.WriteString(rec.Message)
			st = accumulating
			continue
		}

		cont := strings.TrimSpace(line)
		if st == idle || cont == "" {
			continue
		}
		body.WriteByte('\n')
		body.WriteString(cont)
	}

	if st == accumulating {
		finalize()
	}
	return records
}
