// Package filter narrows parsed records to the reporting year and splits them
// into user messages and system events.
package filter

import (
	"github.com/crimson-sun/chatwrap/internal/engine/classifier"
	"github.com/crimson-sun/chatwrap/internal/model"
)

// Partition is the result of applying the filter to a record stream.
// len(User)+len(System) always equals Total.
type Partition struct {
	Total  int
	User   []model.Record
	System []model.Record
}

// Filter applies the year predicate and the event classification.
type Filter struct {
	year       int
	classifier *classifier.Classifier
}

// New creates a Filter keeping only records from year.
func New(year int, cls *classifier.Classifier) *Filter {
	return &Filter{year: year, classifier: cls}
}

// InYear reports whether rec falls in the target calendar year.
func (f *Filter) InYear(rec model.Record) bool {
	return rec.Timestamp.Year() == f.year
}

// Classify labels rec regardless of its year.
func (f *Filter) Classify(rec model.Record) model.Label {
	return f.classifier.Classify(rec)
}

// Apply drops out-of-year records and partitions the rest, keeping file order
// within each side.
func (f *Filter) Apply(records []model.Record) Partition {
	var p Partition
	for _, rec := range records {
		if !f.InYear(rec) {
			continue
		}
		p.Total++
		switch f.classifier.Classify(rec) {
		case model.SystemEvent:
			p.System = append(p.System, rec)
		default:
			p.User = append(p.User, rec)
		}
	}
	return p
}
