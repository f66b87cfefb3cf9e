package multi

import (
	"context"
	"errors"

	"github.com/crimson-sun/chatwrap/internal/model"
	"github.com/crimson-sun/chatwrap/internal/output"
)

// Multi fans a report out to several outputs in order. A failing output
// does not stop delivery to the rest.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi over the given outputs; nil entries are skipped.
func New(outputs ...output.Output) *Multi {
	m := &Multi{}
	for _, o := range outputs {
		if o != nil {
			m.outputs = append(m.outputs, o)
		}
	}
	return m
}

// Len reports how many outputs are wrapped.
func (m *Multi) Len() int {
	return len(m.outputs)
}

func (m *Multi) Write(ctx context.Context, report model.Report) error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Write(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) Close() error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
