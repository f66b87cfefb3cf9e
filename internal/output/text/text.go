package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"github.com/crimson-sun/chatwrap/internal/model"
	"github.com/crimson-sun/chatwrap/internal/output"
)

// Option configures a text Output.
type Option func(*Output)

// WithWriter sets the destination. Default: stdout.
func WithWriter(w io.Writer) Option {
	return func(o *Output) { o.w = w }
}

// WithoutColor disables ANSI colors regardless of the terminal.
func WithoutColor() Option {
	return func(o *Output) { o.plain = true }
}

// Output renders reports as an aligned, colored block for terminals.
// Colors are dropped automatically when stdout is not a TTY.
type Output struct {
	mu     sync.Mutex
	w      io.Writer
	plain  bool
	title  *color.Color
	label  *color.Color
	value  *color.Color
	absent *color.Color
}

// New creates a text Output.
func New(opts ...Option) *Output {
	o := &Output{
		w:      os.Stdout,
		title:  color.New(color.FgCyan, color.Bold),
		label:  color.New(color.FgWhite, color.Faint),
		value:  color.New(color.FgGreen),
		absent: color.New(color.FgHiBlack),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.plain {
		for _, c := range []*color.Color{o.title, o.label, o.value, o.absent} {
			c.DisableColor()
		}
	}
	return o
}

func (o *Output) Write(_ context.Context, report model.Report) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	fields := output.Fields(report)
	width := 0
	for _, f := range fields {
		if len(f.Label) > width {
			width = len(f.Label)
		}
	}

	if _, err := o.title.Fprintf(o.w, "== %s ==\n", report.Source); err != nil {
		return fmt.Errorf("text output: %w", err)
	}
	for _, f := range fields {
		v := o.value
		if f.Value == "-" {
			v = o.absent
		}
		if _, err := o.label.Fprintf(o.w, "  %-*s  ", width, f.Label); err != nil {
			return fmt.Errorf("text output: %w", err)
		}
		if _, err := v.Fprintln(o.w, f.Value); err != nil {
			return fmt.Errorf("text output: %w", err)
		}
	}
	if _, err := fmt.Fprintln(o.w); err != nil {
		return fmt.Errorf("text output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
