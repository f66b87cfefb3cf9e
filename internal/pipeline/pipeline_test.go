package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/crimson-sun/chatwrap/internal/engine"
	"github.com/crimson-sun/chatwrap/internal/engine/rules"
	"github.com/crimson-sun/chatwrap/internal/engine/testdata"
	"github.com/crimson-sun/chatwrap/internal/fetch"
	"github.com/crimson-sun/chatwrap/internal/ingest"
	"github.com/crimson-sun/chatwrap/internal/model"
)

// --- mocks ---

type mockOutput struct {
	mu      sync.Mutex
	reports []model.Report
	closed  bool
	err     error
}

func (m *mockOutput) Write(_ context.Context, r model.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, r)
	return m.err
}

func (m *mockOutput) Close() error {
	m.closed = true
	return nil
}

func (m *mockOutput) sources() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, r := range m.reports {
		out = append(out, r.Source)
	}
	return out
}

// --- helpers ---

func newLoader(t *testing.T) *ingest.Loader {
	t.Helper()
	l, err := ingest.NewLoader(ingest.DefaultMaxBytes, []string{".txt"})
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	return l
}

func newEngine() *engine.Engine {
	return engine.FromRules(rules.Default(), engine.Config{Year: 2025})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fixedClock() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

const oneLine = "[2025/04/01, 10:00:00] Alice: hello world\n"

// --- tests ---

func TestProcessSample(t *testing.T) {
	out := &mockOutput{}
	p := New(newLoader(t), newEngine(), out, WithClock(fixedClock), WithIDs(sequentialIDs()))

	report, err := p.Process(context.Background(), "sample.txt", strings.NewReader(testdata.SampleChat()))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	want, err := testdata.SampleSummary()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(report.Summary, want) {
		t.Errorf("summary mismatch:\n got %+v\nwant %+v", report.Summary, want)
	}
	if report.ID != "id-1" || report.Source != "sample.txt" || !report.GeneratedAt.Equal(fixedClock()) {
		t.Errorf("unexpected envelope: %+v", report)
	}
	if len(out.reports) != 0 {
		t.Error("Process should not write to the output")
	}
}

func TestProcessDefaultIDIsUUID(t *testing.T) {
	p := New(newLoader(t), newEngine(), &mockOutput{})
	report, err := p.Process(context.Background(), "a.txt", strings.NewReader(oneLine))
	if err != nil {
		t.Fatal(err)
	}
	if len(report.ID) != 36 || strings.Count(report.ID, "-") != 4 {
		t.Errorf("ID = %q, want a UUID", report.ID)
	}
}

func TestProcessErrors(t *testing.T) {
	p := New(newLoader(t), newEngine(), &mockOutput{})

	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"wrong extension", "chat.pdf", oneLine, ingest.ErrUnsupportedExtension},
		{"no headers", "chat.txt", "just some text\n", engine.ErrUnrecognizedFormat},
		{"empty", "chat.txt", "", engine.ErrUnrecognizedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Process(context.Background(), tt.file, strings.NewReader(tt.content))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestProcessCancelledContext(t *testing.T) {
	p := New(newLoader(t), newEngine(), &mockOutput{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Process(ctx, "a.txt", strings.NewReader(oneLine)); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRunWritesInArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 12; i++ {
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("chat%02d.txt", i), oneLine))
	}

	out := &mockOutput{}
	p := New(newLoader(t), newEngine(), out, WithWorkers(3))
	if err := p.Run(context.Background(), paths); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.sources()
	if len(got) != len(paths) {
		t.Fatalf("got %d reports, want %d", len(got), len(paths))
	}
	for i, path := range paths {
		if got[i] != filepath.Base(path) {
			t.Errorf("report %d source = %q, want %q", i, got[i], filepath.Base(path))
		}
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", oneLine)
	bad := writeFile(t, dir, "bad.txt", "no chat here\n")
	missing := filepath.Join(dir, "missing.txt")

	out := &mockOutput{}
	p := New(newLoader(t), newEngine(), out)
	err := p.Run(context.Background(), []string{bad, good, missing})

	if err == nil {
		t.Fatal("expected joined error")
	}
	if !errors.Is(err, engine.ErrUnrecognizedFormat) {
		t.Errorf("expected unrecognized format in %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist in %v", err)
	}
	if !strings.Contains(err.Error(), "bad.txt") {
		t.Errorf("error should name the failing path: %v", err)
	}
	if got := out.sources(); len(got) != 1 || got[0] != "good.txt" {
		t.Errorf("sources = %v, want [good.txt]", got)
	}
}

func TestRunReportsOutputErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", oneLine)

	sinkErr := errors.New("sink down")
	p := New(newLoader(t), newEngine(), &mockOutput{err: sinkErr})
	if err := p.Run(context.Background(), []string{path}); !errors.Is(err, sinkErr) {
		t.Fatalf("err = %v, want sink error", err)
	}
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeFile(t, dir, "a.txt", oneLine), writeFile(t, dir, "b.txt", oneLine)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := &mockOutput{}
	p := New(newLoader(t), newEngine(), out)
	if err := p.Run(ctx, paths); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(out.sources()) != 0 {
		t.Errorf("no report should be written after cancellation, got %v", out.sources())
	}
}

func TestRunNoPaths(t *testing.T) {
	p := New(newLoader(t), newEngine(), &mockOutput{})
	if err := p.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run(nil) = %v", err)
	}
}

func TestCloseClosesOutput(t *testing.T) {
	out := &mockOutput{}
	p := New(newLoader(t), newEngine(), out)
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if !out.closed {
		t.Error("output not closed")
	}
}

func TestRunFetchesURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(oneLine))
	}))
	defer srv.Close()

	dir := t.TempDir()
	local := writeFile(t, dir, "local.txt", oneLine)

	out := &mockOutput{}
	p := New(newLoader(t), newEngine(), out, WithFetcher(fetch.New(ingest.DefaultMaxBytes)))
	err := p.Run(context.Background(), []string{srv.URL + "/remote.txt", local, srv.URL + "/missing.txt"})

	var statusErr *fetch.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
	got := out.sources()
	if len(got) != 2 || got[0] != "remote.txt" || got[1] != "local.txt" {
		t.Errorf("sources = %v, want [remote.txt local.txt]", got)
	}
}

func TestRunWithoutFetcherTreatsURLAsPath(t *testing.T) {
	p := New(newLoader(t), newEngine(), &mockOutput{})
	err := p.Run(context.Background(), []string{"https://example.invalid/chat.txt"})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}
