// Package server exposes summarization over HTTP: a multipart upload
// endpoint returning the summary as JSON, plus a health check.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/crimson-sun/chatwrap/internal/model"
)

// Processor turns an uploaded file into a report.
type Processor interface {
	Process(ctx context.Context, name string, r io.Reader) (model.Report, error)
}

// Config holds HTTP service settings.
type Config struct {
	AllowOrigin   string // Access-Control-Allow-Origin value; empty disables CORS headers
	TokenHash     string // bcrypt hash of the bearer token; empty disables auth
	MaxConcurrent int    // summaries in flight at once
	MaxBytes      int64  // upload ceiling, also used in the 413 message
}

const (
	formField       = "file"
	multipartSlack  = 64 * 1024 // boundaries and part headers on top of the file
	readHeaderLimit = 10 * time.Second
)

// Server serves POST /wrapped and GET /healthz.
type Server struct {
	proc Processor
	cfg  Config
	sem  chan struct{}
	srv  *http.Server
}

// New creates a Server around proc.
func New(proc Processor, cfg Config) *Server {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	s := &Server{
		proc: proc,
		cfg:  cfg,
		sem:  make(chan struct{}, cfg.MaxConcurrent),
	}
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderLimit,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /wrapped", s.authMiddleware(http.HandlerFunc(s.handleWrapped)))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return requestMiddleware(s.corsMiddleware(mux))
}

// Start listens on addr and serves until Shutdown. Calling Shutdown first
// makes Start return immediately.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	slog.Info("http server listening", "addr", ln.Addr().String())
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight uploads.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWrapped(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBytes+multipartSlack)

	mr, err := r.MultipartReader()
	if err != nil {
		writeError(w, http.StatusBadRequest, msgExtension)
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, msgExtension)
			return
		}
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if part.FormName() != formField {
			part.Close()
			continue
		}

		select {
		case s.sem <- struct{}{}:
		case <-r.Context().Done():
			writeError(w, http.StatusServiceUnavailable, msgBusy)
			return
		}
		report, err := s.proc.Process(r.Context(), part.FileName(), part)
		<-s.sem
		part.Close()

		if err != nil {
			s.fail(w, r, err)
			return
		}

		slog.Info("summarized",
			"request_id", RequestID(r.Context()),
			"source", report.Source,
			"records", report.Summary.TotalRecords,
			"user_messages", report.Summary.TotalUserMessages,
			"system_events", report.Summary.TotalSystemEvents,
		)
		writeJSON(w, http.StatusOK, report.Summary)
		return
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := classify(err, s.cfg.MaxBytes)
	if status >= http.StatusInternalServerError {
		slog.Error("summarize failed", "request_id", RequestID(r.Context()), "error", err)
	} else {
		slog.Debug("upload rejected", "request_id", RequestID(r.Context()), "error", err)
	}
	writeError(w, status, detail)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		slog.Warn("write response failed", "error", err)
	}
}

// writeError sends {"detail": "..."}.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
