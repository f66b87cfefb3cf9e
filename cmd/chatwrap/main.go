package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/crimson-sun/chatwrap/internal/config"
	"github.com/crimson-sun/chatwrap/internal/engine"
	"github.com/crimson-sun/chatwrap/internal/engine/rules"
	"github.com/crimson-sun/chatwrap/internal/fetch"
	"github.com/crimson-sun/chatwrap/internal/ingest"
	"github.com/crimson-sun/chatwrap/internal/logging"
	"github.com/crimson-sun/chatwrap/internal/output"
	"github.com/crimson-sun/chatwrap/internal/output/async"
	"github.com/crimson-sun/chatwrap/internal/output/file"
	"github.com/crimson-sun/chatwrap/internal/output/multi"
	"github.com/crimson-sun/chatwrap/internal/output/stdout"
	"github.com/crimson-sun/chatwrap/internal/output/text"
	"github.com/crimson-sun/chatwrap/internal/output/webhook"
	"github.com/crimson-sun/chatwrap/internal/pipeline"
	"github.com/crimson-sun/chatwrap/internal/server"
)

const usage = `usage:
  chatwrap serve           run the HTTP upload service
  chatwrap FILE|URL ...    summarize chat exports to the configured outputs`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatwrap: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "chatwrap: invalid configuration:\n%v\n", err)
		return 1
	}

	serve := args[0] == "serve"
	logging.Init(serve || cfg.Output.Format == "stdout", logging.ParseLevel(cfg.LogLevel))

	loader, eng, err := build(cfg)
	if err != nil {
		slog.Error("startup failed", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if serve {
		if err := runServer(ctx, cfg, loader, eng); err != nil {
			slog.Error("server stopped", "error", err)
			return 1
		}
		return 0
	}

	out, err := buildOutput(cfg.Output)
	if err != nil {
		slog.Error("output setup failed", "error", err)
		return 1
	}
	fetcher := fetch.New(cfg.Ingest.MaxBytes,
		fetch.WithToken(cfg.Fetch.Token),
		fetch.WithTimeout(cfg.Fetch.Timeout),
	)
	p := pipeline.New(loader, eng, out,
		pipeline.WithWorkers(cfg.Server.MaxConcurrent),
		pipeline.WithFetcher(fetcher),
	)

	runErr := p.Run(ctx, args)
	if err := p.Close(); err != nil {
		slog.Error("closing outputs", "error", err)
		runErr = errors.Join(runErr, err)
	}
	if runErr != nil {
		return 1
	}
	return 0
}

// build wires the rule set, engine and loader from configuration.
func build(cfg config.Config) (*ingest.Loader, *engine.Engine, error) {
	r := rules.Default()
	if cfg.Engine.StopWordsFile != "" {
		words, err := rules.LoadStopWords(cfg.Engine.StopWordsFile)
		if err != nil {
			return nil, nil, err
		}
		r = r.WithStopWords(words)
		slog.Debug("loaded stop words", "path", cfg.Engine.StopWordsFile, "count", len(words))
	}

	eng := engine.FromRules(r, engine.Config{
		Year:         cfg.Engine.Year,
		TopTalkers:   cfg.Engine.TopTalkers,
		PreviewChars: cfg.Engine.PreviewChars,
	})
	loader, err := ingest.NewLoader(cfg.Ingest.MaxBytes, cfg.Ingest.Extensions)
	if err != nil {
		return nil, nil, err
	}
	return loader, eng, nil
}

// buildOutput assembles the batch-mode sinks: the console format plus an
// optional NDJSON file and an optional webhook.
func buildOutput(cfg config.OutputConfig) (output.Output, error) {
	var console output.Output
	switch cfg.Format {
	case "text":
		console = text.New()
	default:
		console = stdout.New(cfg.Pretty)
	}

	outs := []output.Output{console}
	if cfg.FilePath != "" {
		f, err := file.New(cfg.FilePath, file.WithMaxSize(cfg.FileMaxSize))
		if err != nil {
			return nil, err
		}
		outs = append(outs, f)
	}
	if cfg.WebhookURL != "" {
		outs = append(outs, async.New(webhook.New(cfg.WebhookURL)))
	}

	if len(outs) == 1 {
		return console, nil
	}
	return multi.New(outs...), nil
}

func runServer(ctx context.Context, cfg config.Config, loader *ingest.Loader, eng *engine.Engine) error {
	srv := server.New(pipeline.New(loader, eng, nil), server.Config{
		AllowOrigin:   cfg.Server.AllowOrigin,
		TokenHash:     cfg.Server.TokenHash,
		MaxConcurrent: cfg.Server.MaxConcurrent,
		MaxBytes:      cfg.Ingest.MaxBytes,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(cfg.Server.Addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
