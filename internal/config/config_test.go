package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var allKeys = []string{
	"CHATWRAP_LOG_LEVEL", "CHATWRAP_YEAR", "CHATWRAP_TOP_TALKERS", "CHATWRAP_PREVIEW_CHARS",
	"CHATWRAP_STOPWORDS_FILE", "CHATWRAP_MAX_UPLOAD_BYTES", "CHATWRAP_ALLOWED_EXTENSIONS",
	"CHATWRAP_ADDR", "CHATWRAP_ALLOW_ORIGIN", "CHATWRAP_API_TOKEN_HASH", "CHATWRAP_MAX_CONCURRENT",
	"CHATWRAP_SHUTDOWN_TIMEOUT", "CHATWRAP_OUTPUT", "CHATWRAP_OUTPUT_PRETTY", "CHATWRAP_OUTPUT_FILE",
	"CHATWRAP_OUTPUT_FILE_MAX_SIZE", "CHATWRAP_WEBHOOK_URL", "CHATWRAP_FETCH_TOKEN", "CHATWRAP_FETCH_TIMEOUT",
}

// clearEnv unsets every chatwrap variable and runs the test from an empty
// directory so no stray .env file is picked up.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Engine.Year != 2025 {
		t.Errorf("Year = %d, want 2025", cfg.Engine.Year)
	}
	if cfg.Engine.TopTalkers != 10 {
		t.Errorf("TopTalkers = %d, want 10", cfg.Engine.TopTalkers)
	}
	if cfg.Engine.PreviewChars != 200 {
		t.Errorf("PreviewChars = %d, want 200", cfg.Engine.PreviewChars)
	}
	if cfg.Ingest.MaxBytes != 5*1024*1024 {
		t.Errorf("MaxBytes = %d, want 5MiB", cfg.Ingest.MaxBytes)
	}
	if got := strings.Join(cfg.Ingest.Extensions, ","); got != ".txt,.zip,.gz,.zst" {
		t.Errorf("Extensions = %s", got)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Output.Format != "stdout" || cfg.Output.Pretty {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Fetch.Timeout != 30*time.Second || cfg.Fetch.Token != "" {
		t.Errorf("Fetch = %+v", cfg.Fetch)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got: %v", err)
	}
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHATWRAP_YEAR", "2024")
	t.Setenv("CHATWRAP_ALLOWED_EXTENSIONS", " .TXT , .zip")
	t.Setenv("CHATWRAP_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("CHATWRAP_OUTPUT_PRETTY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Engine.Year != 2024 {
		t.Errorf("Year = %d, want 2024", cfg.Engine.Year)
	}
	if got := strings.Join(cfg.Ingest.Extensions, ","); got != ".txt,.zip" {
		t.Errorf("Extensions = %s", got)
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.Server.ShutdownTimeout)
	}
	if !cfg.Output.Pretty {
		t.Error("expected Pretty=true")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.WriteFile(".env", []byte("CHATWRAP_TOP_TALKERS=3\n"), 0644)
	defer os.Unsetenv("CHATWRAP_TOP_TALKERS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Engine.TopTalkers != 3 {
		t.Errorf("TopTalkers = %d, want 3 from .env", cfg.Engine.TopTalkers)
	}
}

func TestLoad_BadInt(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHATWRAP_YEAR", "twenty")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric year")
	}
}

func validConfig(t *testing.T) Config {
	t.Helper()
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	return cfg
}

func TestValidate_Year(t *testing.T) {
	tests := []struct {
		year int
		ok   bool
	}{
		{0, false},
		{1, true},
		{1969, true},
		{2025, true},
		{9999, true},
		{10000, false},
		{-5, false},
	}
	for _, tt := range tests {
		cfg := validConfig(t)
		cfg.Engine.Year = tt.year
		err := cfg.Validate()
		if tt.ok && err != nil {
			t.Errorf("year %d: unexpected error: %v", tt.year, err)
		}
		if !tt.ok && (err == nil || !strings.Contains(err.Error(), "CHATWRAP_YEAR")) {
			t.Errorf("year %d: expected year error, got: %v", tt.year, err)
		}
	}
}

func TestValidate_BadExtension(t *testing.T) {
	cfg := validConfig(t)
	cfg.Ingest.Extensions = []string{"txt", ".rar"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for bad extensions")
	}
	for _, want := range []string{`"txt"`, `".rar"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got: %v", want, err)
		}
	}
}

func TestValidate_MissingStopWordsFile(t *testing.T) {
	cfg := validConfig(t)
	cfg.Engine.StopWordsFile = filepath.Join(t.TempDir(), "missing.txt")
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "stop-word") {
		t.Fatalf("expected stop-word error, got: %v", err)
	}
}

func TestValidate_TokenHash(t *testing.T) {
	cfg := validConfig(t)
	cfg.Server.TokenHash = "plain-token"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "CHATWRAP_API_TOKEN_HASH") {
		t.Fatalf("expected token hash error, got: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	cfg.Server.TokenHash = string(hash)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid hash to pass, got: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Engine.TopTalkers = 0
	cfg.Server.MaxConcurrent = 0
	cfg.Output.Format = "xml"
	cfg.Fetch.Timeout = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for multiple bad fields")
	}
	msg := err.Error()
	for _, want := range []string{"CHATWRAP_TOP_TALKERS", "CHATWRAP_MAX_CONCURRENT", "output format", "CHATWRAP_FETCH_TIMEOUT"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected error to mention %q, got: %v", want, msg)
		}
	}
}
