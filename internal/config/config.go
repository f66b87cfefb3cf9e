package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/crimson-sun/chatwrap/internal/engine"
	"github.com/crimson-sun/chatwrap/internal/ingest"
)

// Config holds all chatwrap configuration.
type Config struct {
	Engine   EngineConfig
	Ingest   IngestConfig
	Server   ServerConfig
	Output   OutputConfig
	Fetch    FetchConfig
	LogLevel string `env:"CHATWRAP_LOG_LEVEL" envDefault:"info"`
}

// EngineConfig holds parsing and statistics settings.
type EngineConfig struct {
	Year          int    `env:"CHATWRAP_YEAR" envDefault:"2025"`
	TopTalkers    int    `env:"CHATWRAP_TOP_TALKERS" envDefault:"10"`
	PreviewChars  int    `env:"CHATWRAP_PREVIEW_CHARS" envDefault:"200"`
	StopWordsFile string `env:"CHATWRAP_STOPWORDS_FILE"`
}

// IngestConfig holds upload validation settings.
type IngestConfig struct {
	MaxBytes   int64    `env:"CHATWRAP_MAX_UPLOAD_BYTES" envDefault:"5242880"`
	Extensions []string `env:"CHATWRAP_ALLOWED_EXTENSIONS" envDefault:".txt,.zip,.gz,.zst" envSeparator:","`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Addr            string        `env:"CHATWRAP_ADDR" envDefault:":8080"`
	AllowOrigin     string        `env:"CHATWRAP_ALLOW_ORIGIN" envDefault:"*"`
	TokenHash       string        `env:"CHATWRAP_API_TOKEN_HASH"`
	MaxConcurrent   int           `env:"CHATWRAP_MAX_CONCURRENT" envDefault:"8"`
	ShutdownTimeout time.Duration `env:"CHATWRAP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// OutputConfig holds batch-mode output settings.
type OutputConfig struct {
	Format      string `env:"CHATWRAP_OUTPUT" envDefault:"stdout"` // "stdout" or "text"
	Pretty      bool   `env:"CHATWRAP_OUTPUT_PRETTY" envDefault:"false"`
	FilePath    string `env:"CHATWRAP_OUTPUT_FILE"`
	FileMaxSize int64  `env:"CHATWRAP_OUTPUT_FILE_MAX_SIZE" envDefault:"0"`
	WebhookURL  string `env:"CHATWRAP_WEBHOOK_URL"`
}

// FetchConfig holds settings for summarizing exports given as URLs.
type FetchConfig struct {
	Token   string        `env:"CHATWRAP_FETCH_TOKEN"`
	Timeout time.Duration `env:"CHATWRAP_FETCH_TIMEOUT" envDefault:"30s"`
}

// Load reads an optional .env file from the working directory, then the
// environment, applying defaults for anything unset.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: .env: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	for i, ext := range cfg.Ingest.Extensions {
		cfg.Ingest.Extensions[i] = strings.ToLower(strings.TrimSpace(ext))
	}
	return cfg, nil
}

// Validate checks the configuration and reports every problem found.
func (c Config) Validate() error {
	var errs []error

	if !engine.ValidYear(c.Engine.Year) {
		errs = append(errs, fmt.Errorf("CHATWRAP_YEAR must be between %d and %d, got %d", engine.MinYear, engine.MaxYear, c.Engine.Year))
	}
	if c.Engine.TopTalkers < 1 {
		errs = append(errs, fmt.Errorf("CHATWRAP_TOP_TALKERS must be at least 1, got %d", c.Engine.TopTalkers))
	}
	if c.Engine.PreviewChars < 1 {
		errs = append(errs, fmt.Errorf("CHATWRAP_PREVIEW_CHARS must be at least 1, got %d", c.Engine.PreviewChars))
	}
	if c.Engine.StopWordsFile != "" {
		if _, err := os.Stat(c.Engine.StopWordsFile); err != nil {
			errs = append(errs, fmt.Errorf("stop-word file: %w", err))
		}
	}

	if c.Ingest.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("CHATWRAP_MAX_UPLOAD_BYTES must be positive, got %d", c.Ingest.MaxBytes))
	}
	if len(c.Ingest.Extensions) == 0 {
		errs = append(errs, errors.New("CHATWRAP_ALLOWED_EXTENSIONS must list at least one extension"))
	}
	for _, ext := range c.Ingest.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("extension %q must start with '.'", ext))
			continue
		}
		if _, err := ingest.Get(ext); err != nil {
			errs = append(errs, fmt.Errorf("extension %q has no unpacker", ext))
		}
	}

	if c.Server.MaxConcurrent < 1 {
		errs = append(errs, fmt.Errorf("CHATWRAP_MAX_CONCURRENT must be at least 1, got %d", c.Server.MaxConcurrent))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("CHATWRAP_SHUTDOWN_TIMEOUT must be non-negative, got %v", c.Server.ShutdownTimeout))
	}
	if c.Server.TokenHash != "" {
		if _, err := bcrypt.Cost([]byte(c.Server.TokenHash)); err != nil {
			errs = append(errs, fmt.Errorf("CHATWRAP_API_TOKEN_HASH is not a bcrypt hash: %w", err))
		}
	}

	switch c.Output.Format {
	case "stdout", "text":
	default:
		errs = append(errs, fmt.Errorf("output format must be stdout or text, got %q", c.Output.Format))
	}
	if c.Output.FileMaxSize < 0 {
		errs = append(errs, fmt.Errorf("CHATWRAP_OUTPUT_FILE_MAX_SIZE must be non-negative, got %d", c.Output.FileMaxSize))
	}

	if c.Fetch.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("CHATWRAP_FETCH_TIMEOUT must be positive, got %v", c.Fetch.Timeout))
	}

	return errors.Join(errs...)
}
