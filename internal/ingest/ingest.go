// Package ingest turns an uploaded chat export into text: it enforces the
// filename convention and size ceiling, unpacks archives and decodes bytes.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes is the upload ceiling: 5 MiB.
const DefaultMaxBytes int64 = 5 * 1024 * 1024

var (
	ErrTooLarge             = errors.New("ingest: file too large")
	ErrUndecodable          = errors.New("ingest: could not decode file")
	ErrUnsupportedExtension = errors.New("ingest: unsupported file extension")
	ErrArchiveNoChat        = errors.New("ingest: archive contains no .txt chat export")
	ErrBadArchive           = errors.New("ingest: damaged archive")
)

// Loader validates and decodes uploads. It holds only immutable settings and
// is safe for concurrent use.
type Loader struct {
	maxBytes int64
	allowed  map[string]bool
}

// NewLoader creates a Loader accepting the given extensions. Every extension
// must have a registered unpacker.
func NewLoader(maxBytes int64, extensions []string) (*Loader, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if len(extensions) == 0 {
		extensions = Extensions()
	}
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if _, err := Get(ext); err != nil {
			return nil, err
		}
		allowed[ext] = true
	}
	return &Loader{maxBytes: maxBytes, allowed: allowed}, nil
}

// MaxBytes returns the configured ceiling.
func (l *Loader) MaxBytes() int64 {
	return l.maxBytes
}

// Load checks name and data against the ceiling and convention, unpacks and
// decodes. The ceiling is checked before any unpacking or parsing and again
// on the unpacked content.
func (l *Loader) Load(name string, data []byte) (string, error) {
	ext, err := l.extension(name)
	if err != nil {
		return "", err
	}
	if int64(len(data)) > l.maxBytes {
		return "", ErrTooLarge
	}
	unpack, err := Get(ext)
	if err != nil {
		return "", err
	}
	raw, err := unpack(data, l.maxBytes)
	if err != nil {
		return "", err
	}
	return Decode(raw)
}

// Read consumes at most MaxBytes+1 bytes from r and loads them. A reader
// holding more than the ceiling yields ErrTooLarge without reading the rest.
func (l *Loader) Read(name string, r io.Reader) (string, error) {
	if _, err := l.extension(name); err != nil {
		return "", err
	}
	data, err := readLimited(r, l.maxBytes)
	if err != nil {
		return "", err
	}
	return l.Load(name, data)
}

func (l *Loader) extension(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !l.allowed[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExtension, name)
	}
	return ext, nil
}
