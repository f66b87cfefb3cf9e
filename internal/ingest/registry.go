package ingest

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Unpacker turns an uploaded file into raw chat-export bytes. It must not
// return more than maxBytes bytes; larger content is ErrTooLarge.
type Unpacker func(data []byte, maxBytes int64) ([]byte, error)

var (
	mu       sync.RWMutex
	registry = map[string]Unpacker{}
)

// Register adds an unpacker for a file extension such as ".zip".
func Register(ext string, u Unpacker) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(ext)] = u
}

// Get returns the unpacker registered for ext.
func Get(ext string) (Unpacker, error) {
	mu.RLock()
	defer mu.RUnlock()
	u, ok := registry[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, ext)
	}
	return u, nil
}

// Extensions returns the registered extensions, sorted.
func Extensions() []string {
	mu.RLock()
	defer mu.RUnlock()
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
