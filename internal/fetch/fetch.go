// Package fetch downloads chat exports over HTTP(S) so batch mode can take
// URLs alongside local paths.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	defaultBackoff = time.Second
	maxRetries     = 3
	errBodyLimit   = 512
)

// StatusError is a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string // first 512 bytes
	retryAfter string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Default: 30s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithToken sends "Authorization: Bearer <token>" with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithBackoff sets the first retry delay for 5xx responses; it doubles per
// attempt. Default: 1s.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// Client downloads exports with retries on 429 and 5xx.
type Client struct {
	httpClient *http.Client
	token      string
	backoff    time.Duration
	maxBytes   int64
}

// New creates a Client that reads at most maxBytes+1 bytes of any body, so
// an oversized export is detected without downloading all of it.
func New(maxBytes int64, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		backoff:    defaultBackoff,
		maxBytes:   maxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsURL reports whether s names an http or https resource.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetch downloads rawURL and returns the file name to judge it by and the
// body. The name comes from Content-Disposition when present, else from the
// last path segment.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, []byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", nil, fmt.Errorf("fetch: %w", err)
	}

	var lastErr *StatusError
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(c.delay(attempt, lastErr))
			select {
			case <-ctx.Done():
				t.Stop()
				return "", nil, ctx.Err()
			case <-t.C:
			}
		}

		name, body, err := c.get(ctx, u)
		if err == nil {
			return name, body, nil
		}
		statusErr, ok := err.(*StatusError)
		if !ok {
			return "", nil, err
		}
		if statusErr.StatusCode != http.StatusTooManyRequests && statusErr.StatusCode < 500 {
			return "", nil, statusErr
		}
		lastErr = statusErr
	}
	return "", nil, lastErr
}

func (c *Client) get(ctx context.Context, u *url.URL) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", nil, fmt.Errorf("fetch: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
		return "", nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			retryAfter: resp.Header.Get("Retry-After"),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("fetch: read body: %w", err)
	}
	return fileName(resp.Header.Get("Content-Disposition"), u), body, nil
}

func (c *Client) delay(attempt int, lastErr *StatusError) time.Duration {
	if lastErr != nil && lastErr.StatusCode == http.StatusTooManyRequests && lastErr.retryAfter != "" {
		if secs, err := strconv.Atoi(lastErr.retryAfter); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return c.backoff << (attempt - 1)
}

func fileName(disposition string, u *url.URL) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if name := path.Base(params["filename"]); name != "." && name != "/" {
				return name
			}
		}
	}
	return path.Base(u.Path)
}
