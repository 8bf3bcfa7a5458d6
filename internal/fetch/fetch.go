// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves raw source payloads over HTTP, or from disk for
// file:// URLs, with bounded retry and linear backoff.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 750 * time.Millisecond
	defaultMaxBytes       = 10 << 20
	defaultUserAgent      = "guide-curator/0.1"
)

// ErrFetchFailed marks a fetch that exhausted its attempts.
var ErrFetchFailed = errors.New("fetch failed")

// ErrBodyTooLarge marks a response larger than the client's byte limit.
// It is not retried.
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// FetchError carries the last underlying cause of an exhausted fetch.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

// Unwrap returns the last cause.
func (e *FetchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFetchFailed) hold for every *FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Result is a successful fetch.
type Result struct {
	Body     []byte
	Attempts int
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	HTTP           *http.Client
	UserAgent      string
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBytes       int64
	Logger         *zap.Logger

	// Sleep waits between attempts. Tests replace it to avoid real delays.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Client fetches payloads. It is safe for concurrent use.
type Client struct {
	http           *http.Client
	userAgent      string
	maxAttempts    int
	initialBackoff time.Duration
	maxBytes       int64
	log            *zap.Logger
	sleep          func(ctx context.Context, d time.Duration) error
}

// New builds a Client from opts.
func New(opts Options) *Client {
	c := &Client{
		http:           opts.HTTP,
		userAgent:      opts.UserAgent,
		maxAttempts:    opts.MaxAttempts,
		initialBackoff: opts.InitialBackoff,
		maxBytes:       opts.MaxBytes,
		log:            opts.Logger,
		sleep:          opts.Sleep,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = defaultMaxAttempts
	}
	if c.initialBackoff <= 0 {
		c.initialBackoff = defaultInitialBackoff
	}
	if c.maxBytes <= 0 {
		c.maxBytes = defaultMaxBytes
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.sleep == nil {
		c.sleep = sleepContext
	}
	return c
}

// Fetch retrieves rawURL. file:// URLs are read from disk in one attempt.
// HTTP failures (transport errors and non-2xx statuses) are retried up to
// the configured attempts, sleeping initialBackoff*attempt after each
// failed attempt except the last. headers are added to every request.
//
// Exhausted attempts return a *FetchError wrapping the last cause. A body
// over the size limit fails at once with ErrBodyTooLarge.
func (c *Client) Fetch(ctx context.Context, rawURL string, headers map[string]string) (Result, error) {
	if path, ok := filePath(rawURL); ok {
		body, err := os.ReadFile(path)
		if err != nil {
			return Result{}, &FetchError{URL: rawURL, Attempts: 1, Err: err}
		}
		return Result{Body: body, Attempts: 1}, nil
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		body, err := c.get(ctx, rawURL, headers)
		if err == nil {
			return Result{Body: body, Attempts: attempt}, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		if errors.Is(err, ErrBodyTooLarge) {
			c.log.Warn("response body over limit", zap.String("url", rawURL), zap.Int64("max_bytes", c.maxBytes))
			return Result{}, &FetchError{URL: rawURL, Attempts: attempt, Err: err}
		}
		lastErr = err

		if attempt == c.maxAttempts {
			break
		}

		backoff := c.initialBackoff * time.Duration(attempt)
		c.log.Debug("fetch attempt failed, retrying",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.maxAttempts),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		if err := c.sleep(ctx, backoff); err != nil {
			return Result{}, err
		}
	}

	return Result{}, &FetchError{URL: rawURL, Attempts: c.maxAttempts, Err: lastErr}
}

func (c *Client) get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.maxBytes)
	}
	return body, nil
}

// filePath returns the local path of a file:// URL.
func filePath(rawURL string) (string, bool) {
	if !strings.HasPrefix(strings.ToLower(rawURL), "file://") {
		return "", false
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		// file://relative/path parses the first segment as host.
		return rawURL[len("file://"):], true
	}
	if u.Host != "" && u.Host != "localhost" {
		return u.Host + u.Path, true
	}
	return u.Path, true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
