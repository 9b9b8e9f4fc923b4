// SPDX-License-Identifier: MIT

// Package fetch retrieves source documents over HTTP or from local files,
// classifying failures so retry logic can target the transient ones.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrNetwork marks any fetch failure: connection, timeout, or non-2xx
// status. Callers retry these; everything else is terminal.
var ErrNetwork = errors.New("network fetch failed")

const defaultTimeout = 30 * time.Second

// Client fetches source documents. Safe for concurrent use.
type Client struct {
	http      *http.Client
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithUserAgent sets a default User-Agent header for all requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a fetch client.
func NewClient(opts ...Option) *Client {
	c := &Client{http: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get opens the document at url. Local paths (no scheme, or file://) are
// read from disk. The caller owns the returned reader.
func (c *Client) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	if isLocal(url) {
		f, err := os.Open(strings.TrimPrefix(url, "file://"))
		if err != nil {
			return nil, fmt.Errorf("open local source: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		_ = res.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status %d for %s", ErrNetwork, res.StatusCode, url)
	}
	return res.Body, nil
}

// GetText fetches the document at url as a string.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return string(data), nil
}

// IsNetworkError reports whether err is a retryable fetch failure.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

func isLocal(url string) bool {
	return strings.HasPrefix(url, "file://") || !strings.Contains(url, "://")
}
