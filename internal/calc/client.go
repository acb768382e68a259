package calc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/specialistvlad/sweepgrid/internal/document"
)

// DefaultTimeout bounds a single calculation request.
const DefaultTimeout = 360 * time.Second

// keyHeader carries the endpoint's function key.
const keyHeader = "x-functions-key"

// maxErrorBody caps how much of a failed response is kept in a StatusError.
const maxErrorBody = 512

// Calculator computes one engine-input document and returns the raw response.
type Calculator interface {
	Calculate(ctx context.Context, doc document.Document) ([]byte, error)
}

// StatusError is returned for any non-2xx response. It is treated as
// transient by callers.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("calculation endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("calculation endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// HTTPOption configures an HTTPCalculator.
type HTTPOption func(*HTTPCalculator)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(c *HTTPCalculator) { c.client = client }
}

// WithTimeout sets the per-request timeout. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *HTTPCalculator) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(c *HTTPCalculator) { c.userAgent = ua }
}

// HTTPCalculator posts documents as JSON to a calculation URL.
type HTTPCalculator struct {
	client    *http.Client
	url       string
	key       string
	timeout   time.Duration
	userAgent string
}

// NewHTTPCalculator creates a calculator for url authenticated with key.
func NewHTTPCalculator(url, key string, opts ...HTTPOption) *HTTPCalculator {
	c := &HTTPCalculator{
		url:     url,
		key:     key,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = NewClient(0)
	}
	return c
}

// NewClient returns an HTTP client whose pool keeps up to maxConnsPerHost
// idle connections, so a full dispatch chunk can reuse them.
func NewClient(maxConnsPerHost int) *http.Client {
	if maxConnsPerHost <= 0 {
		maxConnsPerHost = 10
	}
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        max(100, maxConnsPerHost),
			MaxIdleConnsPerHost: maxConnsPerHost,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Calculate implements Calculator.
func (c *HTTPCalculator) Calculate(ctx context.Context, doc document.Document) ([]byte, error) {
	payload, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode engine input: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build calculation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(keyHeader, c.key)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calculation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read calculation response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}
	return body, nil
}

// Close releases idle connections.
func (c *HTTPCalculator) Close() {
	c.client.CloseIdleConnections()
}
