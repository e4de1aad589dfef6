// Package api provides typed HTTP clients for the collaboration
// platform's REST API. The clients are transport only: they hold no
// session state and take the bearer token on each call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/google/uuid"
)

// Client is the shared HTTP layer under the resource clients.
type Client struct {
	baseURL string
	http    *http.Client
	retrier retry.Retry[*http.Response]
	breaker circuitbreaker.CircuitBreaker[*http.Response]
	logger  *slog.Logger
}

// Config holds transport settings for the client.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:8000/api".
	BaseURL string

	// Timeout bounds each request end to end. Zero means 30s.
	Timeout time.Duration

	// Resilience enables retry and circuit breaking for read requests.
	// Writes are never retried; the backend's admin actions are not
	// idempotent.
	Resilience bool

	// Logger for transport events. Nil disables logging.
	Logger *slog.Logger
}

// New creates a client for the API at cfg.BaseURL.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    newHTTPClient(timeout),
		logger:  cfg.Logger,
	}

	if cfg.Resilience {
		c.retrier = retry.New[*http.Response](retry.Config{
			MaxAttempts:   3,
			InitialDelay:  500 * time.Millisecond,
			MaxDelay:      5 * time.Second,
			Multiplier:    2.0,
			BackoffPolicy: retry.BackoffExponential,
			Jitter:        true,
			IsRetryable:   isRetryable,
		})
		c.breaker = circuitbreaker.New[*http.Response](circuitbreaker.Config{
			MaxRequests: 2,
			Interval:    30 * time.Second,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(from, to circuitbreaker.State) {
				if c.logger != nil {
					c.logger.Warn("api circuit breaker state change",
						"from", from.String(),
						"to", to.String())
				}
			},
		})
	}

	return c
}

// newHTTPClient builds an HTTP client with transport-level timeouts.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   5,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// get issues a resilient GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path, bearer string, query url.Values, out any) error {
	op := func(ctx context.Context) (*http.Response, error) {
		return c.send(ctx, http.MethodGet, path, bearer, query, nil)
	}

	var resp *http.Response
	var err error
	switch {
	case c.breaker != nil && c.retrier != nil:
		resp, err = c.breaker.Execute(ctx, func(ctx context.Context) (*http.Response, error) {
			return c.retrier.Do(ctx, op)
		})
	case c.retrier != nil:
		resp, err = c.retrier.Do(ctx, op)
	default:
		resp, err = op(ctx)
	}
	if err != nil {
		return err
	}
	return decodeBody(resp, out)
}

// post issues a POST with a JSON body; writes are never retried.
func (c *Client) post(ctx context.Context, path, bearer string, body, out any) error {
	resp, err := c.send(ctx, http.MethodPost, path, bearer, nil, body)
	if err != nil {
		return err
	}
	return decodeBody(resp, out)
}

// patch issues a PATCH with a JSON body.
func (c *Client) patch(ctx context.Context, path, bearer string, body, out any) error {
	resp, err := c.send(ctx, http.MethodPatch, path, bearer, nil, body)
	if err != nil {
		return err
	}
	return decodeBody(resp, out)
}

// put issues a PUT with a JSON body.
func (c *Client) put(ctx context.Context, path, bearer string, body, out any) error {
	resp, err := c.send(ctx, http.MethodPut, path, bearer, nil, body)
	if err != nil {
		return err
	}
	return decodeBody(resp, out)
}

// delete issues a DELETE.
func (c *Client) delete(ctx context.Context, path, bearer string) error {
	resp, err := c.send(ctx, http.MethodDelete, path, bearer, nil, nil)
	if err != nil {
		return err
	}
	return decodeBody(resp, nil)
}

// send builds and executes one request. Non-2xx responses are converted
// to *Error with the body drained, so a returned response is always a
// success whose body the caller must close.
func (c *Client) send(ctx context.Context, method, path, bearer string, query url.Values, body any) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		resp.Body.Close()
		apiErr := newError(resp.StatusCode, data, requestID)
		if c.logger != nil {
			c.logger.Warn("api request failed",
				"method", method,
				"path", path,
				"status", resp.StatusCode,
				"request_id", requestID)
		}
		return nil, apiErr
	}

	return resp, nil
}

// decodeBody decodes a success response into out and closes the body.
func decodeBody(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// isRetryable gates the retry policy: retryable API statuses and plain
// network errors retry; everything else fails fast.
func isRetryable(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return true
}
