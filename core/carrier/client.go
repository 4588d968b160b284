package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// Options configures a client for one carrier endpoint.
type Options struct {
	// Endpoint is the API base URL; trailing slashes are trimmed.
	Endpoint string
	// Name labels the circuit breaker, usually the provider-type key.
	Name string
	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration
	// RequestsPerSecond caps the request rate. Defaults to 5.
	RequestsPerSecond float64
	// Burst is the limiter burst size. Defaults to 5.
	Burst int
}

// StatusError is returned for non-2xx responses. The response body is kept
// (truncated) so adapters can tell a credential rejection from a validation
// failure.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Client is a rate-limited, breaker-guarded JSON HTTP client for one
// carrier endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker[[]byte]

	mu    sync.RWMutex
	token string
}

// New creates a client. Breaker tuning: opens at a 60% failure rate over at
// least 10 requests, allows 3 probes in half-open, recovers after 2 minutes.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 5
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        opts.Name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
	})

	return &Client{
		endpoint: strings.TrimRight(opts.Endpoint, "/"),
		http:     &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		breaker:  breaker,
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// GetJSON issues a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out.
// out may be nil when the response body is irrelevant.
func (c *Client) PostJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(body, out)
}

// GetBytes issues a GET and returns the raw response body. Used for opaque
// downloads such as path archives.
func (c *Client) GetBytes(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	return c.breaker.Execute(func() ([]byte, error) {
		var reqBody io.Reader
		if payload != nil {
			encoded, err := json.Marshal(payload)
			if err != nil {
				return nil, fmt.Errorf("failed to encode request body: %w", err)
			}
			reqBody = bytes.NewReader(encoded)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		c.mu.RLock()
		token := c.token
		c.mu.RUnlock()
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &StatusError{Code: resp.StatusCode, Body: truncate(body, 256)}
		}
		return body, nil
	})
}

func decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func truncate(body []byte, max int) string {
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
