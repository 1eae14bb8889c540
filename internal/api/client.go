package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// ErrUnauthorized is returned on HTTP 401. Callers treat it as
// "session expired, go back to login".
var ErrUnauthorized = errors.New("authentication required")

// Error is a non-2xx backend response with the server's detail field
// extracted, when present.
type Error struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.StatusCode)
}

// errorBody is the backend's error envelope; older endpoints use
// "message" instead of "detail".
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// TokenSource provides the current bearer token. An empty string means
// the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client is the single authenticated HTTP façade over the backend.
// It handles bearer-token auth, JSON marshaling, retry with backoff on
// HTTP 429, and trips a circuit breaker when the backend keeps failing
// so the UI degrades to cached data instead of hammering a dead host.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	maxRetries int
}

// NewClient creates a backend client. baseURL is the root URL of the
// backend (e.g. http://localhost:8000); tokens supplies the bearer
// token attached to every request.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "backend",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker:    breaker,
		maxRetries: 3,
	}
}

// BaseURL returns the configured backend root URL.
func (c *Client) BaseURL() string { return c.baseURL }

// get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// post performs an HTTP POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// put performs an HTTP PUT request with a JSON body.
func (c *Client) put(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

// delete performs an HTTP DELETE request.
func (c *Client) delete(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, result)
}

// do is the core HTTP method: it builds the request, attaches auth,
// runs it through the circuit breaker, retries on 429, and decodes the
// JSON response or error envelope.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	url := c.baseURL + path

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		payload = data
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		raw, err := c.breaker.Execute(func() (interface{}, error) {
			resp, err := c.httpClient.Do(req)
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close()

			respBody, readErr := io.ReadAll(resp.Body)
			if readErr != nil {
				return nil, fmt.Errorf("reading response body: %w", readErr)
			}

			// 5xx counts as a breaker failure; 4xx is the caller's
			// problem and must not trip it.
			if resp.StatusCode >= 500 {
				return nil, &Error{
					StatusCode: resp.StatusCode,
					Detail:     extractDetail(respBody),
				}
			}

			return &response{status: resp.StatusCode, header: resp.Header, body: respBody}, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return fmt.Errorf("backend unavailable, retry later: %w", err)
			}
			var apiErr *Error
			if errors.As(err, &apiErr) {
				return apiErr
			}
			return fmt.Errorf("executing request %s %s: %w", method, path, err)
		}

		resp := raw.(*response)

		if resp.status == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429) on %s %s", method, path)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryAfterDuration(resp.header, attempt)):
				continue
			}
		}

		if resp.status == http.StatusUnauthorized {
			return ErrUnauthorized
		}

		if resp.status < 200 || resp.status >= 300 {
			return &Error{
				StatusCode: resp.status,
				Detail:     extractDetail(resp.body),
			}
		}

		if result == nil || resp.status == http.StatusNoContent {
			return nil
		}

		if err := json.Unmarshal(resp.body, result); err != nil {
			return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
		}

		return nil
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, lastErr)
}

// download performs a GET and returns the raw body, for binary
// endpoints like the generated-code archive.
func (c *Client) download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing download %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading download body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{StatusCode: resp.StatusCode, Detail: extractDetail(body)}
	}

	return body, nil
}

type response struct {
	status int
	header http.Header
	body   []byte
}

// extractDetail pulls the server's detail/message field out of an
// error body, if the body is the JSON envelope.
func extractDetail(body []byte) string {
	var eb errorBody
	if json.Unmarshal(body, &eb) != nil {
		return ""
	}
	if eb.Detail != "" {
		return eb.Detail
	}
	return eb.Message
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration. Falls back to exponential backoff if the header is missing.
func retryAfterDuration(header http.Header, attempt int) time.Duration {
	if h := header.Get("Retry-After"); h != "" {
		if seconds, err := strconv.Atoi(h); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	backoff := time.Duration(1<<uint(attempt)) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	return backoff
}
