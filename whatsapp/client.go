package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "http://localhost:3000"

	headerAPIKey = "X-API-Key"
)

// Client is the core WhatsApp bridge API client. It is safe for concurrent
// use by multiple goroutines.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	maxRetries        int
	backoffBase       time.Duration
	backoffMax        time.Duration
	backoffMultiplier float64

	retryPolicy RetryPolicy
	rateLimiter *rateLimiter
	logger      *slog.Logger
	metrics     *MetricsCollector

	// Services used for communicating with the bridge API endpoint families.
	Session *SessionService
	Message *MessageService
	Chat    *ChatService
	Contact *ContactService
	Group   *GroupService
}

// NewClient creates a new bridge API client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:        &http.Client{Timeout: 30 * time.Second},
		baseURL:           defaultBaseURL,
		apiKey:            apiKey,
		maxRetries:        3,
		backoffBase:       500 * time.Millisecond,
		backoffMax:        30 * time.Second,
		backoffMultiplier: 2.0,
		rateLimiter:       newRateLimiter(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.baseURL = strings.TrimRight(c.baseURL, "/")

	if c.retryPolicy == nil {
		c.retryPolicy = &DefaultRetryPolicy{
			MaxRetries:  c.maxRetries,
			BackoffBase: c.backoffBase,
			BackoffMax:  c.backoffMax,
			Multiplier:  c.backoffMultiplier,
		}
	}

	c.Session = &SessionService{client: c}
	c.Message = &MessageService{client: c}
	c.Chat = &ChatService{client: c}
	c.Contact = &ContactService{client: c}
	c.Group = &GroupService{client: c}

	return c
}

// Do executes an HTTP request with context, authentication, rate limiting,
// and automatic retries on transient failures (network errors, timeouts,
// 429 Too Many Requests and 5xx responses).
//
// The caller's request is never modified; Do operates on a clone.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.Clone(ctx)

	// Inject authentication header if available.
	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}

	// Set standard headers.
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if req.Header.Get("Content-Type") == "" && req.Method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	endpoint := metricsEndpoint(req)
	start := time.Now()

	var resp *http.Response
	var err error

	for attempt := 0; ; attempt++ {
		// Enforce local rate limit before executing request.
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("local rate limit wait interrupted: %w", err)
		}

		// Rewind the body before re-sending a request with a payload.
		if attempt > 0 && req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, fmt.Errorf("rewind request body for retry: %w", bodyErr)
			}
			req.Body = body
		}

		resp, err = c.httpClient.Do(req)
		if err != nil && ctx.Err() != nil {
			// Context cancellation is terminal regardless of retry policy.
			return nil, fmt.Errorf("request aborted by context: %w", ctx.Err())
		}

		delay, retry := c.retryPolicy.ShouldRetry(resp, err, attempt)
		if !retry {
			break
		}

		// Drain body to reuse the connection before sleeping.
		if resp != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}

		c.metrics.recordRetry(endpoint)
		if c.logger != nil {
			c.logger.DebugContext(ctx, "retrying request",
				"method", req.Method,
				"endpoint", endpoint,
				"attempt", attempt+1,
				"delay", delay,
				"error", err,
			)
		}

		select {
		case <-time.After(delay):
			// Proceed to the next attempt.
		case <-ctx.Done():
			return nil, fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
		}
	}

	if err != nil {
		terr := newTransportError(req, err)
		c.metrics.recordError(errorMetricType(terr))
		return nil, terr
	}

	c.metrics.recordRequest(req.Method, endpoint, resp.StatusCode, time.Since(start))

	// Handle standard HTTP errors (4xx, 5xx).
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		mapped := mapHTTPError(resp, body)
		c.metrics.recordError(errorMetricType(mapped))
		return nil, mapped
	}

	return resp, nil
}

// APIResponse mirrors the bridge's {success, data, error, code} response
// envelope wrapping every endpoint payload.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
}

// Validator is implemented by request payloads that can check themselves.
// The client validates payloads before any I/O happens; a failure never
// consumes a retry attempt or touches the network.
type Validator interface {
	Validate() error
}

// call issues a JSON request against path, unwraps the response envelope and
// decodes the data payload into out (which may be nil).
func (c *Client) call(ctx context.Context, method, path string, payload, out any) error {
	if v, ok := payload.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request payload: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	var envelope APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}

	if !envelope.Success {
		mapped := mapEnvelopeError(&envelope, resp)
		c.metrics.recordError(errorMetricType(mapped))
		return mapped
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode response payload: %w", err)
		}
	}

	return nil
}

// metricsEndpoint collapses a request path to its endpoint family so metric
// label cardinality stays bounded (session and message IDs are stripped).
func metricsEndpoint(req *http.Request) string {
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 3)
	if len(parts) >= 2 {
		return "/" + parts[0] + "/" + parts[1]
	}
	return "/" + parts[0]
}
