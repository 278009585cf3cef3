package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// APIError represents an error returned by the bridge API.
type APIError struct {
	StatusCode int
	Code       string // machine-readable bridge error code, when provided
	Message    string
	URL        string
	Err        error // Underlying error, if any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("whatsapp api error: %d - %s at %s", e.StatusCode, e.Message, e.URL)
	if e.Code != "" {
		msg = fmt.Sprintf("whatsapp api error: %d [%s] %s at %s", e.StatusCode, e.Code, e.Message, e.URL)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

// Unwrap implements errors.Unwrap so the underlying error can be extracted.
func (e *APIError) Unwrap() error {
	return e.Err
}

// AuthError represents an authentication or authorization failure (401, 403).
type AuthError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	msg := fmt.Sprintf("whatsapp auth error (%d): %s", e.StatusCode, e.Message)
	if e.Err != nil {
		msg += fmt.Sprintf(" - %v", e.Err)
	}
	return msg
}

// Unwrap implements errors.Unwrap.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// ValidationError represents a request payload that failed local schema
// validation. It is raised before any network I/O and is never retried.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("whatsapp validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("whatsapp validation error: %s", e.Message)
}

// NotFoundError represents a 404 response or a NOT_FOUND bridge error code.
type NotFoundError struct {
	Message string
	URL     string
	Err     error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("whatsapp not found: %s", e.Message)
	if e.URL != "" {
		msg += fmt.Sprintf(" at %s", e.URL)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

// Unwrap implements errors.Unwrap.
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// RateLimitError represents a 429 response that persisted through all retry
// attempts.
type RateLimitError struct {
	RetryAfter int // Suggested retry after duration in seconds, if provided by the API
	Err        error
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("whatsapp rate limit exceeded: retry after %d seconds", e.RetryAfter)
	}
	if e.Err != nil {
		return fmt.Sprintf("whatsapp rate limit exceeded: %v", e.Err)
	}
	return "whatsapp rate limit exceeded"
}

// Unwrap implements errors.Unwrap.
func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// ServerError represents a 5xx response that persisted through all retry
// attempts.
type ServerError struct {
	StatusCode int
	Message    string
	URL        string
	Err        error
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	msg := fmt.Sprintf("whatsapp server error: %d - %s at %s", e.StatusCode, e.Message, e.URL)
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

// Unwrap implements errors.Unwrap.
func (e *ServerError) Unwrap() error {
	return e.Err
}

// TransportError represents a network-level failure (connection refused, DNS
// failure, timeout) that persisted through all retry attempts.
type TransportError struct {
	URL     string
	Timeout bool
	Err     error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	kind := "connection"
	if e.Timeout {
		kind = "timeout"
	}
	return fmt.Sprintf("whatsapp %s error at %s: %v", kind, e.URL, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// SessionError represents a bridge error tied to session state, such as
// operating on a session that was never started or is not yet authenticated.
type SessionError struct {
	SessionID string
	Code      string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	msg := fmt.Sprintf("whatsapp session error: %s", e.Message)
	if e.SessionID != "" {
		msg = fmt.Sprintf("whatsapp session error [%s]: %s", e.SessionID, e.Message)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

// Unwrap implements errors.Unwrap.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// newTransportError wraps a network-level failure from the HTTP transport.
func newTransportError(req *http.Request, err error) *TransportError {
	timeout := errors.Is(err, context.DeadlineExceeded)
	var netErr net.Error
	if !timeout && errors.As(err, &netErr) {
		timeout = netErr.Timeout()
	}
	return &TransportError{
		URL:     req.URL.String(),
		Timeout: timeout,
		Err:     err,
	}
}

// mapHTTPError converts an unsuccessful HTTP response to an appropriate
// typed error. The body is parsed as a response envelope on a best-effort
// basis to recover the bridge's error message and code.
func mapHTTPError(resp *http.Response, body []byte) error {
	message := strings.TrimSpace(string(body))
	code := ""

	var envelope APIResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		message = envelope.Error
		code = envelope.Code
	}

	baseErr := &APIError{
		StatusCode: resp.StatusCode,
		Code:       code,
		Message:    message,
		URL:        resp.Request.URL.String(),
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{
			StatusCode: resp.StatusCode,
			Message:    "authentication failed or forbidden",
			Err:        baseErr,
		}
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{
			Message: message,
			URL:     baseErr.URL,
			Err:     baseErr,
		}
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := 0
		if v := resp.Header.Get("Retry-After"); v != "" {
			if seconds, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				retryAfter = seconds
			}
		}
		return &RateLimitError{
			RetryAfter: retryAfter,
			Err:        baseErr,
		}
	case resp.StatusCode >= 500:
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    message,
			URL:        baseErr.URL,
			Err:        baseErr,
		}
	default:
		return baseErr
	}
}

// mapEnvelopeError converts a 2xx response whose envelope reports
// success=false into a typed error based on the bridge error code.
func mapEnvelopeError(envelope *APIResponse, resp *http.Response) error {
	baseErr := &APIError{
		StatusCode: resp.StatusCode,
		Code:       envelope.Code,
		Message:    envelope.Error,
		URL:        resp.Request.URL.String(),
	}

	switch {
	case strings.HasPrefix(envelope.Code, "SESSION"):
		return &SessionError{
			Code:    envelope.Code,
			Message: envelope.Error,
			Err:     baseErr,
		}
	case envelope.Code == "NOT_FOUND":
		return &NotFoundError{
			Message: envelope.Error,
			URL:     baseErr.URL,
			Err:     baseErr,
		}
	default:
		return baseErr
	}
}

// IsTransient reports whether err represents a transient failure that might
// succeed on retry. Transport errors, rate limits and server errors are
// transient; validation, auth and other client errors are terminal.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var transportErr *TransportError
	var rateLimitErr *RateLimitError
	var serverErr *ServerError

	return errors.As(err, &transportErr) ||
		errors.As(err, &rateLimitErr) ||
		errors.As(err, &serverErr)
}

// errorMetricType collapses a typed error to a coarse label for metrics.
func errorMetricType(err error) string {
	var (
		transportErr  *TransportError
		rateLimitErr  *RateLimitError
		serverErr     *ServerError
		authErr       *AuthError
		notFoundErr   *NotFoundError
		validationErr *ValidationError
		sessionErr    *SessionError
	)

	switch {
	case errors.As(err, &transportErr):
		if transportErr.Timeout {
			return "timeout"
		}
		return "transport"
	case errors.As(err, &rateLimitErr):
		return "rate_limit"
	case errors.As(err, &serverErr):
		return "server"
	case errors.As(err, &authErr):
		return "auth"
	case errors.As(err, &notFoundErr):
		return "not_found"
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &sessionErr):
		return "session"
	default:
		return "api"
	}
}
