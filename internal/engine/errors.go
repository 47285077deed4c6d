// Error classification. Only transport failures escape the planning loop;
// tool-level problems are absorbed into observations.

package engine

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// RetryClass indicates whether a model-call error should be retried.
type RetryClass string

const (
	RetryClassRetryable    RetryClass = "retryable"
	RetryClassNonRetryable RetryClass = "non_retryable"
)

// TransportError wraps a provider failure with classification metadata.
type TransportError struct {
	Err        error
	Class      RetryClass
	HTTPStatus int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model call failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// WrapTransportError classifies and wraps a provider error. A zero status
// means the status could not be determined (network-level failure).
func WrapTransportError(err error, httpStatus int) error {
	if err == nil {
		return nil
	}
	return &TransportError{
		Err:        err,
		Class:      classifyTransport(err, httpStatus),
		HTTPStatus: httpStatus,
	}
}

// ClassifyTransportError returns the retry class for an error from a model
// call. Rate limits, server errors and network failures are retryable;
// authentication, quota and malformed-request errors are not.
func ClassifyTransportError(err error) RetryClass {
	if err == nil {
		return RetryClassNonRetryable
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Class
	}
	return classifyTransport(err, 0)
}

func classifyTransport(err error, httpStatus int) RetryClass {
	switch httpStatus {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return RetryClassRetryable
	case http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusPaymentRequired,
		http.StatusForbidden:
		return RetryClassNonRetryable
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "429"),
		strings.Contains(errStr, "rate limit"),
		strings.Contains(errStr, "too many requests"):
		return RetryClassRetryable
	case strings.Contains(errStr, "500"),
		strings.Contains(errStr, "502"),
		strings.Contains(errStr, "503"),
		strings.Contains(errStr, "504"),
		strings.Contains(errStr, "internal server error"),
		strings.Contains(errStr, "bad gateway"),
		strings.Contains(errStr, "service unavailable"),
		strings.Contains(errStr, "gateway timeout"):
		return RetryClassRetryable
	case strings.Contains(errStr, "timeout"),
		strings.Contains(errStr, "connection reset"),
		strings.Contains(errStr, "connection refused"),
		strings.Contains(errStr, "no such host"),
		strings.Contains(errStr, "temporary failure"):
		return RetryClassRetryable
	}
	return RetryClassNonRetryable
}

// RetryExhaustedError indicates that all retry attempts for a model call
// have been used up.
type RetryExhaustedError struct {
	Err      error
	Attempts int
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error { return e.Err }

// IsRetryExhausted checks if an error is a RetryExhaustedError.
func IsRetryExhausted(err error) bool {
	var exhausted *RetryExhaustedError
	return errors.As(err, &exhausted)
}
