package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCategory defines the normalized failure taxonomy
type ErrorCategory string

const (
	// ErrorTimeout indicates the provider took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates a rejected request or an undecodable response
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates credential or signature issues
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorProviderOutage indicates the provider is unavailable
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorNotFound indicates the requested applicant doesn't exist
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorConflict indicates the applicant already exists
	ErrorConflict ErrorCategory = "conflict"

	// ErrorRateLimited indicates too many requests
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// ProviderError is returned for every failed provider call. StatusCode and
// Body are zero for transport-level failures.
type ProviderError struct {
	Operation  string
	Category   ErrorCategory
	StatusCode int
	Body       string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("provider %s [%s]", e.Operation, e.Category)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Underlying != nil {
		msg += fmt.Sprintf(": %v", e.Underlying)
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError creates a normalized provider error. Timeouts, outages and
// rate limiting are retryable.
func NewProviderError(category ErrorCategory, operation, message string, underlying error) *ProviderError {
	return &ProviderError{
		Operation:  operation,
		Category:   category,
		Message:    message,
		Underlying: underlying,
		Retryable:  category == ErrorTimeout || category == ErrorProviderOutage || category == ErrorRateLimited,
	}
}

// newHTTPError classifies a non-2xx response.
func newHTTPError(operation string, status int, body []byte) *ProviderError {
	e := NewProviderError(categoryForStatus(status), operation, providerMessage(body), nil)
	e.StatusCode = status
	e.Body = string(body)
	return e
}

func categoryForStatus(status int) ErrorCategory {
	switch {
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ErrorTimeout
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorAuthentication
	case status == http.StatusNotFound:
		return ErrorNotFound
	case status == http.StatusConflict:
		return ErrorConflict
	case status == http.StatusTooManyRequests:
		return ErrorRateLimited
	case status >= 500:
		return ErrorProviderOutage
	case status >= 400:
		return ErrorBadData
	default:
		return ErrorInternal
	}
}

// IsRetryable checks if an error is worth retrying
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

// IsConflict reports a 409 from the provider.
func IsConflict(err error) bool {
	return GetCategory(err) == ErrorConflict
}

// IsNotFound reports a 404 from the provider.
func IsNotFound(err error) bool {
	return GetCategory(err) == ErrorNotFound
}
