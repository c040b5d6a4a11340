package shippin

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeInvalidCredentials = "INVALID_CREDENTIALS"
	textCodeNoCapacity         = "NO_DELIVERY_CAPACITY"
	textCodeBackendRejected    = "BACKEND_REJECTED"
	textCodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	textCodeStaleCompletion    = "STALE_COMPLETION"
)

// ErrUnableToDecodeToken is returned when the backend token cannot be parsed.
var ErrUnableToDecodeToken = goerrors.New("unable to decode token", goerrors.CategoryBadInput)

// ErrMalformedResponse is returned when a 2xx body does not match the contract.
var ErrMalformedResponse = goerrors.New("malformed backend response", goerrors.CategoryOperation)

// ErrLoginSuperseded is returned when a login resolves after a newer attempt
// already committed; its result is discarded.
var ErrLoginSuperseded = goerrors.New("login superseded by a newer attempt", goerrors.CategoryOperation).
	WithTextCode(textCodeStaleCompletion)

// ClassifyResponse converts a non-2xx backend status into a typed error.
// Invalid credentials, missing capacity, and transport failures must stay
// distinguishable all the way up to the presentation layer.
func ClassifyResponse(status int) error {
	switch {
	case status < 400:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return goerrors.New("credentials rejected", goerrors.CategoryAuth).
			WithTextCode(textCodeInvalidCredentials).
			WithCode(goerrors.CodeUnauthorized).
			WithMetadata(map[string]any{"status": status})
	case status == http.StatusServiceUnavailable:
		return goerrors.New("no capacity currently available", goerrors.CategoryOperation).
			WithTextCode(textCodeNoCapacity).
			WithMetadata(map[string]any{"status": status})
	case status < 500:
		return goerrors.New("request rejected by backend", goerrors.CategoryBadInput).
			WithTextCode(textCodeBackendRejected).
			WithMetadata(map[string]any{"status": status})
	default:
		return goerrors.New("backend error", goerrors.CategoryOperation).
			WithTextCode(textCodeBackendUnavailable).
			WithMetadata(map[string]any{"status": status})
	}
}

// WrapTransportError wraps a network-level failure. Distinct from any HTTP
// status based error: the call never produced a response.
func WrapTransportError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryOperation, "request failed").
		WithTextCode(textCodeBackendUnavailable)
}

// WrapValidationError converts a local validation failure. These never reach
// the network.
func WrapValidationError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid input")
}

// IsValidationError reports whether err is a local, pre-network validation
// failure.
func IsValidationError(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.Category == goerrors.CategoryValidation
}

// IsAuthError reports whether the backend rejected the caller's credentials.
func IsAuthError(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.Category == goerrors.CategoryAuth
}

// IsCapacityError reports whether the backend signaled no available capacity
// (HTTP 503 on business operations).
func IsCapacityError(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == textCodeNoCapacity
}

// StatusFromError extracts the HTTP status recorded on a classified error,
// or zero when none was attached.
func StatusFromError(err error) int {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return 0
	}
	if richErr.Metadata == nil {
		return 0
	}
	if status, ok := richErr.Metadata["status"].(int); ok {
		return status
	}
	return 0
}
