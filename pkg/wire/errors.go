package wire

import (
	"fmt"
	"net/http"
)

// HTTPError is an error carrying an HTTP status. Loaders and actions return
// it to signal request-level failures; it round-trips through the wire
// format with its status, detail, and header data intact.
type HTTPError struct {
	// Status is the HTTP status code (e.g., 404, 500).
	Status int

	// Message is the error message.
	Message string

	// Detail is an optional longer explanation.
	Detail string

	// Expose indicates the message is safe to show to clients.
	Expose bool

	// ExposedMessage is the client-safe message when Expose is false.
	ExposedMessage string

	// Headers are response headers the error wants set (e.g., Retry-After).
	Headers map[string]string

	// Err is the optional underlying error.
	Err error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Detail != "" {
		return e.Detail
	}
	return http.StatusText(e.Status)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code for this error.
func (e *HTTPError) StatusCode() int {
	return e.Status
}

// NewHTTPError creates an HTTPError with the given status and message.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(format string, args ...any) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a 404 Not Found error.
func NotFound(format string, args ...any) *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal creates a 500 Internal Server Error wrapping err.
func Internal(err error) *HTTPError {
	msg := "internal server error"
	if err != nil {
		msg = err.Error()
	}
	return &HTTPError{Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// TypeError is the runtime type error subtype. It reconstructs on the other
// side of the wire as a TypeError, not a generic error.
type TypeError struct {
	Message string
}

// Error implements the error interface.
func (e *TypeError) Error() string { return e.Message }

// RangeError is the out-of-range error subtype.
type RangeError struct {
	Message string
}

// Error implements the error interface.
func (e *RangeError) Error() string { return e.Message }

// GenericError is the decode fallback for descriptors whose subtype is
// unknown or missing. It preserves the message and, when present, the stack.
type GenericError struct {
	Message string
	Stack   string
}

// Error implements the error interface.
func (e *GenericError) Error() string {
	if e.Message == "" {
		return "unknown error"
	}
	return e.Message
}
