// Package apperr normalizes failures from the liftlog API into a single
// error shape that every screen handles the same way.
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// AppError is the normalized form of any failure raised by an API call.
// Domain reports whether the server returned a structured error body with
// a message that is safe to show to the user. Transport failures (network
// unreachable, timeout, malformed response) carry no message of their own;
// each caller supplies its own fallback text via Display.
type AppError struct {
	Message string
	Domain  bool
	Status  int   // HTTP status, 0 for transport failures
	Err     error // underlying cause, if any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "request failed"
}

// Unwrap implements error unwrapping for error chains.
func (e *AppError) Unwrap() error {
	return e.Err
}

// serverBody is the error payload shape the API uses for all endpoints.
type serverBody struct {
	Message string `json:"message"`
}

// FromResponse classifies an HTTP error response. If the body is a
// structured payload carrying a message, the result is a domain error with
// that message; otherwise it is a transport error with the status recorded.
func FromResponse(status int, body []byte) *AppError {
	var payload serverBody
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return &AppError{Message: payload.Message, Domain: true, Status: status}
	}
	return &AppError{
		Domain: false,
		Status: status,
		Err:    fmt.Errorf("server returned status %d", status),
	}
}

// Normalize converts any error into an AppError. Errors that are already
// normalized pass through untouched; everything else (connection failures,
// timeouts, decode errors) becomes a transport error.
func Normalize(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Domain: false, Err: err}
}

// Display maps an error to the text a screen should show: the server's
// message verbatim for domain errors, the caller's fallback for anything
// else. A nil error yields the empty string.
func Display(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if appErr := Normalize(err); appErr.Domain {
		return appErr.Message
	}
	return fallback
}

// IsDomain reports whether err normalizes to a server-declared domain error.
func IsDomain(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Domain
}
