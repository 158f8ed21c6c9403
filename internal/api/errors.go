package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes reported by the client.
const (
	CodeNetwork      = "NETWORK_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeServer       = "SERVER_ERROR"
	CodeUnknown      = "UNKNOWN_ERROR"
)

// Error is the normalized shape every caller sees. Status is zero when no
// response was received.
type Error struct {
	Code    string
	Message string
	Status  int
	cause   error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// IsUnauthorized reports whether err is a normalized 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNetwork reports whether err indicates that no response was received.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == CodeNetwork
}

func networkError(cause error) *Error {
	return &Error{Code: CodeNetwork, Message: "network error", cause: cause}
}

// statusError builds a normalized error from a response, preferring the
// backend-supplied message and code over the generic lookup.
func statusError(status int, message, code string) *Error {
	if code == "" {
		code = codeForStatus(status)
	}
	if message == "" {
		message = messageForStatus(status)
	}
	return &Error{Code: code, Message: message, Status: status}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusConflict:
		return CodeConflict
	}
	if status >= 500 {
		return CodeServer
	}
	return CodeUnknown
}

func messageForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "authentication required"
	case http.StatusForbidden:
		return "access denied"
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "invalid request"
	case http.StatusConflict:
		return "conflicting request"
	}
	if status >= 500 {
		return "server error"
	}
	return fmt.Sprintf("request failed with status %d", status)
}
