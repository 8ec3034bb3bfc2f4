// Package errors defines the sentinel error kinds shared by the index
// builder and the query engine, plus an AppError wrapper carrying an HTTP
// status for the search daemon's API surface.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Build-time error kinds. Any of these aborts the whole indexing run.
var (
	ErrDuplicateDocID    = errors.New("duplicate docID")
	ErrMissingDocID      = errors.New("missing docID")
	ErrInsufficientZones = errors.New("document must contain a docID and at least one content zone")
	ErrEmptyZone         = errors.New("zone content cannot be empty")
)

// Query-time error kinds. Any of these aborts the whole query run.
var (
	ErrIndexFilesNotFound = errors.New("index files not found")
	ErrMalformedPhrase    = errors.New("malformed phrase delimiter")
	ErrInvalidArguments   = errors.New("invalid arguments")
)

// AppError wraps a sentinel error with a human message and an HTTP status.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError from a sentinel, status code, and message.
func New(sentinel error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Newf is New with Printf-style message formatting.
func Newf(sentinel error, statusCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:        sentinel,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}

// HTTPStatusCode maps an error to the status the HTTP surface should return.
func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrIndexFilesNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMalformedPhrase),
		errors.Is(err, ErrInvalidArguments),
		errors.Is(err, ErrDuplicateDocID),
		errors.Is(err, ErrMissingDocID),
		errors.Is(err, ErrInsufficientZones),
		errors.Is(err, ErrEmptyZone):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
