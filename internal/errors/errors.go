// Package errors defines the typed failures surfaced by the search pipeline.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ValidationError signals bad user input, such as an empty search term.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is a ValidationError (even when wrapped).
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return stdErrors.As(err, &vErr)
}

// NetworkError represents a transport-level failure reaching the API.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is a NetworkError.
func IsNetworkError(err error) bool {
	var nErr *NetworkError
	return stdErrors.As(err, &nErr)
}

// TimeoutError represents a request that was aborted by the client-side deadline.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// IsTimeoutError reports whether err is a TimeoutError.
func IsTimeoutError(err error) bool {
	var tErr *TimeoutError
	return stdErrors.As(err, &tErr)
}

// ServerError represents a non-2xx HTTP response from the API.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned status %d", e.Status)
}

// NewServerError creates a ServerError carrying the HTTP status code.
func NewServerError(status int) *ServerError {
	return &ServerError{Status: status}
}

// IsServerError reports whether err is a ServerError.
func IsServerError(err error) bool {
	var sErr *ServerError
	return stdErrors.As(err, &sErr)
}

// ParseError represents a malformed or non-JSON response body.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is a ParseError.
func IsParseError(err error) bool {
	var pErr *ParseError
	return stdErrors.As(err, &pErr)
}

// EmptyResultError signals a query that succeeded but matched no usable
// records. Distinct from transport failure so callers can show a
// "no books found" message instead of a connectivity one.
type EmptyResultError struct {
	Term string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no books found for %q", e.Term)
}

// NewEmptyResultError creates an EmptyResultError for the given search term.
func NewEmptyResultError(term string) *EmptyResultError {
	return &EmptyResultError{Term: term}
}

// IsEmptyResultError reports whether err is an EmptyResultError.
func IsEmptyResultError(err error) bool {
	var eErr *EmptyResultError
	return stdErrors.As(err, &eErr)
}

// Kind is a coarse category the presentation layer maps to display copy.
type Kind int

const (
	// KindGeneric covers failures with no more specific category.
	KindGeneric Kind = iota
	// KindValidation covers bad user input.
	KindValidation
	// KindNetwork covers transport failures.
	KindNetwork
	// KindTimeout covers client-side deadline expiry.
	KindTimeout
	// KindServer covers non-2xx responses.
	KindServer
	// KindParse covers malformed response bodies.
	KindParse
	// KindEmpty covers searches that matched nothing.
	KindEmpty
)

// KindOf classifies err into a Kind, unwrapping as needed.
func KindOf(err error) Kind {
	switch {
	case IsValidationError(err):
		return KindValidation
	case IsTimeoutError(err):
		return KindTimeout
	case IsNetworkError(err):
		return KindNetwork
	case IsServerError(err):
		return KindServer
	case IsParseError(err):
		return KindParse
	case IsEmptyResultError(err):
		return KindEmpty
	default:
		return KindGeneric
	}
}
