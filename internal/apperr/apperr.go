package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidArgument  = "INVALID_ARGUMENT"
	CodeInvalidState     = "INVALID_STATE"
	CodeGenerationFailed = "GENERATION_FAILED"
	CodeUnavailable      = "UNAVAILABLE"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInternal         = "INTERNAL_ERROR"
)

// Error is an application error carrying a stable code, a human-readable
// message, and an optional wrapped cause.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to an HTTP response status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeInvalidState:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeGenerationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NotFound reports a missing resource, e.g. NotFound("quest", questID).
func NotFound(resource string, id any) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
	}
}

// InvalidArgument reports a request the caller can fix.
func InvalidArgument(message string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: message}
}

// InvalidState reports an operation applied to a resource in the wrong
// lifecycle state (claiming an unfinished quest, resubmitting a quiz).
func InvalidState(message string) *Error {
	return &Error{Code: CodeInvalidState, Message: message}
}

// GenerationFailed reports unusable output from the content generator.
func GenerationFailed(err error) *Error {
	return &Error{
		Code:    CodeGenerationFailed,
		Message: "content generation produced an unusable result",
		Err:     err,
	}
}

// Unavailable reports a transient upstream failure; the caller may retry
// the whole request.
func Unavailable(err error) *Error {
	return &Error{
		Code:    CodeUnavailable,
		Message: "upstream service temporarily unavailable",
		Err:     err,
	}
}

// Unauthorized reports a missing or invalid credential.
func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

// Internal wraps an unexpected error.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "internal server error", Err: err}
}

// Is reports whether err is an application error with the given code.
func Is(err error, code string) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
