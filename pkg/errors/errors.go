package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCanceled     ErrorCode = "CANCELED"

	// Transform errors
	ErrPattern   ErrorCode = "PATTERN"
	ErrPath      ErrorCode = "PATH"
	ErrCollision ErrorCode = "COLLISION"
	ErrNotFound  ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrActionExecute ErrorCode = "ACTION_EXECUTE"
)

// TreemvError represents a structured error with code and details
type TreemvError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TreemvError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TreemvError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *TreemvError) Is(target error) bool {
	var targetErr *TreemvError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TreemvError with the given code and message
func New(code ErrorCode, message string) *TreemvError {
	return &TreemvError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TreemvError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TreemvError {
	return &TreemvError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TreemvError
func Wrap(err error, code ErrorCode, message string) *TreemvError {
	if err == nil {
		return nil
	}
	return &TreemvError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TreemvError {
	if err == nil {
		return nil
	}
	return &TreemvError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TreemvError) WithDetail(key string, value interface{}) *TreemvError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *TreemvError) WithDetails(details map[string]interface{}) *TreemvError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// PatternError reports a malformed source or destination specification.
func PatternError(spec string, format string, args ...interface{}) *TreemvError {
	return Newf(ErrPattern, "invalid pattern %q: %s", spec, fmt.Sprintf(format, args...)).
		WithDetail("spec", spec)
}

// PathError reports a computed destination that is empty or leaves the output root.
func PathError(source, dest, reason string) *TreemvError {
	return Newf(ErrPath, "invalid destination %q for %q: %s", dest, source, reason).
		WithDetail("source", source).
		WithDetail("dest", dest)
}

// CollisionError reports two distinct sources resolving to one destination.
func CollisionError(dest, first, second string) *TreemvError {
	return Newf(ErrCollision, "%q and %q both resolve to %q", first, second, dest).
		WithDetail("dest", dest).
		WithDetail("sources", []string{first, second})
}

// NotFoundError reports a source specification that matched nothing.
func NotFoundError(spec string) *TreemvError {
	return Newf(ErrNotFound, "source %q matched no entries", spec).
		WithDetail("spec", spec)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var treeErr *TreemvError
	if errors.As(err, &treeErr) {
		return treeErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TreemvError
func GetErrorCode(err error) ErrorCode {
	var treeErr *TreemvError
	if errors.As(err, &treeErr) {
		return treeErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TreemvError
func GetErrorDetails(err error) map[string]interface{} {
	var treeErr *TreemvError
	if errors.As(err, &treeErr) {
		return treeErr.Details
	}
	return nil
}
