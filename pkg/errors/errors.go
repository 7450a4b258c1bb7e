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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Manifest errors
	ErrManifestLoad      ErrorCode = "MANIFEST_LOAD"
	ErrMalformedManifest ErrorCode = "MALFORMED_MANIFEST"

	// Resolution errors
	ErrUnknownExtrasGroup    ErrorCode = "UNKNOWN_EXTRAS_GROUP"
	ErrConflictingConstraint ErrorCode = "CONFLICTING_VERSION_CONSTRAINT"

	// Plan errors
	ErrInvalidRuntimeParameter ErrorCode = "INVALID_RUNTIME_PARAMETER"
	ErrInconsistentPlan        ErrorCode = "INCONSISTENT_PLAN"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// LabError represents a structured error with code and details
type LabError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LabError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LabError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LabError) Is(target error) bool {
	var targetErr *LabError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LabError with the given code and message
func New(code ErrorCode, message string) *LabError {
	return &LabError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LabError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LabError {
	return &LabError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LabError
func Wrap(err error, code ErrorCode, message string) *LabError {
	if err == nil {
		return nil
	}
	return &LabError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LabError {
	if err == nil {
		return nil
	}
	return &LabError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LabError) WithDetail(key string, value interface{}) *LabError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *LabError) WithDetails(details map[string]interface{}) *LabError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var labErr *LabError
	if errors.As(err, &labErr) {
		return labErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LabError
func GetErrorCode(err error) ErrorCode {
	var labErr *LabError
	if errors.As(err, &labErr) {
		return labErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LabError
func GetErrorDetails(err error) map[string]interface{} {
	var labErr *LabError
	if errors.As(err, &labErr) {
		return labErr.Details
	}
	return nil
}
