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
	ErrCancelled    ErrorCode = "CANCELLED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Fatal pipeline errors
	ErrStagingFailed  ErrorCode = "STAGING_FAILED"
	ErrArchiveExtract ErrorCode = "ARCHIVE_EXTRACT"
	ErrArchiveCreate  ErrorCode = "ARCHIVE_CREATE"
	ErrMergeFailed    ErrorCode = "MERGE_FAILED"
	ErrOutputMissing  ErrorCode = "OUTPUT_MISSING"
	ErrPipelineFault  ErrorCode = "PIPELINE_FAULT"

	// Isolated errors, collected as warnings
	ErrAssetCopy  ErrorCode = "ASSET_COPY"
	ErrPathEscape ErrorCode = "PATH_ESCAPE"
	ErrAppFetch   ErrorCode = "APP_FETCH"
	ErrAppExtract ErrorCode = "APP_EXTRACT"
)

// PackagerError represents a structured error with code and details
type PackagerError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PackagerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PackagerError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PackagerError) Is(target error) bool {
	var targetErr *PackagerError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PackagerError with the given code and message
func New(code ErrorCode, message string) *PackagerError {
	return &PackagerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PackagerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PackagerError {
	return &PackagerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PackagerError
func Wrap(err error, code ErrorCode, message string) *PackagerError {
	if err == nil {
		return nil
	}
	return &PackagerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PackagerError {
	if err == nil {
		return nil
	}
	return &PackagerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PackagerError) WithDetail(key string, value interface{}) *PackagerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pkgErr *PackagerError
	if errors.As(err, &pkgErr) {
		return pkgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PackagerError
func GetErrorCode(err error) ErrorCode {
	var pkgErr *PackagerError
	if errors.As(err, &pkgErr) {
		return pkgErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PackagerError
func GetErrorDetails(err error) map[string]interface{} {
	var pkgErr *PackagerError
	if errors.As(err, &pkgErr) {
		return pkgErr.Details
	}
	return nil
}

// IsFatal reports whether a code aborts a packaging run. Asset and
// application level codes are isolated and only reported as warnings.
func IsFatal(code ErrorCode) bool {
	switch code {
	case ErrAssetCopy, ErrPathEscape, ErrAppFetch, ErrAppExtract:
		return false
	}
	return true
}

// LegacyCode maps an error onto the integer failure codes older callers
// expect: 1 when staging failed, -1 when the output archive is missing
// and 0 for any other fault.
func LegacyCode(err error) int {
	switch GetErrorCode(err) {
	case ErrStagingFailed:
		return 1
	case ErrOutputMissing:
		return -1
	default:
		return 0
	}
}
