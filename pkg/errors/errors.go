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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
	ErrConfigSave  ErrorCode = "CONFIG_SAVE"

	// Model errors
	ErrWorkspaceNotFound ErrorCode = "WORKSPACE_NOT_FOUND"
	ErrCategoryNotFound  ErrorCode = "CATEGORY_NOT_FOUND"
	ErrRepoNotFound      ErrorCode = "REPO_NOT_FOUND"
	ErrNotARepo          ErrorCode = "NOT_A_REPO"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrSymlinkRemove ErrorCode = "SYMLINK_REMOVE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrScan          ErrorCode = "SCAN"
)

// GroError represents a structured error with code and details
type GroError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *GroError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GroError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *GroError) Is(target error) bool {
	var targetErr *GroError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new GroError with the given code and message
func New(code ErrorCode, message string) *GroError {
	return &GroError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new GroError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *GroError {
	return &GroError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a GroError
func Wrap(err error, code ErrorCode, message string) *GroError {
	if err == nil {
		return nil
	}
	return &GroError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GroError {
	if err == nil {
		return nil
	}
	return &GroError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *GroError) WithDetail(key string, value interface{}) *GroError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var groErr *GroError
	if errors.As(err, &groErr) {
		return groErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a GroError
func GetErrorCode(err error) ErrorCode {
	var groErr *GroError
	if errors.As(err, &groErr) {
		return groErr.Code
	}
	return ErrUnknown
}
