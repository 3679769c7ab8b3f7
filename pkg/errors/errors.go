// Package errors provides custom error types for the application.
// It defines domain-specific errors with error codes so callers can tell
// validation failures apart from I/O and network failures.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents application error codes
type ErrorCode string

// Error codes for different error categories
const (
	// General errors (1xxx)
	ErrCodeInternal   ErrorCode = "E1000"
	ErrCodeValidation ErrorCode = "E1001"

	// Content validation errors (2xxx)
	ErrCodeInvalidColor   ErrorCode = "E2001"
	ErrCodeShape          ErrorCode = "E2002"
	ErrCodeMissingField   ErrorCode = "E2003"
	ErrCodeNotInitialized ErrorCode = "E2004"

	// I/O errors (5xxx)
	ErrCodeIO        ErrorCode = "E5001"
	ErrCodeDirectory ErrorCode = "E5002"
	ErrCodeNetwork   ErrorCode = "E5003"

	// Configuration errors (6xxx)
	ErrCodeConfigNotFound ErrorCode = "E6001"
	ErrCodeConfigInvalid  ErrorCode = "E6002"
	ErrCodeConfigParse    ErrorCode = "E6003"
)

// Exit codes for command line failures
const (
	ExitCodeGeneric    = 1
	ExitCodeValidation = 2
	ExitCodeIO         = 3
	ExitCodeConfig     = 4
)

// AppError represents an application-level error with code and context
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
	Details any       `json:"details,omitempty"`
}

// ColorDetails is attached to invalid color errors
type ColorDetails struct {
	Value    string   `json:"value"`
	Accepted []string `json:"accepted"`
}

// MissingFieldDetails is attached to missing field errors
type MissingFieldDetails struct {
	Fields []string `json:"fields"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for the error
func (e *AppError) ExitCode() int {
	switch e.Code {
	case ErrCodeValidation, ErrCodeInvalidColor, ErrCodeShape, ErrCodeMissingField, ErrCodeNotInitialized:
		return ExitCodeValidation
	case ErrCodeIO, ErrCodeDirectory, ErrCodeNetwork:
		return ExitCodeIO
	case ErrCodeConfigNotFound, ErrCodeConfigInvalid, ErrCodeConfigParse:
		return ExitCodeConfig
	default:
		return ExitCodeGeneric
	}
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// Common error constructors for convenience

// ErrInternal creates an internal error
func ErrInternal(message string, err error) *AppError {
	return Wrap(ErrCodeInternal, message, err)
}

// ErrValidation creates a generic validation error
func ErrValidation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// ErrInvalidColor creates an error for a color outside the accepted set
func ErrInvalidColor(value string, accepted []string) *AppError {
	return New(ErrCodeInvalidColor,
		fmt.Sprintf("invalid color %q, valid colors are %s", value, strings.Join(accepted, ", "))).
		WithDetails(ColorDetails{Value: value, Accepted: accepted})
}

// ErrShape creates an error for an argument with the wrong arity or type
func ErrShape(message string) *AppError {
	return New(ErrCodeShape, message)
}

// ErrMissingField creates an error naming the required keys that are absent
func ErrMissingField(fields ...string) *AppError {
	return New(ErrCodeMissingField, "missing required field(s): "+strings.Join(fields, ", ")).
		WithDetails(MissingFieldDetails{Fields: fields})
}

// ErrNotInitialized creates an error for a feature used without its enabling toggle
func ErrNotInitialized(feature, toggle string) *AppError {
	return New(ErrCodeNotInitialized,
		fmt.Sprintf("%s is not initialized, set %s when creating the report", feature, toggle))
}

// ErrIO creates a file I/O error
func ErrIO(message string, err error) *AppError {
	return Wrap(ErrCodeIO, message, err)
}

// ErrDirectory creates an error for a path that cannot be used as a directory
func ErrDirectory(path string, err error) *AppError {
	return Wrap(ErrCodeDirectory, "unusable directory "+path, err)
}

// ErrNetwork creates an error for a failed remote fetch
func ErrNetwork(url string, err error) *AppError {
	return Wrap(ErrCodeNetwork, "failed to fetch "+url, err)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError attempts to convert an error to AppError, looking through wrapping
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// IsCode reports whether err, or any error it wraps, is an AppError with the given code
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// ExitCode returns the exit code for any error, defaulting to ExitCodeGeneric
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.ExitCode()
	}
	return ExitCodeGeneric
}
