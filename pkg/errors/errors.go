// Package errors provides structured error types for flashback.
//
// Error codes separate the failure classes a caller must tell apart:
//   - integrity violations of the decoded movie, which halt an export
//     (DUPLICATE_CHARACTER, UNDEFINED_CHARACTER)
//   - input that could not be read at all (INVALID_INPUT)
//   - bad caller options (INVALID_MODE, INVALID_FORMAT)
//   - unexpected failures (INTERNAL_ERROR)
//
// Recoverable conditions (unsupported fills, unknown records) are logged by
// the packages that meet them and never surface as errors.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateCharacter, "character %d is already defined", id)
//	if errors.Is(err, errors.ErrCodeDuplicateCharacter) {
//	    // malformed movie
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Movie integrity errors
	ErrCodeDuplicateCharacter Code = "DUPLICATE_CHARACTER"
	ErrCodeUndefinedCharacter Code = "UNDEFINED_CHARACTER"

	// Input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidMode   Code = "INVALID_MODE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsIntegrity reports whether err is a movie integrity violation.
func IsIntegrity(err error) bool {
	switch GetCode(err) {
	case ErrCodeDuplicateCharacter, ErrCodeUndefinedCharacter:
		return true
	}
	return false
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
