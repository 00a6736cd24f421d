// Package errors provides standardized error handling for booktidy.
// It defines common error types, kind constants, and helper functions for
// consistent error creation, wrapping, and handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileExists
	RenameFailed
	InvalidPath
	// User input error kinds
	InvalidInput
	InvalidSelection
	// Contract error kinds
	PreconditionViolated
	// Database error kinds
	DatabaseOpenFailed
	DatabaseQueryFailed
	DatabaseOperationFailed
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// InputError represents errors caused by malformed user input. These are
// recovered locally by re-prompting and never propagate past the
// interactive layer.
type InputError struct {
	ApplicationError
	input string
}

// NewInputError creates a new input error
func NewInputError(msg string, input string, kind ErrorKind) *InputError {
	return &InputError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: kind,
		},
		input: input,
	}
}

// Error returns the input error message
func (e *InputError) Error() string {
	if e.input != "" {
		return fmt.Sprintf("%s: %q", e.msg, e.input)
	}
	return e.ApplicationError.Error()
}

// Input returns the offending input string
func (e *InputError) Input() string {
	return e.input
}

// DatabaseError represents errors related to the device metadata store
type DatabaseError struct {
	ApplicationError
	operation string
}

// NewDatabaseError creates a new database error
func NewDatabaseError(msg string, operation string, kind ErrorKind, err error) *DatabaseError {
	return &DatabaseError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		operation: operation,
	}
}

// Error returns the database error message
func (e *DatabaseError) Error() string {
	if e.operation != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: operation=%s: %v", e.msg, e.operation, e.err)
		}
		return fmt.Sprintf("%s: operation=%s", e.msg, e.operation)
	}
	return e.ApplicationError.Error()
}

// Operation returns the database operation associated with the error
func (e *DatabaseError) Operation() string {
	return e.operation
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// NewPreconditionError creates an error for a violated caller contract
func NewPreconditionError(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: PreconditionViolated,
	}
}

// IsInputError checks if the error is a user input error
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}

// IsDatabaseError checks if the error is a database error
func IsDatabaseError(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr)
}

// IsPrecondition checks if the error reports a violated caller contract
func IsPrecondition(err error) bool {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Kind() == PreconditionViolated
	}
	return false
}
