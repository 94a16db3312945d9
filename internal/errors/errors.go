// Package errors provides typed errors for Cryptbook client operations.
// This enables callers to use errors.Is() and errors.As() for specific error handling.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error conditions.
// Use errors.Is(err, errors.ErrMetadataNotFound) to check for specific errors.
var (
	// Submission errors
	ErrValidationFailed = errors.New("required fields are empty")

	// Intake errors
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds size limit")
	ErrNotAFile        = errors.New("not a regular file")

	// Metadata errors
	ErrMetadataNotFound = errors.New("password book not found")
	ErrEmptyID          = errors.New("password book id is empty")
	ErrInvalidID        = errors.New("password book id is not a valid path segment")
	ErrInvalidResponse  = errors.New("invalid metadata response")

	// Platform errors
	ErrClipboardDenied = errors.New("clipboard write denied")
)

// ValidationError represents an input validation error.
// Fields lists every field that failed, in form order.
type ValidationError struct {
	Fields  []string // Field names that failed validation
	Message string   // Human-readable error message
	Err     error    // Sentinel cause
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation: %s", e.Message)
	}
	return fmt.Sprintf("validation: %s: %s", strings.Join(e.Fields, ", "), e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for a single field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Fields: []string{field}, Message: message, Err: err}
}

// FileError represents an error while staging a local file.
type FileError struct {
	Op   string // Operation: "stat", "open", "read", "sniff"
	Path string // File path
	Err  error  // Underlying error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(op, path string, err error) *FileError {
	return &FileError{Op: op, Path: path, Err: err}
}

// FetchError represents a failed call to the password book backend.
type FetchError struct {
	ID     string // Password book id
	Status int    // HTTP status, 0 if the request never completed
	Err    error  // Underlying error
}

func (e *FetchError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("fetch %s: status %d: %v", e.ID, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("fetch %s: status %d", e.ID, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("fetch %s: %v", e.ID, e.Err)
	default:
		return fmt.Sprintf("fetch %s failed", e.ID)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(id string, status int, err error) *FetchError {
	return &FetchError{ID: id, Status: status, Err: err}
}

// Is checks if target matches any of our sentinel errors.
// This is a convenience function for common error checks.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsNotFound checks if the error reports an unknown password book.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMetadataNotFound)
}

// IsValidation checks if the error is any kind of input rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
