// Package errors provides centralized error definitions and error handling
// utilities for the papyru2 file-lifecycle engine. It defines domain-specific
// errors, semantic error types, error constructors with context wrapping, and
// error classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific subsystems:
//   - WriteError: a failed atomic write, tagged with the stage that failed
//   - DispatchError: errors related to the filesystem command dispatcher
//
// Semantic errors represent common error conditions:
//   - NotFoundError: a note file that no longer exists
//   - ValidationError: invalid input (a malformed path, an empty request)
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewWriteError("sync temp", path, baseErr)
//
//	// Semantic error
//	err := errors.NewNotFoundError("note", path)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrWorkerTerminated) { ... }
//
//	var writeErr *errors.WriteError
//	if errors.As(err, &writeErr) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Note lifecycle sentinel errors
var (
	// ErrNoteNotFound indicates that the note being renamed or saved no
	// longer exists on disk.
	ErrNoteNotFound = New("note file not found")
	// ErrNoteExists indicates that the resolved note path was created by
	// someone else between resolution and exclusive creation.
	ErrNoteExists = New("note file already exists")
	// ErrInvalidPath indicates a path with no parent directory or file name.
	// This is an environment or programming defect, never expected in normal
	// operation.
	ErrInvalidPath = New("invalid note path")
	// ErrInvalidPayload indicates an autosave payload that failed its
	// encode/decode round-trip, guarding against representation drift.
	ErrInvalidPayload = New("invalid autosave payload")
)

// Dispatcher sentinel errors
var (
	// ErrWorkerTerminated indicates that the dispatcher's worker goroutine
	// exited before delivering a response. Every current and future caller
	// receives this rather than blocking forever.
	ErrWorkerTerminated = New("dispatcher worker terminated before sending response")
)

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// Atomic write stages, used as the Stage of a WriteError.
const (
	StageCreateTemp    = "create temp"
	StageWriteTemp     = "write temp"
	StageSyncTemp      = "sync temp"
	StageReplaceTarget = "replace target"
)

// WriteError represents a failed atomic write. Stage records which step of
// the temp-then-replace sequence failed; CleanupErr records a secondary
// failure removing the orphaned temp file after a failed replace.
//
// Example:
//
//	err := errors.NewWriteError(errors.StageReplaceTarget, path, baseErr).WithCleanupErr(rmErr)
type WriteError struct {
	Stage      string
	Path       string
	CleanupErr error
	cause      error
}

// NewWriteError creates a new WriteError for the given stage and target path.
func NewWriteError(stage, path string, cause error) *WriteError {
	return &WriteError{
		Stage: stage,
		Path:  path,
		cause: cause,
	}
}

// WithCleanupErr records a secondary temp-file cleanup failure.
func (e *WriteError) WithCleanupErr(cleanupErr error) *WriteError {
	e.CleanupErr = cleanupErr
	return e
}

// Error returns the formatted error message.
func (e *WriteError) Error() string {
	msg := fmt.Sprintf("atomic write failed (%s): %v", e.Stage, e.cause)
	if e.CleanupErr != nil {
		msg = fmt.Sprintf("%s; cleanup temp failed: %v", msg, e.CleanupErr)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *WriteError) Is(target error) bool {
	if _, ok := target.(*WriteError); ok {
		return true
	}
	return errors.Is(e.cause, target)
}

// DispatchError represents errors related to the filesystem command
// dispatcher, carrying the command kind and envelope ID for correlation.
type DispatchError struct {
	Command    string
	EnvelopeID string
	cause      error
}

// NewDispatchError creates a new DispatchError.
func NewDispatchError(command string, cause error) *DispatchError {
	return &DispatchError{
		Command: command,
		cause:   cause,
	}
}

// WithEnvelopeID adds the command envelope ID to the error context.
func (e *DispatchError) WithEnvelopeID(id string) *DispatchError {
	e.EnvelopeID = id
	return e
}

// Error returns the formatted error message.
func (e *DispatchError) Error() string {
	prefix := "dispatch error"
	switch {
	case e.Command != "" && e.EnvelopeID != "":
		prefix = fmt.Sprintf("dispatch error [command=%s, envelope=%s]", e.Command, e.EnvelopeID)
	case e.Command != "":
		prefix = fmt.Sprintf("dispatch error [command=%s]", e.Command)
	}
	return fmt.Sprintf("%s: %v", prefix, e.cause)
}

// Unwrap returns the underlying error.
func (e *DispatchError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *DispatchError) Is(target error) bool {
	if _, ok := target.(*DispatchError); ok {
		return true
	}
	return errors.Is(e.cause, target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("note", "/docs/2026/02/28/hello.txt")
//	fmt.Println(err) // "note '/docs/2026/02/28/hello.txt' not found"
type NotFoundError struct {
	ResourceType string
	ResourceID   string
	cause        error
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Unwrap returns the underlying error.
func (e *NotFoundError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	if target == ErrNoteNotFound {
		return true
	}
	return errors.Is(e.cause, target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("autosave path has no parent directory").WithField("path")
type ValidationError struct {
	Field string
	Value any
	msg   string
	cause error
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{msg: message}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	prefix := "validation error"
	switch {
	case e.Field != "" && e.Value != nil:
		prefix = fmt.Sprintf("validation error [field=%s, value=%v]", e.Field, e.Value)
	case e.Field != "":
		prefix = fmt.Sprintf("validation error [field=%s]", e.Field)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.msg)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if target == ErrInvalidPath {
		return true
	}
	return errors.Is(e.cause, target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsNotFound returns true if the error indicates a missing note file, in any
// of its representations.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var notFound *NotFoundError
	return As(err, &notFound) || Is(err, ErrNoteNotFound)
}

// IsInvalidInput returns true if the error indicates malformed input rather
// than an I/O failure.
func IsInvalidInput(err error) bool {
	if err == nil {
		return false
	}
	var validation *ValidationError
	return As(err, &validation) || Is(err, ErrInvalidPath)
}

// IsWorkerTerminated returns true if the error means the dispatcher worker
// died and the engine can no longer execute filesystem commands.
func IsWorkerTerminated(err error) bool {
	return Is(err, ErrWorkerTerminated)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to create note")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to rename %s", path)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
