package common

import "fmt"

// Error codes used in the response envelope
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodePersistence   = "PERSISTENCE_ERROR"
	CodeExportFailure = "EXPORT_FAILURE"
)

// ValidationError reports an empty or invalid required field. The operation
// was aborted before any mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports a referenced storage, unit or item that does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// PersistenceError wraps a store failure. Callers may retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// ExportFailure reports that report output could not be turned into a file.
// Source entities are untouched.
type ExportFailure struct {
	Stage string // render, upload, sign
	Err   error
}

func (e *ExportFailure) Error() string {
	return fmt.Sprintf("export failed during %s: %v", e.Stage, e.Err)
}

func (e *ExportFailure) Unwrap() error { return e.Err }

func NewExportFailure(stage string, err error) *ExportFailure {
	return &ExportFailure{Stage: stage, Err: err}
}
