package service

import (
	"fmt"
	"strings"
)

// Field error types reported to clients.
const (
	ErrTypeRequired = "field_required"
	ErrTypeString   = "type_error.str"
	ErrTypeEmail    = "value_error.email"
	ErrTypeEmpty    = "value_error.empty"
	ErrTypeTooLong  = "value_error.too_long"
	ErrTypeJSON     = "value_error.json"
)

// FieldError describes why one input field was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ValidationError is returned when a submission is malformed. Nothing has
// been persisted when it is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, typ, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Type: typ, Message: msg})
}

// Has reports whether field has already been rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Merge appends the errors of other for fields e does not already report.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for _, f := range other.Fields {
		if !e.Has(f.Field) {
			e.Fields = append(e.Fields, f)
		}
	}
}

// StorageError wraps a failure of the document store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
