package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists           = errors.New("already exists")
	ErrNotFound                = errors.New("not found")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrForbidden               = errors.New("forbidden")
	ErrRequired                = errors.New("required")
	ErrInvalidQuantity         = errors.New("invalid quantity")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidRole             = errors.New("invalid role")
	ErrEmptyEvent              = errors.New("delivery event has no quantity, payment or note")
	ErrMissingDate             = errors.New("delivery event date is missing")
	ErrOverDelivery            = errors.New("delivered quantity exceeds ordered quantity")
	ErrSelfDelete              = errors.New("cannot delete own account")
	ErrDispatcherNotConfigured = errors.New("alert dispatcher is not configured")
)

// ValidationError reports invalid user input for a named field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Invalid builds a ValidationError for field.
func Invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// DispatchError reports that an alert could not be delivered.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string { return "dispatch alert: " + e.Err.Error() }

func (e *DispatchError) Unwrap() error { return e.Err }

// PersistenceError reports a failed read or write against the store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

// ImportFormatError reports a spreadsheet that could not be read.
type ImportFormatError struct {
	Err error
}

func (e *ImportFormatError) Error() string { return "unreadable spreadsheet: " + e.Err.Error() }

func (e *ImportFormatError) Unwrap() error { return e.Err }
