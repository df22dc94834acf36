package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
	ErrConflict         = errors.New("conflict")
	ErrInvalidReference = errors.New("invalid reference")
	ErrUnavailable      = errors.New("unavailable")
	ErrTimeout          = errors.New("request timed out")
	ErrUnexpected       = errors.New("unexpected error")
)

// Field-level validation messages shared by every input payload.
const (
	MsgEmpty   = "can not be empty"
	MsgTooLong = "over text length"
)

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

// Error lists the failing fields in name order so the message is stable.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, field := range names {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError reports that no entity of the given resource kind has the ID.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// DuplicateError reports a uniqueness violation. ID is the identifier of the
// entity that already holds the unique value.
type DuplicateError struct {
	Resource string
	ID       int64
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists with id %d", e.Resource, e.ID)
}

func (e *DuplicateError) Unwrap() error {
	return ErrConflict
}

// InvalidReferenceError reports that an input referenced an entity that does
// not exist, for example an unknown label id inside a todo update.
type InvalidReferenceError struct {
	Resource string
	ID       int64
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("referenced %s %d does not exist", e.Resource, e.ID)
}

func (e *InvalidReferenceError) Unwrap() error {
	return ErrInvalidReference
}

// UnexpectedError wraps a storage failure that has no domain meaning.
// Message carries the driver-level text; Err keeps the original chain.
type UnexpectedError struct {
	Message string
	Err     error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnexpected.Error(), e.Message)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *UnexpectedError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnexpected}
	}
	return []error{ErrUnexpected, e.Err}
}

// Unexpected wraps err as an *UnexpectedError. A nil err yields nil.
func Unexpected(err error) error {
	if err == nil {
		return nil
	}
	return &UnexpectedError{Message: err.Error(), Err: err}
}
