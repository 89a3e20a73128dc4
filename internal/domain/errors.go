package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine errors
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindPersistence
	KindAdvisoryProvider
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindPersistence:
		return "PERSISTENCE"
	case KindAdvisoryProvider:
		return "ADVISORY_PROVIDER"
	default:
		return "UNKNOWN"
	}
}

// FieldError describes a single invalid field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the typed error returned by the commerce engine
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error for the given operation
func NewValidationError(op, message string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message, Fields: fields}
}

// NewPersistenceError wraps a failed write or read of the key-value store
func NewPersistenceError(op string, err error) *Error {
	return &Error{Kind: KindPersistence, Op: op, Message: "persistence failed", Err: err}
}

// NewAdvisoryProviderError wraps a failed call to the advisory text provider
func NewAdvisoryProviderError(op string, err error) *Error {
	return &Error{Kind: KindAdvisoryProvider, Op: op, Message: "advisory provider failed", Err: err}
}

// IsKind reports whether err is an engine error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return IsKind(err, KindValidation)
}
