// errors/errors.go
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error represents a structured email address error with code, message, and
// the input that caused it.
type Error struct {
	// Code is a machine-readable error kind (e.g., "invalid_format", "decode_error")
	Code string `json:"code" yaml:"code"`

	// Message is a human-readable error message
	Message string `json:"message" yaml:"message"`

	// Reason narrows Code to a specific failure (e.g., "empty_local"). Optional.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Input is the offending text, when there is one
	Input string `json:"input,omitempty" yaml:"input,omitempty"`

	// Details contains additional error context (optional)
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`

	// Err is the underlying error (not included in JSON)
	Err error `json:"-" yaml:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. A target with an
// empty Reason matches every reason of its Code, so the package sentinels
// (ErrInvalidFormat, ...) match any concrete error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// WithDetails adds details to the error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// WithDetail adds a single detail to the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Wrap wraps an underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// SQLState returns the PostgreSQL SQLSTATE a database host should raise for
// this error kind.
func (e *Error) SQLState() string {
	switch e.Code {
	case CodeInvalidFormat:
		return SQLStateInvalidTextRepresentation
	case CodeCapacityExceeded:
		return SQLStateStringDataRightTruncation
	case CodeDecodeError:
		return SQLStateInvalidBinaryRepresentation
	default:
		return SQLStateInternalError
	}
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	type alias Error
	return json.Marshal(&struct {
		*alias
		SQLState string `json:"sqlstate"`
	}{
		alias:    (*alias)(e),
		SQLState: e.SQLState(),
	})
}

// New creates a new Error with code and message.
func New(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(err error, code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// From extracts an *Error from err if possible, or wraps it as an internal error.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{
		Code:    CodeInternalError,
		Message: "an internal error occurred",
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target.
// Re-exported from standard errors package for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// Re-exported from standard errors package for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors.
// Re-exported from standard errors package for convenience.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Error kinds.
const (
	CodeInvalidFormat    = "invalid_format"
	CodeCapacityExceeded = "capacity_exceeded"
	CodeDecodeError      = "decode_error"
	CodeInternalError    = "internal_error"
)

// PostgreSQL SQLSTATE codes used by SQLState.
const (
	SQLStateInvalidTextRepresentation   = "22P02"
	SQLStateStringDataRightTruncation   = "22001"
	SQLStateInvalidBinaryRepresentation = "22P03"
	SQLStateInternalError               = "XX000"
)

// Sentinels for errors.Is. Do not mutate.
var (
	ErrInvalidFormat    = &Error{Code: CodeInvalidFormat}
	ErrCapacityExceeded = &Error{Code: CodeCapacityExceeded}
	ErrDecode           = &Error{Code: CodeDecodeError}
)

// InvalidFormat creates an invalid_format error for input with the given reason.
func InvalidFormat(input, reason, message string) *Error {
	return &Error{
		Code:    CodeInvalidFormat,
		Message: message,
		Reason:  reason,
		Input:   input,
	}
}

// CapacityExceeded creates a capacity_exceeded error for the named field.
func CapacityExceeded(field, value string, limit int) *Error {
	return (&Error{
		Code:    CodeCapacityExceeded,
		Message: fmt.Sprintf("email address %s part exceeds %d bytes", field, limit),
		Input:   value,
	}).WithDetail("field", field).WithDetail("limit", limit).WithDetail("length", len(value))
}

// Decode creates a decode_error with the given message.
func Decode(message string) *Error {
	return New(CodeDecodeError, message)
}

// ValidationErrors holds failures for multiple inputs, e.g. one per line of a batch.
type ValidationErrors struct {
	Errors []ItemError `json:"errors" yaml:"errors"`
}

// ItemError represents a failure for one input in a batch.
type ItemError struct {
	Index int    `json:"index" yaml:"index"`
	Input string `json:"input" yaml:"input"`
	Err   *Error `json:"error" yaml:"error"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	first := v.Errors[0]
	if len(v.Errors) == 1 {
		return fmt.Sprintf("validation failed: item %d: %s", first.Index, first.Err.Message)
	}
	return fmt.Sprintf("validation failed: item %d: %s (and %d more)", first.Index, first.Err.Message, len(v.Errors)-1)
}

// Add records a failure for the input at index.
func (v *ValidationErrors) Add(index int, input string, err error) *ValidationErrors {
	v.Errors = append(v.Errors, ItemError{Index: index, Input: input, Err: From(err)})
	return v
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ErrOrNil returns v as an error if it holds any failures, nil otherwise.
func (v *ValidationErrors) ErrOrNil() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}

// NewValidationErrors creates a new ValidationErrors.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]ItemError, 0),
	}
}
