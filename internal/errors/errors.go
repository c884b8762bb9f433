// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Kind identifies the category of error
type Kind string

const (
	// KindInvalidInput indicates malformed shipment input (negative
	// dimensions, zero quantity)
	KindInvalidInput Kind = "INVALID_INPUT"

	// KindConfigMissing indicates absent carrier configuration
	// (carrier, rate card, or zone config)
	KindConfigMissing Kind = "CONFIG_MISSING"

	// KindIneligible indicates a weight/dimension rule rejected the shipment
	KindIneligible Kind = "INELIGIBLE"

	// KindUnservedLocation indicates zone resolution failed on either end
	KindUnservedLocation Kind = "UNSERVED_LOCATION"

	// KindNoApplicableRate indicates the rate strategy found no matching
	// table entry
	KindNoApplicableRate Kind = "NO_APPLICABLE_RATE"

	// KindNotFound indicates a resource not found error
	KindNotFound Kind = "NOT_FOUND"

	// KindInternal indicates an internal error (corrupt configuration shape)
	KindInternal Kind = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Kind    Kind                   `json:"kind"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific kind
func (e *Error) Is(k Kind) bool {
	return e.Kind == k
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(kind Kind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsKind checks if an error is of a specific kind
func IsKind(err error, k Kind) bool {
	if e, ok := err.(*Error); ok {
		return e.Kind == k
	}
	return false
}

// KindOf returns the kind of a domain error, or KindInternal for
// any other error
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}

// InvalidInput creates an invalid input error
func InvalidInput(message string) *Error {
	return New(KindInvalidInput, message)
}

// ConfigMissing creates a configuration missing error
func ConfigMissing(what, carrierID string) *Error {
	return Newf(KindConfigMissing, "%s not configured for carrier %s", what, carrierID)
}

// Ineligible creates an ineligibility error
func Ineligible(reason string) *Error {
	return New(KindIneligible, reason)
}

// UnservedLocation creates an unserved location error
func UnservedLocation(side, place string) *Error {
	return Newf(KindUnservedLocation, "%s location not served: %s", side, place)
}

// NoApplicableRate creates a no applicable rate error
func NoApplicableRate(reason string) *Error {
	return New(KindNoApplicableRate, reason)
}

// NotFound creates a not found error
func NotFound(resourceType, identifier string) *Error {
	return Newf(KindNotFound, "%s not found: %s", resourceType, identifier)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(KindInternal, message, cause)
}
