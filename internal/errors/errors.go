// Package errors provides the typed error taxonomy shared by the catalog,
// the quote engine and the adapters.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeValidation indicates an out-of-range or missing input field
	TypeValidation Type = "VALIDATION_ERROR"

	// TypeServiceNotFound indicates the selected service is not in the catalog
	TypeServiceNotFound Type = "SERVICE_NOT_FOUND"

	// TypeInvalidService indicates a custom service failed the shape check
	TypeInvalidService Type = "INVALID_SERVICE"

	// TypeNotFound indicates a record (custom service, client) not found
	TypeNotFound Type = "NOT_FOUND"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeStorage indicates a persistence error
	TypeStorage Type = "STORAGE_ERROR"

	// TypeNetwork indicates a network error
	TypeNetwork Type = "NETWORK_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, msg)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// OfType checks if the error is of a specific type
func (e *Error) OfType(t Type) bool {
	return e.Type == t
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
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error, or anything it wraps, is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// FieldOf returns the offending field of a validation error, or "".
func FieldOf(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Field
	}
	return ""
}

// Validation creates a validation error for a named field
func Validation(field, message string) *Error {
	return &Error{
		Type:    TypeValidation,
		Field:   field,
		Message: message,
	}
}

// Validationf creates a formatted validation error for a named field
func Validationf(field, format string, args ...interface{}) *Error {
	return Validation(field, fmt.Sprintf(format, args...))
}

// ServiceNotFound creates a service-not-found error
func ServiceNotFound(name string) *Error {
	return Newf(TypeServiceNotFound, "service not found: %q", name).WithContext("service", name)
}

// InvalidService creates an invalid-service error
func InvalidService(message string) *Error {
	return New(TypeInvalidService, message)
}

// NotFound creates a not found error
func NotFound(resourceType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resourceType, identifier)
}

// Config creates a config error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Storage creates a storage error
func Storage(message string, cause error) *Error {
	return Wrap(TypeStorage, message, cause)
}

// Network creates a network error
func Network(message string, cause error) *Error {
	return Wrap(TypeNetwork, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool { return IsType(err, TypeValidation) }

// IsServiceNotFound reports whether err is a service-not-found error
func IsServiceNotFound(err error) bool { return IsType(err, TypeServiceNotFound) }

// IsInvalidService reports whether err is an invalid-service error
func IsInvalidService(err error) bool { return IsType(err, TypeInvalidService) }

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool { return IsType(err, TypeNotFound) }
