package errors

import (
	"fmt"
	"net/http"
)

// Kind is a machine-readable error category returned to API clients.
// Frontends are expected to branch on the kind, not on the message text.
type Kind string

const (
	KindBadRequest      Kind = "bad_request"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindPayloadTooLarge Kind = "payload_too_large"
	KindUpstream        Kind = "upstream_unavailable"
	KindInternal        Kind = "internal_error"
)

// Kinder is implemented by errors that carry an API error kind.
type Kinder interface {
	Kind() Kind
	HTTPStatus() int
}

// BadRequestError represents malformed or missing client input,
// caught before any outbound call is made.
type BadRequestError struct {
	Field   string
	Message string
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(field, message string) *BadRequestError {
	return &BadRequestError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *BadRequestError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid request: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid request: %s", e.Message)
}

// Kind returns the API error kind
func (e *BadRequestError) Kind() Kind { return KindBadRequest }

// HTTPStatus returns the HTTP status for this error
func (e *BadRequestError) HTTPStatus() int { return http.StatusBadRequest }

// NotFoundError represents a resource lookup miss. Callers treat it as
// a valid outcome, not a failure.
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Kind returns the API error kind
func (e *NotFoundError) Kind() Kind { return KindNotFound }

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound }

// ConflictError represents a duplicate unique key on create.
type ConflictError struct {
	Resource string
	Message  string
}

// NewConflictError creates a new conflict error
func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// Kind returns the API error kind
func (e *ConflictError) Kind() Kind { return KindConflict }

// HTTPStatus returns the HTTP status for this error
func (e *ConflictError) HTTPStatus() int { return http.StatusConflict }

// PayloadTooLargeError represents a request payload over the configured cap.
type PayloadTooLargeError struct {
	MaxBytes int64
}

// NewPayloadTooLargeError creates a new payload too large error
func NewPayloadTooLargeError(maxBytes int64) *PayloadTooLargeError {
	return &PayloadTooLargeError{MaxBytes: maxBytes}
}

// Error implements the error interface
func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload exceeds maximum size of %d bytes", e.MaxBytes)
}

// Kind returns the API error kind
func (e *PayloadTooLargeError) Kind() Kind { return KindPayloadTooLarge }

// HTTPStatus returns the HTTP status for this error
func (e *PayloadTooLargeError) HTTPStatus() int { return http.StatusRequestEntityTooLarge }

// UpstreamError represents a backing service that is unreachable, errored,
// or timed out. The wrapped cause is logged but never sent to the browser.
type UpstreamError struct {
	Service string
	Err     error
}

// NewUpstreamError creates a new upstream error
func NewUpstreamError(service string, err error) *UpstreamError {
	return &UpstreamError{
		Service: service,
		Err:     err,
	}
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service unavailable: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s service unavailable", e.Service)
}

// Unwrap returns the wrapped error
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Kind returns the API error kind
func (e *UpstreamError) Kind() Kind { return KindUpstream }

// HTTPStatus returns the HTTP status for this error
func (e *UpstreamError) HTTPStatus() int { return http.StatusBadGateway }

// InternalError represents an unexpected failure inside the gateway itself.
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// Kind returns the API error kind
func (e *InternalError) Kind() Kind { return KindInternal }

// HTTPStatus returns the HTTP status for this error
func (e *InternalError) HTTPStatus() int { return http.StatusInternalServerError }
