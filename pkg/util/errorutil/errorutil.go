package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Code is the machine-readable class of a DomainError.
type Code string

const (
	CodeValidation   Code = "VALIDATION_FAILED"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeInvalidState Code = "INVALID_STATE"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeRequest      Code = "REQUEST_FAILED"
)

// DomainError carries the HTTP status and client message of a failed operation.
// Details are rendered next to the message in the response body.
type DomainError struct {
	Code       Code
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// With returns a copy of e carrying the extra detail.
func (e *DomainError) With(key string, value any) *DomainError {
	cp := *e
	cp.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	cp.Details[key] = value
	return &cp
}

// New constructs a DomainError with an explicit status.
func New(code Code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

func NewValidationError(message string, details map[string]any) error {
	return &DomainError{Code: CodeValidation, Message: message, HTTPStatus: http.StatusBadRequest, Details: details}
}

// NewNotFound reports a missing resource as "<resource> not found".
func NewNotFound(resource string, details map[string]any) error {
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbidden(message string) error {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewConflict(message string, details map[string]any) error {
	return &DomainError{Code: CodeConflict, Message: message, HTTPStatus: http.StatusConflict, Details: details}
}

// NewInvalidState reports an operation that the entity's current state does not allow.
func NewInvalidState(message string) error {
	return New(CodeInvalidState, message, http.StatusBadRequest)
}

func NewInternalError(err error) error {
	internal := New(CodeInternal, "internal server error", http.StatusInternalServerError)
	internal.Err = err
	return internal
}

// IsCode reports whether err is a DomainError carrying code.
func IsCode(err error, code Code) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// ToDomainError normalizes err for rendering. Fiber errors keep their status;
// anything unrecognized becomes an internal error wrapping err.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return New(codeForStatus(fiberErr.Code), fiberErr.Message, fiberErr.Code)
	}
	internal := New(CodeInternal, "internal server error", http.StatusInternalServerError)
	internal.Err = err
	return internal
}

func codeForStatus(status int) Code {
	switch status {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	}
	if status >= http.StatusInternalServerError {
		return CodeInternal
	}
	return CodeRequest
}
