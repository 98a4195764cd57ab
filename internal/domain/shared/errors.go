package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Reason narrows a FORBIDDEN error down to the rule that rejected the call
	Reason string `json:"reason,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped and re-messaged errors still
// compare equal to the sentinels below
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes
const (
	CodeNotFound            = "NOT_FOUND"
	CodeBadRequest          = "BAD_REQUEST"
	CodeForbidden           = "FORBIDDEN"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInternal            = "INTERNAL_ERROR"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrBadRequest          = NewDomainError(CodeBadRequest, "Invalid input provided")
	ErrForbidden           = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "Authentication required")
	ErrInternal            = NewDomainError(CodeInternal, "Internal error")
)

// NewNotFoundError creates a NOT_FOUND error with a caller-facing message
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewBadRequestError creates a BAD_REQUEST error with a caller-facing message
func NewBadRequestError(message string) *DomainError {
	return NewDomainError(CodeBadRequest, message)
}

// NewForbiddenError creates a FORBIDDEN error tagged with the violated rule
func NewForbiddenError(reason, message string) *DomainError {
	return &DomainError{
		Code:    CodeForbidden,
		Message: message,
		Reason:  reason,
	}
}

// NewUnauthorizedError creates an UNAUTHORIZED error with a caller-facing message
func NewUnauthorizedError(message string) *DomainError {
	return NewDomainError(CodeUnauthorized, message)
}

// IsNotFound reports whether err is a NOT_FOUND domain error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsForbidden reports whether err is a FORBIDDEN domain error
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsBadRequest reports whether err is a BAD_REQUEST domain error
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

// ForbiddenReason returns the rule tag of a FORBIDDEN error, or "" for any other error
func ForbiddenReason(err error) string {
	var de *DomainError
	if errors.As(err, &de) && de.Code == CodeForbidden {
		return de.Reason
	}
	return ""
}
