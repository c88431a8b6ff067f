package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError so transports can map it to a status code.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindForbidden
	KindInvalidState
)

// Default error codes per kind.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeForbidden    = "FORBIDDEN"
	CodeInvalidState = "INVALID_STATE"
)

// DomainError is a business rule failure that is safe to report to the caller.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches another DomainError by code, so sentinels work with errors.Is
// even when the message differs.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCode returns a copy of the error carrying a more specific code.
func (e *DomainError) WithCode(code string) *DomainError {
	cp := *e
	cp.Code = code
	return &cp
}

// WithMessage returns a copy of the error with a different message.
func (e *DomainError) WithMessage(msg string) *DomainError {
	cp := *e
	cp.Message = msg
	return &cp
}

// NewValidationError creates an error for invalid input.
func NewValidationError(msg string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: CodeValidation, Message: msg}
}

// NewNotFoundError creates an error for a missing entity.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", entity, id),
	}
}

// NewConflictError creates an error for concurrent modification or duplicates.
func NewConflictError(msg string) *DomainError {
	return &DomainError{Kind: KindConflict, Code: CodeConflict, Message: msg}
}

// NewForbiddenError creates an error for an action the caller may not perform.
func NewForbiddenError(msg string) *DomainError {
	return &DomainError{Kind: KindForbidden, Code: CodeForbidden, Message: msg}
}

// NewInvalidStateError creates an error for a disallowed state transition.
func NewInvalidStateError(from, to string) *DomainError {
	return &DomainError{
		Kind:    KindInvalidState,
		Code:    CodeInvalidState,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

// AsDomainError extracts a DomainError from an error chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind reports whether err carries a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	de, ok := AsDomainError(err)
	return ok && de.Kind == kind
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsConflict reports whether err is a conflict domain error.
func IsConflict(err error) bool { return IsKind(err, KindConflict) }
