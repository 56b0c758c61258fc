package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced in the JSON error envelope.
const (
	CodeValidation           = "VALIDATION_FAILED"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodeMissingCredential    = "MISSING_CREDENTIAL"
	CodeInvalidCredential    = "INVALID_CREDENTIAL"
	CodeCredentialRevoked    = "CREDENTIAL_REVOKED"
	CodeNotPermitted         = "NOT_PERMITTED"
	CodeLedgerUnavailable    = "LEDGER_UNAVAILABLE"
	CodeAuthorityRejected    = "AUTHORITY_REJECTED"
	CodeAuthorityUnavailable = "AUTHORITY_UNAVAILABLE"
	CodeInternal             = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
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

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// Wrap attaches the underlying cause without exposing it to clients.
func (e *DomainError) Wrap(err error) *DomainError {
	e.Err = err
	return e
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, details)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

// NewUnauthorized reports a 401 with the given code.
func NewUnauthorized(code, message string) *DomainError {
	return NewDomainError(code, message, http.StatusUnauthorized, nil)
}

// NewForbidden reports a 403 with the given code.
func NewForbidden(code, message string) *DomainError {
	return NewDomainError(code, message, http.StatusForbidden, nil)
}

func NewServiceUnavailable(code, message string) *DomainError {
	return NewDomainError(code, message, http.StatusServiceUnavailable, nil)
}

func NewBadGateway(code, message string) *DomainError {
	return NewDomainError(code, message, http.StatusBadGateway, nil)
}

func NewInternalError(err error) *DomainError {
	return NewDomainError(CodeInternal, "internal server error", http.StatusInternalServerError, nil).Wrap(err)
}

// ToDomainError converts generic errors to DomainError. Errors that are not
// already a DomainError become opaque internal errors.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewInternalError(err)
}
