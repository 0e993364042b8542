// Package errors defines the application error taxonomy. Every failure the
// pipeline can surface carries one of these codes so callers can tell a
// network fault from a remote API error, a missing organization, a malformed
// response, or an exhausted page budget.
package errors

import (
	"errors"
	"fmt"
)

// ErrCode represents an error code
type ErrCode string

const (
	ErrCodeTransport     ErrCode = "TRANSPORT_ERROR"
	ErrCodeAPI           ErrCode = "API_ERROR"
	ErrCodeNotFound      ErrCode = "NOT_FOUND"
	ErrCodeParse         ErrCode = "PARSE_ERROR"
	ErrCodeLimitExceeded ErrCode = "LIMIT_EXCEEDED"
	ErrCodeBadRequest    ErrCode = "BAD_REQUEST"
)

// AppError represents an application error
type AppError struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a network or HTTP-layer failure
func NewTransportError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeTransport,
		Message: message,
		Err:     err,
	}
}

// NewAPIError reports application-level errors carried in a successful response
func NewAPIError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeAPI,
		Message: message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewParseError reports a response field that did not match its contracted shape
func NewParseError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeParse,
		Message: message,
		Err:     err,
	}
}

// NewLimitExceededError reports an exhausted pagination budget
func NewLimitExceededError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeLimitExceeded,
		Message: message,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
	}
}

// codeOf extracts the taxonomy code from anywhere in err's chain.
func codeOf(err error) (ErrCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

// IsTransport checks if the error is a transport error
func IsTransport(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrCodeTransport
}

// IsAPIError checks if the error is a remote API error
func IsAPIError(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrCodeAPI
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrCodeNotFound
}

// IsParse checks if the error is a parse error
func IsParse(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrCodeParse
}

// IsLimitExceeded checks if the error is a limit exceeded error
func IsLimitExceeded(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrCodeLimitExceeded
}

// IsBadRequest checks if the error is a bad request error
func IsBadRequest(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrCodeBadRequest
}
