package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	// CodeUnauthenticated means the bearer credential is missing or invalid.
	CodeUnauthenticated ErrorCode = "unauthenticated"
	// CodeProfileNotFound means the credential verified but no tenant
	// membership row exists for the user.
	CodeProfileNotFound ErrorCode = "profile_not_found"
	// CodeNotFound covers both "resource absent" and "resource belongs to
	// another tenant". The two are deliberately indistinguishable so a
	// caller cannot probe for resources across tenants.
	CodeNotFound ErrorCode = "not_found"
	// CodeForbidden is cross-tenant access detected after a join.
	CodeForbidden     ErrorCode = "forbidden"
	CodeValidation    ErrorCode = "validation"
	CodeQuotaExceeded ErrorCode = "quota_exceeded"
	// CodeUpstream means the data, blob, or identity collaborator failed.
	CodeUpstream ErrorCode = "upstream"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Is reports whether err carries the given application error code.
func Is(err error, code ErrorCode) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
