// Package apperror defines the closed set of failure kinds the API can report
// and the single place where each kind is mapped to an HTTP status.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicateAccount
	KindInvalidCredentials
	KindUnauthorized
	KindInvalidToken
	KindNotFound
	KindForbidden
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicateAccount:
		return "duplicate_account"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidToken:
		return "invalid_token"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindStore:
		return "store"
	default:
		return "internal"
	}
}

// HTTPStatus is the transport status for a kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindDuplicateAccount:
		return http.StatusConflict
	case KindInvalidCredentials, KindUnauthorized, KindInvalidToken:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a Kind, a client-safe message and an optional cause that is
// only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, apperror.ErrForbidden) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Sentinels for errors.Is comparisons.
var (
	ErrValidation         = New(KindValidation, "validation failed")
	ErrDuplicateAccount   = New(KindDuplicateAccount, "account already exists")
	ErrInvalidCredentials = New(KindInvalidCredentials, "invalid email or password")
	ErrUnauthorized       = New(KindUnauthorized, "unauthorized")
	ErrInvalidToken       = New(KindInvalidToken, "invalid token")
	ErrNotFound           = New(KindNotFound, "not found")
	ErrForbidden          = New(KindForbidden, "forbidden")
	ErrStore              = New(KindStore, "store failure")
)

func Validation(message string) *Error { return New(KindValidation, message) }

func NotFound(message string) *Error { return New(KindNotFound, message) }

func Forbidden(message string) *Error { return New(KindForbidden, message) }

func Store(err error) *Error { return Wrap(KindStore, "store failure", err) }

func InvalidToken(err error) *Error { return Wrap(KindInvalidToken, "invalid token", err) }

// KindOf reports the kind of err, KindInternal for anything not built here.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// PublicMessage is the text that may be sent to a client. Store and internal
// failures never expose their cause.
func PublicMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return "Internal server error"
	}
	switch appErr.Kind {
	case KindStore, KindInternal:
		return "Internal server error"
	default:
		return appErr.Message
	}
}
