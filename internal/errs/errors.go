// Package errs defines the request error taxonomy. Every failure surfaced to a
// client is an *Error carrying a kind discriminant and the HTTP status decided at
// construction time; handlers never pick status codes ad hoc.
package errs

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

type Kind int

const (
	KindAuthentication Kind = iota
	KindRequest
	KindForbidden
	KindNotFound
	KindConflict
	KindDatabase
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindRequest:
		return "request"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindDatabase:
		return "database"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// BadCredentials covers a login attempt with email or password missing.
func BadCredentials() *Error {
	return &Error{Kind: KindAuthentication, Status: http.StatusBadRequest, Message: "Bad credentials"}
}

// UnknownAccount covers a login attempt against an email no active account matches.
func UnknownAccount() *Error {
	return &Error{Kind: KindAuthentication, Status: http.StatusNotFound, Message: "This account doesn't exist"}
}

// WrongPassword covers a failed password verification.
func WrongPassword() *Error {
	return &Error{Kind: KindAuthentication, Status: http.StatusUnauthorized, Message: "Wrong password"}
}

// Unauthenticated covers a missing, malformed or unverifiable bearer token.
func Unauthenticated(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return &Error{Kind: KindAuthentication, Status: http.StatusUnauthorized, Message: message}
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindRequest, Status: http.StatusBadRequest, Message: message}
}

func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: "Forbidden"}
}

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: entity + " not found"}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: message}
}

// Database wraps a store failure. The client-facing message is always the generic
// "Database error" so schema details never leak; the cause stays attached for logs.
func Database(err error) *Error {
	return &Error{Kind: KindDatabase, Status: http.StatusInternalServerError, Message: "Database error", cause: err}
}

// FromDB maps a gorm error to the taxonomy: a missing row becomes NotFound for the
// given entity, anything else is masked as a database error.
func FromDB(err error, entity string) *Error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(entity)
	}
	return Database(err)
}

// IsKind reports whether err is a taxonomy error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
