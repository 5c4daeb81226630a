// Package apperr classifies service failures so the transport layer can map
// them to status codes in one place.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindStore Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "store"
	}
}

// Machine-readable codes shared with the web client.
const (
	CodeLoginBadCredentials           = "LOGIN_BAD_CREDENTIALS"
	CodeRegisterUserAlreadyExists     = "REGISTER_USER_ALREADY_EXISTS"
	CodeRegisterInvalidPassword       = "REGISTER_INVALID_PASSWORD"
	CodeRegisterInvalidUsernameLength = "REGISTER_INVALID_USERNAME_LENGTH"
	CodeRegisterInvalidUsernameFormat = "REGISTER_INVALID_USERNAME_FORMAT"
	CodeUpdateUserEmailAlreadyExists  = "UPDATE_USER_EMAIL_ALREADY_EXISTS"
	CodeUpdateUserNameAlreadyExists   = "UPDATE_USER_USERNAME_ALREADY_EXISTS"
	CodeUpdateUserInvalidPassword     = "UPDATE_USER_INVALID_PASSWORD"
	CodeInvalidPitchType              = "INVALID_PITCH_TYPE"
	CodeInvalidVoteType               = "INVALID_VOTE_TYPE"
	CodeUnauthorized                  = "Unauthorized"
	CodeForbidden                     = "Forbidden"
	CodeNotFound                      = "Not Found"
)

type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(code string) error {
	return &Error{Kind: KindValidation, Code: code}
}

func Unauthorized(code string) error {
	return &Error{Kind: KindUnauthorized, Code: code}
}

func Forbidden() error {
	return &Error{Kind: KindForbidden, Code: CodeForbidden}
}

func NotFound() error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound}
}

func Conflict(code string) error {
	return &Error{Kind: KindConflict, Code: code}
}

// Store wraps a persistence failure. The cause is for logs only.
func Store(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindStore, Code: "internal server error", Err: err}
}

// KindOf reports the kind of err; unclassified errors are store errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStore
}

// CodeOf returns the machine-readable code carried by err, or "".
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
