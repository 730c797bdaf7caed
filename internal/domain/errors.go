package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is(err, domain.ErrNotFound) and friends.
var (
	ErrValidation      = errors.New("validation failed")
	ErrAuthorization   = errors.New("not authorized")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrExternalService = errors.New("external service failure")
)

// Error carries a kind, a user-facing message and optional context for
// reconciliation (for example the id of a team that was committed before a
// later step failed).
type Error struct {
	Kind    error
	Msg     string
	Err     error
	Context map[string]string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// With attaches a context field and returns the same error.
func (e *Error) With(key, value string) *Error {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

func Validation(msg string) *Error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func Authorization(msg string) *Error {
	return &Error{Kind: ErrAuthorization, Msg: msg}
}

func NotFound(msg string, err error) *Error {
	return &Error{Kind: ErrNotFound, Msg: msg, Err: err}
}

func Conflict(msg string, err error) *Error {
	return &Error{Kind: ErrConflict, Msg: msg, Err: err}
}

func External(msg string, err error) *Error {
	return &Error{Kind: ErrExternalService, Msg: msg, Err: err}
}

// KindOf returns the kind of the outermost domain error in the chain, or nil.
// An external-service error wrapping a conflict reports ErrExternalService.
func KindOf(err error) error {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Kind
	}
	return nil
}

// Message returns the user-facing message of a domain error, or fallback for
// anything else.
func Message(err error, fallback string) string {
	var derr *Error
	if errors.As(err, &derr) && derr.Msg != "" {
		return derr.Msg
	}
	return fallback
}
