// Package apperr classifies service errors so the transport layer can pick
// status codes without inspecting storage error strings.
package apperr

import (
	"errors"
)

type Kind int

const (
	// KindValidation — malformed input; the caller must fix the request.
	KindValidation Kind = iota + 1
	// KindReferential — the request names an entity that does not exist.
	KindReferential
	// KindNotFound — the addressed resource does not exist.
	KindNotFound
	// KindConflict — a uniqueness constraint the operation genuinely expects.
	KindConflict
	// KindUnauthorized — missing or bad credentials.
	KindUnauthorized
	// KindInternal — anything else, including transaction aborts. The prior
	// state is intact; the caller may re-issue the request.
	KindInternal
)

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

func Validation(msg string) *Error   { return &Error{kind: KindValidation, msg: msg} }
func Referential(msg string) *Error  { return &Error{kind: KindReferential, msg: msg} }
func NotFound(msg string) *Error     { return &Error{kind: KindNotFound, msg: msg} }
func Conflict(msg string) *Error     { return &Error{kind: KindConflict, msg: msg} }
func Unauthorized(msg string) *Error { return &Error{kind: KindUnauthorized, msg: msg} }

func Internal(err error) *Error {
	return &Error{kind: KindInternal, msg: "server error", err: err}
}

// KindOf reports the classification of err. Unclassified errors are treated
// as internal: never promote an unknown failure to a client error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}
