package apperr

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	Internal Kind = iota
	Unauthenticated
	Forbidden
	NotFound
	Conflict
	EmptyCart
	InvalidTransition
	InvalidInput
	PersistenceFailure
)

var kindNames = map[Kind]string{
	Internal:           "internal",
	Unauthenticated:    "unauthenticated",
	Forbidden:          "forbidden",
	NotFound:           "not_found",
	Conflict:           "conflict",
	EmptyCart:          "empty_cart",
	InvalidTransition:  "invalid_transition",
	InvalidInput:       "invalid_input",
	PersistenceFailure: "persistence_failure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Error 對外回傳的錯誤，Kind 決定 http status，Msg 給使用者看
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 同 Kind 視為相同錯誤，讓 errors.Is(err, apperr.ErrNotFound) 可用
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func Wrap(kind Kind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

// KindOf 非 *Error 一律視為 Internal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Message 回傳可以給使用者看的訊息
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Msg
	}
	return "internal server error"
}

var (
	ErrUnauthenticated    = &Error{Kind: Unauthenticated, Msg: "unauthenticated"}
	ErrForbidden          = &Error{Kind: Forbidden, Msg: "forbidden"}
	ErrNotFound           = &Error{Kind: NotFound, Msg: "not found"}
	ErrConflict           = &Error{Kind: Conflict, Msg: "conflict"}
	ErrEmptyCart          = &Error{Kind: EmptyCart, Msg: "cart is empty"}
	ErrInvalidTransition  = &Error{Kind: InvalidTransition, Msg: "invalid status transition"}
	ErrInvalidInput       = &Error{Kind: InvalidInput, Msg: "invalid input"}
	ErrPersistenceFailure = &Error{Kind: PersistenceFailure, Msg: "persistence failure"}
)
