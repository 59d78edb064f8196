package services

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindInvalidState
	KindOutOfStock
)

// Error is a service failure the presentation layer can map to a status
// code without inspecting message text.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func invalidStateError(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

func outOfStockError(format string, args ...any) *Error {
	return &Error{Kind: KindOutOfStock, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the service error kind, or 0 for unexpected errors.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
