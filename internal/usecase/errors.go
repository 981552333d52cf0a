package usecase

import (
	"errors"
	"fmt"
)

// Kind classifies a business failure. The handler layer maps kinds to HTTP
// status codes; nothing in here knows about HTTP.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindInvalidState
	KindInsufficientStock
	KindValidation
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewError(kind Kind, message string) error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

func AsError(err error) (*Error, bool) {
	var ue *Error
	ok := errors.As(err, &ue)
	return ue, ok
}

// Shared messages for failures that several usecases report.
func errInternal() error {
	return NewError(KindInternal, "db error")
}
