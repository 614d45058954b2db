package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an error for the transport layer. Handlers and services
// return kinded errors; the global error handler maps the kind to a status
// code so no handler carries its own message→status table.
type Kind int

const (
	Internal Kind = iota
	Validation
	Auth
	BusinessRule
	Upstream
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case Validation, Upstream:
		return fiber.StatusBadRequest
	case Auth:
		return fiber.StatusUnauthorized
	case BusinessRule:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Error is a user-visible rejection: Message is safe to show, Err (optional)
// carries the underlying cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a kinded error with a user-visible message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches an underlying cause to a kinded error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// As unwraps err into an *Error, nil if it is not one.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
