package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrMissingCategory     = errors.New("missing category parameter")
	ErrUnsupportedCategory = errors.New("unsupported category parameter")
	ErrStorage             = errors.New("storage error")
	ErrInternal            = errors.New("internal error")
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
)

// MessageError pairs a sentinel with the message shown to clients.
type MessageError struct {
	Kind    error
	Message string
}

func (e *MessageError) Error() string { return e.Message }

func (e *MessageError) Unwrap() error { return e.Kind }

func invalid(msg string) error {
	return &MessageError{Kind: ErrInvalidInput, Message: msg}
}

func notFound(msg string) error {
	return &MessageError{Kind: ErrNotFound, Message: msg}
}

func storage(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
