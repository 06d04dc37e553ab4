package app

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a domain failure so the HTTP boundary can map it
// to a status code without inspecting error strings.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidInput
	KindNotFound
	KindUpstream
)

// Error is the domain error carried from the failure point up to the
// response boundary. Message is user-facing.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstream:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func NewInvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewUpstream(message string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: message, cause: cause}
}

// AsDomainError reports whether err carries a domain Error anywhere in
// its chain.
func AsDomainError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}
