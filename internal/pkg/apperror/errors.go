package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error for propagation and HTTP mapping.
type Kind string

const (
	KindValidation      Kind = "VALIDATION"
	KindNotFound        Kind = "NOT_FOUND"
	KindState           Kind = "STATE"
	KindExternalService Kind = "EXTERNAL_SERVICE"
	KindStorage         Kind = "STORAGE"
	KindGeneration      Kind = "GENERATION"
)

// Error is the typed failure surfaced by the generation core.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrState           = &Error{Kind: KindState}
	ErrExternalService = &Error{Kind: KindExternalService}
	ErrStorage         = &Error{Kind: KindStorage}
	ErrGeneration      = &Error{Kind: KindGeneration}
)

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func State(format string, args ...interface{}) error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

// External wraps an upstream failure, keeping the upstream message.
func External(service string, err error) error {
	return &Error{Kind: KindExternalService, Message: service, Err: err}
}

func Storage(message string, err error) error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// Generation is the umbrella for the generation step. An ExternalServiceError
// wrapped here still matches ErrExternalService.
func Generation(message string, err error) error {
	return &Error{Kind: KindGeneration, Message: message, Err: err}
}

// KindOf returns the kind of the outermost *Error in the chain, or "".
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
