package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error so callers can branch on category
// instead of string-matching messages.
type Kind int

const (
	KindValidation Kind = iota // bad request input, nothing ran
	KindStage                  // a pipeline stage failed, request aborted
	KindPersistence            // background persistence failed, never surfaced
	KindStreaming              // failure after response bytes were committed
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStage:
		return "stage"
	case KindPersistence:
		return "persistence"
	case KindStreaming:
		return "streaming"
	}
	return "unknown"
}

type AppError struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func Stage(message string, err error) *AppError {
	return &AppError{Kind: KindStage, Message: message, Err: err}
}

func Persistence(message string, err error) *AppError {
	return &AppError{Kind: KindPersistence, Message: message, Err: err}
}

func Streaming(message string, err error) *AppError {
	return &AppError{Kind: KindStreaming, Message: message, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindStage for
// anything that is not an *AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStage
}

// IsValidation reports whether err should map to a client error status.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
