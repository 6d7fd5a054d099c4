package workflow

import (
	"errors"
	"fmt"
)

// Kind classifies a workflow failure
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindIOError
	KindDownloadError
	KindNotFound
	KindConversionError
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindIOError:
		return "IOError"
	case KindDownloadError:
		return "DownloadError"
	case KindNotFound:
		return "NotFoundError"
	case KindConversionError:
		return "ConversionError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinels for errors.Is; any *Error of the same Kind matches.
var (
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
	ErrIO           = &Error{Kind: KindIOError}
	ErrDownload     = &Error{Kind: KindDownloadError}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrConversion   = &Error{Kind: KindConversionError}
)

// Error is a failed workflow step
type Error struct {
	Kind   Kind
	Reason string // short human-readable summary
	Detail string // optional extra text, e.g. downloader stderr
	Err    error
}

func newError(kind Kind, reason string, err error) *Error {
	e := &Error{Kind: kind, Reason: reason, Err: err}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message())
}

// Message is the text shown to the user
func (e *Error) Message() string {
	if e.Detail == "" {
		return e.Reason
	}
	if e.Reason == "" {
		return e.Detail
	}
	return e.Reason + ": " + e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the bare per-kind sentinels
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Reason == "" && t.Detail == "" && t.Err == nil
}

// KindOf returns the Kind of err, or 0 if err is not a workflow error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// MessageOf returns the user-facing message for any error
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message()
	}
	return err.Error()
}
