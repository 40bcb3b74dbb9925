package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Sentinel errors returned by the host-facing entry points. Semantic errors
// inside a program are never reported this way; they evaluate to
// [ErrorValue] instead.
var (
	ErrMaxDepthExceeded = NewError("maximum evaluation depth exceeded")
	ErrReadInput        = NewError("failed to read input")
	ErrModuleNotFound   = NewError("module not found")
	ErrHelpNotFound     = NewError("help topic not found")
)

// Error carries a message, an optional cause, and attributes for structured
// logging.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError returns an Error with message msg.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError converts err to an *Error, returning it unchanged if it already
// is one.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{err: err}
}

// Error joins the message and the cause with ": ", omitting whichever is
// empty.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same message, so a
// sentinel matches its wrapped and attributed copies.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// LogValue implements [slog.LogValuer].
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	merged := make([]slog.Attr, 0, len(e.attrs)+len(attrs))
	merged = append(merged, e.attrs...)
	merged = append(merged, attrs...)

	return &Error{msg: e.msg, err: e.err, attrs: merged}
}
