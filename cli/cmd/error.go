package cmd

import "github.com/ardnew/dlisp/lang"

// Error is a command failure with structured attributes. See [lang.Error].
type Error = lang.Error

// NewError returns a sentinel [Error] with the given message.
func NewError(msg string) *Error { return lang.NewError(msg) }

var (
	ErrEvaluate    = NewError("evaluate")
	ErrRoll        = NewError("roll dice")
	ErrOpenSource  = NewError("open source")
	ErrFormat      = NewError("format source")
	ErrWriteConfig = NewError("write configuration file")
	ErrFileExists  = NewError("file exists (use --force to overwrite)")
)
