package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds    = errors.New("index out of range")
	ErrEditDeclined   = errors.New("decline edit")
	ErrNoTerminal     = errors.New("console requires a terminal")
	ErrUnknownCommand = errors.New("unknown command")
)
