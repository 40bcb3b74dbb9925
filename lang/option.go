package lang

import (
	"path/filepath"

	"github.com/ardnew/dlisp/lang/dice"
	"github.com/ardnew/dlisp/log"
)

// DefaultMaxDepth bounds the nesting of evaluation unless overridden with
// [WithMaxDepth].
const DefaultMaxDepth = 50000

// Option configures an [Interpreter].
type Option func(*Interpreter)

// WithLogger sets the logger used for trace output.
func WithLogger(logger log.Logger) Option {
	return func(in *Interpreter) { in.logger = logger }
}

// WithRoller sets the random source of the roll operator.
func WithRoller(roll dice.Roller) Option {
	return func(in *Interpreter) {
		if roll != nil {
			in.roll = roll
		}
	}
}

// WithBaseDir sets the directory that relative import paths are resolved
// against first. The empty string means the working directory.
func WithBaseDir(dir string) Option {
	return func(in *Interpreter) { in.baseDir = filepath.Clean(dir) }
}

// WithSearchPath appends directories searched by import after the base
// directory.
func WithSearchPath(dirs ...string) Option {
	return func(in *Interpreter) {
		for _, dir := range dirs {
			if dir != "" {
				in.searchPath = append(in.searchPath, filepath.Clean(dir))
			}
		}
	}
}

// WithMaxDepth bounds evaluation nesting. Exceeding it aborts the current
// top-level evaluation with [ErrMaxDepthExceeded]. Zero or less removes the
// bound.
func WithMaxDepth(depth int) Option {
	return func(in *Interpreter) { in.budget.max = depth }
}
