// Package lang implements a small Lisp for dice-rolling consoles.
//
// Source text is lexed into tokens, parsed into [Expr] trees and evaluated
// by an [Interpreter] against a chain of [Env] frames. Values are lists,
// atoms, text, exact decimal numbers, error values, closures and builtin
// operators:
//
//	(def hit (lambda (bonus) (number/add (list/first (roll '1d20')) bonus)))
//	(hit 5)
//
// Evaluation never fails with a Go error for a semantic problem. A wrong
// argument, an unbound operator or a failed import produces an
// [ErrorValue], which flows through the program like any other value. The
// only abort is exhausting the depth budget set by [WithMaxDepth], which
// the Evaluate methods report as [ErrMaxDepthExceeded].
//
// # Special forms
//
// def and lambda are recognized at the head of a list before any operand is
// evaluated. (def k v) stores v unevaluated in the current frame.
// (lambda (params) body...) captures a fork of the current frame.
//
// # Hosts
//
// A console integrates with [RegisterHost], which adds the host/send
// operator and the functions of [Prelude].
package lang
