package lang

import (
	"context"
	"fmt"
)

// Kind identifies the variant of an [Expr].
type Kind int

const (
	KindList Kind = iota
	KindSymbol
	KindText
	KindNumber
	KindError
	KindClosure
	KindBuiltin
)

func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindSymbol:
		return "atom"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindError:
		return "error"
	case KindClosure:
		return "lambda"
	case KindBuiltin:
		return "operator"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Expr is a value of the language. The set of implementations is closed:
// [List], [Symbol], [Text], [Number], [ErrorValue], [*Closure], and
// [*Builtin].
type Expr interface {
	Kind() Kind
	expr()
}

// List is an ordered sequence of expressions. Lists are never mutated after
// construction.
type List []Expr

// Symbol is a name. Unbound symbols evaluate to themselves.
type Symbol string

// Text is a string value.
type Text string

// ErrorValue is the result of a failed operation. It is an ordinary value
// and does not interrupt evaluation.
type ErrorValue struct {
	Message string
}

// Closure is a function created by the lambda special form.
type Closure struct {
	Params []Symbol
	Body   []Expr
	Env    *Env
}

// OperatorFunc implements a [Builtin]. Args are evaluated unless the
// builtin is Raw.
type OperatorFunc func(ctx context.Context, in *Interpreter, env *Env, args []Expr) Expr

// Builtin is an operator implemented in Go.
type Builtin struct {
	Name string
	// Params names the operands, as shown in help and call hints.
	Params  string
	Summary string
	// Raw builtins receive their operands unevaluated.
	Raw bool
	Fn  OperatorFunc
}

func (List) Kind() Kind       { return KindList }
func (Symbol) Kind() Kind     { return KindSymbol }
func (Text) Kind() Kind       { return KindText }
func (Number) Kind() Kind     { return KindNumber }
func (ErrorValue) Kind() Kind { return KindError }
func (*Closure) Kind() Kind   { return KindClosure }
func (*Builtin) Kind() Kind   { return KindBuiltin }

func (List) expr()       {}
func (Symbol) expr()     {}
func (Text) expr()       {}
func (Number) expr()     {}
func (ErrorValue) expr() {}
func (*Closure) expr()   {}
func (*Builtin) expr()   {}

// Boolean atoms.
const (
	True  = Symbol("true")
	False = Symbol("false")
)

// Bool returns [True] or [False].
func Bool(b bool) Symbol {
	if b {
		return True
	}

	return False
}

// Errorf returns an [ErrorValue] with a formatted message.
func Errorf(format string, args ...any) ErrorValue {
	return ErrorValue{Message: fmt.Sprintf(format, args...)}
}

// Visitor has one method per [Expr] variant. Adding a variant breaks every
// Visitor until it handles the new case.
type Visitor[T any] interface {
	VisitList(List) T
	VisitSymbol(Symbol) T
	VisitText(Text) T
	VisitNumber(Number) T
	VisitError(ErrorValue) T
	VisitClosure(*Closure) T
	VisitBuiltin(*Builtin) T
}

// Visit dispatches e to the method of v for its variant. A nil e is treated
// as the empty [List].
func Visit[T any](e Expr, v Visitor[T]) T {
	switch x := e.(type) {
	case nil:
		return v.VisitList(nil)
	case List:
		return v.VisitList(x)
	case Symbol:
		return v.VisitSymbol(x)
	case Text:
		return v.VisitText(x)
	case Number:
		return v.VisitNumber(x)
	case ErrorValue:
		return v.VisitError(x)
	case *Closure:
		return v.VisitClosure(x)
	case *Builtin:
		return v.VisitBuiltin(x)
	default:
		panic(fmt.Sprintf("lang: unknown expression %T", e))
	}
}

// IsApplicable reports whether e can appear at the head of a call.
func IsApplicable(e Expr) bool {
	switch e.(type) {
	case *Closure, *Builtin:
		return true
	default:
		return false
	}
}
