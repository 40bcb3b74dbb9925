package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/dlisp/lang/dice"
	"github.com/ardnew/dlisp/log"
)

// Special form markers. They are ordinary symbols until they appear at the
// head of a list.
const (
	SymDef    = Symbol("def")
	SymLambda = Symbol("lambda")
)

type budget struct {
	depth, max int
}

// depthExceeded is panicked when the evaluation budget runs out and
// recovered by the Evaluate entry points.
type depthExceeded struct{}

// Interpreter evaluates expressions. It holds no bindings of its own; all
// state lives in the [Env] passed to each call. An Interpreter must not be
// used by more than one goroutine at a time.
type Interpreter struct {
	logger     log.Logger
	roll       dice.Roller
	baseDir    string
	searchPath []string
	budget     *budget
}

// New returns an Interpreter configured by opts.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		roll:    dice.NewRoller(nil),
		baseDir: ".",
		budget:  &budget{max: DefaultMaxDepth},
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// Logger returns the interpreter's logger.
func (in *Interpreter) Logger() log.Logger { return in.logger }

// BaseDir returns the directory relative imports are resolved against.
func (in *Interpreter) BaseDir() string { return in.baseDir }

// SearchPath returns the directories searched by import after the base
// directory.
func (in *Interpreter) SearchPath() []string { return in.searchPath }

// derive returns a copy of in resolving imports against dir. The copy
// shares the evaluation budget.
func (in *Interpreter) derive(dir string) *Interpreter {
	c := *in
	c.baseDir = dir

	return &c
}

// Eval evaluates e in env. Semantic failures are returned as [ErrorValue];
// Eval panics only when the depth budget is exhausted, which the Evaluate
// methods turn into [ErrMaxDepthExceeded].
func (in *Interpreter) Eval(ctx context.Context, e Expr, env *Env) Expr {
	if b := in.budget; b.max > 0 {
		b.depth++
		defer func() { b.depth-- }()

		if b.depth > b.max {
			panic(depthExceeded{})
		}
	}

	return Visit(e, evaluator{ctx, in, env})
}

type evaluator struct {
	ctx context.Context
	in  *Interpreter
	env *Env
}

func (v evaluator) VisitList(l List) Expr {
	if len(l) == 0 {
		return l
	}

	return v.in.evalCall(v.ctx, l, v.env)
}

func (v evaluator) VisitSymbol(s Symbol) Expr    { return v.env.Lookup(s) }
func (v evaluator) VisitText(t Text) Expr        { return t }
func (v evaluator) VisitNumber(n Number) Expr    { return n }
func (v evaluator) VisitError(e ErrorValue) Expr { return e }
func (v evaluator) VisitClosure(c *Closure) Expr { return c }
func (v evaluator) VisitBuiltin(b *Builtin) Expr { return b }

func (in *Interpreter) evalCall(ctx context.Context, l List, env *Env) Expr {
	head, rest := env.Lookup(l[0]), l[1:]

	if s, ok := head.(Symbol); ok {
		switch s {
		case SymDef:
			if len(rest) < 2 {
				return Errorf("def requires a key and a value")
			}

			env.Define(rest[0], rest[1])

			return rest[0]

		case SymLambda:
			return lambda(rest, env)
		}
	}

	if sub, ok := head.(List); ok {
		head = in.Eval(ctx, sub, env)
	}

	switch fn := head.(type) {
	case *Builtin:
		args := rest
		if !fn.Raw {
			args = in.evalArgs(ctx, rest, env)
		}

		return in.apply(ctx, fn, args, env)

	case *Closure:
		return in.apply(ctx, fn, in.evalArgs(ctx, rest, env), env)
	}

	return l
}

// apply invokes fn with already evaluated args. Raw builtins receive args
// as given. A value that is not applicable is returned as an [ErrorValue].
func (in *Interpreter) apply(ctx context.Context, fn Expr, args []Expr, env *Env) Expr {
	switch f := fn.(type) {
	case *Builtin:
		in.traceApply(ctx, f.Name, len(args))

		return f.Fn(ctx, in, env, args)

	case *Closure:
		in.traceApply(ctx, "lambda", len(args))

		return in.call(ctx, f, args)

	default:
		return Errorf("%s is not applicable", fn.Kind())
	}
}

func (in *Interpreter) traceApply(ctx context.Context, name string, argc int) {
	if !in.logger.Enabled(ctx, log.LevelTrace) {
		return
	}

	in.logger.TraceContext(ctx, "apply",
		slog.String("operator", name),
		slog.Int("args", argc),
		slog.Int("depth", in.budget.depth))
}

func (in *Interpreter) evalArgs(ctx context.Context, rest []Expr, env *Env) []Expr {
	args := make([]Expr, len(rest))
	for i, e := range rest {
		args[i] = in.Eval(ctx, e, env)
	}

	return args
}

// Params returns the parameter names of e when it is a closure or an
// unevaluated (lambda (params...) body...) form, as def leaves it. The
// head of such a form must resolve to lambda in env; a nil env accepts the
// literal symbol only.
func Params(e Expr, env *Env) ([]Symbol, bool) {
	switch f := e.(type) {
	case *Closure:
		return f.Params, true

	case List:
		if len(f) < 2 {
			return nil, false
		}

		head := f[0]
		if env != nil {
			head = env.Lookup(head)
		}

		if s, ok := head.(Symbol); !ok || s != SymLambda {
			return nil, false
		}

		params, bad := paramList(f[1])
		if bad != nil {
			return nil, false
		}

		return params, true
	}

	return nil, false
}

// paramList reads a lambda parameter list. The error is an [ErrorValue].
func paramList(e Expr) ([]Symbol, Expr) {
	list, ok := e.(List)
	if !ok {
		return nil, Errorf("lambda requires a parameter list")
	}

	params := make([]Symbol, len(list))

	for i, p := range list {
		s, ok := p.(Symbol)
		if !ok {
			return nil, Errorf("lambda parameters must be atoms, got %s", p.Kind())
		}

		params[i] = s
	}

	return params, nil
}

// lambda builds a closure from (params body...) capturing a fork of env.
func lambda(rest []Expr, env *Env) Expr {
	if len(rest) == 0 {
		return Errorf("lambda requires a parameter list")
	}

	params, bad := paramList(rest[0])
	if bad != nil {
		return bad
	}

	return &Closure{Params: params, Body: rest[1:], Env: env.Fork()}
}

func (in *Interpreter) call(ctx context.Context, c *Closure, args []Expr) Expr {
	if len(args) < len(c.Params) {
		return Errorf("lambda expects %d arguments, got %d", len(c.Params), len(args))
	}

	if len(c.Body) == 0 {
		return Errorf("Lambda body needs at least one statement")
	}

	frame := c.Env.Fork()
	for i, p := range c.Params {
		frame.Define(p, args[i])
	}

	var result Expr
	for _, e := range c.Body {
		result = in.Eval(ctx, e, frame)
	}

	return result
}

// Evaluate is [Interpreter.Eval] for hosts: exhausting the depth budget
// aborts this evaluation with [ErrMaxDepthExceeded] instead of panicking.
func (in *Interpreter) Evaluate(ctx context.Context, e Expr, env *Env) (result Expr, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if _, ok := r.(depthExceeded); !ok {
			panic(r)
		}

		in.logger.DebugContext(ctx, "evaluation aborted",
			slog.Int("max_depth", in.budget.max))

		result, err = nil, ErrMaxDepthExceeded.With(slog.Int("max_depth", in.budget.max))
	}()

	return in.Eval(ctx, e, env), nil
}

// EvaluateForms evaluates forms in order and returns every result. It stops
// at the first abort.
func (in *Interpreter) EvaluateForms(ctx context.Context, forms []Expr, env *Env) ([]Expr, error) {
	results := make([]Expr, 0, len(forms))

	for _, form := range forms {
		r, err := in.Evaluate(ctx, form, env)
		if err != nil {
			return results, err
		}

		results = append(results, r)
	}

	return results, nil
}

// EvaluateSource parses src and evaluates each top-level form in env,
// returning the last result. Source without forms yields the empty [List].
func (in *Interpreter) EvaluateSource(ctx context.Context, src string, env *Env) (Expr, error) {
	return last(in.EvaluateForms(ctx, in.Parse(ctx, src), env))
}

// EvaluateReader is [Interpreter.EvaluateSource] for the content of r.
func (in *Interpreter) EvaluateReader(ctx context.Context, r io.Reader, env *Env) (Expr, error) {
	forms, err := in.ParseReader(ctx, r)
	if err != nil {
		return nil, err
	}

	return last(in.EvaluateForms(ctx, forms, env))
}

func last(results []Expr, err error) (Expr, error) {
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return List{}, nil
	}

	return results[len(results)-1], nil
}
