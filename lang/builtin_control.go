package lang

import (
	"context"
)

func controlBuiltins() []*Builtin {
	return []*Builtin{
		{
			Name:    "eval",
			Params:  "expr...",
			Summary: "evaluate the values of the given expressions and return the last",
			Raw:     true,
			Fn:      evalOperator,
		},
		{
			Name:    "if",
			Params:  "condition then else",
			Summary: "conditional evaluation",
			Raw:     true,
			Fn:      ifOperator,
		},
		{
			Name:    "cond",
			Params:  "(test expr)...",
			Summary: "multi-branch conditional",
			Raw:     true,
			Fn:      condOperator,
		},
		{
			Name:    "isEqual",
			Params:  "a b...",
			Summary: "structural equality of every argument with the first",
			Fn:      isEqualOperator,
		},
		{
			Name:    "quote",
			Params:  "expr",
			Summary: "return the argument unevaluated",
			Raw:     true,
			Fn:      quoteOperator,
		},
	}
}

func evalOperator(ctx context.Context, in *Interpreter, env *Env, args []Expr) Expr {
	if len(args) == 0 {
		return Errorf("No Items to evaluate")
	}

	// Each operand is evaluated to a value, which is then evaluated as an
	// expression: (eval x) runs the form stored in x.
	var result Expr
	for _, a := range args {
		result = in.Eval(ctx, in.Eval(ctx, a, env), env)
	}

	return result
}

func ifOperator(ctx context.Context, in *Interpreter, env *Env, args []Expr) Expr {
	if len(args) != 3 {
		return Errorf("if requires three arguments")
	}

	if Equal(in.Eval(ctx, args[0], env), True) {
		return in.Eval(ctx, args[1], env)
	}

	return in.Eval(ctx, args[2], env)
}

func condOperator(ctx context.Context, in *Interpreter, env *Env, args []Expr) Expr {
	if len(args) == 0 {
		return Errorf("cond requires at least one clause")
	}

	for _, clause := range args {
		pair, ok := clause.(List)
		if !ok || len(pair) != 2 {
			return Errorf("each cond clause must be a list of (condition expression)")
		}

		if Equal(in.Eval(ctx, pair[0], env), True) {
			return in.Eval(ctx, pair[1], env)
		}
	}

	return Errorf("no matching cond clause")
}

func isEqualOperator(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
	if len(args) < 2 {
		return Errorf("isEqual requires at least two arguments")
	}

	for _, a := range args[1:] {
		if !Equal(args[0], a) {
			return False
		}
	}

	return True
}

func quoteOperator(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
	if len(args) != 1 {
		return Errorf("Quote requires one argument")
	}

	return args[0]
}
