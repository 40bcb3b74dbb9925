package lang

import (
	"context"
	"strings"
)

func typeBuiltins() []*Builtin {
	test := func(name, summary string, match func(Expr) bool) *Builtin {
		return &Builtin{
			Name:    name,
			Params:  "x",
			Summary: summary,
			Fn: func(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
				if len(args) != 1 {
					return Errorf("requires one argument.")
				}

				return Bool(match(args[0]))
			},
		}
	}

	kind := func(k Kind) func(Expr) bool {
		return func(e Expr) bool { return e.Kind() == k }
	}

	return []*Builtin{
		test("type/isList", "check if value is a list", kind(KindList)),
		test("type/isText", "check if value is text", kind(KindText)),
		test("type/isAtom", "check if value is an atom", kind(KindSymbol)),
		test("type/isNumber", "check if value is a number", kind(KindNumber)),
		test("type/isError", "check if value is an error", kind(KindError)),
		test("type/isLambda", "check if value is a lambda or operator", IsApplicable),
	}
}

func numberBuiltins() []*Builtin {
	binary := func(name, summary string, op func(Number, Number) (Number, error)) *Builtin {
		return &Builtin{
			Name:    name,
			Params:  "a b",
			Summary: summary,
			Fn: func(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
				if !argsOfKind(args, KindNumber, KindNumber) {
					return Errorf("requires two arguments of type Number")
				}

				n, err := op(args[0].(Number), args[1].(Number))
				if err != nil {
					return Errorf("%s: %v", name, err)
				}

				return n
			},
		}
	}

	return []*Builtin{
		binary("number/add", "addition", Number.Add),
		binary("number/sub", "subtraction", Number.Sub),
		binary("number/mul", "multiplication", Number.Mul),
		binary("number/div", "division", Number.Quo),
		binary("number/mod", "remainder", Number.Rem),
		binary("number/divInt", "integer division", Number.QuoInteger),
		{
			Name:    "number/text",
			Params:  "n",
			Summary: "convert number to text",
			Fn: func(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
				if len(args) != 1 {
					return Errorf("number/text requires exactly one argument")
				}

				n, ok := args[0].(Number)
				if !ok {
					return Errorf("number/text requires a number argument")
				}

				return Text(n.Text())
			},
		},
	}
}

func textBuiltins() []*Builtin {
	return []*Builtin{
		{
			Name:    "text/concat",
			Params:  "a b...",
			Summary: "string concatenation, skipping values that are not text",
			Raw:     true,
			Fn: func(ctx context.Context, in *Interpreter, env *Env, args []Expr) Expr {
				var sb strings.Builder

				for _, a := range args {
					if t, ok := in.Eval(ctx, a, env).(Text); ok {
						sb.WriteString(string(t))
					}
				}

				return Text(sb.String())
			},
		},
		{
			Name:    "text/startsWith",
			Params:  "text prefix",
			Summary: "check if text begins with prefix",
			Fn: func(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
				if !argsOfKind(args, KindText, KindText) {
					return Errorf("text/startsWith requires exactly two arguments of type text")
				}

				return Bool(strings.HasPrefix(string(args[0].(Text)), string(args[1].(Text))))
			},
		},
		{
			Name:    "text/toAtom",
			Params:  "text",
			Summary: "convert text to an atom",
			Fn: func(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
				if !argsOfKind(args, KindText) {
					return Errorf("toAtom requires exactly one argument of type text")
				}

				return Symbol(args[0].(Text))
			},
		},
		{
			Name:    "text/fromAtom",
			Params:  "atom",
			Summary: "convert an atom to text",
			Fn: func(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
				if !argsOfKind(args, KindSymbol) {
					return Errorf("fromAtom requires exactly one argument of type atom")
				}

				return Text(args[0].(Symbol))
			},
		},
		{
			Name:    "text/toError",
			Params:  "text",
			Summary: "convert text to an error value",
			Fn: func(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
				if len(args) != 1 {
					return Errorf("requires one argument.")
				}

				t, ok := args[0].(Text)
				if !ok {
					return Errorf("Unable to make error from type")
				}

				return ErrorValue{Message: string(t)}
			},
		},
	}
}

func listBuiltins() []*Builtin {
	unary := func(name, params, summary, msgName string, fn func(List) Expr) *Builtin {
		return &Builtin{
			Name:    name,
			Params:  params,
			Summary: summary,
			Fn: func(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
				if len(args) != 1 {
					return Errorf("%s requires exactly one argument", msgName)
				}

				l, ok := args[0].(List)
				if !ok {
					return Errorf("%s requires a list argument", msgName)
				}

				return fn(l)
			},
		}
	}

	extend := func(name, verb, summary string, join func(List, []Expr) List) *Builtin {
		return &Builtin{
			Name:    name,
			Params:  "list items...",
			Summary: summary,
			Fn: func(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
				if len(args) < 2 {
					return Errorf("%s requires a list and at least one item to %s", name, verb)
				}

				l, ok := args[0].(List)
				if !ok {
					return Errorf("%s first argument must be a list", name)
				}

				return join(l, args[1:])
			},
		}
	}

	return []*Builtin{
		{
			Name:    "list",
			Params:  "items...",
			Summary: "construct a list of the arguments",
			Fn: func(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
				return append(List{}, args...)
			},
		},
		extend("list/append", "append", "append items to a list",
			func(l List, items []Expr) List {
				out := make(List, 0, len(l)+len(items))

				return append(append(out, l...), items...)
			}),
		extend("list/prepend", "prepend", "prepend items to a list",
			func(l List, items []Expr) List {
				out := make(List, 0, len(l)+len(items))

				return append(append(out, items...), l...)
			}),
		unary("list/first", "list", "get first item of a list", "list/first",
			func(l List) Expr {
				if len(l) == 0 {
					return Errorf("list/first called on an empty list")
				}

				return l[0]
			}),
		unary("list/rest", "list", "get all items except the first", "list/rest",
			func(l List) Expr {
				if len(l) == 0 {
					return Errorf("list/rest called on an empty list")
				}

				return append(List{}, l[1:]...)
			}),
		unary("list/isEmpty", "list", "check if list is empty", "isEmpty",
			func(l List) Expr { return Bool(len(l) == 0) }),
		{
			Name:    "list/nth",
			Params:  "list index",
			Summary: "get the item at a zero-based index",
			Fn: func(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
				if len(args) != 2 {
					return Errorf("list/nth requires exactly two arguments")
				}

				l, ok := args[0].(List)
				if !ok {
					return Errorf("list/nth requires a list as the first argument")
				}

				n, ok := args[1].(Number)
				if !ok {
					return Errorf("list/nth requires a number as the second argument")
				}

				i, err := n.Int64()
				if err != nil || i < 0 || i >= int64(len(l)) {
					return Errorf("list/nth index out of bounds")
				}

				return l[i]
			},
		},
		{
			Name:    "list/contains",
			Params:  "list item",
			Summary: "check if a list holds an item",
			Fn: func(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
				if len(args) != 2 {
					return Errorf("list/contains requires exactly two arguments")
				}

				l, ok := args[0].(List)
				if !ok {
					return Errorf("list/contains requires a list as the first argument")
				}

				for _, e := range l {
					if Equal(e, args[1]) {
						return True
					}
				}

				return False
			},
		},
	}
}
