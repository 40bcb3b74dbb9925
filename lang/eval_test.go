package lang

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/dlisp/lang/dice"
)

func newTestInterpreter(opts ...Option) *Interpreter {
	return New(append([]Option{WithRoller(dice.Highest)}, opts...)...)
}

// evalDisplay evaluates src in a fresh root environment and renders the
// last result.
func evalDisplay(t *testing.T, src string, opts ...Option) string {
	t.Helper()

	in := newTestInterpreter(opts...)

	got, err := in.EvaluateSource(t.Context(), src, NewRootEnv())
	if err != nil {
		t.Fatalf("EvaluateSource(%q): %v", src, err)
	}

	return Display(got)
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty source", "", "()"},
		{"empty list", "()", "()"},
		{"number", "42", "42"},
		{"text", "'hello'", "hello"},
		{"unbound atom", "tag", "tag"},
		{"data list", "(1 2 3)", "(1 2 3)"},
		{"add", "(number/add 1 2)", "3"},
		{"nested", "(number/mul (number/add 1 2) 4)", "12"},
		{"def returns key", "(def x 5)", "x"},
		{"def then lookup", "(def x 5) x", "5"},
		{"redefine", "(def x 5) (def x 6) x", "6"},
		{"def stores unevaluated", "(def x (number/add 1 2)) x", "(number/add 1 2)"},
		{"def missing value", "(def x)", "Error: def requires a key and a value"},
		{"lambda value", "(lambda (x y) x)", "<lambda (x y)>"},
		{"immediate lambda", "((lambda (x) (number/add x 1)) 41)", "42"},
		{"extra arguments", "((lambda (x) x) 1 2)", "1"},
		{"too few arguments", "((lambda (x y) x) 1)", "Error: lambda expects 2 arguments, got 1"},
		{"empty body", "((lambda (x)) 1)", "Error: Lambda body needs at least one statement"},
		{"no params", "(lambda)", "Error: lambda requires a parameter list"},
		{"bad param", "(lambda (1) x)", "Error: lambda parameters must be atoms, got number"},
		{"free variable", "(def y 10) (def getY (lambda () y)) (getY)", "10"},
		{"free variable rebound", "(def y 10) (def getY (lambda () y)) (def y 20) (getY)", "20"},
		{
			"recursion",
			"(def countdown (lambda (n) (if (isEqual n 0) 0 (countdown (number/sub n 1))))) (countdown 5)",
			"0",
		},
		{
			"higher order",
			"(def twice (lambda (f x) (f (f x)))) (twice (lambda (n) (number/mul n 3)) 2)",
			"18",
		},
		{
			"closure parameters do not leak",
			"(def id (lambda (v) v)) (id 1) v",
			"v",
		},
		{"operator value", "number/add", "<operator number/add>"},
		{"error flows as value", "(type/isError (number/div 1 0))", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := evalDisplay(t, tt.src); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvaluate_IsolatedRoots(t *testing.T) {
	t.Parallel()

	in := newTestInterpreter()
	a, b := NewRootEnv(), NewRootEnv()

	if _, err := in.EvaluateSource(t.Context(), "(def x 1)", a); err != nil {
		t.Fatal(err)
	}

	got, err := in.EvaluateSource(t.Context(), "x", b)
	if err != nil {
		t.Fatal(err)
	}

	if got != Symbol("x") {
		t.Errorf("x in second root = %s, want x", Format(got))
	}
}

func TestEvaluate_MaxDepth(t *testing.T) {
	t.Parallel()

	in := newTestInterpreter(WithMaxDepth(200))
	env := NewRootEnv()

	_, err := in.EvaluateSource(t.Context(),
		"(def loop (lambda (n) (loop (number/add n 1)))) (loop 0)", env)
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("err = %v, want %v", err, ErrMaxDepthExceeded)
	}

	// The budget is released after an abort.
	got, err := in.EvaluateSource(t.Context(), "(number/add 1 1)", env)
	if err != nil {
		t.Fatalf("after abort: %v", err)
	}

	if !Equal(got, Int(2)) {
		t.Errorf("after abort = %s, want 2", Format(got))
	}
}

func TestEvaluateForms(t *testing.T) {
	t.Parallel()

	in := newTestInterpreter()

	results, err := in.EvaluateForms(t.Context(),
		ParseString("(def a 1) a (number/add a 1)"), NewRootEnv())
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, r := range results {
		got = append(got, Format(r))
	}

	if want := "a 1 2"; strings.Join(got, " ") != want {
		t.Errorf("results = %v, want %s", got, want)
	}
}

func TestEvaluateReader(t *testing.T) {
	t.Parallel()

	in := newTestInterpreter()

	got, err := in.EvaluateReader(t.Context(),
		strings.NewReader("(def n 4)\n(number/mul n n)\n"), NewRootEnv())
	if err != nil {
		t.Fatal(err)
	}

	if !Equal(got, Int(16)) {
		t.Errorf("result = %s, want 16", Format(got))
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	in := newTestInterpreter()
	env := NewRootEnv()

	add := env.Lookup(Symbol("number/add"))

	if got := in.apply(t.Context(), add, []Expr{Int(2), Int(3)}, env); !Equal(got, Int(5)) {
		t.Errorf("apply(number/add) = %s, want 5", Format(got))
	}

	got := in.apply(t.Context(), Int(1), nil, env)
	if got.Kind() != KindError {
		t.Errorf("apply(1) = %s, want an error", Format(got))
	}
}

func TestParams(t *testing.T) {
	t.Parallel()

	env := NewRootEnv()
	env.Define(Symbol("fn"), SymLambda)

	shadow := env.Fork()
	shadow.Define(SymLambda, Int(1))

	form := func(head Expr, params ...Expr) List {
		return List{head, List(params), Symbol("body")}
	}

	tests := []struct {
		name   string
		e      Expr
		env    *Env
		want   []Symbol
		wantOK bool
	}{
		{"closure", &Closure{Params: []Symbol{"a", "b"}}, nil, []Symbol{"a", "b"}, true},
		{"lambda form", form(SymLambda, Symbol("x"), Symbol("y")), env, []Symbol{"x", "y"}, true},
		{"no params", form(SymLambda), env, []Symbol{}, true},
		{"aliased head", form(Symbol("fn"), Symbol("x")), env, []Symbol{"x"}, true},
		{"aliased head without env", form(Symbol("fn"), Symbol("x")), nil, nil, false},
		{"shadowed lambda", form(SymLambda, Symbol("x")), shadow, nil, false},
		{"number param", form(SymLambda, Int(1)), env, nil, false},
		{"params not a list", List{SymLambda, Symbol("x")}, env, nil, false},
		{"bare lambda", List{SymLambda}, env, nil, false},
		{"data list", List{Symbol("hp"), Int(10)}, env, nil, false},
		{"text", Text("lambda"), env, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Params(tt.e, tt.env)
			if ok != tt.wantOK || !slices.Equal(got, tt.want) {
				t.Errorf("Params(%s) = %v, %v, want %v, %v",
					Format(tt.e), got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
