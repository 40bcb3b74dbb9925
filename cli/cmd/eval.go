package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/dlisp/lang"
)

// Eval evaluates an expression given on the command line.
type Eval struct {
	Expr []string `arg:"" help:"Source to evaluate; arguments are joined with spaces" name:"expr"`

	out io.Writer
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	rt := runtimeFrom(ctx)
	in := rt.Interpreter()

	env, err := rt.RootEnv(ctx, in)
	if err != nil {
		return err
	}

	src := strings.Join(e.Expr, " ")

	result, err := in.EvaluateSource(ctx, src, env)
	if err != nil {
		return ErrEvaluate.Wrap(err).With(
			slog.String("command", "eval"),
			slog.String("source", src))
	}

	_, err = fmt.Fprintln(output(e.out), lang.Display(result))

	return err
}

// output returns w, or os.Stdout when w is nil.
func output(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}

	return w
}
