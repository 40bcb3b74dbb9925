package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/dlisp/lang"
	"github.com/ardnew/dlisp/log"
)

// Run evaluates script files in order in one root environment. Imports in
// each file resolve against the file's own directory first.
type Run struct {
	Files []string `arg:"" help:"Script files to evaluate"           name:"file" type:"existingfile"`
	Quiet bool     `       help:"Print only the result of the last form" short:"q"`

	out io.Writer
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	rt := runtimeFrom(ctx)

	env, err := rt.RootEnv(ctx, rt.Interpreter())
	if err != nil {
		return err
	}

	w := output(r.out)

	var last lang.Expr

	for _, file := range r.Files {
		results, err := r.runFile(ctx, rt, env, file)
		if err != nil {
			return err
		}

		if r.Quiet {
			if len(results) > 0 {
				last = results[len(results)-1]
			}

			continue
		}

		for _, result := range results {
			if _, err := fmt.Fprintln(w, lang.Display(result)); err != nil {
				return err
			}
		}
	}

	if r.Quiet && last != nil {
		_, err = fmt.Fprintln(w, lang.Display(last))
	}

	return err
}

func (r *Run) runFile(
	ctx context.Context,
	rt *Runtime,
	env *lang.Env,
	file string,
) ([]lang.Expr, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err).With(slog.String("file", file))
	}
	defer f.Close()

	in := rt.Interpreter(lang.WithBaseDir(filepath.Dir(file)))

	forms, err := in.ParseReader(ctx, f)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err).With(slog.String("file", file))
	}

	results, err := in.EvaluateForms(ctx, forms, env)
	if err != nil {
		return results, ErrEvaluate.Wrap(err).With(
			slog.String("file", file),
			slog.Int("form", len(results)+1))
	}

	log.DebugContext(ctx, "script evaluated",
		slog.String("file", file),
		slog.Int("forms", len(forms)))

	return results, nil
}
