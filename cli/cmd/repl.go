package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/ardnew/dlisp/cli/cmd/repl"
	"github.com/ardnew/dlisp/log"
)

// Repl starts the interactive console.
type Repl struct {
	Plain bool `help:"Use the line-editing console instead of the full-screen one"`
}

// Run executes the repl command. Input that is not a terminal is evaluated
// as a script.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	rt := runtimeFrom(ctx)
	in := rt.Interpreter()

	env, err := rt.RootEnv(ctx, in)
	if err != nil {
		return err
	}

	if rt.CacheDir != "" {
		if err := os.MkdirAll(rt.CacheDir, 0o700); err != nil {
			return err
		}
	}

	session, err := repl.NewSession(ctx, in, env, rt.CacheDir)
	if err != nil {
		return ErrEvaluate.Wrap(err).With(slog.String("command", "repl"))
	}

	switch {
	case !repl.IsTerminal(os.Stdin):
		log.DebugContext(ctx, "console script", slog.String("input", os.Stdin.Name()))

		return repl.RunScript(ctx, session, os.Stdin, os.Stdout)

	case r.Plain:
		return repl.RunPlain(ctx, session)
	}

	err = repl.RunTUI(ctx, session)
	if errors.Is(err, repl.ErrNoTerminal) {
		log.DebugContext(ctx, "console fallback", slog.String("reason", err.Error()))

		return repl.RunPlain(ctx, session)
	}

	return err
}
