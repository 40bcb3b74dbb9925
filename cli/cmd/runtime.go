package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/dlisp/lang"
	"github.com/ardnew/dlisp/lang/dice"
	"github.com/ardnew/dlisp/log"
)

// Runtime is the interpreter configuration shared by commands.
type Runtime struct {
	// Options configure every interpreter a command creates.
	Options []lang.Option
	// Roller draws dice for the roll command.
	Roller dice.Roller
	// Sources are evaluated into each new root environment.
	Sources SourceFiles
	// CacheDir holds console history and edit buffers.
	CacheDir string
}

type runtimeKey struct{}

// WithRuntime returns a copy of ctx carrying rt. The source files named by
// sources are opened and attached to rt.
func WithRuntime(ctx context.Context, rt Runtime, sources ...string) context.Context {
	if rt.Sources == nil {
		rt.Sources = buildSourceFiles(sources)
	}

	return context.WithValue(ctx, runtimeKey{}, &rt)
}

// runtimeFrom returns the [Runtime] stored by [WithRuntime], or a default
// one.
func runtimeFrom(ctx context.Context) *Runtime {
	if rt, ok := ctx.Value(runtimeKey{}).(*Runtime); ok && rt != nil {
		return rt
	}

	return &Runtime{CacheDir: kongVar(ctx, CacheIdentifier)}
}

// Interpreter returns an interpreter built from the runtime options followed
// by opts.
func (rt *Runtime) Interpreter(opts ...lang.Option) *lang.Interpreter {
	base := append(
		[]lang.Option{lang.WithLogger(log.Default()), lang.WithRoller(rt.Roller)},
		rt.Options...,
	)

	return lang.New(append(base, opts...)...)
}

// RootEnv returns a new root environment. The first call also evaluates the
// source files into it, consuming them.
func (rt *Runtime) RootEnv(ctx context.Context, in *lang.Interpreter) (*lang.Env, error) {
	env := lang.NewRootEnv()

	if rt.Sources == nil {
		return env, nil
	}

	src := rt.Sources
	rt.Sources = nil

	if err := preload(ctx, in, env, src); err != nil {
		return nil, err
	}

	return env, nil
}

func preload(ctx context.Context, in *lang.Interpreter, env *lang.Env, src SourceFiles) error {
	if src.IsZero() && src.Stdin() == nil {
		return nil
	}

	result, err := in.EvaluateReader(ctx, src, env)
	if err != nil {
		return ErrEvaluate.Wrap(err).With(slog.Any("source", src.Names()))
	}

	log.DebugContext(ctx, "sources loaded",
		slog.Any("files", src.Names()),
		slog.Bool("stdin", src.Stdin() != nil),
		slog.String("result", lang.Format(result)))

	return nil
}
