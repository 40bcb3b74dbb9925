package lang

import (
	"context"
	"log/slog"
	"strings"
)

// Host receives the requests scripts make through host/send. Tag is the
// lowercased request name; args are the remaining evaluated operands.
type Host interface {
	Send(ctx context.Context, tag string, args []Expr) Expr
}

// HostFunc adapts a function to [Host].
type HostFunc func(ctx context.Context, tag string, args []Expr) Expr

func (f HostFunc) Send(ctx context.Context, tag string, args []Expr) Expr {
	return f(ctx, tag, args)
}

// Prelude defines the console functions in terms of host/send.
const Prelude = `
(def log (lambda (x) (host/send 'log' x)))
(def clear (lambda () (host/send 'clear')))
(def quit (lambda () (host/send 'quit')))
(def swap (lambda (x) (host/send 'setContext' x)))
(def open (lambda (x) (host/send 'open' x)))
`

// RegisterHost defines host/send in env, forwarding to h, and evaluates
// [Prelude] in env.
func RegisterHost(ctx context.Context, in *Interpreter, env *Env, h Host) error {
	env.Define(Symbol("host/send"), &Builtin{
		Name:    "host/send",
		Params:  "tag args...",
		Summary: "send a request to the console",
		Fn: func(ctx context.Context, in *Interpreter, _ *Env, args []Expr) Expr {
			if len(args) == 0 {
				return Errorf("host/send requires a tag")
			}

			var tag string

			switch t := args[0].(type) {
			case Text:
				tag = string(t)
			case Symbol:
				tag = string(t)
			default:
				return Errorf("host/send tag must be text, got %s", t.Kind())
			}

			tag = strings.ToLower(tag)

			in.logger.DebugContext(ctx, "host request",
				slog.String("tag", tag),
				slog.Int("args", len(args)-1))

			if r := h.Send(ctx, tag, args[1:]); r != nil {
				return r
			}

			return Text("")
		},
	})

	_, err := in.EvaluateSource(ctx, Prelude, env)

	return err
}
