package repl

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/dlisp/lang"
	"github.com/ardnew/dlisp/log"
)

// RootContext names the context holding the root environment.
const RootContext = "/"

// scratchFile is the buffer opened by the edit command, kept in the cache
// directory between sessions.
const scratchFile = "scratch" + lang.SourceExt

// Action is a console effect requested by a script or a control command.
type Action int

const (
	ActionClear Action = iota
	ActionQuit
	ActionOpen
)

func (a Action) String() string {
	switch a {
	case ActionClear:
		return "clear"
	case ActionQuit:
		return "quit"
	case ActionOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Request is an [Action] with its payload. Path is set for [ActionOpen].
type Request struct {
	Action Action
	Path   string
}

// Reply collects everything one submission produced, in the order the
// console should show it: log lines, then results.
type Reply struct {
	Logs     []string
	Results  []lang.Expr
	Requests []Request
	Err      error
}

// Lines returns the log lines followed by the display form of each result.
// Empty text results, such as those of the console functions, are left out.
func (r Reply) Lines() []string {
	lines := slices.Clone(r.Logs)

	for _, result := range r.Results {
		if t, ok := result.(lang.Text); ok && t == "" {
			continue
		}

		lines = append(lines, lang.Display(result))
	}

	return lines
}

type namedEnv struct {
	name lang.Expr
	env  *lang.Env
}

// Session owns the environments of one console. Each context is a fork of
// the root environment, keyed by the expression that named it. A Session is
// not safe for concurrent use.
type Session struct {
	in       *lang.Interpreter
	root     *lang.Env
	contexts map[string]namedEnv
	current  string
	cacheDir string
	logger   log.Logger

	logs     []string
	requests []Request
}

// NewSession registers the console host in root and returns a session whose
// current context is [RootContext].
func NewSession(
	ctx context.Context,
	in *lang.Interpreter,
	root *lang.Env,
	cacheDir string,
) (*Session, error) {
	rootName := lang.Text(RootContext)

	s := &Session{
		in:       in,
		root:     root,
		contexts: map[string]namedEnv{lang.Key(rootName): {rootName, root}},
		current:  lang.Key(rootName),
		cacheDir: cacheDir,
		logger:   in.Logger(),
	}

	if err := lang.RegisterHost(ctx, in, root, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Env returns the environment of the current context.
func (s *Session) Env() *lang.Env { return s.contexts[s.current].env }

// Context returns the display name of the current context.
func (s *Session) Context() string { return lang.Display(s.contexts[s.current].name) }

// Contexts returns the display names of every context, sorted.
func (s *Session) Contexts() []string {
	names := make([]string, 0, len(s.contexts))
	for _, c := range s.contexts {
		names = append(names, lang.Display(c.name))
	}

	slices.Sort(names)

	return names
}

// Symbols returns the names visible from the current context.
func (s *Session) Symbols() []string { return s.Env().Symbols() }

// Lookup resolves name in the current context.
func (s *Session) Lookup(name string) (lang.Expr, bool) {
	return s.Env().Resolve(lang.Symbol(name))
}

// Send implements [lang.Host].
func (s *Session) Send(ctx context.Context, tag string, args []lang.Expr) lang.Expr {
	s.logger.TraceContext(ctx, "console request",
		slog.String("tag", tag),
		slog.Int("args", len(args)))

	switch tag {
	case "log":
		for _, a := range args {
			s.logs = append(s.logs, lang.Display(a))
		}

		return nil

	case "clear":
		s.requests = append(s.requests, Request{Action: ActionClear})

		return nil

	case "quit":
		s.requests = append(s.requests, Request{Action: ActionQuit})

		return nil

	case "setcontext":
		if len(args) != 1 {
			return lang.Errorf("setContext requires exactly one argument")
		}

		return lang.Text("context " + s.switchTo(ctx, args[0]))

	case "open":
		if len(args) != 1 || args[0].Kind() != lang.KindText {
			return lang.Errorf("open requires exactly one argument of type text")
		}

		path := string(args[0].(lang.Text))
		s.requests = append(s.requests, Request{Action: ActionOpen, Path: path})

		return lang.Text(path)

	default:
		return lang.Errorf("unknown console request: %s", tag)
	}
}

// switchTo makes name the current context, creating it as a fork of the
// root environment if it does not exist. It returns the display name.
func (s *Session) switchTo(ctx context.Context, name lang.Expr) string {
	key := lang.Key(name)

	if _, ok := s.contexts[key]; !ok {
		s.contexts[key] = namedEnv{name, s.root.Fork()}

		s.logger.DebugContext(ctx, "context created",
			slog.String("context", lang.Display(name)))
	}

	s.current = key

	return lang.Display(name)
}

// Submit evaluates each form of src in the current context. A form that
// switches context affects the forms after it.
func (s *Session) Submit(ctx context.Context, src string) Reply {
	forms := s.in.Parse(ctx, src)

	var reply Reply

	for _, form := range forms {
		result, err := s.in.Evaluate(ctx, form, s.Env())
		if err != nil {
			reply.Err = err

			break
		}

		reply.Results = append(reply.Results, result)
	}

	reply.Logs, reply.Requests = s.logs, s.requests
	s.logs, s.requests = nil, nil

	s.logger.TraceContext(ctx, "console submit",
		slog.Int("forms", len(forms)),
		slog.Int("results", len(reply.Results)),
		slog.Int("requests", len(reply.Requests)),
		slog.Bool("aborted", reply.Err != nil))

	return reply
}

// SubmitFile evaluates the content of path in the current context.
func (s *Session) SubmitFile(ctx context.Context, path string) Reply {
	data, err := os.ReadFile(path)
	if err != nil {
		return Reply{Err: lang.ErrReadInput.Wrap(err).With(slog.String("file", path))}
	}

	return s.Submit(ctx, string(data))
}

// ScratchPath returns the path of the edit buffer.
func (s *Session) ScratchPath() string {
	return filepath.Join(s.cacheDir, scratchFile)
}

// HistoryPath returns the path of the history file.
func (s *Session) HistoryPath() string {
	return filepath.Join(s.cacheDir, baseHistory)
}

// Binding is a user definition visible from the current context.
type Binding struct {
	Name  string
	Value lang.Expr
}

// Bindings returns the definitions visible from the current context,
// nearest frame first, excluding builtin operators and reserved names.
func (s *Session) Bindings() []Binding {
	var (
		out  []Binding
		seen = make(map[string]struct{})
	)

	for f := s.Env(); f != nil; f = f.Parent() {
		for k, v := range f.Local() {
			name, ok := k.(lang.Symbol)
			if !ok || strings.HasPrefix(string(name), ":") {
				continue
			}

			if _, dup := seen[string(name)]; dup {
				continue
			}

			seen[string(name)] = struct{}{}

			if _, builtin := v.(*lang.Builtin); builtin {
				continue
			}

			out = append(out, Binding{Name: string(name), Value: v})
		}
	}

	return out
}
