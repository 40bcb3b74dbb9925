package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/dlisp/lang"
)

// Fmt parses source and prints it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical S-expressions (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as a token tree."`
}

// Input is the source read by every fmt subcommand.
type Input struct {
	Indent int    `default:"2" help:"Indent width (0 prints compact output)" short:"i"`
	Source string `arg:""      help:"Source input file or '-' for stdin."     name:"source" default:"-"`

	out io.Writer
}

func (s *Input) open() (io.ReadCloser, error) {
	if s.Source == stdinSource {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(s.Source)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err).With(slog.String("file", s.Source))
	}

	return f, nil
}

// parse reads and parses every form of the source.
func (s *Input) parse(ctx context.Context) ([]lang.Expr, error) {
	r, err := s.open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	forms, err := runtimeFrom(ctx).Interpreter().ParseReader(ctx, r)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err).With(slog.String("file", s.Source))
	}

	return forms, nil
}

type formsWriter func(ctx context.Context, w io.Writer, forms []lang.Expr, indent int) error

func (s *Input) format(ctx context.Context, name string, write formsWriter) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	forms, err := s.parse(ctx)
	if err != nil {
		return err
	}

	if err := write(ctx, output(s.out), forms, s.Indent); err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", name))
	}

	return nil
}

// Native prints canonical S-expressions.
type Native struct{ Input }

// Run executes the native command.
func (n *Native) Run(ctx context.Context) error {
	return n.format(ctx, "native", lang.WriteNative)
}

// JSON prints the forms as a JSON array.
type JSON struct{ Input }

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	return j.format(ctx, "json", lang.WriteJSON)
}

// YAML prints the forms as a YAML sequence.
type YAML struct{ Input }

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return y.format(ctx, "yaml", lang.WriteYAML)
}

// AST prints each token of the source with its nesting.
type AST struct{ Input }

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	r, err := a.open()
	if err != nil {
		return err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return ErrOpenSource.Wrap(err).With(slog.String("file", a.Source))
	}

	if err := lang.WriteAST(ctx, output(a.out), string(data), a.Indent); err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", "ast"))
	}

	return nil
}
