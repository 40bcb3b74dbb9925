package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dlisp/lang"
	"github.com/ardnew/dlisp/log"
)

// resolve returns a [kong.ConfigurationLoader] for config scripts written
// in dlisp.
//
// The script is evaluated in a fresh root environment. Each binding it
// defines at the top level supplies the flag of the same name, with hyphens
// or underscores as separators:
//
//	(def log-level 'debug')
//	(def log_pretty false)
//	(def lang-lib ('/usr/share/dlisp' '~/dlisp'))
//	(def lang-max-depth 1000)
//
// Bound values are evaluated before conversion. Text and atoms become
// strings, true and false become booleans, numbers become their decimal
// text, and lists become comma-separated strings. Bindings that evaluate to
// an error value are skipped with a warning.
//
// Command-line flags override config values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		in := lang.New(lang.WithLogger(log.Default()))
		scope := lang.NewRootEnv().Fork()

		if _, err := in.EvaluateReader(ctx, r, scope); err != nil {
			return nil, err
		}

		settings := make(config)

		for k, v := range scope.Local() {
			name, ok := k.(lang.Symbol)
			if !ok {
				continue
			}

			value, err := in.Evaluate(ctx, v, scope)
			if err != nil {
				return nil, err
			}

			native, ok := flagValue(value)
			if !ok {
				log.WarnContext(ctx, "ignoring config binding",
					slog.String("name", string(name)),
					slog.String("value", lang.Format(value)))

				continue
			}

			settings[string(name)] = native
		}

		return settings, nil
	}
}

// flagValue converts an evaluated binding to a value kong can parse.
// Numbers are returned as text; kong parses every numeric flag from a
// string.
func flagValue(e lang.Expr) (any, bool) {
	switch v := e.(type) {
	case lang.Symbol:
		switch v {
		case lang.True:
			return true, true
		case lang.False:
			return false, true
		}

		return string(v), true

	case lang.Text:
		return string(v), true

	case lang.Number:
		return v.Text(), true

	case lang.List:
		items := make([]string, 0, len(v))

		for _, item := range v {
			s, ok := flagValue(item)
			if !ok {
				return nil, false
			}

			str, ok := s.(string)
			if !ok {
				str = lang.Format(item)
			}

			items = append(items, str)
		}

		return strings.Join(items, ","), true
	}

	return nil, false
}

// config implements [kong.Resolver] over the bindings of a config script.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. Unknown flags resolve to nil, leaving
// kong's default in place.
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := c[name]; ok {
			return value, nil
		}
	}

	return nil, nil
}
