package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/dlisp/lang"
	"github.com/ardnew/dlisp/log"
	"github.com/ardnew/dlisp/profile"
)

// defaultConfigIndent is the indent width of the generated config script.
const defaultConfigIndent = 2

// Init writes the config script with the current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	confPath := kongVar(ctx, ConfigIdentifier)
	if confPath == "" {
		panic("internal error: config path undefined")
	}

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}
	defer file.Close()

	forms := i.buildForms(ctx)

	if err := lang.WriteNative(ctx, file, forms, defaultConfigIndent); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("flags", len(forms)))

	return nil
}

// buildForms returns a (def flag value) form for each set flag. Help,
// version and profiling flags are left out.
func (i *Init) buildForms(ctx context.Context) []lang.Expr {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return nil
	}

	prefixIgnore := []string{"help", "version", profile.Tag}

	var forms []lang.Expr

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val := flagExpr(ktx.FlagValue(flag)); val != nil {
			forms = append(forms, lang.List{lang.SymDef, lang.Symbol(flag.Name), val})
		}
	}

	return forms
}

// flagExpr converts a flag value to the expression the config resolver reads
// back, or nil for unset values.
func flagExpr(val any) lang.Expr {
	switch v := val.(type) {
	case nil:
		return nil

	case bool:
		return lang.Bool(v)

	case string:
		if v == "" {
			return nil
		}

		return lang.Text(v)

	case int:
		return lang.Int(int64(v))

	case int64:
		return lang.Int(v)

	case uint64:
		return number(strconv.FormatUint(v, 10))

	case float64:
		return number(strconv.FormatFloat(v, 'f', -1, 64))

	case []string:
		if len(v) == 0 {
			return nil
		}

		list := make(lang.List, len(v))
		for i, s := range v {
			list[i] = lang.Text(s)
		}

		return list

	default:
		return lang.Text(fmt.Sprint(v))
	}
}

func number(s string) lang.Expr {
	n, err := lang.ParseNumber(s)
	if err != nil {
		return lang.Text(s)
	}

	return n
}
