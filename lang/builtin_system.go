package lang

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/dlisp/lang/dice"
)

// Reserved keys written by the module operator.
const (
	KeyModuleName    = Symbol(":module:name")
	KeyModuleExports = Symbol(":module:exports")
)

// SourceExt is the conventional extension of source files. Import tries it
// when the given path does not exist.
const SourceExt = ".lsp"

func systemBuiltins() []*Builtin {
	return []*Builtin{
		{
			Name:    "roll",
			Params:  "notation",
			Summary: "dice roll, such as (roll '+ 2d6 3')",
			Fn:      rollOperator,
		},
		{
			Name:    "module",
			Params:  "name (exports...)",
			Summary: "declare the module name and exported atoms of a file",
			Raw:     true,
			Fn:      moduleOperator,
		},
		{
			Name:    "import",
			Params:  "path alias?",
			Summary: "load a module, binding its exports as <module>/<name>",
			Fn:      importOperator,
		},
		{
			Name:    "help",
			Params:  "topic?",
			Summary: "show this help, or the help for a topic",
			Fn:      helpOperator,
		},
	}
}

// rollOperator returns (total 'description: total' min max).
func rollOperator(ctx context.Context, in *Interpreter, _ *Env, args []Expr) Expr {
	if !argsOfKind(args, KindText) {
		return Errorf("roll requires exactly one argument of type text")
	}

	notation := string(args[0].(Text))

	r, err := dice.Roll(notation, in.roll)
	if err != nil {
		return Errorf("roll: %v", err)
	}

	in.logger.DebugContext(ctx, "roll",
		slog.String("notation", notation),
		slog.Int("value", r.Value),
		slog.Int("min", r.Min),
		slog.Int("max", r.Max))

	return List{
		Int(int64(r.Value)),
		Text(r.Description + ": " + Int(int64(r.Value)).Text()),
		Int(int64(r.Min)),
		Int(int64(r.Max)),
	}
}

func moduleOperator(_ context.Context, _ *Interpreter, env *Env, args []Expr) Expr {
	if len(args) != 2 {
		return Errorf("module requires two arguments. module name and exported tokens")
	}

	if args[0].Kind() != KindSymbol {
		return Errorf("module requires a module name")
	}

	if args[1].Kind() != KindList {
		return Errorf("module requires a export list")
	}

	env.Assign(KeyModuleName, args[0])
	env.Assign(KeyModuleExports, args[1])

	return args[0]
}

// resolveModule locates path relative to the base directory, then each
// search directory. Absolute paths are used as given. Each candidate is
// tried as written and with [SourceExt] appended.
func (in *Interpreter) resolveModule(path string) (string, error) {
	candidates := []string{path}
	if filepath.Ext(path) == "" {
		candidates = append(candidates, path+SourceExt)
	}

	roots := []string{""}
	if !filepath.IsAbs(path) {
		roots = append([]string{in.baseDir}, in.searchPath...)
	}

	for _, root := range roots {
		for _, c := range candidates {
			full := filepath.Join(root, c)

			info, err := os.Stat(full)
			if err == nil && info.Mode().IsRegular() {
				if abs, err := filepath.Abs(full); err == nil {
					return abs, nil
				}

				return full, nil
			}
		}
	}

	return "", ErrModuleNotFound.Wrap(fs.ErrNotExist).With(
		slog.String("path", path),
		slog.Any("search", roots))
}

func importOperator(ctx context.Context, in *Interpreter, env *Env, args []Expr) Expr {
	if len(args) < 1 || len(args) > 2 {
		return Errorf("import requires a text argument and a atom")
	}

	path, ok := args[0].(Text)
	if !ok {
		return Errorf("import requires a text argument and a atom")
	}

	var alias Symbol

	if len(args) == 2 {
		if alias, ok = args[1].(Symbol); !ok {
			return Errorf("import requires a text argument and a atom")
		}
	}

	file, err := in.resolveModule(string(path))
	if err != nil {
		in.logger.DebugContext(ctx, "import failed", slog.Any("error", err))

		return Errorf("import failed!!! %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		in.logger.DebugContext(ctx, "import failed",
			slog.Any("error", ErrReadInput.Wrap(err).With(slog.String("file", file))))

		return Errorf("import failed!!! %v", err)
	}

	mod := in.derive(filepath.Dir(file))
	scope := NewRootEnv()

	for _, form := range mod.Parse(ctx, string(data)) {
		mod.Eval(ctx, form, scope)
	}

	name := moduleName(alias, scope, file)

	exports, _ := scope.Lookup(KeyModuleExports).(List)

	count := 0

	for _, e := range exports {
		sym, ok := e.(Symbol)
		if !ok {
			continue
		}

		value := mod.Eval(ctx, scope.Lookup(sym), scope)
		env.Assign(Symbol(string(name)+"/"+string(sym)), value)

		count++
	}

	in.logger.DebugContext(ctx, "module loaded",
		slog.String("module", string(name)),
		slog.String("file", file),
		slog.Int("exports", count))

	return Text("loaded")
}

func moduleName(alias Symbol, scope *Env, file string) Symbol {
	if alias != "" {
		return alias
	}

	if s, ok := scope.Lookup(KeyModuleName).(Symbol); ok && s != KeyModuleName {
		return s
	}

	return Symbol(strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)))
}

func helpOperator(_ context.Context, _ *Interpreter, _ *Env, args []Expr) Expr {
	if len(args) == 0 {
		return Text(Reference())
	}

	topic, ok := args[0].(Text)
	if !ok || len(args) != 1 {
		return Text(Reference())
	}

	doc, err := HelpTopic(string(topic))
	if err != nil {
		return Errorf("Unable to read help file for: %s", topic)
	}

	return Text(doc)
}
