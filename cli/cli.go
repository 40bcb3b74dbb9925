package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dlisp/cli/cmd"
	"github.com/ardnew/dlisp/pkg"
)

// CLI is the top-level command-line interface for dlisp.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Lang  langConfig  `embed:"" group:"lang"  prefix:"lang-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Source []string `help:"Source file(s) evaluated before the command, or '-' for stdin" name:"source" short:"s" type:"existingfile"`

	Repl cmd.Repl `cmd:"" default:"withargs" help:"Start the interactive console (default)"`
	Run  cmd.Run  `cmd:""                    help:"Evaluate script files"`
	Eval cmd.Eval `cmd:""                    help:"Evaluate an expression"`
	Roll cmd.Roll `cmd:""                    help:"Roll dice"`
	Fmt  cmd.Fmt  `cmd:""                    help:"Format source"`
	Init cmd.Init `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the dlisp CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Lang.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags apply before parsing so that parse errors and the config
	// script are logged with them.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Lang.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithRuntime(ctx, cmd.Runtime{
		Options:  cli.Lang.options(),
		Roller:   cli.Lang.roller(),
		CacheDir: cacheDir(),
	}, cli.Source...)

	// TimeLayout has no TextUnmarshaler, so the logger is final only now.
	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
