// Package cli contains the command line interface for dlisp.
//
// # Usage
//
// With no command, dlisp starts the interactive console:
//
//	dlisp
//	dlisp -s stats.lsp repl --plain
//	dlisp eval "(roll '+ 2d6 3')"
//	dlisp run session.lsp
//	dlisp roll 4d6
//	dlisp fmt json stats.lsp
//
// Files given with --source are evaluated into the root environment before
// the command runs.
//
// # Configuration
//
// Flag defaults are read from the config script in the user config
// directory, a dlisp source file whose top-level definitions name flags:
//
//	(def log-level 'debug')
//	(def lang-lib ('~/dlisp'))
//
// A JSON file of the same name with a .json extension is also read. The
// init command writes the config script from the current flag values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (kitchen, RFC3339, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output on terminals
//
// # Language Options
//
//   - --lang-lib: Add an import search directory (also $DLISP_PATH)
//   - --lang-base-dir: Directory relative imports resolve against
//   - --lang-max-depth: Evaluation depth limit
//   - --lang-seed: Seed dice rolls for reproducible results
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o dlisp .
//
// Such builds accept:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
