// Package cmd implements the dlisp subcommands: the interactive console,
// script and expression evaluation, dice rolls, source formatting, and
// config initialization.
//
// Commands receive their shared state through [context.Context]: the
// [kong.Context] via [WithContext] and the interpreter settings via
// [WithRuntime].
package cmd

var (
	// CacheIdentifier is the kong variable holding the path to the runtime
	// cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the path to the config
	// script.
	ConfigIdentifier = "config"
)
