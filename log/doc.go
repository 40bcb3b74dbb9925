// Package log wraps [log/slog] with functional configuration, a trace level
// below debug, and colorized handlers for interactive terminals.
//
// A [Logger] is built with [Make] and reconfigured with [Logger.Wrap]:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Debug("parsed", slog.Int("forms", 3))
//
// Every level has a context-aware variant ([Logger.InfoContext], ...). The
// variants without a context use [DefaultContextProvider].
//
// The package-level functions ([Info], [Warn], ...) write through a default
// logger on stderr, reconfigured with [Config]. Pretty output is enabled for
// it only when stderr is a terminal.
package log
