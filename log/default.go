package log

import (
	"context"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// DefaultContextProvider supplies the context for logging calls that do not
// take one.
var DefaultContextProvider = context.TODO

// defaultLog writes to stderr so diagnostics never interleave with
// evaluation results on stdout. Pretty output requires a terminal.
var defaultLog = Make(os.Stderr, WithPretty(isTerminal(os.Stderr)))

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Default returns the package-level logger.
func Default() Logger { return defaultLog }

// Config reconfigures the package-level logger.
func Config(opts ...Option) {
	defaultLog = defaultLog.Wrap(opts...)
}

func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.write(ctx, LevelTrace, msg, attrs)
}

func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.write(ctx, LevelDebug, msg, attrs)
}

func Debug(msg string, attrs ...slog.Attr) {
	defaultLog.write(DefaultContextProvider(), LevelDebug, msg, attrs)
}

func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.write(ctx, LevelInfo, msg, attrs)
}

func Info(msg string, attrs ...slog.Attr) {
	defaultLog.write(DefaultContextProvider(), LevelInfo, msg, attrs)
}

func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.write(ctx, LevelWarn, msg, attrs)
}

func Warn(msg string, attrs ...slog.Attr) {
	defaultLog.write(DefaultContextProvider(), LevelWarn, msg, attrs)
}

func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.write(ctx, LevelError, msg, attrs)
}

func Error(msg string, attrs ...slog.Attr) {
	defaultLog.write(DefaultContextProvider(), LevelError, msg, attrs)
}

// With returns a copy of the package-level logger that adds attrs to every
// record.
func With(attrs ...slog.Attr) Logger {
	return defaultLog.With(attrs...)
}
