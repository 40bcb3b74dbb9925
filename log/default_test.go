package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// Tests in this file replace the package-level logger and must not run in
// parallel.

func TestPackageFunctions_UseDefaultLogger(t *testing.T) {
	saved := defaultLog
	t.Cleanup(func() { defaultLog = saved })

	var buf bytes.Buffer

	defaultLog = Make(&buf, WithLevel(LevelDebug), WithPretty(false))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()
			if !strings.Contains(out, `"level":"`+tt.level+`"`) ||
				!strings.Contains(out, `"key":"value"`) {
				t.Errorf("unexpected record %q", out)
			}
		})
	}
}

func TestConfig_ReconfiguresDefault(t *testing.T) {
	saved := defaultLog
	t.Cleanup(func() { defaultLog = saved })

	var buf bytes.Buffer

	defaultLog = Make(&buf, WithPretty(false))
	Config(WithFormat(FormatText), WithLevel(LevelWarn))

	Info("hidden")
	Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "msg=shown") {
		t.Errorf("unexpected output %q", out)
	}

	if Default().Format() != FormatText {
		t.Errorf("Default().Format() = %v", Default().Format())
	}
}
