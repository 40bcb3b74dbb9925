package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveScript(t *testing.T, src string) kong.Resolver {
	t.Helper()

	resolver, err := resolve(t.Context())(strings.NewReader(src))
	if err != nil {
		t.Fatalf("resolve(%q): %v", src, err)
	}

	return resolver
}

func TestResolve(t *testing.T) {
	t.Parallel()

	resolver := resolveScript(t, `
		(def log-level 'debug')
		(def log_pretty false)
		(def log-caller true)
		(def lang-lib ('/usr/share/dlisp' '/opt/dlisp'))
		(def lang-max-depth 1000)
		(def lang-seed (number/add 40 2))
		(def mode cpu)
		(def broken (text/toError 'bad'))
	`)

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-pretty", false},
		{"log-caller", true},
		{"lang-lib", "/usr/share/dlisp,/opt/dlisp"},
		{"lang-max-depth", "1000"},
		{"lang-seed", "42"},
		{"mode", "cpu"},
		{"broken", nil},
		{"undefined", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()

			flag := &kong.Flag{Value: &kong.Value{Name: tt.flag}}

			got, err := resolver.Resolve(nil, nil, flag)
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%s) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolveLocalOnly(t *testing.T) {
	t.Parallel()

	resolver := resolveScript(t, "(def log-level 'warn')")

	// Builtins live in the parent frame and never resolve as flags.
	flag := &kong.Flag{Value: &kong.Value{Name: "number/add"}}

	if got, _ := resolver.Resolve(nil, nil, flag); got != nil {
		t.Errorf("Resolve(number/add) = %v, want nil", got)
	}
}

func TestResolveConfiguration(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), baseConfig)

	src := "(def log-level 'debug')\n(def log-pretty false)\n(def lang-lib ('/a' '/b'))\n(def lang-max-depth 9)\n"
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	var cli struct {
		LogLevel     string   `default:"info"  name:"log-level"`
		LogPretty    bool     `default:"true"  name:"log-pretty" negatable:""`
		LangLib      []string `name:"lang-lib"`
		LangMaxDepth int      `default:"100"   name:"lang-max-depth"`
	}

	parser, err := kong.New(&cli, kong.Configuration(resolve(t.Context()), path))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--lang-max-depth=3"}); err != nil {
		t.Fatal(err)
	}

	if cli.LogLevel != "debug" || cli.LogPretty {
		t.Errorf("log = %q, %v, want debug, false", cli.LogLevel, cli.LogPretty)
	}

	if want := []string{"/a", "/b"}; !slices.Equal(cli.LangLib, want) {
		t.Errorf("lang-lib = %q, want %q", cli.LangLib, want)
	}

	// Flags on the command line override the script.
	if cli.LangMaxDepth != 3 {
		t.Errorf("lang-max-depth = %d, want 3", cli.LangMaxDepth)
	}
}

// Nested lists flatten into one comma-separated value.
func TestResolveNestedList(t *testing.T) {
	t.Parallel()

	resolver := resolveScript(t, "(def nested ((1 2) 'x'))")

	flag := &kong.Flag{Value: &kong.Value{Name: "nested"}}

	got, err := resolver.Resolve(nil, nil, flag)
	if err != nil {
		t.Fatal(err)
	}

	if got != "1,2,x" {
		t.Errorf("nested = %#v, want %q", got, "1,2,x")
	}
}
