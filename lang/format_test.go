package lang

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		e    Expr
		want string
	}{
		{List{}, "()"},
		{nil, "()"},
		{Symbol("a"), "a"},
		{Text("it's"), "'it''s'"},
		{MustNumber("-1.250"), "-1.25"},
		{MustNumber("0.000"), "0"},
		{Errorf("bad"), "<error: bad>"},
		{List{Symbol("f"), List{Text("x"), Int(2)}}, "(f ('x' 2))"},
		{&Closure{Params: []Symbol{"x", "y"}}, "<lambda (x y)>"},
		{&Builtin{Name: "list"}, "<operator list>"},
	}

	for _, tt := range tests {
		if got := Format(tt.e); got != tt.want {
			t.Errorf("Format(%#v) = %q, want %q", tt.e, got, tt.want)
		}
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		e    Expr
		want string
	}{
		{Text("it's"), "it's"},
		{Errorf("bad"), "Error: bad"},
		{List{Text("a"), Errorf("b")}, "('a' <error: b>)"},
		{Int(7), "7"},
	}

	for _, tt := range tests {
		if got := Display(tt.e); got != tt.want {
			t.Errorf("Display(%#v) = %q, want %q", tt.e, got, tt.want)
		}
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"(def greet (lambda (name) (text/concat 'hi, ' name '''')))",
		"(list 1 -2.5 (quote (a b)) 'x')",
		"()",
	} {
		forms := ParseString(src)
		again := ParseString(Format(List(forms)))

		if len(again) != 1 || !Equal(again[0], List(forms)) {
			t.Errorf("%s did not survive Format", src)
		}
	}
}

func TestWriteNative(t *testing.T) {
	t.Parallel()

	forms := ParseString("(def f (lambda (x) (number/add x 1))) (f 2)")

	var flat bytes.Buffer
	if err := WriteNative(t.Context(), &flat, forms, 0); err != nil {
		t.Fatal(err)
	}

	if want := "(def f (lambda (x) (number/add x 1)))\n(f 2)\n"; flat.String() != want {
		t.Errorf("flat =\n%s\nwant\n%s", flat.String(), want)
	}

	var nested bytes.Buffer
	if err := WriteNative(t.Context(), &nested, forms, 2); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"(def",
		"  f",
		"  (lambda",
		"    (x)",
		"    (number/add x 1)))",
		"",
		"(f 2)",
		"",
	}, "\n")
	if nested.String() != want {
		t.Errorf("indented =\n%s\nwant\n%s", nested.String(), want)
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteJSON(t.Context(), &buf, ParseString("(a 'b' 1 2.5 true)"), 0); err != nil {
		t.Fatal(err)
	}

	if want := `[["a","b",1,2.5,true]]` + "\n"; buf.String() != want {
		t.Errorf("json = %q, want %q", buf.String(), want)
	}
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteYAML(t.Context(), &buf, ParseString("(a 1) b"), 2); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, s := range []string{"- a", "- 1", "- b"} {
		if !strings.Contains(out, s) {
			t.Errorf("yaml lacks %q:\n%s", s, out)
		}
	}
}

func TestWriteExactNumbers(t *testing.T) {
	t.Parallel()

	const src = "(x 0.1234567890123456789 12345678901234567890.5 -98765432109876543210)"

	digits := []string{
		"0.1234567890123456789",
		"12345678901234567890.5",
		"-98765432109876543210",
	}

	tests := []struct {
		name  string
		write func(*bytes.Buffer) error
	}{
		{"json", func(b *bytes.Buffer) error {
			return WriteJSON(t.Context(), b, ParseString(src), 0)
		}},
		{"json indented", func(b *bytes.Buffer) error {
			return WriteJSON(t.Context(), b, ParseString(src), 2)
		}},
		{"yaml", func(b *bytes.Buffer) error {
			return WriteYAML(t.Context(), b, ParseString(src), 2)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := tt.write(&buf); err != nil {
				t.Fatal(err)
			}

			for _, d := range digits {
				if !strings.Contains(buf.String(), d) {
					t.Errorf("%s output lacks %s:\n%s", tt.name, d, buf.String())
				}
			}

			if strings.Contains(buf.String(), `"0.1234567890123456789"`) {
				t.Errorf("%s output quotes a number:\n%s", tt.name, buf.String())
			}
		})
	}

	var buf bytes.Buffer
	if err := WriteJSON(t.Context(), &buf, ParseString(src), 0); err != nil {
		t.Fatal(err)
	}

	want := `[["x",0.1234567890123456789,12345678901234567890.5,-98765432109876543210]]` + "\n"
	if buf.String() != want {
		t.Errorf("json = %q, want %q", buf.String(), want)
	}
}

func TestWriteAST(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteAST(t.Context(), &buf, "(f 'x'\n  (g 1))", 2); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"1:1     list",
		"1:2       atom f",
		"1:4       text 'x'",
		"2:3       list",
		"2:4         atom g",
		"2:6         number 1",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("ast =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestToNative(t *testing.T) {
	t.Parallel()

	got := ToNative(List{Int(3), MustNumber("0.5"), False, Errorf("e")})

	l, ok := got.([]any)
	if !ok || len(l) != 4 {
		t.Fatalf("ToNative = %#v", got)
	}

	if v, ok := l[0].(int64); !ok || v != 3 {
		t.Errorf("number = %#v, want int64 3", l[0])
	}

	if v, ok := l[1].(Decimal); !ok || v != "0.5" {
		t.Errorf("fraction = %#v, want Decimal 0.5", l[1])
	}

	if v, ok := l[2].(bool); !ok || v {
		t.Errorf("false = %#v, want false", l[2])
	}

	if m, ok := l[3].(map[string]any); !ok || m["error"] != "e" {
		t.Errorf("error = %#v", l[3])
	}
}
