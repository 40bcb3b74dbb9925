package lang

import (
	"errors"
	"io"
	"testing"
)

func TestParseString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"x", "x"},
		{"1 2", "1 2"},
		{"'a''b'", "'a''b'"},
		{"(a (b c) ())", "(a (b c) ())"},
		{"(unclosed (list", "(unclosed (list))"},
		{") x )", "x"},
		{"(1.50 -2)", "(1.5 -2)"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			var got string

			for i, e := range ParseString(tt.in) {
				if i > 0 {
					got += " "
				}

				got += Format(e)
			}

			if got != tt.want {
				t.Errorf("ParseString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParser_EOF(t *testing.T) {
	t.Parallel()

	p := NewParser(Lex("a"))

	if _, err := p.Parse(); err != nil {
		t.Fatalf("first Parse: %v", err)
	}

	if _, err := p.Parse(); !errors.Is(err, io.EOF) {
		t.Errorf("second Parse error = %v, want io.EOF", err)
	}
}

func TestParse_Kinds(t *testing.T) {
	t.Parallel()

	forms := ParseString("(a 'b' 3)")
	if len(forms) != 1 {
		t.Fatalf("got %d forms, want 1", len(forms))
	}

	l, ok := forms[0].(List)
	if !ok {
		t.Fatalf("form is %T, want List", forms[0])
	}

	want := []Kind{KindSymbol, KindText, KindNumber}
	for i, k := range want {
		if l[i].Kind() != k {
			t.Errorf("element %d kind = %s, want %s", i, l[i].Kind(), k)
		}
	}
}
