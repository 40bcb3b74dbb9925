package repl

import (
	"slices"
	"strings"
	"testing"
)

func TestDetectFunctionCall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		cursor     int
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{"bare atom", "greeting", 8, "", 0, false},
		{"head still typed", "(number/add", 11, "", 0, false},
		{"first operand", "(number/add ", 12, "number/add", 0, true},
		{"typing first operand", "(number/add 1", 13, "number/add", 0, true},
		{"second operand", "(number/add 1 ", 14, "number/add", 1, true},
		{"nested call", "(number/add (list/first ", 24, "list/first", 0, true},
		{"after nested call", "(number/add (list 1) ", 21, "number/add", 1, true},
		{"text operand", "(text/concat 'a b' ", 19, "text/concat", 1, true},
		{"escaped quote", "(text/concat 'it''s' ", 21, "text/concat", 1, true},
		{"paren inside text", "(text/concat '(' ", 17, "text/concat", 1, true},
		{"closed call", "(number/add 1 2)", 16, "", 0, false},
		{"list head", "((lambda (x) x) ", 16, "", 0, false},
		{"cursor before end", "(number/add 1 2)", 13, "number/add", 0, true},
		{"empty", "", 0, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := detectFunctionCall(tt.input, tt.cursor)

			if got.name != tt.wantName || got.argIndex != tt.wantIndex ||
				got.inCall != tt.wantInCall {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want {%s %d %v}",
					tt.input, tt.cursor, got, tt.wantName, tt.wantIndex, tt.wantInCall)
			}
		})
	}
}

func TestSplitParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		summary string
		want    []string
	}{
		{"", nil},
		{"a b", []string{"a", "b"}},
		{"items...", []string{"items..."}},
		{"(test expr)...", []string{"(test expr)..."}},
		{"key  (params) body...", []string{"key", "(params)", "body..."}},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			t.Parallel()

			if got := splitParams(tt.summary); !slices.Equal(got, tt.want) {
				t.Errorf("splitParams(%q) = %q, want %q", tt.summary, got, tt.want)
			}
		})
	}
}

func TestGetSignature(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)

	for _, src := range []string{
		"(def greet (lambda (name title) name))",
		"(def made ((lambda () (lambda (n) n))))",
		"(def hp 12)",
	} {
		if r := s.Submit(t.Context(), src); r.Err != nil {
			t.Fatal(r.Err)
		}
	}

	tests := []struct {
		name   string
		want   []string
		wantOK bool
	}{
		{"number/add", []string{"a", "b"}, true},
		{"greet", []string{"name", "title"}, true},
		{"log", []string{"x"}, true},
		{"clear", []string{}, true},
		{"swap", []string{"x"}, true},
		{"hp", nil, false},
		{"made", nil, false},
		{"undefined", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.getSignature(tt.name)
			if ok != tt.wantOK || !slices.Equal(got, tt.want) {
				t.Errorf("getSignature(%q) = %q, %v, want %q, %v",
					tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRenderSignatureHint(t *testing.T) {
	t.Parallel()

	hint := renderSignatureHint("list", []string{"items..."}, 3)

	for _, part := range []string{"list", "items..."} {
		if !strings.Contains(hint, part) {
			t.Errorf("hint %q does not contain %q", hint, part)
		}
	}
}
