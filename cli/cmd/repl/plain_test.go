package repl

import (
	"strings"
	"testing"
)

func TestRunScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"one per line", "1\n(number/add 1 2)\n", "1\n3\n"},
		{"several per line", "1 2\n", "1\n2\n"},
		{"multi-line form", "(def hp\n  (number/add 1 2))\nhp\n", "hp\n(number/add 1 2)\n"},
		{"paren in text", "(text/concat '(' \n 'x')\n", "(x\n"},
		{"log", "(log 'rolling') (list/first (roll '2d6'))\n", "rolling\n12\n"},
		{"control", ":contexts\n", "* /\n"},
		{"quit stops", "1\n(quit)\n2\n", "1\n"},
		{"clear skipped", "(clear)\n1\n", "1\n"},
		{"unterminated", "(number/add 1 2", "3\n"},
		{"errors continue", "(number/add 1)\n2\n", "Error: requires two arguments of type Number\n2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out strings.Builder

			s := newTestSession(t)
			if err := RunScript(t.Context(), s, strings.NewReader(tt.src), &out); err != nil {
				t.Fatal(err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnbalanced(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want int
	}{
		{"", 0},
		{"(a b)", 0},
		{"(a (b", 2},
		{"(a ')')", 0},
		{"a))", -2},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			if got := unbalanced(tt.src); got != tt.want {
				t.Errorf("unbalanced(%q) = %d, want %d", tt.src, got, tt.want)
			}
		})
	}
}
