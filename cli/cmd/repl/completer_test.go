package repl

import (
	"slices"
	"testing"
)

func TestWordBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_paren", "(number/ad", 10, "number/ad", 1, 10},
		{"operand", "(number/add x fo", 16, "fo", 14, 16},
		{"hyphenated", "(log-pretty", 11, "log-pretty", 1, 11},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"empty_at_boundary", "(a ", 3, "", 3, 3},
		{"after_quote", "(list 'ab", 9, "ab", 7, 9},
		{"before_close", "(roll dm)", 8, "dm", 6, 8},
		{"cursor_past_end", "foo", 9, "foo", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()

	candidates := []string{"number/add", "number/sub", "list", "list/first"}

	tests := []struct {
		name   string
		input  string
		cursor int
		want   []string
	}{
		{"prefix", "(number/ad", 10, []string{"number/add"}},
		{"fuzzy", "(lsf", 4, []string{"list/first"}},
		{"empty_word", "(", 1, nil},
		{"inside_text", "(log 'lis", 9, nil},
		{"after_text", "(log 'a' lis", 12, []string{"list", "list/first"}},
		{"no_match", "(zzz", 4, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			matches, _, _ := complete(tt.input, tt.cursor, candidates)

			var got []string
			for _, m := range matches {
				got = append(got, m.Str)
			}

			slices.Sort(got)

			if !slices.Equal(got, tt.want) {
				t.Errorf("complete(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompleteWord(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)

	head, completions, tail := s.completeWord("(number/ad 1)", 10)

	if head != "(" || tail != " 1)" {
		t.Errorf("head, tail = %q, %q, want %q, %q", head, tail, "(", " 1)")
	}

	if !slices.Contains(completions, "number/add") {
		t.Errorf("completions = %v, want number/add", completions)
	}
}

func TestRenderCandidateBar(t *testing.T) {
	t.Parallel()

	matches, _, _ := complete("(li", 3, []string{"list", "list/first"})

	if got := renderCandidateBar(matches, -1, false, 0, nil); got != "" {
		t.Errorf("zero width bar = %q, want empty", got)
	}

	if got := renderCandidateBar(nil, -1, false, 80, nil); got != "" {
		t.Errorf("empty bar = %q, want empty", got)
	}

	if got := renderCandidateBar(matches, 0, true, 80, nil); got == "" {
		t.Error("bar is empty, want candidates")
	}
}
