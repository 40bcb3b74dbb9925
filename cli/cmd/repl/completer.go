package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/dlisp/lang"
)

// isWordBoundary reports whether r separates atoms for completion. Atoms
// may contain any other character, including '/' and '-' as in number/add.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '(', ')', '\'':
		return true
	}

	return false
}

// wordBounds returns the atom at the cursor and its byte boundaries within
// input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// inText reports whether offset lies inside an unterminated text literal.
// A doubled quote is an escaped quote and does not end the literal.
func inText(input string, offset int) bool {
	return strings.Count(input[:min(offset, len(input))], "'")%2 == 1
}

// complete ranks candidates against the word at cursor, best first. It
// returns no matches when the word is empty or inside a text literal.
func complete(
	input string,
	cursor int,
	candidates []string,
) (matches fuzzy.Matches, start, end int) {
	word, start, end := wordBounds(input, cursor)

	if word == "" || len(candidates) == 0 || inText(input, start) {
		return nil, start, end
	}

	return fuzzy.Find(word, candidates), start, end
}

// completeWord implements [liner.WordCompleter] over the symbols of s.
func (s *Session) completeWord(line string, pos int) (head string, completions []string, tail string) {
	matches, start, end := complete(line, pos, s.Symbols())

	completions = make([]string, len(matches))
	for i, m := range matches {
		completions[i] = m.Str
	}

	return line[:start], completions, line[end:]
}

// computeMatches calculates the fuzzy matches for the word at the cursor:
// control commands in control mode, visible symbols otherwise.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	candidates = ctrlCommands
	if m.mode == modeEval {
		candidates = m.session.Symbols()
	}

	matches, wordStart, wordEnd = complete(m.input.Value(), m.input.Position(), candidates)

	return matches, candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate (when tabbing) uses the selected
// style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
	applicable func(string) bool,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected, applicable != nil && applicable(match.Str))

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted. Operators and lambdas are marked with a leading '('.
func renderCandidate(match fuzzy.Match, selected, applicable bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	if applicable {
		b.WriteString(baseStyle.Render("("))
	}

	for i, r := range match.Str {
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}

// isApplicable reports whether name resolves to an operator or lambda in
// the current context.
func (s *Session) isApplicable(name string) bool {
	v, ok := s.Lookup(name)

	return ok && lang.IsApplicable(v)
}
