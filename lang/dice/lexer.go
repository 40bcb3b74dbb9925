package dice

import "fmt"

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	Die    Kind = iota // d or D
	Digits             // optionally negative decimal integer
	Plus
	Minus
)

func (k Kind) String() string {
	switch k {
	case Die:
		return "D"
	case Digits:
		return "DIGITS"
	case Plus:
		return "PLUS"
	case Minus:
		return "MINUS"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a lexeme of dice notation.
type Token struct {
	Kind Kind
	Text string
}

func (t Token) String() string { return t.Kind.String() + "(" + t.Text + ")" }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Lex splits notation into tokens. Characters outside the notation are
// skipped, so blank input yields no tokens.
func Lex(notation string) []Token {
	var tokens []Token

	for i := 0; i < len(notation); {
		c := notation[i]

		switch {
		case c == 'd' || c == 'D':
			tokens = append(tokens, Token{Die, "D"})
			i++

		case c == '+':
			tokens = append(tokens, Token{Plus, "+"})
			i++

		case c == '-' && (i+1 >= len(notation) || !isDigit(notation[i+1])):
			tokens = append(tokens, Token{Minus, "-"})
			i++

		case c == '-' || isDigit(c):
			start := i
			for i++; i < len(notation) && isDigit(notation[i]); i++ {
			}

			tokens = append(tokens, Token{Digits, notation[start:i]})

		default:
			i++
		}
	}

	return tokens
}
