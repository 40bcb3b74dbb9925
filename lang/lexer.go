package lang

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind identifies the lexical class of a [Token].
type TokenKind int

const (
	TokenParenOpen TokenKind = iota
	TokenParenClose
	TokenAtom
	TokenNumber
	TokenString
)

func (k TokenKind) String() string {
	switch k {
	case TokenParenOpen:
		return "ParenOpen"
	case TokenParenClose:
		return "ParenClose"
	case TokenAtom:
		return "Atom"
	case TokenNumber:
		return "Number"
	case TokenString:
		return "String"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Position is a 1-based line and column, counted in runes.
type Position struct {
	Line, Col int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Token is a lexeme. For strings, Text is the unescaped content without
// the surrounding quotes.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Pos, t.Kind, t.Text)
}

type scanner struct {
	src  string
	off  int
	line int
	col  int
}

func (s *scanner) peek(n int) byte {
	if s.off+n >= len(s.src) {
		return 0
	}

	return s.src[s.off+n]
}

func (s *scanner) next() rune {
	r, size := utf8.DecodeRuneInString(s.src[s.off:])

	s.off += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	return r
}

func (s *scanner) pos() Position { return Position{s.line, s.col} }

func (s *scanner) done() bool { return s.off >= len(s.src) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (s *scanner) atomEnd() bool {
	if s.done() {
		return true
	}

	r, _ := utf8.DecodeRuneInString(s.src[s.off:])

	return r == '(' || r == ')' || unicode.IsSpace(r)
}

// Lex splits src into tokens. Lexing never fails: an unterminated string
// extends to the end of input.
func Lex(src string) []Token {
	s := &scanner{src: src, line: 1, col: 1}

	var tokens []Token

	for !s.done() {
		pos := s.pos()
		c := s.peek(0)

		switch {
		case c == '(':
			s.next()
			tokens = append(tokens, Token{TokenParenOpen, "(", pos})

		case c == ')':
			s.next()
			tokens = append(tokens, Token{TokenParenClose, ")", pos})

		case c == '\'':
			tokens = append(tokens, Token{TokenString, s.quoted(), pos})

		case isDigit(c) || (c == '-' && isDigit(s.peek(1))):
			tokens = append(tokens, Token{TokenNumber, s.numeral(), pos})

		default:
			r, _ := utf8.DecodeRuneInString(src[s.off:])
			if unicode.IsSpace(r) {
				s.next()

				continue
			}

			start := s.off
			for !s.atomEnd() {
				s.next()
			}

			tokens = append(tokens, Token{TokenAtom, src[start:s.off], pos})
		}
	}

	return tokens
}

// quoted consumes a string literal starting at the opening quote.
func (s *scanner) quoted() string {
	var sb strings.Builder

	s.next()

	for !s.done() {
		if s.peek(0) == '\'' {
			s.next()

			if s.peek(0) != '\'' {
				break
			}
		}

		sb.WriteRune(s.next())
	}

	return sb.String()
}

// numeral consumes -?[0-9]+(.[0-9]+)?
func (s *scanner) numeral() string {
	start := s.off

	if s.peek(0) == '-' {
		s.next()
	}

	for isDigit(s.peek(0)) {
		s.next()
	}

	if s.peek(0) == '.' && isDigit(s.peek(1)) {
		s.next()

		for isDigit(s.peek(0)) {
			s.next()
		}
	}

	return s.src[start:s.off]
}
