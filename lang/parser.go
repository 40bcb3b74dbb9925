package lang

import "io"

// Parser builds expressions from a token stream. Parsing is lenient: a list
// left open at the end of input is closed implicitly, and a stray closing
// parenthesis at the top level is skipped.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser returns a Parser reading tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse returns the next top-level expression, or [io.EOF] once the stream
// is exhausted.
func (p *Parser) Parse() (Expr, error) {
	for p.pos < len(p.tokens) && p.tokens[p.pos].Kind == TokenParenClose {
		p.pos++
	}

	if p.pos >= len(p.tokens) {
		return nil, io.EOF
	}

	return p.expr(), nil
}

func (p *Parser) expr() Expr {
	t := p.tokens[p.pos]
	p.pos++

	switch t.Kind {
	case TokenNumber:
		if n, err := ParseNumber(t.Text); err == nil {
			return n
		}

		return Symbol(t.Text)

	case TokenString:
		return Text(t.Text)

	case TokenParenOpen:
		list := List{}

		for p.pos < len(p.tokens) {
			if p.tokens[p.pos].Kind == TokenParenClose {
				p.pos++

				return list
			}

			list = append(list, p.expr())
		}

		return list

	default:
		return Symbol(t.Text)
	}
}

// ParseAll parses every top-level expression in tokens.
func ParseAll(tokens []Token) []Expr {
	p := NewParser(tokens)

	var out []Expr

	for {
		e, err := p.Parse()
		if err != nil {
			return out
		}

		out = append(out, e)
	}
}

// ParseString lexes and parses every top-level expression in src.
func ParseString(src string) []Expr {
	return ParseAll(Lex(src))
}
