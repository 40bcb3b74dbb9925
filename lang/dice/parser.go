package dice

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxCount is the largest number of dice a single term may roll.
const MaxCount = 10000

var (
	// ErrSyntax reports notation that does not match the grammar.
	ErrSyntax = errors.New("invalid dice notation")
	// ErrRange reports a die with fewer than one side, a negative number of
	// dice, more than [MaxCount] dice, a literal that does not fit in an int,
	// or a total or bound that overflows an int.
	ErrRange = errors.New("dice value out of range")
)

// Roller returns a uniformly distributed integer in [1, sides].
type Roller func(sides int) int

// Result is the outcome of evaluating an [Expr].
//
// Min and Max are the totals obtained when every die shows its lowest or
// highest face. Description records how Value was produced, including each
// individual die total.
type Result struct {
	Description string
	Value       int
	Min         int
	Max         int
}

// Expr is a parsed dice expression.
type Expr interface {
	Eval(roll Roller) (Result, error)
}

// Constant is an integer literal.
type Constant int

func (c Constant) Eval(Roller) (Result, error) {
	n := int(c)

	return Result{Description: strconv.Itoa(n), Value: n, Min: n, Max: n}, nil
}

// Dice is Count dice of Sides faces each.
type Dice struct {
	Count, Sides int
}

func (d Dice) Eval(roll Roller) (Result, error) {
	if d.Sides < 1 || d.Count < 0 || d.Count > MaxCount {
		return Result{}, fmt.Errorf("%w: %dd%d", ErrRange, d.Count, d.Sides)
	}

	if d.Count > 0 && d.Sides > math.MaxInt/d.Count {
		return Result{}, fmt.Errorf("%w: %dd%d overflows", ErrRange, d.Count, d.Sides)
	}

	total := 0
	for range d.Count {
		total += roll(d.Sides)
	}

	return Result{
		Description: fmt.Sprintf("%dD%d(%d)", d.Count, d.Sides, total),
		Value:       total,
		Min:         d.Count,
		Max:         d.Count * d.Sides,
	}, nil
}

// Operator applies Symbol ("+" or "-") across its operands in order.
type Operator struct {
	Symbol   string
	Operands []Expr
}

func fold(symbol string, a, b int) (int, bool) {
	if symbol == "-" {
		if (b < 0 && a > math.MaxInt+b) || (b > 0 && a < math.MinInt+b) {
			return 0, false
		}

		return a - b, true
	}

	if (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b) {
		return 0, false
	}

	return a + b, true
}

// combine folds r into acc's value and bounds.
func combine(symbol string, acc *Result, r Result) error {
	var ok [3]bool

	acc.Value, ok[0] = fold(symbol, acc.Value, r.Value)
	acc.Min, ok[1] = fold(symbol, acc.Min, r.Min)
	acc.Max, ok[2] = fold(symbol, acc.Max, r.Max)

	if ok != [3]bool{true, true, true} {
		return fmt.Errorf("%w: total overflows", ErrRange)
	}

	return nil
}

func (o Operator) Eval(roll Roller) (Result, error) {
	if len(o.Operands) == 0 {
		return Result{}, fmt.Errorf("%w: %q has no operands", ErrSyntax, o.Symbol)
	}

	desc := make([]string, 0, len(o.Operands))

	var acc Result

	for i, operand := range o.Operands {
		r, err := operand.Eval(roll)
		if err != nil {
			return Result{}, err
		}

		desc = append(desc, r.Description)

		if i == 0 {
			acc = r

			continue
		}

		if err := combine(o.Symbol, &acc, r); err != nil {
			return Result{}, err
		}
	}

	// A single operand keeps its value and bounds.
	acc.Description = o.Symbol + " " + strings.Join(desc, " ")

	return acc, nil
}

// Term is one element of a [Chain]. An empty Symbol joins the term by
// juxtaposition, which adds it.
type Term struct {
	Symbol string
	Expr   Expr
}

// Chain is an infix sum such as "2d6+3-1". Bounds fold the same way as in
// [Operator].
type Chain struct {
	Head  Expr
	Terms []Term
}

func (c Chain) Eval(roll Roller) (Result, error) {
	acc, err := c.Head.Eval(roll)
	if err != nil {
		return Result{}, err
	}

	var desc strings.Builder

	desc.WriteString(acc.Description)

	for _, t := range c.Terms {
		r, err := t.Expr.Eval(roll)
		if err != nil {
			return Result{}, err
		}

		desc.WriteByte(' ')

		if t.Symbol != "" {
			desc.WriteString(t.Symbol + " ")
		}

		desc.WriteString(r.Description)

		if err := combine(t.Symbol, &acc, r); err != nil {
			return Result{}, err
		}
	}

	acc.Description = desc.String()

	return acc, nil
}

type empty struct{}

func (empty) Eval(Roller) (Result, error) { return Result{}, nil }

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek(n int) (Token, bool) {
	if p.pos+n >= len(p.tokens) {
		return Token{}, false
	}

	return p.tokens[p.pos+n], true
}

func (p *parser) done() bool { return p.pos >= len(p.tokens) }

func (p *parser) is(n int, kind Kind) bool {
	t, ok := p.peek(n)

	return ok && t.Kind == kind
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrRange, s)
	}

	return n, nil
}

// value parses a die or constant. It returns a nil Expr without consuming
// anything when the next tokens are neither.
func (p *parser) value() (Expr, error) {
	if !p.is(0, Digits) {
		return nil, nil
	}

	first, err := atoi(p.tokens[p.pos].Text)
	if err != nil {
		return nil, err
	}

	if p.is(1, Die) && p.is(2, Digits) {
		sides, err := atoi(p.tokens[p.pos+2].Text)
		if err != nil {
			return nil, err
		}

		p.pos += 3

		return Dice{Count: first, Sides: sides}, nil
	}

	p.pos++

	return Constant(first), nil
}

// expr parses the prefix form.
func (p *parser) expr() (Expr, error) {
	t, ok := p.peek(0)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}

	if t.Kind != Plus && t.Kind != Minus {
		v, err := p.value()
		if err != nil {
			return nil, err
		}

		if v == nil {
			return nil, fmt.Errorf("%w: unexpected %s", ErrSyntax, t)
		}

		return v, nil
	}

	p.pos++

	op := Operator{Symbol: t.Text}

	for {
		v, err := p.value()
		if err != nil {
			return nil, err
		}

		if v == nil {
			break
		}

		op.Operands = append(op.Operands, v)
	}

	if !p.done() {
		nested, err := p.expr()
		if err != nil {
			return nil, err
		}

		op.Operands = append(op.Operands, nested)
	}

	return op, nil
}

// chain parses the infix continuation of a leading value.
func (p *parser) chain(head Expr) (Expr, error) {
	c := Chain{Head: head}

	for !p.done() {
		var symbol string

		if t, _ := p.peek(0); t.Kind == Plus || t.Kind == Minus {
			symbol = t.Text
			p.pos++
		}

		v, err := p.value()
		if err != nil {
			return nil, err
		}

		if v == nil {
			if t, ok := p.peek(0); ok {
				return nil, fmt.Errorf("%w: unexpected %s", ErrSyntax, t)
			}

			return nil, fmt.Errorf("%w: unexpected end of input", ErrSyntax)
		}

		c.Terms = append(c.Terms, Term{Symbol: symbol, Expr: v})
	}

	return c, nil
}

// Parse builds an expression from tokens. No tokens yields an expression
// that evaluates to the zero [Result].
func Parse(tokens []Token) (Expr, error) {
	if len(tokens) == 0 {
		return empty{}, nil
	}

	p := &parser{tokens: tokens}

	e, err := p.expr()
	if err != nil {
		return nil, err
	}

	if p.done() {
		return e, nil
	}

	if _, prefix := e.(Operator); prefix {
		t, _ := p.peek(0)

		return nil, fmt.Errorf("%w: unexpected %s", ErrSyntax, t)
	}

	return p.chain(e)
}

// Roll lexes, parses, and evaluates notation.
func Roll(notation string, roll Roller) (Result, error) {
	e, err := Parse(Lex(notation))
	if err != nil {
		return Result{}, err
	}

	return e.Eval(roll)
}
