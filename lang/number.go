package lang

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// decimal128 is the arithmetic context of every [Number] operation:
// 34 significant digits, rounding half to even.
var decimal128 = apd.Context{
	Precision:   34,
	MaxExponent: 6144,
	MinExponent: -6143,
	Traps:       apd.DefaultTraps,
	Rounding:    apd.RoundHalfEven,
}

// Number is an exact decimal. The zero value is 0. Numbers are immutable;
// operations always allocate their result.
type Number struct {
	d *apd.Decimal
}

var zero apd.Decimal

func (n Number) dec() *apd.Decimal {
	if n.d == nil {
		return &zero
	}

	return n.d
}

// Int returns a Number with integer value i.
func Int(i int64) Number { return Number{apd.New(i, 0)} }

// ParseNumber parses a decimal literal such as "-12.50".
func ParseNumber(s string) (Number, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Number{}, fmt.Errorf("invalid number %q: %w", s, err)
	}

	return Number{d}, nil
}

// MustNumber is like [ParseNumber] but panics on malformed input.
func MustNumber(s string) Number {
	n, err := ParseNumber(s)
	if err != nil {
		panic(err)
	}

	return n
}

// Cmp compares n and m numerically.
func (n Number) Cmp(m Number) int { return n.dec().Cmp(m.dec()) }

// Int64 returns n as an int64 if it is integral and in range.
func (n Number) Int64() (int64, error) { return n.dec().Int64() }

// Text renders n in plain notation with trailing fractional zeros removed,
// so numerically equal values render identically.
func (n Number) Text() string {
	d := n.dec()
	if d.IsZero() {
		return "0"
	}

	s := d.Text('f')
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}

	return s
}

func (n Number) String() string { return n.Text() }

type arith func(c *apd.Context, d, x, y *apd.Decimal) (apd.Condition, error)

func (n Number) apply(op arith, m Number) (Number, error) {
	d := new(apd.Decimal)
	if _, err := op(&decimal128, d, n.dec(), m.dec()); err != nil {
		return Number{}, err
	}

	return Number{d}, nil
}

func (n Number) Add(m Number) (Number, error) { return n.apply((*apd.Context).Add, m) }
func (n Number) Sub(m Number) (Number, error) { return n.apply((*apd.Context).Sub, m) }
func (n Number) Mul(m Number) (Number, error) { return n.apply((*apd.Context).Mul, m) }
func (n Number) Quo(m Number) (Number, error) { return n.apply((*apd.Context).Quo, m) }

// QuoInteger returns the integer part of n / m.
func (n Number) QuoInteger(m Number) (Number, error) {
	return n.apply((*apd.Context).QuoInteger, m)
}

// Rem returns the remainder of truncated division, with the sign of n.
func (n Number) Rem(m Number) (Number, error) { return n.apply((*apd.Context).Rem, m) }
