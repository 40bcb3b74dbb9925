package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// Equal reports structural equality. Lists, symbols, texts, and errors
// compare by value, numbers by magnitude, and closures and builtins by
// identity.
func Equal(a, b Expr) bool {
	return Visit(a, equality{b})
}

type equality struct{ other Expr }

func (q equality) VisitList(l List) bool {
	m, ok := q.other.(List)
	if !ok && q.other != nil {
		return false
	}

	if len(l) != len(m) {
		return false
	}

	for i := range l {
		if !Equal(l[i], m[i]) {
			return false
		}
	}

	return true
}

func (q equality) VisitSymbol(s Symbol) bool {
	t, ok := q.other.(Symbol)

	return ok && s == t
}

func (q equality) VisitText(s Text) bool {
	t, ok := q.other.(Text)

	return ok && s == t
}

func (q equality) VisitNumber(n Number) bool {
	m, ok := q.other.(Number)

	return ok && n.Cmp(m) == 0
}

func (q equality) VisitError(e ErrorValue) bool {
	f, ok := q.other.(ErrorValue)

	return ok && e.Message == f.Message
}

func (q equality) VisitClosure(c *Closure) bool {
	d, ok := q.other.(*Closure)

	return ok && c == d
}

func (q equality) VisitBuiltin(b *Builtin) bool {
	c, ok := q.other.(*Builtin)

	return ok && b == c
}

// Key returns a string identifying e up to [Equal]: Key(a) == Key(b)
// exactly when Equal(a, b).
func Key(e Expr) string {
	var sb strings.Builder

	Visit(e, keyWriter{&sb})

	return sb.String()
}

type keyWriter struct{ sb *strings.Builder }

func (k keyWriter) VisitList(l List) struct{} {
	k.sb.WriteByte('(')

	for i, e := range l {
		if i > 0 {
			k.sb.WriteByte(' ')
		}

		Visit(e, k)
	}

	k.sb.WriteByte(')')

	return struct{}{}
}

func (k keyWriter) VisitSymbol(s Symbol) struct{} {
	k.sb.WriteString("a" + strconv.Quote(string(s)))

	return struct{}{}
}

func (k keyWriter) VisitText(t Text) struct{} {
	k.sb.WriteString("t" + strconv.Quote(string(t)))

	return struct{}{}
}

func (k keyWriter) VisitNumber(n Number) struct{} {
	k.sb.WriteString("n" + n.Text())

	return struct{}{}
}

func (k keyWriter) VisitError(e ErrorValue) struct{} {
	k.sb.WriteString("e" + strconv.Quote(e.Message))

	return struct{}{}
}

func (k keyWriter) VisitClosure(c *Closure) struct{} {
	fmt.Fprintf(k.sb, "λ%p", c)

	return struct{}{}
}

func (k keyWriter) VisitBuiltin(b *Builtin) struct{} {
	fmt.Fprintf(k.sb, "o%p", b)

	return struct{}{}
}
