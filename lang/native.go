package lang

import (
	"encoding/json"

	"github.com/goccy/go-yaml"
)

// ToNative converts e to plain Go values for serialization. Lists become
// []any and Text and atoms become strings, except true and false, which
// become bool. Numbers that fit int64 become int64 and others [Decimal]. An
// ErrorValue becomes a map holding its message under "error", and
// applicable values become their [Format] rendering.
func ToNative(e Expr) any {
	return Visit(e, native{})
}

// Decimal is a number in plain decimal notation. It marshals as a bare
// JSON or YAML number with every digit kept.
type Decimal string

// MarshalJSON implements [json.Marshaler].
func (d Decimal) MarshalJSON() ([]byte, error) { return []byte(d), nil }

// MarshalYAML implements [yaml.BytesMarshaler].
func (d Decimal) MarshalYAML() ([]byte, error) { return []byte(d), nil }

var (
	_ json.Marshaler      = Decimal("")
	_ yaml.BytesMarshaler = Decimal("")
)

type native struct{}

func (n native) VisitList(l List) any {
	out := make([]any, len(l))
	for i, e := range l {
		out[i] = Visit(e, n)
	}

	return out
}

func (native) VisitSymbol(s Symbol) any {
	switch s {
	case True:
		return true
	case False:
		return false
	default:
		return string(s)
	}
}

func (native) VisitText(t Text) any { return string(t) }

func (native) VisitNumber(n Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}

	return Decimal(n.Text())
}

func (native) VisitError(e ErrorValue) any {
	return map[string]any{"error": e.Message}
}

func (native) VisitClosure(c *Closure) any { return Format(c) }
func (native) VisitBuiltin(b *Builtin) any { return Format(b) }
