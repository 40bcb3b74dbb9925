package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format renders e in source form. Text is quoted with embedded quotes
// doubled; values with no source form render as <lambda (params)>,
// <operator name> and <error: message>.
func Format(e Expr) string {
	var sb strings.Builder

	Visit(e, formatter{&sb})

	return sb.String()
}

// Display renders a result for the console: top-level Text is written as
// is and an ErrorValue as "Error: message". Everything else is [Format].
func Display(e Expr) string {
	switch x := e.(type) {
	case Text:
		return string(x)
	case ErrorValue:
		return "Error: " + x.Message
	default:
		return Format(e)
	}
}

type formatter struct{ sb *strings.Builder }

func (f formatter) VisitList(l List) struct{} {
	f.sb.WriteByte('(')

	for i, e := range l {
		if i > 0 {
			f.sb.WriteByte(' ')
		}

		Visit(e, f)
	}

	f.sb.WriteByte(')')

	return struct{}{}
}

func (f formatter) VisitSymbol(s Symbol) struct{} {
	f.sb.WriteString(string(s))

	return struct{}{}
}

func (f formatter) VisitText(t Text) struct{} {
	f.sb.WriteString(quoteText(string(t)))

	return struct{}{}
}

func (f formatter) VisitNumber(n Number) struct{} {
	f.sb.WriteString(n.Text())

	return struct{}{}
}

func (f formatter) VisitError(e ErrorValue) struct{} {
	f.sb.WriteString("<error: " + e.Message + ">")

	return struct{}{}
}

func (f formatter) VisitClosure(c *Closure) struct{} {
	f.sb.WriteString("<lambda (")

	for i, p := range c.Params {
		if i > 0 {
			f.sb.WriteByte(' ')
		}

		f.sb.WriteString(string(p))
	}

	f.sb.WriteString(")>")

	return struct{}{}
}

func (f formatter) VisitBuiltin(b *Builtin) struct{} {
	f.sb.WriteString("<operator " + b.Name + ">")

	return struct{}{}
}

func quoteText(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// WriteNative writes forms in source form, one top-level form per line.
// With a positive indent, lists holding other lists are broken across
// lines with each operand after the head on its own line.
func WriteNative(_ context.Context, w io.Writer, forms []Expr, indent int) error {
	for i, form := range forms {
		if i > 0 && indent > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		var sb strings.Builder

		writeIndented(&sb, form, indent, 0)

		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return err
		}
	}

	return nil
}

func writeIndented(sb *strings.Builder, e Expr, indent, depth int) {
	l, ok := e.(List)
	if !ok || indent == 0 || !hasList(l) {
		sb.WriteString(Format(e))

		return
	}

	sb.WriteByte('(')
	writeIndented(sb, l[0], indent, depth+1)

	pad := strings.Repeat(" ", (depth+1)*indent)

	for _, x := range l[1:] {
		sb.WriteString("\n" + pad)
		writeIndented(sb, x, indent, depth+1)
	}

	sb.WriteByte(')')
}

func hasList(l List) bool {
	for _, e := range l {
		if _, ok := e.(List); ok {
			return true
		}
	}

	return false
}

// WriteJSON writes forms converted by [ToNative] as a JSON array.
func WriteJSON(_ context.Context, w io.Writer, forms []Expr, indent int) error {
	var (
		data []byte
		err  error
	)

	native := ToNative(List(forms))

	if indent > 0 {
		data, err = json.MarshalIndent(native, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(native)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// WriteYAML writes forms converted by [ToNative] as a YAML sequence. A zero
// indent selects flow style.
func WriteYAML(ctx context.Context, w io.Writer, forms []Expr, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, ToNative(List(forms)), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// WriteAST writes the syntax tree of src, one node per line with its
// source position, nested nodes indented below their list.
func WriteAST(_ context.Context, w io.Writer, src string, indent int) error {
	indent = max(indent, 1)
	depth := 0

	for _, t := range Lex(src) {
		var line string

		switch t.Kind {
		case TokenParenOpen:
			line = "list"

		case TokenParenClose:
			if depth > 0 {
				depth--
			}

			continue

		case TokenString:
			line = "text " + quoteText(t.Text)

		case TokenNumber:
			line = "number " + t.Text

		default:
			line = "atom " + t.Text
		}

		if _, err := fmt.Fprintf(w, "%-8s%s%s\n",
			t.Pos, strings.Repeat(" ", depth*indent), line); err != nil {
			return err
		}

		if t.Kind == TokenParenOpen {
			depth++
		}
	}

	return nil
}
