package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/dlisp/lang"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall is the innermost call enclosing the cursor.
type functionCall struct {
	name     string // operator atom at the head of the list
	argIndex int    // operand being typed (0-based)
	inCall   bool   // cursor is past the head of a list headed by an atom
}

// callFrame tracks one open list while scanning.
type callFrame struct {
	head     string
	headDone bool
	operands int
}

// detectFunctionCall finds the innermost open list before cursor and the
// index of the operand under the cursor. A list whose head is still being
// typed, or is not an atom, is not a call.
func detectFunctionCall(input string, cursor int) functionCall {
	prefix := input[:min(max(cursor, 0), len(input))]

	var (
		stack     []callFrame
		atomStart = -1
		inQuote   bool
	)

	emit := func(atom string, isAtom bool) {
		if len(stack) == 0 {
			return
		}

		top := &stack[len(stack)-1]
		if !top.headDone {
			top.headDone = true
			if isAtom {
				top.head = atom
			}

			return
		}

		top.operands++
	}

	closeAtom := func(end int) {
		if atomStart >= 0 {
			emit(prefix[atomStart:end], true)
			atomStart = -1
		}
	}

	for i := 0; i < len(prefix); i++ {
		c := prefix[i]

		if inQuote {
			if c == '\'' {
				if i+1 < len(prefix) && prefix[i+1] == '\'' {
					i++

					continue
				}

				inQuote = false
				emit("", false)
			}

			continue
		}

		switch c {
		case '\'':
			closeAtom(i)

			inQuote = true

		case ' ', '\t', '\n', '\r':
			closeAtom(i)

		case '(':
			closeAtom(i)

			stack = append(stack, callFrame{})

		case ')':
			closeAtom(i)

			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				emit("", false)
			}

		default:
			if atomStart < 0 {
				atomStart = i
			}
		}
	}

	if len(stack) == 0 {
		return functionCall{}
	}

	top := stack[len(stack)-1]
	if !top.headDone || top.head == "" {
		return functionCall{}
	}

	return functionCall{name: top.head, argIndex: top.operands, inCall: true}
}

// getSignature returns the parameter names of the operator or lambda bound
// to name in the current context. ok is false for other values.
func (s *Session) getSignature(name string) (params []string, ok bool) {
	v, found := s.Lookup(name)
	if !found {
		return nil, false
	}

	if b, ok := v.(*lang.Builtin); ok {
		return splitParams(b.Params), true
	}

	syms, ok := lang.Params(v, s.Env())
	if !ok {
		return nil, false
	}

	params = make([]string, len(syms))
	for i, p := range syms {
		params[i] = string(p)
	}

	return params, true
}

// splitParams splits a parameter summary such as "(test expr)... x" on
// spaces outside parentheses.
func splitParams(summary string) []string {
	var (
		params []string
		depth  int
		start  = -1
	)

	for i, r := range summary {
		switch {
		case r == ' ' && depth == 0:
			if start >= 0 {
				params = append(params, summary[start:i])
				start = -1
			}

			continue
		case r == '(':
			depth++
		case r == ')':
			depth = max(depth-1, 0)
		}

		if start < 0 {
			start = i
		}
	}

	if start >= 0 {
		params = append(params, summary[start:])
	}

	return params
}

// renderSignatureHint renders (name params...) with the parameter at
// currentArgIdx highlighted. A trailing "..." marks a parameter that takes
// every remaining operand.
func renderSignatureHint(name string, params []string, currentArgIdx int) string {
	var b strings.Builder

	b.WriteString(signatureStyle.Render("("))
	b.WriteString(signatureNameStyle.Render(name))

	for i, param := range params {
		b.WriteString(signatureStyle.Render(" "))

		variadic := strings.HasSuffix(param, "...")

		if currentArgIdx == i || (variadic && currentArgIdx > i) {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
