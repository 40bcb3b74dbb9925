package repl

import (
	"fmt"
	"strings"

	"github.com/ardnew/dlisp/lang"
)

// ctrlCommands are the control-mode commands, in help order.
var ctrlCommands = []string{"help", "list", "edit", "contexts", "clear", "quit"}

// previewWidth bounds the source shown for each binding by list.
const previewWidth = 40

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help      Print this cruft
  list      List definitions visible from the current context
  edit      Edit and evaluate a scratch buffer in $EDITOR
  contexts  List contexts (switch with (swap 'name'))
  clear     Clear screen
  quit      Exit REPL

Usage:
  Type an expression to evaluate it, such as (roll '2d6+3')
  Type (help) for the operator reference, (help 'topic') for a topic
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Use Alt+Up/Alt+Down to switch to command mode and navigate command history
    (restores original mode when reaching end of history)
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Control runs a control-mode command. Commands may be abbreviated to their
// first letter, except contexts, which needs two.
func (s *Session) Control(input string) Reply {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return Reply{}
	}

	switch parts[0] {
	case "q", "quit", "exit":
		return Reply{Requests: []Request{{Action: ActionQuit}}}

	case "h", "help":
		return Reply{Logs: []string{helpMessage()}}

	case "l", "list":
		return Reply{Logs: s.listBindings()}

	case "co", "contexts":
		return Reply{Logs: s.listContexts()}

	case "c", "clear":
		return Reply{Requests: []Request{{Action: ActionClear}}}

	case "e", "edit":
		return Reply{Requests: []Request{{Action: ActionOpen, Path: s.ScratchPath()}}}

	default:
		return Reply{Err: fmt.Errorf("%w: %s (try 'help')", ErrUnknownCommand, parts[0])}
	}
}

func (s *Session) listBindings() []string {
	bindings := s.Bindings()
	if len(bindings) == 0 {
		return []string{"  (no definitions)"}
	}

	width := 0
	for _, b := range bindings {
		width = max(width, len(b.Name))
	}

	lines := make([]string, len(bindings))
	for i, b := range bindings {
		lines[i] = fmt.Sprintf("  %-*s  %s", width, b.Name, preview(b.Value))
	}

	return lines
}

func (s *Session) listContexts() []string {
	current := s.Context()

	names := s.Contexts()
	lines := make([]string, len(names))

	for i, name := range names {
		mark := " "
		if name == current {
			mark = "*"
		}

		lines[i] = fmt.Sprintf("%s %s", mark, name)
	}

	return lines
}

// preview returns the source form of e, truncated to previewWidth runes.
func preview(e lang.Expr) string {
	src := []rune(lang.Format(e))
	if len(src) > previewWidth {
		return string(src[:previewWidth-3]) + "..."
	}

	return string(src)
}
