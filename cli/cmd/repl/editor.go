package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ardnew/dlisp/lang"
	"github.com/ardnew/dlisp/log"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand]: it opens path in the user's
// editor until the content has balanced parentheses or the user declines to
// re-edit. The console evaluates the file afterwards.
type editCommand struct {
	path    string
	ctxFunc func() context.Context
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (c *editCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-check-retry loop, returning [ErrEditDeclined] if
// the user gives up on unbalanced content.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}

	for {
		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, c.path); err != nil {
			return err
		}

		data, err := os.ReadFile(c.path)
		if err != nil {
			return err
		}

		depth := unbalanced(string(data))

		c.logger.TraceContext(ctx, "editor closed",
			slog.String("file", c.path),
			slog.Int("length", len(data)),
			slog.Int("unclosed", depth))

		if depth == 0 {
			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s: %d unclosed list(s)\n", c.path, depth)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		if !confirm(c.stdin) {
			return ErrEditDeclined
		}
	}
}

// confirm reads a yes/no answer from r, defaulting to yes.
func confirm(r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}

	switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
	case "n", "no":
		return false
	default:
		return true
	}
}

// unbalanced returns the number of lists left open at the end of src. It is
// negative when src closes more lists than it opens.
func unbalanced(src string) int {
	depth := 0

	for _, t := range lang.Lex(src) {
		switch t.Kind {
		case lang.TokenParenOpen:
			depth++
		case lang.TokenParenClose:
			depth--
		}
	}

	return depth
}

// runEditor runs $EDITOR, or vi, on path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	// EDITOR may carry arguments, such as "code --wait".
	args := append(strings.Fields(editor), path)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
