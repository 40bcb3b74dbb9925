package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// ctrlLeader marks a control command in the plain and script consoles.
const ctrlLeader = ":"

// clearScreen is the ANSI sequence that homes the cursor and clears the
// display.
const clearScreen = "\x1b[H\x1b[2J"

// writeReply prints the lines of r to w, then its error, if any.
func writeReply(w io.Writer, r Reply) {
	for _, line := range r.Lines() {
		fmt.Fprintln(w, line)
	}

	if r.Err != nil {
		fmt.Fprintln(w, "Error: "+r.Err.Error())
	}
}

// submitLine routes a line to [Session.Control] or [Session.Submit].
func submitLine(ctx context.Context, s *Session, line string) (Reply, inputMode) {
	if cmd, ok := strings.CutPrefix(line, ctrlLeader); ok {
		return s.Control(cmd), modeCtrl
	}

	return s.Submit(ctx, line), modeEval
}

// RunPlain runs a line-editing console over s on the process terminal.
// Control commands are entered with a leading ':'.
func RunPlain(ctx context.Context, s *Session) error {
	history := loadHistory(ctx, s)

	state := liner.NewLiner()
	defer state.Close()

	state.SetCtrlCAborts(true)
	state.SetWordCompleter(s.completeWord)

	for _, e := range history.Entries() {
		if e.Mode == modeCtrl {
			state.AppendHistory(ctrlLeader + e.Line)
		} else {
			state.AppendHistory(e.Line)
		}
	}

	for {
		prompt := evalPrompt
		if name := s.Context(); name != RootContext {
			prompt = name + " " + evalPrompt
		}

		line, err := state.Prompt(prompt)

		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			return nil

		case errors.Is(err, io.EOF):
			fmt.Println()

			return nil

		case err != nil:
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		state.AppendHistory(line)

		reply, mode := submitLine(ctx, s, line)

		if _, err := history.WriteWithMode(strings.TrimPrefix(line, ctrlLeader), mode); err != nil {
			s.logger.DebugContext(ctx, "history not saved",
				slog.String("error", err.Error()))
		}

		if quit := runRequests(ctx, s, reply, os.Stdout); quit {
			return nil
		}
	}
}

// runRequests prints r and performs its requests on the process terminal.
// It reports whether a quit was requested. Files opened for editing are
// evaluated and printed in turn.
func runRequests(ctx context.Context, s *Session, r Reply, w io.Writer) (quit bool) {
	writeReply(w, r)

	for _, req := range r.Requests {
		switch req.Action {
		case ActionClear:
			fmt.Fprint(w, clearScreen)

		case ActionQuit:
			return true

		case ActionOpen:
			cmd := &editCommand{
				path:    req.Path,
				ctxFunc: func() context.Context { return ctx },
				logger:  s.logger,
				stdin:   os.Stdin,
				stdout:  os.Stdout,
				stderr:  os.Stderr,
			}

			if err := cmd.Run(); err != nil {
				fmt.Fprintln(w, "Error: "+err.Error())

				continue
			}

			if runRequests(ctx, s, s.SubmitFile(ctx, req.Path), w) {
				return true
			}
		}
	}

	return false
}

// RunScript evaluates r as a console script, printing every result to w.
// Forms may span lines; a chunk is submitted once its lists are closed.
// Lines beginning with ':' are control commands. Requests that need a
// terminal are skipped. A quit request ends the script.
func RunScript(ctx context.Context, s *Session, r io.Reader, w io.Writer) error {
	var (
		chunk   strings.Builder
		scanner = bufio.NewScanner(r)
	)

	submit := func() bool {
		src := strings.TrimSpace(chunk.String())
		chunk.Reset()

		if src == "" {
			return false
		}

		reply, _ := submitLine(ctx, s, src)
		writeReply(w, reply)

		for _, req := range reply.Requests {
			if req.Action == ActionQuit {
				return true
			}

			s.logger.InfoContext(ctx, "console action skipped",
				slog.String("action", req.Action.String()),
				slog.String("path", req.Path))
		}

		return false
	}

	for scanner.Scan() {
		chunk.WriteString(scanner.Text())
		chunk.WriteByte('\n')

		src := chunk.String()
		if !strings.HasPrefix(strings.TrimSpace(src), ctrlLeader) && unbalanced(src) > 0 {
			continue
		}

		if submit() {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	submit()

	return nil
}
