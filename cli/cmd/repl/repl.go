package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/dlisp/lang"
	"github.com/ardnew/dlisp/log"
)

// editDoneMsg is sent when the editor closed with balanced content.
type editDoneMsg struct{ path string }

// editDeclinedMsg is sent when the user declined to re-edit unbalanced
// content.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the editor could not be run.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

// inputMode selects how a submitted line is interpreted.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	contextStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// model is the Bubble Tea model for the console.
type model struct {
	ctxFunc          func() context.Context
	input            textinput.Model
	session          *Session
	logger           log.Logger
	history          *History
	historyIdx       int
	matches          fuzzy.Matches // current fuzzy match results
	candidates       []string      // backing candidate list
	wordStart        int           // byte offset of current word start
	wordEnd          int           // byte offset of current word end
	suggIdx          int           // selected candidate index
	tabActive        bool          // whether user is tab-cycling
	preTabText       string        // input text before tab-cycling began
	preTabCursor     int           // cursor position before tab-cycling began
	altNavActive     bool          // whether user is in Alt+Up/Down navigation
	altNavOrigMode   inputMode     // mode before Alt navigation
	altNavOrigText   string        // text before Alt navigation
	altNavOrigCursor int           // cursor position before Alt navigation
	width            int           // terminal width for ellipsization
	quitting         bool
	mode             inputMode
	evalText         string
	evalCursor       int
	ctrlText         string
	ctrlCursor       int
}

// RunTUI runs the full-screen console over s until the user quits. It
// returns [ErrNoTerminal] if stdin or stdout is not a terminal.
func RunTUI(ctx context.Context, s *Session) (err error) {
	if !IsTerminal(os.Stdin) || !IsTerminal(os.Stdout) {
		return ErrNoTerminal
	}

	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	history := loadHistory(ctx, s)

	p := tea.NewProgram(newModel(ctx, s, history), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

// loadHistory reads the shared history file. A history that cannot be read
// is logged and replaced by an empty one.
func loadHistory(ctx context.Context, s *Session) *History {
	history := NewHistory(s.HistoryPath())
	if err := history.Load(); err != nil {
		s.logger.WarnContext(ctx, "history unavailable",
			slog.String("file", s.HistoryPath()),
			slog.String("error", err.Error()))
	}

	s.logger.TraceContext(ctx, "history loaded",
		slog.Int("entries", history.Len()))

	return history
}

const defaultWidth = 80

func newModel(ctx context.Context, s *Session, history *History) model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	m := model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    s,
		logger:     s.logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		mode:       modeEval,
	}
	m.input.Prompt = m.prompt()

	return m
}

// prompt returns the styled prompt for the current mode. The eval prompt
// names the current context unless it is the root.
func (m model) prompt() string {
	if m.mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt)
	}

	if name := m.session.Context(); name != RootContext {
		return contextStyle.Render(name+" ") + promptStyle.Render(evalPrompt)
	}

	return promptStyle.Render(evalPrompt)
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(m.input.Prompt) - 2

		return m, nil

	case editDoneMsg:
		m.logger.TraceContext(m.ctxFunc(), "console edit complete",
			slog.String("file", msg.path))

		return m.reply(m.session.SubmitFile(m.ctxFunc(), msg.path))

	case editDeclinedMsg:
		return m, tea.Println(hintStyle.Render("edit discarded"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("Error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hint())
	b.WriteString("\n")

	return b.String()
}

// hint returns the line shown below the input: the history position, a
// usage hint, the signature of the enclosing call, or completions.
func (m model) hint() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeEval {
			return hintStyle.Render("Type an expression or press Esc for commands")
		}

		return hintStyle.Render(
			"Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)")
	}

	if m.mode == modeEval {
		call := detectFunctionCall(input, m.input.Position())
		if call.inCall {
			if params, ok := m.session.getSignature(call.name); ok {
				return renderSignatureHint(call.name, params, call.argIndex)
			}
		}
	}

	return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width,
		m.session.isApplicable)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "console keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)))

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.altNavActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		m.altNavActive = false

		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		// Enter while cycling accepts the candidate without submitting.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		if msg.Alt {
			return m.ctrlHistory(-1), nil
		}

		return m.historyStep(-1), nil

	case tea.KeyDown:
		if msg.Alt {
			return m.ctrlHistory(1), nil
		}

		return m.historyStep(1), nil

	case tea.KeyShiftUp:
		return m.modeHistory(-1), nil

	case tea.KeyShiftDown:
		return m.modeHistory(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		m.altNavActive = false

		return m.toggleMode(), nil

	case tea.KeyRunes, tea.KeySpace:
		// Space ends tab-cycling, keeping the candidate.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Deletions and cursor movement never auto-confirm a completion.
	var cmd tea.Cmd

	m.tabActive = false
	m.altNavActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step, wrapping at either end. A single
// candidate is accepted immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m

	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word in the input with
// replacement and moves the cursor after it.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes the fuzzy matches for the current input. When
// autoConfirm is set and the typed word already equals the sole candidate,
// the completion bar is dismissed.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	refreshMatches(&m, false)

	if _, err := m.history.WriteWithMode(input, m.mode); err != nil {
		m.logger.DebugContext(m.ctxFunc(), "history not saved",
			slog.String("error", err.Error()))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	m.logger.TraceContext(m.ctxFunc(), "console eval", slog.String("input", input))

	echo := tea.Println(promptStyle.Render(evalPrompt) + inputStyle.Render(input))

	m, cmd := m.reply(m.session.Submit(m.ctxFunc(), input))

	return m, tea.Sequence(echo, cmd)
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "console command", slog.String("input", input))

	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input))

	m, cmd := m.reply(m.session.Control(input))

	return m, tea.Sequence(echo, cmd)
}

// reply prints the output of r and performs its requests, in order.
func (m model) reply(r Reply) (model, tea.Cmd) {
	var cmds []tea.Cmd

	for _, line := range r.Logs {
		cmds = append(cmds, tea.Println(hintStyle.Render(line)))
	}

	for _, result := range r.Results {
		if t, ok := result.(lang.Text); ok && t == "" {
			continue
		}

		style := resultStyle
		if result.Kind() == lang.KindError {
			style = errorStyle
		}

		cmds = append(cmds, tea.Println(style.Render(lang.Display(result))))
	}

	if r.Err != nil {
		cmds = append(cmds, tea.Println(errorStyle.Render("Error: "+r.Err.Error())))
	}

	for _, req := range r.Requests {
		m.logger.TraceContext(m.ctxFunc(), "console action",
			slog.String("action", req.Action.String()),
			slog.String("path", req.Path))

		switch req.Action {
		case ActionClear:
			cmds = append(cmds, tea.ClearScreen)

		case ActionQuit:
			m.quitting = true

			return m, tea.Sequence(append(cmds, tea.Quit)...)

		case ActionOpen:
			cmds = append(cmds, m.edit(req.Path))
		}
	}

	// A context switch changes the prompt.
	m.input.Prompt = m.prompt()

	return m, tea.Sequence(cmds...)
}

// edit suspends the console to edit path, evaluating it when the editor
// closes with balanced content.
func (m model) edit(path string) tea.Cmd {
	cmd := &editCommand{
		path:    path,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		default:
			return editDoneMsg{path: path}
		}
	})
}

// recall loads history entry i into the input.
func (m model) recall(i int, entry HistoryEntry) model {
	m.historyIdx = i
	m.input.SetValue(entry.Line)
	m.input.SetCursor(len(entry.Line))
	refreshMatches(&m, false)

	return m
}

// seek returns the nearest history entry from historyIdx in direction step
// that satisfies keep.
func (m model) seek(step int, keep func(HistoryEntry) bool) (int, HistoryEntry, bool) {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		if entry, err := m.history.GetEntry(i); err == nil && keep(entry) {
			return i, entry, true
		}
	}

	return 0, HistoryEntry{}, false
}

// resetHistory leaves history navigation with an empty input.
func (m model) resetHistory() model {
	m.historyIdx = m.history.Len()
	m.input.SetValue("")
	refreshMatches(&m, false)

	return m
}

// historyStep moves through every entry, switching mode to match the
// recalled entry.
func (m model) historyStep(step int) model {
	i, entry, ok := m.seek(step, func(HistoryEntry) bool { return true })

	switch {
	case ok:
		if m.mode != entry.Mode {
			m = m.switchToMode(entry.Mode)
		}

		return m.recall(i, entry)

	case step > 0:
		return m.resetHistory()
	}

	return m
}

// modeHistory moves through the entries of the current mode only.
func (m model) modeHistory(step int) model {
	mode := m.mode

	i, entry, ok := m.seek(step, func(e HistoryEntry) bool { return e.Mode == mode })

	switch {
	case ok:
		return m.recall(i, entry)

	case step > 0 && m.historyIdx < m.history.Len():
		return m.resetHistory()
	}

	return m
}

// ctrlHistory moves through control entries from any mode. Running off
// either end restores the mode and input from before the navigation began.
func (m model) ctrlHistory(step int) model {
	if !m.altNavActive {
		m.altNavActive = true
		m.altNavOrigMode = m.mode
		m.altNavOrigText = m.input.Value()
		m.altNavOrigCursor = m.input.Position()

		if m.mode != modeCtrl {
			m = m.switchToMode(modeCtrl)
		}
	}

	i, entry, ok := m.seek(step, func(e HistoryEntry) bool { return e.Mode == modeCtrl })
	if ok {
		return m.recall(i, entry)
	}

	m.altNavActive = false

	if m.altNavOrigMode != m.mode {
		m = m.switchToMode(m.altNavOrigMode)
	}

	m.input.SetValue(m.altNavOrigText)
	m.input.SetCursor(m.altNavOrigCursor)
	m.historyIdx = m.history.Len()
	refreshMatches(&m, false)

	return m
}

func (m model) toggleMode() model {
	if m.mode == modeEval {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeEval)
}

// switchToMode switches to mode, keeping the pending input of each mode.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeEval {
		m.evalText, m.evalCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode
	m.input.Prompt = m.prompt()

	if mode == modeEval {
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m
}
