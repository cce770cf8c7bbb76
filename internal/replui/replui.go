// Package replui is the Bubble Tea front end for `lumen repl`
// (SPEC_FULL.md §2.5), grounded on the teacher's internal/ui/progress.go
// for how a Bubble Tea model composes bubbles components with lipgloss
// styling. It carries no language semantics of its own — every line is
// handed straight to a single, persistent interp.Interpreter.
package replui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumen-lang/lumen/internal/interp"
	"github.com/lumen-lang/lumen/internal/langvalue"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// Model is the REPL's Bubble Tea state: a growing transcript of prior
// input/output lines, the live input box, and the interpreter every
// submitted line feeds into.
type Model struct {
	it       *interp.Interpreter
	input    textinput.Model
	history  []string
	quitting bool
}

// New constructs a REPL model over a fresh interpreter, ready to run
// with tea.NewProgram.
func New(sourceName string, opts interp.Options) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "let x = 1 + 1"
	ti.Focus()
	return Model{
		it:    interp.NewREPL(sourceName, nopWriter{}, opts),
		input: ti,
	}
}

// nopWriter discards `print`/`cowsay` output written through the
// interpreter's normal sink; the REPL instead captures each evaluated
// value directly and renders it in the transcript.
type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.SetValue("")
			if strings.TrimSpace(line) == "" {
				return m, nil
			}
			m.history = append(m.history, promptStyle.Render("> ")+line)
			v, err := m.it.AppendLine(line)
			if err != nil {
				m.history = append(m.history, errorStyle.Render(err.Error()))
			} else if !v.IsUndefined() {
				m.history = append(m.history, valueStyle.Render(langvalue.Format(v)))
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	for _, line := range m.history {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(promptStyle.Render("> "))
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("esc or ctrl+c to quit"))
	return b.String()
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(sourceName string, opts interp.Options) error {
	p := tea.NewProgram(New(sourceName, opts))
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	return nil
}
