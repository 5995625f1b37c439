// Package repl implements the interactive forma session: a line editor
// with history recall and tab completion over the known variable and
// function names.
package repl

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/forma/lang"
)

// Run starts the interactive session and blocks until the user exits.
func Run(ctx context.Context, env lang.Environment) error {
	_, err := tea.NewProgram(newModel(env), tea.WithContext(ctx)).Run()

	return err
}

// historyLimit bounds how many transcript entries are kept on screen.
const historyLimit = 500

//nolint:gochecknoglobals
var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	echoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// entry is one transcript line pair: what was typed and what it
// produced.
type entry struct {
	input  string
	output string
	failed bool
}

type model struct {
	input   textinput.Model
	history []entry
	recall  []string // submitted lines, oldest first
	cursor  int      // recall position; len(recall) means "new line"
	env     lang.Environment
	names   []string // completion candidates
}

func newModel(env lang.Environment) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render("forma> ")
	ti.Placeholder = `count > 3 && name == "admin"`
	ti.Focus()

	return model{
		input: ti,
		env:   env,
		names: completionNames(env),
	}
}

// completionNames collects every name an expression could reference in
// this environment, including the standard functions.
func completionNames(env lang.Environment) []string {
	var names []string
	for name := range env.StaticVariables() {
		names = append(names, name)
	}
	for name := range env.LiveVariables() {
		names = append(names, name)
	}
	for name := range env.Functions() {
		names = append(names, name)
	}

	return append(names, lang.StandardRegistry().Names()...)
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp:
			return m.recallPrev(), nil
		case tea.KeyDown:
			return m.recallNext(), nil
		case tea.KeyTab:
			return m.complete(), nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}
	if line == "exit" || line == "quit" {
		return m, tea.Quit
	}

	m.recall = append(m.recall, line)
	m.cursor = len(m.recall)
	m.history = append(m.history, m.evaluate(line))
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
	m.input.SetValue("")

	return m, nil
}

func (m model) evaluate(line string) entry {
	x, err := lang.ParseCached(line)
	if err != nil {
		return entry{input: line, output: err.Error(), failed: true}
	}

	result, err := x.Evaluate(m.env)
	if err != nil {
		return entry{input: line, output: err.Error(), failed: true}
	}

	return entry{input: line, output: result.AsString()}
}

func (m model) recallPrev() model {
	if m.cursor > 0 {
		m.cursor--
		m.input.SetValue(m.recall[m.cursor])
		m.input.CursorEnd()
	}

	return m
}

func (m model) recallNext() model {
	if m.cursor < len(m.recall) {
		m.cursor++
		if m.cursor == len(m.recall) {
			m.input.SetValue("")
		} else {
			m.input.SetValue(m.recall[m.cursor])
			m.input.CursorEnd()
		}
	}

	return m
}

// complete replaces the identifier fragment under the cursor with its
// best fuzzy match among the known names.
func (m model) complete() model {
	line := m.input.Value()
	start := len(line)
	for start > 0 && isNameByte(line[start-1]) {
		start--
	}

	fragment := line[start:]
	if fragment == "" {
		return m
	}

	matches := fuzzy.Find(fragment, m.names)
	if len(matches) == 0 {
		return m
	}

	m.input.SetValue(line[:start] + matches[0].Str)
	m.input.CursorEnd()

	return m
}

func isNameByte(ch byte) bool {
	return ch == '_' ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}

func (m model) View() string {
	var sb strings.Builder
	for _, e := range m.history {
		sb.WriteString(echoStyle.Render("forma> " + e.input))
		sb.WriteString("\n")
		if e.failed {
			sb.WriteString(errorStyle.Render(e.output))
		} else {
			sb.WriteString(resultStyle.Render(e.output))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render("tab: complete | up/down: history | ctrl+d: exit"))
	sb.WriteString("\n")

	return sb.String()
}
