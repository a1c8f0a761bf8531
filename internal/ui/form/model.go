// Package form is an interactive terminal questionnaire built on Bubble Tea.
package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/cremis/internal/assessment"
	"github.com/dshills/cremis/internal/render"
)

// Model renders one questionnaire instance and owns its answers.
type Model struct {
	eval    *assessment.Evaluator
	form    *assessment.Form
	current int
	cursor  []int
	keys    keyMap
	help    help.Model
	err     error
	noColor bool
}

// Options configures the form model.
type Options struct {
	NoColor bool
}

// NewModel starts an empty form over the evaluator's questionnaire.
func NewModel(e *assessment.Evaluator, opts Options) Model {
	return Model{
		eval:    e,
		form:    e.NewForm(),
		cursor:  make([]int, len(e.Questionnaire().Questions)),
		keys:    defaultKeyMap(),
		help:    help.New(),
		noColor: opts.NoColor,
	}
}

// Init has no startup work.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	questions := m.eval.Questionnaire().Questions
	qu := questions[m.current]

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.current] > 0 {
			m.cursor[m.current]--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor[m.current] < len(qu.Options)-1 {
			m.cursor[m.current]++
		}
	case key.Matches(msg, m.keys.Prev):
		if m.current > 0 {
			m.current--
		}
	case key.Matches(msg, m.keys.Next):
		if m.current < len(questions)-1 {
			m.current++
		}
	case key.Matches(msg, m.keys.Select):
		if err := m.form.Select(qu.ID, m.cursor[m.current]); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		if m.current < len(questions)-1 {
			m.current++
		}
	case key.Matches(msg, m.keys.Clear):
		m.form.Clear(qu.ID)
	case key.Matches(msg, m.keys.Submit):
		_, m.err = m.form.Submit()
	}
	return m, nil
}

// View renders the current question, the last result and key help.
func (m Model) View() string {
	q := m.eval.Questionnaire()
	qu := q.Questions[m.current]

	var b strings.Builder
	b.WriteString(render.Stylize(q.Title, m.noColor, lipgloss.Color("33")))
	b.WriteString("\n")
	answered := len(m.form.Answers())
	b.WriteString(render.Stylize(
		fmt.Sprintf("Question %d of %d  |  answered %d", m.current+1, len(q.Questions), answered),
		m.noColor, lipgloss.Color("242")))
	b.WriteString("\n\n")
	b.WriteString(qu.Text)
	b.WriteString("\n\n")

	selected, hasSelection := m.form.Selected(qu.ID)
	for i, o := range qu.Options {
		pointer := "  "
		if i == m.cursor[m.current] {
			pointer = "> "
		}
		mark := "( )"
		if hasSelection && selected == i {
			mark = "(•)"
		}
		fmt.Fprintf(&b, "%s%s %s\n", pointer, mark, o.Label)
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(render.Stylize("Error: "+m.err.Error(), m.noColor, lipgloss.Color("196")))
		b.WriteString("\n")
	}

	if res, ok := m.form.Result(); ok {
		b.WriteString("\n")
		b.WriteString(render.Text(res, m.noColor))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// Result returns the last submitted result.
func (m Model) Result() (assessment.Result, bool) {
	return m.form.Result()
}

// Answers returns the current selections as weights.
func (m Model) Answers() assessment.AnswerSet {
	return m.form.Answers()
}
