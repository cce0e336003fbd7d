// Package alert builds confirmation dialogs: a title, a message and a row of
// actions, one of which runs when the user picks it.
package alert

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/dreamer/pkg/tui/theme"
)

// Style selects how the actions are laid out.
type Style int

const (
	// StyleAlert lays actions out side by side.
	StyleAlert Style = iota
	// StyleActionSheet stacks actions vertically.
	StyleActionSheet
)

// Role tells the dialog how to treat an action.
type Role int

const (
	RoleDefault Role = iota
	// RoleCancel is also triggered by esc.
	RoleCancel
	// RoleDestructive is drawn in the warning color.
	RoleDestructive
)

// Action is one choice in the dialog.
type Action struct {
	Title   string
	Role    Role
	Handler func() tea.Cmd
}

// DoneMsg is emitted once the dialog has been answered.
type DoneMsg struct {
	Action Action
}

// Model is a confirmation dialog.
type Model struct {
	title    string
	message  string
	style    Style
	actions  []Action
	selected int
	theme    theme.AlertTheme
}

// Controller builds a dialog. The first action is preselected.
func Controller(title, message string, style Style, actions []Action) *Model {
	m := &Model{
		title:   title,
		message: message,
		style:   style,
		theme:   theme.Default().Alert,
	}
	for _, a := range actions {
		m.AddAction(a)
	}
	return m
}

// AddAction appends an action.
func (m *Model) AddAction(a Action) {
	m.actions = append(m.actions, a)
}

// SetTheme overrides the dialog styles.
func (m *Model) SetTheme(t theme.AlertTheme) {
	m.theme = t
}

// Actions returns the dialog's actions in order.
func (m *Model) Actions() []Action {
	return append([]Action(nil), m.actions...)
}

// Selected returns the index of the highlighted action.
func (m *Model) Selected() int {
	return m.selected
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update moves the highlight and answers the dialog.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.actions) == 0 {
		return m, nil
	}
	prev, next := "left", "right"
	if m.style == StyleActionSheet {
		prev, next = "up", "down"
	}
	switch key.String() {
	case prev, "shift+tab", "h", "k":
		m.selected = (m.selected - 1 + len(m.actions)) % len(m.actions)
	case next, "tab", "l", "j":
		m.selected = (m.selected + 1) % len(m.actions)
	case "enter", "space", " ":
		return m, m.choose(m.actions[m.selected])
	case "esc":
		for _, a := range m.actions {
			if a.Role == RoleCancel {
				return m, m.choose(a)
			}
		}
	}
	return m, nil
}

func (m *Model) choose(a Action) tea.Cmd {
	done := func() tea.Msg { return DoneMsg{Action: a} }
	if a.Handler == nil {
		return done
	}
	return tea.Batch(a.Handler(), done)
}

// View renders the dialog frame.
func (m *Model) View() string {
	var buttons []string
	for i, a := range m.actions {
		style := m.theme.Action
		if a.Role == RoleDestructive {
			style = m.theme.Destructive
		}
		if i == m.selected {
			style = style.Inherit(m.theme.Selected)
		}
		buttons = append(buttons, style.Render(" "+a.Title+" "))
	}

	var actions string
	if m.style == StyleActionSheet {
		actions = lipgloss.JoinVertical(lipgloss.Left, buttons...)
	} else {
		actions = strings.Join(buttons, "  ")
	}

	body := []string{m.theme.Title.Render(m.title)}
	if m.message != "" {
		body = append(body, m.theme.Message.Render(m.message))
	}
	body = append(body, "", actions)
	return m.theme.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}
