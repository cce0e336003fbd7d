// Package detail is the entry screen opened from the calendar: it shows the
// entry for one date and lets the user write, edit or delete it.
package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/dreamer/pkg/calendar"
	"tableflip.dev/dreamer/pkg/datekey"
	"tableflip.dev/dreamer/pkg/entry"
	"tableflip.dev/dreamer/pkg/tui/alert"
	"tableflip.dev/dreamer/pkg/tui/theme"
)

// Deleter removes the entry for a date.
type Deleter interface {
	Delete(key datekey.DateKey) error
}

// ClosedMsg asks the host to pop the detail view.
type ClosedMsg struct {
	Key datekey.DateKey
}

// SavedMsg reports a successful write.
type SavedMsg struct {
	Key datekey.DateKey
}

// DeletedMsg reports a successful delete.
type DeletedMsg struct {
	Key datekey.DateKey
}

type mode int

const (
	modeRead mode = iota
	modeEdit
)

// Options configures a detail view.
type Options struct {
	Deleter Deleter
	Clock   func() time.Time
	Theme   theme.PanelTheme
	Alerts  theme.AlertTheme
}

// Model is the detail view for one DateKey.
type Model struct {
	key     datekey.DateKey
	store   calendar.EntryStore
	deleter Deleter
	clock   func() time.Time
	theme   theme.PanelTheme
	alerts  theme.AlertTheme

	mode   mode
	input  textinput.Model
	alert  *alert.Model
	status string

	width  int
	height int
}

// New opens key against store. Dates without an entry start in edit mode.
func New(key datekey.DateKey, store calendar.EntryStore, opts Options) *Model {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "What did you dream?"

	m := &Model{
		key:     key,
		store:   store,
		deleter: opts.Deleter,
		clock:   clock,
		theme:   opts.Theme,
		alerts:  opts.Alerts,
		input:   in,
	}
	if e, ok := store.Entry(key); ok {
		m.input.SetValue(e.Text)
	} else {
		m.mode = modeEdit
	}
	return m
}

// Key returns the date the view shows.
func (m *Model) Key() datekey.DateKey {
	return m.key
}

// Editing reports whether the input has focus.
func (m *Model) Editing() bool {
	return m.mode == modeEdit
}

// Value returns the text currently in the input.
func (m *Model) Value() string {
	return m.input.Value()
}

// Alert returns the open confirmation dialog, if any.
func (m *Model) Alert() *alert.Model {
	return m.alert
}

// SetSize records the space available to the view.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(max(width-8, 10))
}

// Init focuses the input for new entries.
func (m *Model) Init() tea.Cmd {
	if m.mode == modeEdit {
		return m.input.Focus()
	}
	return nil
}

// Update handles editing keys and alert answers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(alert.DoneMsg); ok {
		m.alert = nil
		return m, nil
	}
	if m.alert != nil {
		_, cmd := m.alert.Update(msg)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == modeEdit {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.mode == modeEdit {
		switch key.String() {
		case "enter":
			return m, m.save()
		case "esc":
			return m, m.leaveEdit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "e", "enter":
		m.mode = modeEdit
		return m, m.input.Focus()
	case "d":
		return m, m.confirmDelete()
	case "esc", "q", "backspace":
		return m, m.close()
	}
	return m, nil
}

func (m *Model) stored() (*entry.Entry, bool) {
	return m.store.Entry(m.key)
}

func (m *Model) dirty() bool {
	e, ok := m.stored()
	if !ok {
		return strings.TrimSpace(m.input.Value()) != ""
	}
	return e.Text != m.input.Value()
}

func (m *Model) save() tea.Cmd {
	text := m.input.Value()
	e, exists := m.stored()
	if strings.TrimSpace(text) == "" {
		if exists {
			return m.confirmDelete()
		}
		return m.close()
	}

	if !exists {
		e = entry.New(m.key, text, m.clock())
	} else if e = e.Clone(); !e.SetText(text, m.clock()) {
		m.readMode()
		return nil
	}
	if err := m.store.Update(e, m.key); err != nil {
		m.status = "ERR: " + err.Error()
		return nil
	}
	m.status = "Saved"
	m.readMode()
	key := m.key
	return func() tea.Msg { return SavedMsg{Key: key} }
}

func (m *Model) readMode() {
	m.mode = modeRead
	m.input.Blur()
}

func (m *Model) leaveEdit() tea.Cmd {
	if _, ok := m.stored(); !ok && !m.dirty() {
		return m.close()
	}
	if !m.dirty() {
		m.readMode()
		return nil
	}
	m.alert = alert.Controller("Discard changes?", "Your edits to "+m.key.String()+" have not been saved.", alert.StyleAlert, []alert.Action{
		{Title: "Keep editing", Role: alert.RoleCancel},
		{Title: "Discard", Role: alert.RoleDestructive, Handler: m.discard},
	})
	m.alert.SetTheme(m.alerts)
	return nil
}

func (m *Model) discard() tea.Cmd {
	e, ok := m.stored()
	if !ok {
		return m.close()
	}
	m.input.SetValue(e.Text)
	m.readMode()
	return nil
}

func (m *Model) confirmDelete() tea.Cmd {
	if _, ok := m.stored(); !ok || m.deleter == nil {
		return nil
	}
	m.alert = alert.Controller("Delete entry?", "The entry for "+m.key.String()+" will be removed.", alert.StyleAlert, []alert.Action{
		{Title: "Cancel", Role: alert.RoleCancel},
		{Title: "Delete", Role: alert.RoleDestructive, Handler: m.delete},
	})
	m.alert.SetTheme(m.alerts)
	return nil
}

func (m *Model) delete() tea.Cmd {
	if err := m.deleter.Delete(m.key); err != nil {
		m.status = "ERR: " + err.Error()
		return nil
	}
	key := m.key
	return tea.Batch(
		func() tea.Msg { return DeletedMsg{Key: key} },
		m.close(),
	)
}

func (m *Model) close() tea.Cmd {
	key := m.key
	return func() tea.Msg { return ClosedMsg{Key: key} }
}

// View renders the entry panel, with the alert on top when one is open.
func (m *Model) View() string {
	title := m.theme.Title.Render(m.key.Time().Format("Monday, January 2, 2006"))

	var body string
	switch {
	case m.mode == modeEdit:
		body = m.input.View()
	default:
		e, ok := m.stored()
		if !ok {
			body = m.theme.Muted.Render("No entry.")
		} else {
			body = m.theme.Body.Render(wordwrap.String(e.Text, max(m.width-8, 20)))
		}
	}

	var footer string
	if e, ok := m.stored(); ok {
		footer = m.theme.Muted.Render(fmt.Sprintf("edited %s", e.Updated().Local().Format("Jan 2 15:04")))
	}
	if m.status != "" {
		footer = strings.TrimSpace(footer + "  " + m.status)
	}

	panel := m.theme.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", footer))
	if m.alert != nil {
		return lipgloss.JoinVertical(lipgloss.Left, panel, m.alert.View())
	}
	return panel
}
