// Package picker lists every journal entry for quick jumping, with filtering.
package picker

import (
	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/dreamer/pkg/datekey"
	"tableflip.dev/dreamer/pkg/entry"
)

// PickedMsg reports the chosen entry's date.
type PickedMsg struct {
	Key datekey.DateKey
}

// ClosedMsg reports the picker was dismissed.
type ClosedMsg struct{}

// Model wraps a bubbles list of entries.
type Model struct {
	list list.Model
}

// New lists entries in the order given.
func New(entries []*entry.Entry) *Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(itemsFromEntries(entries), delegate, 0, 0)
	l.Title = "Entries"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	return &Model{list: l}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Len is the number of listed entries.
func (m *Model) Len() int {
	return len(m.list.Items())
}

// Selected returns the highlighted entry's date.
func (m *Model) Selected() (datekey.DateKey, bool) {
	it, ok := m.list.SelectedItem().(item)
	if !ok {
		return datekey.DateKey{}, false
	}
	return it.key, true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update forwards messages to the list; enter picks and esc closes unless a
// filter is being typed.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch key.String() {
		case "enter":
			if k, ok := m.Selected(); ok {
				return m, func() tea.Msg { return PickedMsg{Key: k} }
			}
			return m, nil
		case "esc", "q":
			if m.list.FilterState() == list.FilterApplied {
				m.list.ResetFilter()
				return m, nil
			}
			return m, func() tea.Msg { return ClosedMsg{} }
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list.
func (m *Model) View() string {
	return m.list.View()
}

func itemsFromEntries(entries []*entry.Entry) []list.Item {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		items = append(items, item{key: e.Date, title: e.Title()})
	}
	return items
}

type item struct {
	key   datekey.DateKey
	title string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.key.Time().Format("Monday, January 2, 2006") }
func (i item) FilterValue() string { return i.key.String() + " " + i.title }
