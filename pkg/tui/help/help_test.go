package help

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
)

func TestRendersKeyReference(t *testing.T) {
	m := New(80, 60, true)
	if err := m.Err(); err != nil {
		t.Fatalf("render: %v", err)
	}
	view := stripANSI(m.View())
	for _, want := range []string{"Dreamer", "Calendar", "Saving an empty entry"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestCloseKeys(t *testing.T) {
	for _, k := range []tea.KeyPressMsg{
		{Code: tea.KeyEscape},
		{Text: "q", Code: 'q'},
		{Text: "?", Code: '?'},
	} {
		m := New(60, 20, false)
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%s: expected a command", k.String())
		}
		if _, ok := cmd().(ClosedMsg); !ok {
			t.Fatalf("%s: expected ClosedMsg", k.String())
		}
	}
}

func TestSizeHasFloor(t *testing.T) {
	m := New(5, 2, true)
	if m.width != 32 || m.height != 8 {
		t.Fatalf("size = %dx%d", m.width, m.height)
	}
}
