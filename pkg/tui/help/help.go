// Package help renders the key reference in a scrollable frame.
package help

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
)

//go:embed help.md
var helpMarkdown string

// ClosedMsg asks the host to dismiss the help.
type ClosedMsg struct{}

// Model renders the Glamour-based help inside a bordered viewport.
type Model struct {
	viewport viewport.Model
	width    int
	height   int
	dark     bool

	frame lipgloss.Style
	err   error
}

// New constructs the help sized to the provided bounds.
func New(width, height int, dark bool) *Model {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Margin(0).
		Padding(0)
	model := &Model{
		viewport: vp,
		frame:    frame,
		dark:     dark,
	}
	model.SetSize(width, height)
	return model
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update closes on esc, q or ? and forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "?":
			return m, func() tea.Msg { return ClosedMsg{} }
		}
	}
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// View renders the help content inside a rounded frame.
func (m *Model) View() string {
	body := m.viewport.View()
	if body == "" && m.err != nil {
		body = "help unavailable: " + m.err.Error()
	}
	return m.frame.Width(m.width).Height(m.height).Render(body)
}

// Err returns the last rendering failure.
func (m *Model) Err() error {
	return m.err
}

// SetSize configures the dimensions and re-renders the markdown to fit.
func (m *Model) SetSize(width, height int) {
	width = max(width, 32)
	height = max(height, 8)
	if m.width == width && m.height == height {
		return
	}

	m.width = width
	m.height = height

	innerWidth := max(width-m.frame.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-m.frame.GetVerticalFrameSize(), 1)

	m.viewport.SetWidth(innerWidth)
	m.viewport.SetHeight(innerHeight)

	m.renderContent(innerWidth)
}

func (m *Model) renderContent(wrap int) {
	style := "dark"
	if !m.dark {
		style = "light"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(wrap, 10)),
	)
	if err != nil {
		m.setErr(err)
		return
	}

	content, err := renderer.Render(strings.TrimSpace(helpMarkdown))
	if err != nil {
		m.setErr(err)
		return
	}

	m.err = nil
	m.viewport.SetContent(stripANSI(content))
	m.viewport.SetYOffset(0)
}

func (m *Model) setErr(err error) {
	m.err = err
	m.viewport.SetContent("help unavailable: " + err.Error())
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
