// Package teaui is the Bubble Tea front end: a scrolling calendar of months
// with a detail view pushed on top for the selected date.
package teaui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/dreamer/pkg/app"
	"tableflip.dev/dreamer/pkg/calendar"
	"tableflip.dev/dreamer/pkg/datekey"
	"tableflip.dev/dreamer/pkg/entry"
	"tableflip.dev/dreamer/pkg/log"
	"tableflip.dev/dreamer/pkg/store"
	"tableflip.dev/dreamer/pkg/tui/detail"
	"tableflip.dev/dreamer/pkg/tui/help"
	"tableflip.dev/dreamer/pkg/tui/monthgrid"
	"tableflip.dev/dreamer/pkg/tui/picker"
	"tableflip.dev/dreamer/pkg/tui/theme"
)

const (
	appTitle   = "Dreamer"
	helpText   = "hjkl move · [ ] month · enter open · + today · g jump · / entries · ? help · q quit"
	rowSpacing = 1
)

// Options configures the UI.
type Options struct {
	Clock  func() time.Time
	Theme  *theme.Theme
	Logger *log.Logger
	// Watch enables filesystem change notifications.
	Watch bool
}

// Model is the root model. It hosts the calendar screen and acts as its
// navigator, pushing a detail view for each selected date.
type Model struct {
	ctx    context.Context
	svc    *app.Service
	screen *calendar.Screen[monthgrid.Row]
	theme  theme.Theme
	clock  func() time.Time
	logger *log.Logger
	watch  bool

	stack   []*detail.Model
	picker  *picker.Model
	help    *help.Model
	pending []tea.Cmd

	cursorRow int
	cursorDay int
	top       int

	width  int
	height int
	status string

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New constructs the root model. svc.Changes must be set; the calendar
// screen subscribes to it.
func New(ctx context.Context, svc *app.Service, opts Options) (*Model, error) {
	if svc == nil {
		return nil, errors.New("tui: service required")
	}
	if svc.Changes == nil {
		return nil, errors.New("tui: service has no change subject")
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	th := opts.Theme
	if th == nil {
		def := theme.Default()
		th = &def
	}
	m := &Model{
		ctx:    ctx,
		svc:    svc,
		theme:  *th,
		clock:  clock,
		logger: log.OrDiscard(opts.Logger).WithComponent("tui"),
		watch:  opts.Watch,
		width:  80,
		height: 24,
	}
	screen, err := calendar.NewScreen(calendar.Options[monthgrid.Row]{
		Store:     svc,
		Navigator: m,
		Rows:      monthgrid.Factory{Clock: clock},
		Changes:   svc.Changes,
		Clock:     clock,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	m.screen = screen
	return m, nil
}

// Run launches the Bubble Tea program.
func Run(ctx context.Context, svc *app.Service, opts Options) error {
	m, err := New(ctx, svc, opts)
	if err != nil {
		return err
	}
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// Close releases the screen's subscription and stops watching the store.
func (m *Model) Close() {
	m.stopWatch()
	m.screen.Close()
}

// Init activates the calendar on today's month.
func (m *Model) Init() tea.Cmd {
	m.screen.Activate()
	m.jumpTo(datekey.FromTime(m.clock()))
	if m.watch {
		return startWatchCmd(m.ctx, m.svc)
	}
	return nil
}

// ShowEntry implements calendar.Navigator.
func (m *Model) ShowEntry(key datekey.DateKey, es calendar.EntryStore) {
	d := detail.New(key, es, detail.Options{
		Deleter: m.svc,
		Clock:   m.clock,
		Theme:   m.theme.Detail,
		Alerts:  m.theme.Alert,
	})
	d.SetSize(m.width, m.height)
	m.stack = append(m.stack, d)
	m.pending = append(m.pending, d.Init())
	m.logger.Debug("push detail", "date", key.String(), "depth", len(m.stack))
}

// Detail returns the detail view on top of the stack, or nil.
func (m *Model) Detail() *detail.Model {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Cursor returns the highlighted date.
func (m *Model) Cursor() datekey.DateKey {
	desc, err := m.screen.Row(m.cursorRow)
	if err != nil {
		return datekey.DateKey{}
	}
	return datekey.DateKey{Day: m.cursorDay, Month: desc.Month, Year: desc.Year}
}

// Update routes messages to the detail view or the calendar.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		for _, d := range m.stack {
			d.SetSize(v.Width, v.Height)
		}
		if m.picker != nil {
			m.picker.SetSize(v.Width, v.Height-1)
		}
		if m.help != nil {
			m.help.SetSize(v.Width, v.Height)
		}
		m.ensureVisible()
		return m, nil
	case watchStartedMsg:
		if v.err != nil {
			m.status = "ERR: watch " + v.err.Error()
			break
		}
		m.stopWatch()
		m.watchCh = v.ch
		m.watchCancel = v.cancel
		return m, m.waitForWatch()
	case watchEventMsg:
		m.handleWatchEvent(v.event)
		return m, m.waitForWatch()
	case watchStoppedMsg:
		m.stopWatch()
		return m, nil
	case detail.ClosedMsg:
		m.pop()
		return m, nil
	case help.ClosedMsg:
		m.help = nil
		return m, nil
	case picker.ClosedMsg:
		m.picker = nil
		return m, nil
	case picker.PickedMsg:
		m.picker = nil
		if m.jumpTo(v.Key) {
			m.screen.OnDateSelected(v.Key.Day, v.Key.Month, v.Key.Year)
		}
		cmds = append(cmds, m.pending...)
		m.pending = nil
		return m, tea.Batch(cmds...)
	case detail.SavedMsg:
		m.status = "Saved " + v.Key.String()
	case detail.DeletedMsg:
		m.status = "Deleted " + v.Key.String()
	case tea.KeyMsg:
		if v.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	if d := m.Detail(); d != nil {
		_, cmd := d.Update(msg)
		cmds = append(cmds, cmd)
	} else if m.picker != nil {
		_, cmd := m.picker.Update(msg)
		cmds = append(cmds, cmd)
	} else if m.help != nil {
		_, cmd := m.help.Update(msg)
		cmds = append(cmds, cmd)
	} else if key, ok := msg.(tea.KeyMsg); ok {
		if cmd := m.handleKey(key.String()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.pending...)
	m.pending = nil
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "q":
		return tea.Quit
	case "left", "h":
		m.moveDays(-1)
	case "right", "l":
		m.moveDays(1)
	case "up", "k":
		m.moveDays(-7)
	case "down", "j":
		m.moveDays(7)
	case "[", "pgup":
		m.moveMonths(-1)
	case "]", "pgdown":
		m.moveMonths(1)
	case "g":
		m.jumpTo(datekey.FromTime(m.clock()))
	case "+", "t":
		m.screen.OnTodayShortcutInvoked()
	case "/":
		m.openPicker()
	case "?":
		m.help = help.New(m.width, m.height, m.theme.Dark)
	case "enter", "space", " ":
		m.selectCursor()
	}
	return nil
}

func (m *Model) selectCursor() {
	row := m.screen.RenderRow(m.cursorRow)
	if !row.Select(m.cursorDay) {
		m.status = "Nothing to open here"
	}
	m.ensureVisible()
}

// openPicker lists every entry, newest first.
func (m *Model) openPicker() {
	years := m.svc.Years()
	var all []*entry.Entry
	for i := len(years) - 1; i >= 0; i-- {
		for month := 12; month >= 1; month-- {
			es := m.svc.Entries(month, years[i])
			for j := len(es) - 1; j >= 0; j-- {
				all = append(all, es[j])
			}
		}
	}
	m.picker = picker.New(all)
	m.picker.SetSize(m.width, m.height-1)
}

func (m *Model) pop() {
	if len(m.stack) == 0 {
		return
	}
	m.stack = m.stack[:len(m.stack)-1]
	m.ensureVisible()
}

// jumpTo moves the cursor to key when its month is displayed.
func (m *Model) jumpTo(key datekey.DateKey) bool {
	row, err := m.screen.RowFor(key)
	if err != nil {
		m.logger.Debug("jump outside calendar", "date", key.String(), "err", err)
		return false
	}
	m.cursorRow = row
	m.cursorDay = key.Day
	m.ensureVisible()
	return true
}

func (m *Model) moveDays(delta int) {
	cur := m.Cursor()
	if cur.IsZero() {
		return
	}
	m.jumpTo(datekey.FromTime(cur.Time().AddDate(0, 0, delta)))
}

func (m *Model) moveMonths(delta int) {
	row := m.cursorRow + delta
	desc, err := m.screen.Row(row)
	if err != nil {
		return
	}
	last := time.Date(desc.Year, time.Month(desc.Month)+1, 0, 0, 0, 0, 0, time.Local).Day()
	m.cursorRow = row
	m.cursorDay = min(m.cursorDay, last)
	m.ensureVisible()
}

// rowsArea is the number of lines available to month rows.
func (m *Model) rowsArea() int {
	// title, weekday strip, separator, footer
	return max(m.height-4, 1)
}

// ensureVisible scrolls so the cursor row is on screen and reports the
// visible window to the calendar screen.
func (m *Model) ensureVisible() {
	total := m.screen.RowCount()
	if total == 0 {
		m.top = 0
		m.screen.SetVisible(0, 0)
		return
	}
	m.cursorRow = min(max(m.cursorRow, 0), total-1)
	if m.cursorRow < m.top {
		m.top = m.cursorRow
	}
	for m.top < m.cursorRow && m.cursorRow >= m.top+m.fits(m.top) {
		m.top++
	}
	m.screen.SetVisible(m.top, m.fits(m.top))
}

// fits counts the rows starting at top that fit in the rows area; at least
// one.
func (m *Model) fits(top int) int {
	avail := m.rowsArea()
	n := 0
	for i := top; i < m.screen.RowCount(); i++ {
		h := m.screen.RenderRow(i).Height() + rowSpacing
		if avail < h && n > 0 {
			break
		}
		avail -= h
		n++
	}
	return max(n, 1)
}

// View renders whichever of the detail view, entry picker or help is open,
// otherwise the calendar.
func (m *Model) View() string {
	if d := m.Detail(); d != nil {
		return d.View()
	}
	if m.picker != nil {
		return m.picker.View()
	}
	if m.help != nil {
		return m.help.View()
	}
	return m.calendarView()
}

func (m *Model) calendarView() string {
	ct := m.theme.Calendar
	lines := []string{
		m.theme.Detail.Title.Render(appTitle),
		ct.Weekdays.Render(monthgrid.WeekdayHeader),
		ct.Separator.Render(strings.Repeat("─", lipgloss.Width(monthgrid.WeekdayHeader))),
	}

	rows := m.screen.Visible()
	for i, row := range rows {
		fade := 0.0
		if len(rows) > 1 {
			fade = float64(i) / float64(len(rows)-1)
		}
		cursor := 0
		if row.Desc.Index == m.cursorRow {
			cursor = m.cursorDay
		}
		lines = append(lines, monthgrid.Render(row, cursor, monthgrid.Options{
			TitleStyle:  m.theme.Fade.Style(fade),
			EmptyStyle:  ct.Empty,
			EntryStyle:  ct.Entry,
			TodayStyle:  ct.Today,
			CursorStyle: ct.Cursor,
			Missing:     ct.Missing,
		}), "")
	}
	if len(rows) == 0 {
		lines = append(lines, ct.Missing.Render("No months to show."))
	}

	footer := m.theme.Footer.Help.Render(helpText)
	if m.status != "" {
		style := m.theme.Footer.Status
		if strings.HasPrefix(m.status, "ERR") {
			style = m.theme.Footer.Error
		}
		footer = style.Render(m.status) + "  " + footer
	}
	lines = append(lines, footer)
	return strings.Join(lines, "\n")
}
