// Package monthgrid renders one calendar row: a month title above a
// Sunday-first grid of days, with days holding an entry highlighted.
package monthgrid

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/dreamer/pkg/calendar"
	"tableflip.dev/dreamer/pkg/datekey"
)

// WeekdayHeader labels the grid columns.
const WeekdayHeader = "Su Mo Tu We Th Fr Sa"

// Day describes metadata used when rendering the calendar.
type Day struct {
	Day      int
	HasEntry bool
	IsToday  bool
}

// Row is one month of the scrolling calendar.
type Row struct {
	Kind  calendar.RowKind
	Desc  calendar.RowDescriptor
	Days  []Day
	First time.Weekday

	sel calendar.Selector
}

// Factory builds rows for calendar.Screen.
type Factory struct {
	// Clock marks today; defaults to time.Now.
	Clock func() time.Time
}

var _ calendar.RowFactory[Row] = Factory{}

// MonthRow resolves which days of desc's month hold entries.
func (f Factory) MonthRow(desc calendar.RowDescriptor, store calendar.EntryStore, sel calendar.Selector) Row {
	now := time.Now
	if f.Clock != nil {
		now = f.Clock
	}
	today := datekey.FromTime(now())

	first := time.Date(desc.Year, time.Month(desc.Month), 1, 0, 0, 0, 0, time.Local)
	days := make([]Day, daysIn(first))
	for i := range days {
		key := datekey.DateKey{Day: i + 1, Month: desc.Month, Year: desc.Year}
		_, has := store.Entry(key)
		days[i] = Day{Day: i + 1, HasEntry: has, IsToday: key == today}
	}
	return Row{Kind: calendar.RowMonth, Desc: desc, Days: days, First: first.Weekday(), sel: sel}
}

// PlaceholderRow is drawn for rows the screen could not resolve.
func (Factory) PlaceholderRow(index int) Row {
	return Row{Kind: calendar.RowPlaceholder, Desc: calendar.RowDescriptor{Index: index}}
}

// Title is the month heading, e.g. "March 2024".
func (r Row) Title() string {
	if r.Kind != calendar.RowMonth {
		return ""
	}
	return fmt.Sprintf("%s %d", time.Month(r.Desc.Month), r.Desc.Year)
}

// Len is the number of days in the row's month.
func (r Row) Len() int {
	return len(r.Days)
}

// Select reports a day tap to the row's selector. It returns false for
// placeholder rows and days outside the month.
func (r Row) Select(day int) bool {
	if r.Kind != calendar.RowMonth || r.sel == nil || day < 1 || day > len(r.Days) {
		return false
	}
	r.sel.OnDateSelected(day, r.Desc.Month, r.Desc.Year)
	return true
}

// Options controls the styling of the rendered calendar.
type Options struct {
	TitleStyle  lipgloss.Style
	EmptyStyle  lipgloss.Style
	EntryStyle  lipgloss.Style
	TodayStyle  lipgloss.Style
	CursorStyle lipgloss.Style
	Missing     lipgloss.Style
}

// Height is the number of lines Render produces for r.
func (r Row) Height() int {
	if r.Kind != calendar.RowMonth {
		return 2
	}
	return 1 + weeks(int(r.First), len(r.Days))
}

// Render produces the month title and its week lines. cursor is the
// highlighted day, or 0 for none.
func Render(r Row, cursor int, opts Options) string {
	if r.Kind != calendar.RowMonth {
		return strings.Join([]string{opts.Missing.Render("—"), ""}, "\n")
	}

	lines := []string{opts.TitleStyle.Render(r.Title())}

	offset := int(r.First) // Sunday == 0
	rows := weeks(offset, len(r.Days))
	for row := 0; row < rows; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day < 1 || day > len(r.Days) {
				cells = append(cells, opts.EmptyStyle.Render("  "))
				continue
			}
			cells = append(cells, renderDay(r.Days[day-1], cursor == day, opts))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " "), " "))
	}

	return strings.Join(lines, "\n")
}

func renderDay(info Day, selected bool, opts Options) string {
	style := opts.EmptyStyle
	if info.HasEntry {
		style = opts.EntryStyle
	}
	if info.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if selected {
		style = style.Inherit(opts.CursorStyle)
	}
	return style.Render(fmt.Sprintf("%2d", info.Day))
}

func weeks(offset, days int) int {
	return (offset + days + 6) / 7
}

func daysIn(first time.Time) int {
	return first.AddDate(0, 1, -1).Day()
}
