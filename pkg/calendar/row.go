package calendar

import (
	"tableflip.dev/dreamer/pkg/datekey"
	"tableflip.dev/dreamer/pkg/entry"
)

// RowKind distinguishes the rows a RowFactory can build.
type RowKind int

const (
	// RowMonth is a rendered month grid.
	RowMonth RowKind = iota
	// RowPlaceholder stands in for a row that could not be resolved.
	RowPlaceholder
)

func (k RowKind) String() string {
	switch k {
	case RowMonth:
		return "month"
	case RowPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// RowDescriptor identifies the month a row shows.
type RowDescriptor struct {
	Index int
	Month int
	Year  int
}

// EntryStore is the data source behind the calendar.
type EntryStore interface {
	Years() []int
	Entry(key datekey.DateKey) (*entry.Entry, bool)
	Update(e *entry.Entry, key datekey.DateKey) error
}

// Navigator opens the detail view for a selected date.
type Navigator interface {
	ShowEntry(key datekey.DateKey, store EntryStore)
}

// Selector receives day selections from rendered rows. Rows hold a Selector
// but do not own it; the screen owns its rows while they are visible.
type Selector interface {
	OnDateSelected(day, month, year int)
}

// RowFactory builds typed rows for the screen, one constructor per RowKind.
type RowFactory[R any] interface {
	MonthRow(desc RowDescriptor, store EntryStore, sel Selector) R
	PlaceholderRow(index int) R
}
