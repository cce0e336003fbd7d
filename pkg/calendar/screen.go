package calendar

import (
	"errors"
	"time"

	"tableflip.dev/dreamer/pkg/datekey"
	"tableflip.dev/dreamer/pkg/log"
	"tableflip.dev/dreamer/pkg/notify"
)

// State is the screen lifecycle state.
type State int

const (
	StateInactive State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "inactive"
}

// Options wires a Screen to its collaborators.
type Options[R any] struct {
	Store     EntryStore
	Navigator Navigator
	Rows      RowFactory[R]
	// Changes is optional; without it the screen refreshes only when
	// OnEntriesChanged is called directly.
	Changes *notify.Subject
	// Clock defaults to time.Now.
	Clock  func() time.Time
	Logger *log.Logger
}

// Screen binds a Mapper to an entry store, a navigator and a row factory and
// keeps its visible rows in step with the store.
type Screen[R any] struct {
	store   EntryStore
	nav     Navigator
	rows    RowFactory[R]
	changes *notify.Subject
	clock   func() time.Time
	logger  *log.Logger

	state       State
	unsubscribe func()

	mapper    Mapper
	reference time.Time

	first     int
	count     int
	visible   []R
	refreshes int
}

// NewScreen validates opts and returns an inactive screen.
func NewScreen[R any](opts Options[R]) (*Screen[R], error) {
	switch {
	case opts.Store == nil:
		return nil, errors.New("calendar: entry store required")
	case opts.Navigator == nil:
		return nil, errors.New("calendar: navigator required")
	case opts.Rows == nil:
		return nil, errors.New("calendar: row factory required")
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Screen[R]{
		store:   opts.Store,
		nav:     opts.Navigator,
		rows:    opts.Rows,
		changes: opts.Changes,
		clock:   clock,
		logger:  log.OrDiscard(opts.Logger).WithComponent("calendar"),
	}, nil
}

// Activate loads the year set and reference date and subscribes to change
// notifications. Only the first call has an effect.
func (s *Screen[R]) Activate() {
	if s.state == StateActive {
		return
	}
	s.reload()
	if s.changes != nil {
		s.unsubscribe = s.changes.Subscribe(s.OnEntriesChanged)
	}
	s.state = StateActive
	s.logger.Debug("activated", "rows", s.mapper.TotalRows(), "years", s.mapper.Years())
	s.render()
}

// Close drops the change subscription. The screen keeps answering queries
// from its last snapshot.
func (s *Screen[R]) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// State returns the lifecycle state.
func (s *Screen[R]) State() State {
	return s.state
}

// ReferenceDate is the clock reading taken at the last activation or refresh.
func (s *Screen[R]) ReferenceDate() time.Time {
	s.Activate()
	return s.reference
}

// RowCount returns the number of scrollable rows.
func (s *Screen[R]) RowCount() int {
	s.Activate()
	return s.mapper.TotalRows()
}

// Row describes the month at index at.
func (s *Screen[R]) Row(at int) (RowDescriptor, error) {
	s.Activate()
	month, year, err := s.mapper.MonthAndYear(at)
	if err != nil {
		return RowDescriptor{}, err
	}
	return RowDescriptor{Index: at, Month: month, Year: year}, nil
}

// RowFor returns the row showing key's month.
func (s *Screen[R]) RowFor(key datekey.DateKey) (int, error) {
	s.Activate()
	return s.mapper.RowFor(key.Month, key.Year)
}

// RenderRow builds the row at index at. Out of range indexes yield a
// placeholder row instead of an error.
func (s *Screen[R]) RenderRow(at int) R {
	desc, err := s.Row(at)
	if err != nil {
		s.logger.Debug("placeholder row", "index", at, "err", err)
		return s.rows.PlaceholderRow(at)
	}
	return s.rows.MonthRow(desc, s.store, s)
}

// SetVisible records which rows the host has on screen and renders them.
func (s *Screen[R]) SetVisible(first, count int) []R {
	s.Activate()
	s.first = max(first, 0)
	s.count = max(count, 0)
	s.render()
	return s.Visible()
}

// Visible returns the currently rendered rows.
func (s *Screen[R]) Visible() []R {
	return append([]R(nil), s.visible...)
}

// Refreshes counts how many full refreshes have happened since activation.
func (s *Screen[R]) Refreshes() int {
	return s.refreshes
}

// OnDateSelected opens the entry for a tapped day.
func (s *Screen[R]) OnDateSelected(day, month, year int) {
	key, err := DayMonthYear(day, month, year)
	if err != nil {
		s.logger.Warn("ignoring selection", "err", err)
		return
	}
	s.show(key)
}

// OnTodayShortcutInvoked opens today's entry with DefaultEntryDayOffset
// applied.
func (s *Screen[R]) OnTodayShortcutInvoked() {
	s.show(TodayKey(s.clock()))
}

// OnEntriesChanged re-reads the store and re-renders every visible row.
func (s *Screen[R]) OnEntriesChanged() {
	if s.state != StateActive {
		s.Activate()
		return
	}
	s.reload()
	s.refreshes++
	s.render()
	s.logger.Debug("refreshed", "rows", s.mapper.TotalRows(), "visible", len(s.visible))
}

func (s *Screen[R]) show(key datekey.DateKey) {
	s.logger.Debug("show entry", "date", key.String())
	s.nav.ShowEntry(key, s.store)
}

func (s *Screen[R]) reload() {
	s.reference = s.clock()
	s.mapper = NewMapper(s.store.Years(), int(s.reference.Month()))
}

func (s *Screen[R]) render() {
	visible := make([]R, 0, s.count)
	for i := s.first; i < s.first+s.count; i++ {
		visible = append(visible, s.RenderRow(i))
	}
	s.visible = visible
}
