// Package calendar maps the scrolling month list to dates and drives the
// calendar screen: row counts, row descriptors, date selection and refresh on
// entry changes.
package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"tableflip.dev/dreamer/pkg/datekey"
)

// ErrIndexOutOfRange is returned for row queries outside [0, TotalRows).
var ErrIndexOutOfRange = errors.New("calendar: row index out of range")

// DefaultEntryDayOffset is added to today's day of month by the "jump to
// today" shortcut. Taps on calendar cells never apply it.
const DefaultEntryDayOffset = -1

const monthsPerYear = 12

// TotalRows is the number of month rows for yearsCount tracked years when the
// final year is shown only up to referenceMonth (1-12). No years means no
// rows. A reference month outside 1-12 is clamped into range.
func TotalRows(yearsCount, referenceMonth int) int {
	if yearsCount <= 0 {
		return 0
	}
	referenceMonth = min(max(referenceMonth, 1), monthsPerYear)
	return yearsCount*monthsPerYear - (monthsPerYear - referenceMonth)
}

// Mapper translates between row indexes and (month, year) pairs for an
// ascending set of years.
type Mapper struct {
	years          []int
	referenceMonth int
}

// NewMapper sorts and dedupes years. The caller's slice is not modified.
func NewMapper(years []int, referenceMonth int) Mapper {
	sorted := append([]int(nil), years...)
	sort.Ints(sorted)
	uniq := sorted[:0]
	for _, y := range sorted {
		if len(uniq) == 0 || y != uniq[len(uniq)-1] {
			uniq = append(uniq, y)
		}
	}
	return Mapper{years: uniq, referenceMonth: referenceMonth}
}

// Years returns the ascending years the mapper covers.
func (m Mapper) Years() []int {
	return append([]int(nil), m.years...)
}

// TotalRows returns the number of rows the mapper can address.
func (m Mapper) TotalRows() int {
	return TotalRows(len(m.years), m.referenceMonth)
}

// MonthAndYear returns the 1-based month and the year shown at row.
func (m Mapper) MonthAndYear(row int) (month, year int, err error) {
	if row < 0 || row >= m.TotalRows() {
		return 0, 0, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, row, m.TotalRows())
	}
	return row%monthsPerYear + 1, m.years[row/monthsPerYear], nil
}

// RowFor is the inverse of MonthAndYear.
func (m Mapper) RowFor(month, year int) (int, error) {
	block := sort.SearchInts(m.years, year)
	if block == len(m.years) || m.years[block] != year || month < 1 || month > monthsPerYear {
		return 0, fmt.Errorf("%w: %04d-%02d is not displayed", ErrIndexOutOfRange, year, month)
	}
	row := block*monthsPerYear + month - 1
	if row >= m.TotalRows() {
		return 0, fmt.Errorf("%w: %04d-%02d is after the reference month", ErrIndexOutOfRange, year, month)
	}
	return row, nil
}

// MonthAndYear maps row against an ascending years sequence whose final year
// is shown up to referenceMonth.
func MonthAndYear(row int, years []int, referenceMonth int) (month, year int, err error) {
	return NewMapper(years, referenceMonth).MonthAndYear(row)
}

// DayMonthYear builds the key for a selected day.
func DayMonthYear(day, month, year int) (datekey.DateKey, error) {
	return datekey.New(day, month, year)
}

// TodayKey is the key the "jump to today" shortcut opens: now shifted by
// DefaultEntryDayOffset days. On the first of a month this lands on the last
// day of the previous month rather than on day zero.
func TodayKey(now time.Time) datekey.DateKey {
	return datekey.FromTime(now.AddDate(0, 0, DefaultEntryDayOffset))
}
