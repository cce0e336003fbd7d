// Package datekey identifies the calendar slot a journal entry belongs to.
package datekey

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidComponents is returned when a day or month is not positive.
var ErrInvalidComponents = errors.New("datekey: invalid date components")

const layoutISO = "2006-01-02"

// DateKey is the (day, month, year) identity of a single calendar slot.
type DateKey struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// New builds a DateKey. Only positivity of day and month is checked here;
// whether the day exists in the month is left to Valid.
func New(day, month, year int) (DateKey, error) {
	if day < 1 || month < 1 {
		return DateKey{}, fmt.Errorf("%w: day=%d month=%d", ErrInvalidComponents, day, month)
	}
	return DateKey{Day: day, Month: month, Year: year}, nil
}

// FromTime returns the key for the local calendar day of t.
func FromTime(t time.Time) DateKey {
	return DateKey{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// Parse reads a key formatted as YYYY-MM-DD.
func Parse(v string) (DateKey, error) {
	t, err := time.ParseInLocation(layoutISO, v, time.Local)
	if err != nil {
		return DateKey{}, fmt.Errorf("datekey: parse %q: %w", v, err)
	}
	return FromTime(t), nil
}

// Time returns midnight local time for the key. Out of range components are
// normalized by time.Date.
func (k DateKey) Time() time.Time {
	return time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, time.Local)
}

// Valid reports whether the key names a real calendar day.
func (k DateKey) Valid() bool {
	if k.Day < 1 || k.Month < 1 || k.Month > 12 {
		return false
	}
	return FromTime(k.Time()) == k
}

// IsZero reports whether k is the zero value.
func (k DateKey) IsZero() bool {
	return k == DateKey{}
}

func (k DateKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, k.Month, k.Day)
}

// Before orders keys chronologically.
func (k DateKey) Before(o DateKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	if k.Month != o.Month {
		return k.Month < o.Month
	}
	return k.Day < o.Day
}
