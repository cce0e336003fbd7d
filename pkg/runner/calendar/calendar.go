// Package calendar prints month grids of the journal.
package calendar

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/dreamer/pkg/app"
	"tableflip.dev/dreamer/pkg/entry"
	"tableflip.dev/dreamer/pkg/printers"
)

type Calendar struct {
	Service *app.Service
	// Month to print; defaults to the current month.
	Month time.Time
	// Year prints all twelve months of the year instead of Month.
	Year int
	// Long prints one line per day with entry titles.
	Long bool

	Printer *printers.PrettyPrint
}

func (c *Calendar) Do(ctx context.Context) error {
	if c.Service == nil {
		return errors.New("can not print calendar, no service")
	}
	pp := c.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{Now: c.Service.Clock}
	}

	if c.Year != 0 {
		var all []*entry.Entry
		for m := 1; m <= 12; m++ {
			all = append(all, c.Service.Entries(m, c.Year)...)
		}
		pp.PrintYear(c.Year, all...)
		return nil
	}

	month := c.Month
	if month.IsZero() {
		month = c.Service.Today().Time()
	}
	month = time.Date(month.Year(), month.Month(), 1, 1, 0, 0, 0, time.Local)
	all := c.Service.Entries(int(month.Month()), month.Year())
	if c.Long {
		pp.Title(month.Format("January 2006"))
		pp.PrintMonthLong(month, all...)
		return nil
	}
	pp.PrintMonth(month, all...)
	return nil
}
