// Package get prints journal entries.
package get

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/dreamer/pkg/app"
	"tableflip.dev/dreamer/pkg/datekey"
	"tableflip.dev/dreamer/pkg/entry"
	"tableflip.dev/dreamer/pkg/printers"
)

// Get prints the entry On a date, or lists the entries of Month, or those
// dated on or after Since, or every entry when none is set.
type Get struct {
	Service *app.Service
	On      datekey.DateKey
	Month   time.Time
	Since   time.Time

	Printer *printers.PrettyPrint
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	pp := printerFor(n.Printer, n.Service)

	switch {
	case !n.On.IsZero():
		e, ok := n.Service.Entry(n.On)
		if !ok {
			return fmt.Errorf("%w: %s", app.ErrNotFound, n.On)
		}
		pp.Entry(e)
	case !n.Month.IsZero():
		all := n.Service.Entries(int(n.Month.Month()), n.Month.Year())
		pp.TitleWithCount(n.Month.Format("January 2006"), len(all))
		pp.Entries(all...)
	case !n.Since.IsZero():
		from := datekey.FromTime(n.Since)
		var recent []*entry.Entry
		for _, e := range n.all() {
			if !e.Date.Before(from) {
				recent = append(recent, e)
			}
		}
		pp.TitleWithCount("Since "+n.Since.Format("January 2, 2006"), len(recent))
		pp.Entries(recent...)
	default:
		all := n.all()
		pp.TitleWithCount("Journal", len(all))
		pp.Entries(all...)
	}
	return nil
}

// all returns every entry, oldest first.
func (n *Get) all() []*entry.Entry {
	var all []*entry.Entry
	for _, y := range n.Service.Years() {
		for m := 1; m <= 12; m++ {
			all = append(all, n.Service.Entries(m, y)...)
		}
	}
	return all
}

// Years prints each year the calendar spans with its entry count.
type Years struct {
	Service *app.Service

	Printer *printers.PrettyPrint
}

func (n *Years) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list years, no service")
	}
	years := n.Service.Years()
	counts := make(map[int]int, len(years))
	for _, y := range years {
		for m := 1; m <= 12; m++ {
			counts[y] += len(n.Service.Entries(m, y))
		}
	}
	printerFor(n.Printer, n.Service).Years(years, counts)
	return nil
}

func printerFor(pp *printers.PrettyPrint, svc *app.Service) *printers.PrettyPrint {
	if pp != nil {
		return pp
	}
	return &printers.PrettyPrint{Now: svc.Clock}
}
