// Package printers writes journal entries and calendars to a terminal.
package printers

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/dreamer/pkg/entry"
)

const (
	layoutDate    = "Monday, January 2, 2006"
	layoutUpdated = "Jan 2 15:04"
	defaultWidth  = 80
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Width wraps entry text; defaults to 80 columns.
	Width int
	// Now marks today in calendars; defaults to time.Now.
	Now func() time.Time
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now == nil {
		return time.Now()
	}
	return pp.Now()
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return defaultWidth
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entry prints one entry in full, wrapped to the configured width.
func (pp *PrettyPrint) Entry(e *entry.Entry) {
	if e == nil {
		pp.None()
		return
	}
	pp.Title(e.Date.Time().Format(layoutDate))
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(e.Text, pp.width()))

	f := color.New(color.Faint, color.Italic)
	if updated := e.Updated(); !updated.IsZero() && !updated.Equal(e.Created.Time) {
		_, _ = f.Fprintf(pp.out(), "edited %s\n", updated.Local().Format(layoutUpdated))
	}
	pp.NewLine()
}

// Entries prints a one-line-per-entry table.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		pp.None()
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(max(pp.width()-len("2006-01-02  Jan 2 15:04  "), 10))
	tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Entry"), bold.Sprint("Updated"))
	for _, e := range entries {
		tbl.AddRow(e.Date.String(), e.Title(), faint.Sprint(e.Updated().Local().Format(layoutUpdated)))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Years prints the years holding entries with their counts.
func (pp *PrettyPrint) Years(years []int, counts map[int]int) {
	if len(years) == 0 {
		pp.None()
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Year"), bold.Sprint("Entries"))
	for _, y := range years {
		tbl.AddRow(y, counts[y])
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func (pp *PrettyPrint) None() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}
