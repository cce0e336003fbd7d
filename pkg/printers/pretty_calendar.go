package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dreamer/pkg/entry"
)

const width = len("11 12 13 14 15 16 17") // an example week

const weekdays = "Su Mo Tu We Th Fr Sa"

// PrintMonth prints the month grid for then, with days holding an entry in
// bold and today underlined.
func (pp *PrettyPrint) PrintMonth(then time.Time, entries ...*entry.Entry) {
	days := DaysIn(then)

	count := make([]int, days)
	for _, e := range entries {
		if e.Date.Year == then.Year() && e.Date.Month == int(then.Month()) && e.Date.Day <= days {
			count[e.Date.Day-1]++
		}
	}

	pp.PrintMonthCount(then, count)
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	out := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(out, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", max(width-mid-len(m), 0)))
	_, _ = color.New(color.Faint).Fprintln(out, weekdays)

	// Pad out the start of the month.
	_, _ = fmt.Fprint(out, strings.Repeat("   ", int(d)))

	now := pp.now()
	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	days := DaysIn(then)
	for i := 0; i < days; i++ {
		printer := l1
		if i < len(count) && count[i] > 0 {
			printer = l2
		}
		if now.Year() == then.Year() && now.Month() == then.Month() && now.Day() == i+1 {
			printer = color.New(color.Underline)
			if i < len(count) && count[i] > 0 {
				printer.Add(color.Bold)
			}
		}
		_, _ = printer.Fprintf(out, "%2d", i+1)

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(out, "\n")
		} else if i < days-1 {
			_, _ = fmt.Fprint(out, " ")
		}
	}
	_, _ = fmt.Fprint(out, "\n\n")
}

// PrintMonthLong prints one line per day of the month, followed by the title
// of that day's entry.
func (pp *PrettyPrint) PrintMonthLong(then time.Time, entries ...*entry.Entry) {
	out := pp.out()
	p := color.New()
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	bs := color.New(color.Underline, color.Bold)

	byDay := make(map[int]*entry.Entry, len(entries))
	for _, e := range entries {
		if e.Date.Year == then.Year() && e.Date.Month == int(then.Month()) {
			byDay[e.Date.Day] = e
		}
	}

	now := pp.now()
	d := StartDay(then)
	for i := 1; i <= DaysIn(then); i++ {
		today := now.Year() == then.Year() && now.Month() == then.Month() && now.Day() == i
		printer := p
		switch {
		case d == time.Sunday && today:
			printer = bs
		case d == time.Sunday:
			printer = s
		case today:
			printer = b
		}
		_, _ = printer.Fprintf(out, "%2d %s", i, d.String()[0:1])

		if e, ok := byDay[i]; ok {
			_, _ = p.Fprintf(out, "  %s", e.Title())
		}
		_, _ = fmt.Fprintln(out, "")

		d++
		if d > time.Saturday {
			d = time.Sunday
		}
	}
	pp.NewLine()
}

// PrintYear prints the twelve month grids of year.
func (pp *PrettyPrint) PrintYear(year int, entries ...*entry.Entry) {
	then := time.Date(year, time.January, 1, 1, 0, 0, 0, time.Local)
	for i := 0; i < 12; i++ {
		pp.PrintMonth(then, entries...)
		then = NextMonth(then)
	}
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
