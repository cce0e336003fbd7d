package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const layoutMonth = "2006-1"

// MonthOptions selects a month, or a whole year.
type MonthOptions struct {
	MonthString string
	Year        int
	Long        bool
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVarP(&o.MonthString, "month", "m", "",
		`Specify a month, example: --month="2024-3".`)
	cmd.Flags().IntVarP(&o.Year, "year", "y", 0,
		"Show every month of a year.")
	cmd.Flags().BoolVarP(&o.Long, "long", "l", false,
		"One line per day with entry titles.")
}

// GetMonth parses the month flag. An empty flag yields the zero time.
func (o *MonthOptions) GetMonth() (time.Time, error) {
	if o.MonthString == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(layoutMonth, o.MonthString, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, want YYYY-M", o.MonthString)
	}
	return t, nil
}
