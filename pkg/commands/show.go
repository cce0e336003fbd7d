package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dreamer/pkg/app"
	"tableflip.dev/dreamer/pkg/calendar"
	"tableflip.dev/dreamer/pkg/commands/options"
	"tableflip.dev/dreamer/pkg/datekey"
	"tableflip.dev/dreamer/pkg/runner/get"
	"tableflip.dev/dreamer/pkg/timeutil"
)

func addShow(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	mo := &options.MonthOptions{}
	since := ""

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show an entry, a month of entries, or the whole journal",
		Example: `
dreamer show --on 2024-3-10
dreamer show --month 2024-3
dreamer show --since 2w
dreamer show --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			key, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			month, err := mo.GetMonth()
			if err != nil {
				return oo.HandleError(err)
			}
			var from time.Time
			if since != "" {
				w, _, err := timeutil.ParseWindow(since)
				if err != nil {
					return oo.HandleError(err)
				}
				from = w.Since(time.Now())
			}
			svc, _, closer, err := loadService(cmd.Context(), false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer closer()

			if oo.JSON {
				return oo.HandleError(printJSON(svc, key))
			}
			g := get.Get{Service: svc, On: key, Month: month, Since: from}
			return oo.HandleError(g.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	cmd.Flags().StringVarP(&mo.MonthString, "month", "m", "", `Specify a month, example: --month="2024-3".`)
	cmd.Flags().StringVar(&since, "since", "", `List entries within a window, example: --since=2w or --since=1y6m.`)
	registerOnCompletion(cmd)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addToday(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the entry for last night",
		Long: `Show the entry the calendar's today shortcut opens. Dreams are written
the morning after, so this is yesterday's date.`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, closer, err := loadService(cmd.Context(), false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer closer()

			key := calendar.TodayKey(svc.Today().Time())
			if oo.JSON {
				return oo.HandleError(printJSON(svc, key))
			}
			g := get.Get{Service: svc, On: key}
			return oo.HandleError(g.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func printJSON(svc *app.Service, key datekey.DateKey) error {
	if key.IsZero() {
		var all []any
		for _, y := range svc.Years() {
			for m := 1; m <= 12; m++ {
				for _, e := range svc.Entries(m, y) {
					all = append(all, e)
				}
			}
		}
		return oo.Print(all)
	}
	e, ok := svc.Entry(key)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrNotFound, key)
	}
	return oo.Print(e)
}
