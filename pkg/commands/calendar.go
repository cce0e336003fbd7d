package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dreamer/pkg/commands/options"
	"tableflip.dev/dreamer/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Print a month of the journal",
		Example: `
dreamer calendar
dreamer calendar --month 2024-3 --long
dreamer calendar --year 2023
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			month, err := mo.GetMonth()
			if err != nil {
				return err
			}
			svc, _, closer, err := loadService(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closer()

			c := calendar.Calendar{
				Service: svc,
				Month:   month,
				Year:    mo.Year,
				Long:    mo.Long,
			}
			return c.Do(cmd.Context())
		},
	}

	options.AddMonthArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}
