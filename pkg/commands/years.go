package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dreamer/pkg/runner/get"
)

func addYears(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "years",
		Short: "List the years the calendar spans",
		Example: `
dreamer years
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, closer, err := loadService(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closer()
			y := get.Years{Service: svc}
			return y.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
