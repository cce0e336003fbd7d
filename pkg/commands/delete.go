package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/dreamer/pkg/commands/options"
	"tableflip.dev/dreamer/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	yo := &options.YesOptions{}

	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete the entry for a date",
		Example: `
dreamer delete --on 2024-3-10
dreamer delete --on yesterday --yes
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			key, err := on.RequireOn()
			if err != nil {
				return oo.HandleError(err)
			}
			confirm, err := yo.Confirmer(os.Stdin)
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, closer, err := loadService(cmd.Context(), false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer closer()

			r := remove.Remove{Service: svc, On: key, Confirm: confirm}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddYesArgs(cmd, yo)
	registerOnCompletion(cmd)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
