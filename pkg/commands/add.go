package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dreamer/pkg/commands/options"
	"tableflip.dev/dreamer/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	appendText := false
	var text string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write the entry for a date",
		Example: `
dreamer add --on yesterday walking through a house with no doors
dreamer add --on 2024-3-10 --append and then the sea
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires entry text")
			}
			text = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, closer, err := loadService(cmd.Context(), false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer closer()
			if key.IsZero() {
				key = svc.Today()
			}

			a := add.Add{
				Service: svc,
				On:      key,
				Text:    text,
				Append:  appendText,
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	cmd.Flags().BoolVarP(&appendText, "append", "a", false, "Append to the existing entry instead of replacing it.")
	registerOnCompletion(cmd)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
