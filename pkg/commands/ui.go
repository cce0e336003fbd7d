package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/dreamer/pkg/commands/options"
	"tableflip.dev/dreamer/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	watch := true

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based calendar",
		Example: `
dreamer ui
dreamer ui --watch=false
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if !options.IsTerminal(os.Stdout) {
				return errors.New("ui requires a terminal")
			}
			svc, logger, closer, err := loadService(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closer()
			i := ui.UI{Service: svc, Logger: logger, Watch: watch}
			return i.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", true, "Reload when entries change on disk.")
	topLevel.AddCommand(cmd)
}
