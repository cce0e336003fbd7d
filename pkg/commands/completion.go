package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(dreamer completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(dreamer completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func registerOnCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("on", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return dateCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// dateCompletions offers the dates that hold an entry.
func dateCompletions(toComplete string) []string {
	svc, _, closer, err := loadService(context.Background(), true)
	if err != nil {
		return nil
	}
	defer closer()

	out := []string{"today", "yesterday"}
	for _, y := range svc.Years() {
		for m := 1; m <= 12; m++ {
			for _, e := range svc.Entries(m, y) {
				out = append(out, e.Date.String())
			}
		}
	}
	filtered := out[:0]
	for _, c := range out {
		if strings.HasPrefix(c, toComplete) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
