package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/dreamer/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "dreamer",
		Short: base.Wrap80("A dream journal with a scrolling calendar, on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addCalendar(topLevel)
	addAdd(topLevel)
	addShow(topLevel)
	addToday(topLevel)
	addDelete(topLevel)
	addYears(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
