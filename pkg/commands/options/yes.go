package options

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// YesOptions skips confirmation prompts.
type YesOptions struct {
	Yes bool
}

func AddYesArgs(cmd *cobra.Command, o *YesOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Do not ask for confirmation.")
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Confirmer returns the prompt to ask before a destructive action: nil when
// --yes was given, an error when there is no terminal to ask on.
func (o *YesOptions) Confirmer(in *os.File) (func(string) bool, error) {
	if o.Yes {
		return nil, nil
	}
	if in == nil || !IsTerminal(in) {
		return nil, fmt.Errorf("not a terminal, pass --yes to confirm")
	}
	return Confirm, nil
}

// Confirm asks a yes/no question on the terminal, defaulting to no.
func Confirm(question string) bool {
	templates := &promptui.PromptTemplates{
		Confirm: "{{ . | bold }} [y/N] ",
		Success: "{{ . | faint }} ",
	}
	prompt := promptui.Prompt{
		Label:     question,
		IsConfirm: true,
		Templates: templates,
	}
	_, err := prompt.Run()
	return err == nil
}
