package cmd

import (
	"github.com/automata-tools/deskagent/internal/model"
	"github.com/spf13/cobra"
)

var typeCmd = &cobra.Command{
	Use:   "type <app> <element> <text>",
	Short: "Type text into a named element",
	Long: "Resolve the element and deposit text into it. Brace tokens like {ENTER},\n" +
		"{TAB}, {ESC} and {BACKSPACE} are sent as key presses, not literal text.",
	Args: cobra.ExactArgs(3),
	RunE: runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
}

func runType(cmd *cobra.Command, args []string) error {
	return runAction(cmd, model.Intent{
		App:     args[0],
		Element: args[1],
		Kind:    model.ActionType,
		Text:    args[2],
	})
}
