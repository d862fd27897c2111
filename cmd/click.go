package cmd

import (
	"errors"

	"github.com/automata-tools/deskagent/internal/engine"
	"github.com/automata-tools/deskagent/internal/model"
	"github.com/automata-tools/deskagent/internal/output"
	"github.com/spf13/cobra"
)

var clickCmd = &cobra.Command{
	Use:   "click <app> <element>",
	Short: "Click a named element, trying each strategy in order",
	Args:  cobra.ExactArgs(2),
	RunE:  runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
}

func runClick(cmd *cobra.Command, args []string) error {
	return runAction(cmd, model.Intent{
		App:     args[0],
		Element: args[1],
		Kind:    model.ActionClick,
	})
}

// runAction resolves the window and routes one intent through the
// strategy chain. Shared by click and type.
func runAction(cmd *cobra.Command, intent model.Intent) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	win, id, err := s.resolveWindow(cmd.Context(), intent.App, defaultLocateTimeout)
	if err != nil {
		return err
	}

	router := engine.NewRouter(s.provider, s.cfg, s.log)
	defer s.provider.CloseRecognizer()

	result := router.Route(cmd.Context(), engine.Request{
		Win:      win,
		Identity: id,
		Intent:   intent,
	})
	if !result.Success {
		return errors.New(result.Error)
	}

	rec := output.OK("%s %q in %q", pastTense(intent.Kind), intent.Element, intent.App).WithWindow(win)
	rec.Strategy = result.Strategy
	return emit(cmd, rec)
}

func pastTense(kind model.ActionKind) string {
	switch kind {
	case model.ActionClick:
		return "clicked"
	case model.ActionType:
		return "typed into"
	}
	return string(kind)
}
