package cmd

import (
	"fmt"
	"time"

	"github.com/automata-tools/deskagent/internal/output"
	"github.com/spf13/cobra"
)

var focusWindowCmd = &cobra.Command{
	Use:   "focus_window <app>",
	Short: "Bring an application window to the foreground",
	Args:  cobra.ExactArgs(1),
	RunE:  runFocusWindow,
}

func init() {
	rootCmd.AddCommand(focusWindowCmd)
}

func runFocusWindow(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	win, _, err := s.resolveWindow(cmd.Context(), args[0], defaultLocateTimeout)
	if err != nil {
		return err
	}
	if s.provider.WindowManager == nil {
		return fmt.Errorf("window management not available on this platform")
	}
	if err := s.provider.WindowManager.Focus(win); err != nil {
		return fmt.Errorf("focus %q: %w", win.Title, err)
	}
	time.Sleep(s.cfg.FocusSettle.Duration)

	return emit(cmd, output.OK("focused window %q", win.Title).WithWindow(win))
}
