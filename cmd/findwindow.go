package cmd

import (
	"time"

	"github.com/automata-tools/deskagent/internal/output"
	"github.com/spf13/cobra"
)

var findWindowCmd = &cobra.Command{
	Use:   "find_window <app>",
	Short: "Locate an application window by fuzzy name match",
	Long: "Poll the window list until one matches the app name (fuzzy, above the\n" +
		"window threshold) and report its identity, including whether a\n" +
		"structured-document debug endpoint was discovered.",
	Args: cobra.ExactArgs(1),
	RunE: runFindWindow,
}

func init() {
	rootCmd.AddCommand(findWindowCmd)
	findWindowCmd.Flags().Float64("timeout", defaultLocateTimeout.Seconds(), "Seconds to poll for the window (0 fails immediately)")
}

func runFindWindow(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	seconds, _ := cmd.Flags().GetFloat64("timeout")
	timeout := time.Duration(seconds * float64(time.Second))

	win, id, err := s.resolveWindow(cmd.Context(), args[0], timeout)
	if err != nil {
		return err
	}

	rec := output.OK("found window %q (pid %d)", win.Title, win.PID).
		WithWindow(win).
		WithIdentity(id)
	return emit(cmd, rec)
}
