package cmd

import (
	"fmt"
	"time"

	"github.com/automata-tools/deskagent/internal/engine"
	"github.com/automata-tools/deskagent/internal/output"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <app> <text>",
	Short: "Check that text is visible in the window via OCR",
	Long: "Poll screen captures of the window until the text is recognized or the\n" +
		"timeout lapses. Read-only: injects no input.",
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().Float64("timeout", 3, "Seconds to keep polling for the text")
}

func runVerify(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	win, _, err := s.resolveWindow(cmd.Context(), args[0], defaultLocateTimeout)
	if err != nil {
		return err
	}

	seconds, _ := cmd.Flags().GetFloat64("timeout")
	v := engine.NewVerifier(s.provider, s.cfg, s.log)
	defer s.provider.CloseRecognizer()

	found := v.Verify(cmd.Context(), win, args[1], time.Duration(seconds*float64(time.Second)))
	if !found {
		return fmt.Errorf("text %q not visible in %q within %gs", args[1], win.Title, seconds)
	}

	rec := output.OK("text %q visible in %q", args[1], win.Title).WithWindow(win)
	rec.Found = output.Bool(true)
	return emit(cmd, rec)
}
