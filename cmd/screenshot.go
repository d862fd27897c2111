package cmd

import (
	"fmt"
	"image/png"
	"os"

	"github.com/automata-tools/deskagent/internal/output"
	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot <app>",
	Short: "Capture the application window as a PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("output", "screenshot.png", "Output file path")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if s.provider.Screenshotter == nil {
		return fmt.Errorf("screen capture not available on this platform")
	}

	win, _, err := s.resolveWindow(cmd.Context(), args[0], defaultLocateTimeout)
	if err != nil {
		return err
	}

	w, h := win.Bounds[2], win.Bounds[3]
	if w > s.cfg.CaptureMaxWidth {
		w = s.cfg.CaptureMaxWidth
	}
	if h > s.cfg.CaptureMaxHeight {
		h = s.cfg.CaptureMaxHeight
	}
	img, err := s.provider.Screenshotter.CaptureRect(win.Bounds[0], win.Bounds[1], w, h)
	if err != nil {
		return fmt.Errorf("capture %q: %w", win.Title, err)
	}

	path, _ := cmd.Flags().GetString("output")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	rec := output.OK("captured %q (%dx%d)", win.Title, w, h).WithWindow(win)
	rec.Path = path
	return emit(cmd, rec)
}
