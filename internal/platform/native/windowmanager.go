//go:build cgo

package native

import (
	"fmt"

	"github.com/go-vgo/robotgo"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/automata-tools/deskagent/internal/model"
)

// WindowManager enumerates and foregrounds top-level windows through
// robotgo's process-window bridge. Window class names are not exposed by
// robotgo, so App carries the process name and Class stays empty.
type WindowManager struct{}

// NewWindowManager returns the robotgo-backed window manager.
func NewWindowManager() *WindowManager {
	return &WindowManager{}
}

func (w *WindowManager) ListWindows() ([]model.Window, error) {
	procs, err := robotgo.Process()
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}

	var windows []model.Window
	for _, p := range procs {
		title := robotgo.GetTitle(p.Pid)
		if title == "" {
			continue
		}
		x, y, width, height := robotgo.GetBounds(p.Pid)
		if width == 0 || height == 0 {
			continue
		}
		windows = append(windows, model.Window{
			Handle: uintptr(p.Pid),
			ID:     p.Pid,
			PID:    p.Pid,
			Title:  title,
			App:    p.Name,
			Bounds: [4]int{x, y, width, height},
		})
	}
	return windows, nil
}

// Bind confirms the window's process is still alive. A window that
// vanished between enumeration and binding fails here, which makes the
// locator re-enumerate.
func (w *WindowManager) Bind(win model.Window) error {
	alive, err := process.PidExists(int32(win.PID))
	if err != nil {
		return fmt.Errorf("check pid %d: %w", win.PID, err)
	}
	if !alive {
		return fmt.Errorf("window process %d exited", win.PID)
	}
	return nil
}

func (w *WindowManager) Focus(win model.Window) error {
	if err := robotgo.ActivePid(win.PID); err != nil {
		return fmt.Errorf("activate pid %d: %w", win.PID, err)
	}
	return nil
}
