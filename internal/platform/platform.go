// Package platform defines the OS collaborator interfaces the engine is
// written against: window enumeration, the accessibility-tree binding,
// synthetic input, bitmap capture, process inspection, and text recognition.
// Backends register themselves through NewProviderFunc; the engine never
// imports a backend directly.
package platform

import (
	"image"

	"github.com/automata-tools/deskagent/internal/model"
)

// WindowManager enumerates top-level windows and controls focus.
type WindowManager interface {
	// ListWindows returns every top-level OS window with cached title,
	// class name, and bounds.
	ListWindows() ([]model.Window, error)

	// Bind attaches an automation handle to the window. A bind failure is
	// transient (the window may still be launching); callers retry.
	Bind(win model.Window) error

	// Focus brings the window to the foreground.
	Focus(win model.Window) error
}

// Reader is the accessibility-tree binding: tree query plus the three
// element operations the engine needs.
type Reader interface {
	// ReadElements returns the element tree rooted at the window.
	ReadElements(win model.Window) ([]model.Element, error)

	// FocusElement gives keyboard focus to the element.
	FocusElement(win model.Window, elementID int) error

	// Invoke performs the element's default action (press).
	Invoke(win model.Window, elementID int) error

	// SetText replaces the element's content, for controls that support
	// direct value writes.
	SetText(win model.Window, elementID int, text string) error
}

// Inputter injects synthetic pointer and keyboard events.
type Inputter interface {
	MoveMouse(x, y int) error
	Click(x, y int) error
	TypeText(text string) error
	KeyTap(key string, modifiers ...string) error
}

// Screenshotter captures a region of the virtual screen.
type Screenshotter interface {
	CaptureRect(x, y, width, height int) (image.Image, error)
}

// ProcessInspector resolves process identity and network state for the
// classifier's debug-endpoint discovery.
type ProcessInspector interface {
	// ExecutableName returns the base name of the process's executable.
	ExecutableName(pid int) (string, error)

	// TreePIDs returns pid plus all its descendant process IDs.
	TreePIDs(pid int) ([]int, error)

	// ListeningPorts returns the TCP ports on which any of the given
	// processes is listening.
	ListeningPorts(pids []int) ([]int, error)
}

// Recognizer is the optical text-recognition engine. Implementations may be
// expensive to initialize; the engine creates one lazily and reuses it for
// the life of the process.
type Recognizer interface {
	// Detect runs recognition over the bitmap and returns all text hits.
	Detect(img image.Image) ([]model.Detection, error)

	// Close releases engine resources at process exit.
	Close() error
}
