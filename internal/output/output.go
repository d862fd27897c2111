package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/automata-tools/deskagent/internal/model"
)

// Record is the single JSON object every command writes to stdout. Exactly
// one of Message or Error is set, matching Success.
type Record struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Error    string           `json:"error,omitempty"`
	Strategy string           `json:"strategy,omitempty"`
	Window   string           `json:"window,omitempty"`
	PID      int              `json:"pid,omitempty"`
	Electron bool             `json:"electron,omitempty"`
	CDPPort  int              `json:"cdp_port,omitempty"`
	Found    *bool            `json:"found,omitempty"`
	Path     string           `json:"path,omitempty"`
	Elements []ElementSummary `json:"elements,omitempty"`
}

// ElementSummary is one entry of the list_elements output: a compact
// title/control-type/identifier triple.
type ElementSummary struct {
	Title       string `json:"title"`
	ControlType string `json:"control_type"`
	AutoID      string `json:"auto_id"`
}

// OK builds a success record with a formatted message.
func OK(format string, args ...interface{}) Record {
	return Record{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Fail builds a failure record carrying the error text.
func Fail(err error) Record {
	return Record{Success: false, Error: err.Error()}
}

// WithWindow annotates the record with the resolved window.
func (r Record) WithWindow(win model.Window) Record {
	r.Window = win.Title
	r.PID = win.PID
	return r
}

// WithIdentity annotates the record with the window's classification.
func (r Record) WithIdentity(id model.Identity) Record {
	r.Electron = id.HighFidelity
	if id.HasEndpoint() {
		r.CDPPort = id.DebugPort
	}
	return r
}

// ExitCode maps the record to the process exit status.
func (r Record) ExitCode() int {
	if r.Success {
		return 0
	}
	return 1
}

// PrintJSON serializes v to stdout as JSON.
// If pretty is true, uses indentation; otherwise single-line.
func PrintJSON(v interface{}, pretty bool) error {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// Bool returns a pointer for the optional found field.
func Bool(v bool) *bool { return &v }
