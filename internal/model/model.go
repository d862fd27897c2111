package model

// Window is a located top-level OS window. The handle and cached metadata
// are valid only for the invocation that found them; nothing here is
// persisted across runs.
type Window struct {
	Handle uintptr `json:"-"`
	ID     int     `json:"id"`
	PID    int     `json:"pid"`
	Title  string  `json:"title"`
	Class  string  `json:"class,omitempty"`
	App    string  `json:"app,omitempty"`
	Bounds [4]int  `json:"bounds"` // [x, y, width, height]
}

// CenterOf returns the center point of a [x, y, w, h] rectangle.
func CenterOf(b [4]int) (int, int) {
	return b[0] + b[2]/2, b[1] + b[3]/2
}

// Identity is the derived classification of a window: whether its owning
// process plausibly exposes a structured-document debug endpoint, and the
// endpoint if one was discovered. Computed once per invocation, never mutated.
type Identity struct {
	HighFidelity bool
	DebugHost    string
	DebugPort    int
}

// HasEndpoint reports whether a live debug endpoint was discovered.
func (id Identity) HasEndpoint() bool {
	return id.DebugPort > 0
}

// ActionKind is the kind of action an intent requests.
type ActionKind string

const (
	ActionClick ActionKind = "click"
	ActionType  ActionKind = "type"
)

// Intent is one resolved automation request, constructed from command-line
// input and immutable afterwards.
type Intent struct {
	App     string
	Element string
	Kind    ActionKind
	Text    string
}

// ActionResult is the single record a routed action returns: either success
// with the strategy tag of the tier/sub-path that satisfied the request, or
// failure with an error message. Never partially filled.
type ActionResult struct {
	Success  bool   `json:"success"`
	Strategy string `json:"strategy,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Okay builds a successful result tagged with the winning strategy.
func Okay(strategy string) ActionResult {
	return ActionResult{Success: true, Strategy: strategy}
}

// Failed builds a failed result carrying the error message.
func Failed(msg string) ActionResult {
	return ActionResult{Success: false, Error: msg}
}
