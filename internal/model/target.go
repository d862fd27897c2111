package model

// TargetKind discriminates the shapes an ActionTarget can take. Each tier
// resolves an element to exactly one of these; a target is never two shapes
// at once.
type TargetKind int

const (
	// TargetSelector is a structured-document query string.
	TargetSelector TargetKind = iota
	// TargetNode is an accessibility-tree element reference.
	TargetNode
	// TargetShortcut is a key combination from the shortcut tables.
	TargetShortcut
	// TargetPoint is an absolute screen coordinate.
	TargetPoint
)

func (k TargetKind) String() string {
	switch k {
	case TargetSelector:
		return "selector"
	case TargetNode:
		return "node"
	case TargetShortcut:
		return "shortcut"
	case TargetPoint:
		return "point"
	}
	return "unknown"
}

// ActionTarget is a tagged variant identifying where an action should land.
// Only the fields of the active Kind are meaningful.
type ActionTarget struct {
	Kind TargetKind

	Selector string   // TargetSelector
	NodeID   int      // TargetNode
	Keys     []string // TargetShortcut
	X, Y     int      // TargetPoint
}

// SelectorTarget wraps a query string.
func SelectorTarget(query string) ActionTarget {
	return ActionTarget{Kind: TargetSelector, Selector: query}
}

// NodeTarget wraps an accessibility node reference.
func NodeTarget(id int) ActionTarget {
	return ActionTarget{Kind: TargetNode, NodeID: id}
}

// ShortcutTarget wraps a key combination.
func ShortcutTarget(keys []string) ActionTarget {
	return ActionTarget{Kind: TargetShortcut, Keys: keys}
}

// PointTarget wraps an absolute screen coordinate.
func PointTarget(x, y int) ActionTarget {
	return ActionTarget{Kind: TargetPoint, X: x, Y: y}
}
