package model

// Element is one node of an application's accessibility tree.
type Element struct {
	ID       int       `json:"i"`
	Role     string    `json:"r"`
	Title    string    `json:"t,omitempty"`
	AutoID   string    `json:"a,omitempty"`
	Value    string    `json:"v,omitempty"`
	Bounds   [4]int    `json:"b"` // [x, y, width, height]
	Focused  bool      `json:"f,omitempty"`
	Children []Element `json:"c,omitempty"`
}

// Flatten returns the tree as a preorder slice.
func Flatten(elements []Element) []Element {
	var out []Element
	var walk func([]Element)
	walk = func(els []Element) {
		for _, el := range els {
			children := el.Children
			el.Children = nil
			out = append(out, el)
			walk(children)
		}
	}
	walk(elements)
	return out
}
