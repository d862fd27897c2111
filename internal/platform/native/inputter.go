//go:build cgo

package native

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// Inputter injects pointer and keyboard events through robotgo.
type Inputter struct{}

// NewInputter returns the robotgo-backed input driver.
func NewInputter() *Inputter {
	return &Inputter{}
}

func (i *Inputter) MoveMouse(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (i *Inputter) Click(x, y int) error {
	robotgo.Move(x, y)
	robotgo.Click("left", false)
	return nil
}

func (i *Inputter) TypeText(text string) error {
	robotgo.TypeStr(text)
	return nil
}

func (i *Inputter) KeyTap(key string, modifiers ...string) error {
	args := make([]interface{}, len(modifiers))
	for n, m := range modifiers {
		args[n] = m
	}
	if err := robotgo.KeyTap(key, args...); err != nil {
		return fmt.Errorf("key tap %q: %w", key, err)
	}
	return nil
}
