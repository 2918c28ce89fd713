package game

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// Control is one of the four movement inputs.
type Control int

const (
	LeftUp Control = iota
	LeftDown
	RightUp
	RightDown
)

func (c Control) String() string {
	switch c {
	case LeftUp:
		return "left-up"
	case LeftDown:
		return "left-down"
	case RightUp:
		return "right-up"
	case RightDown:
		return "right-down"
	default:
		return fmt.Sprintf("Control(%d)", int(c))
	}
}

// Key is a platform key code. The game only compares keys for equality.
type Key int

// Bindings maps key codes to controls.
type Bindings struct {
	keys *intmap.Map[Key, Control]
}

func NewBindings() *Bindings {
	return &Bindings{keys: intmap.New[Key, Control](8)}
}

// Bind maps key to control, replacing any earlier binding for key.
func (b *Bindings) Bind(key Key, control Control) *Bindings {
	b.keys.Put(key, control)
	return b
}

// Lookup returns the control bound to key.
func (b *Bindings) Lookup(key Key) (Control, bool) {
	return b.keys.Get(key)
}

func (b *Bindings) Len() int {
	return b.keys.Len()
}

// Controls holds which movement inputs are held down.
type Controls struct {
	held [4]bool
}

func (c *Controls) Set(control Control, down bool) {
	if control >= 0 && int(control) < len(c.held) {
		c.held[control] = down
	}
}

func (c Controls) Held(control Control) bool {
	return control >= 0 && int(control) < len(c.held) && c.held[control]
}

// Direction returns -1 (up), +1 (down) or 0 for the side's paddle. Up wins
// when both keys are held.
func (c Controls) Direction(up, down Control) float64 {
	switch {
	case c.Held(up):
		return -1
	case c.Held(down):
		return 1
	default:
		return 0
	}
}
