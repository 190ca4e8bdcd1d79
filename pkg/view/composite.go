package view

import (
	"fmt"
	"strings"
)

// Composite is a complete snapshot of the current view. Restoring one must
// reproduce the prior state exactly, so every axis is carried even when the
// section does not render it.
type Composite struct {
	Section   Section
	Selection Selection
	Search    string
}

// Home is the composite a session starts in.
func Home() Composite {
	return Composite{Section: SectionHome}
}

// Selected returns the identifier on axis a.
func (c Composite) Selected(a Axis) string {
	return c.Selection.Get(a)
}

// Detail returns the first owned axis of the section that holds a selection.
// ok is false when the section is showing its list view.
func (c Composite) Detail() (axis Axis, id string, ok bool) {
	for _, a := range OwnedAxes(c.Section) {
		if a == AxisTab {
			continue
		}
		if v := c.Selection.Get(a); v != "" {
			return a, v, true
		}
	}
	return -1, "", false
}

// String renders the composite for logs, e.g.
// `solutions solution=42 search="crm"`.
func (c Composite) String() string {
	b := strings.Builder{}
	b.WriteString(string(c.Section))
	for _, a := range c.Selection.Active() {
		fmt.Fprintf(&b, " %s=%s", a, c.Selection.Get(a))
	}
	if c.Search != "" {
		fmt.Fprintf(&b, " search=%q", c.Search)
	}
	return b.String()
}
