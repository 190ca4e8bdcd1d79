// Package nav tracks the current view of a portal session and the history
// needed to walk back through it.
//
// Every forward move (section change, search handoff, selection, cross-section
// jump) pushes the composite it leaves onto the history. Closing a detail pane
// (Deselect, Clear) is a lateral move inside the same frame and is not
// recorded, so Back never lands inside a detail view that was just closed.
package nav

import (
	"fmt"

	"tableflip.dev/portal/pkg/view"
)

// Observer is notified after every transition that changed or could have
// changed the current composite.
type Observer func(op Op, from, to view.Composite)

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers fn to be called after each transition.
func WithObserver(fn Observer) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, fn)
	}
}

// Controller owns the current composite and its history. It is not safe for
// concurrent use; a UI drives it from a single event loop.
type Controller struct {
	current   view.Composite
	history   History
	observers []Observer
}

// New returns a controller positioned on the home view with empty history.
func New(opts ...Option) *Controller {
	c := &Controller{current: view.Home()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns the current composite.
func (c *Controller) Current() view.Composite {
	return c.current
}

// CanGoBack reports whether Back would change anything.
func (c *Controller) CanGoBack() bool {
	return c.history.Len() > 0
}

// Depth returns the number of frames Back can restore.
func (c *Controller) Depth() int {
	return c.history.Len()
}

// Trail returns the stored history, oldest first.
func (c *Controller) Trail() []view.Composite {
	return c.history.Snapshot()
}

// ChangeSection returns to the list view of section with every selection and
// the search string reset.
func (c *Controller) ChangeSection(section view.Section) error {
	if err := checkSection(section); err != nil {
		return err
	}
	c.run(OpChangeSection, request{section: section})
	return nil
}

// NavigateWithSearch enters section carrying query forward. Only the axes the
// target section renders as detail views are cleared so it opens on its list.
func (c *Controller) NavigateWithSearch(section view.Section, query string) error {
	if err := checkSection(section); err != nil {
		return err
	}
	c.run(OpSearch, request{section: section, query: query})
	return nil
}

// Select sets a single axis, leaving the section as is.
func (c *Controller) Select(axis view.Axis, id string) error {
	if err := checkAxis(axis); err != nil {
		return err
	}
	c.run(OpSelect, request{axis: axis, id: id})
	return nil
}

// Jump selects id on axis and moves to section in one step, e.g. opening a
// review from inside a solution or a profile from anywhere.
func (c *Controller) Jump(section view.Section, axis view.Axis, id string) error {
	if err := checkSection(section); err != nil {
		return err
	}
	if err := checkAxis(axis); err != nil {
		return err
	}
	c.run(OpJump, request{section: section, axis: axis, id: id})
	return nil
}

// Deselect closes the selection on axis without recording history.
func (c *Controller) Deselect(axis view.Axis) error {
	if err := checkAxis(axis); err != nil {
		return err
	}
	c.run(OpDeselect, request{axis: axis})
	return nil
}

// Clear closes the detail view of the current section without recording
// history.
func (c *Controller) Clear() {
	c.run(OpClear, request{})
}

// Back restores the most recent frame, replacing the whole composite. It is a
// no-op returning false when there is nothing to go back to.
func (c *Controller) Back() bool {
	prev, ok := c.history.Pop()
	if !ok {
		return false
	}
	from := c.current
	c.current = prev
	c.notify(OpBack, from, prev)
	return true
}

func (c *Controller) run(op Op, req request) {
	r, ok := rules[op]
	if !ok {
		panic(fmt.Sprintf("nav: no rule for %s", op))
	}
	from := c.current
	if r.record {
		c.history.Push(from)
	}
	c.current = r.apply(from, req)
	c.notify(op, from, c.current)
}

func (c *Controller) notify(op Op, from, to view.Composite) {
	for _, fn := range c.observers {
		fn(op, from, to)
	}
}

func checkSection(s view.Section) error {
	if !s.Valid() {
		return fmt.Errorf("nav: %w %q", view.ErrUnknownSection, s)
	}
	return nil
}

func checkAxis(a view.Axis) error {
	if !a.Valid() {
		return fmt.Errorf("nav: %w %d", view.ErrUnknownAxis, int(a))
	}
	return nil
}
