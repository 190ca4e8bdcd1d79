package nav

import "tableflip.dev/portal/pkg/view"

// History is an undo stack of prior composites. It grows by one on every
// forward navigation and shrinks by one on Back.
type History struct {
	frames []view.Composite
}

// Push appends c on top of the stack.
func (h *History) Push(c view.Composite) {
	h.frames = append(h.frames, c)
}

// Pop removes and returns the top composite. ok is false when empty.
func (h *History) Pop() (c view.Composite, ok bool) {
	n := len(h.frames)
	if n == 0 {
		return view.Composite{}, false
	}
	c = h.frames[n-1]
	h.frames[n-1] = view.Composite{}
	h.frames = h.frames[:n-1]
	return c, true
}

// Len returns the number of stored frames.
func (h *History) Len() int {
	return len(h.frames)
}

// Snapshot returns a copy of the stack, bottom first.
func (h *History) Snapshot() []view.Composite {
	out := make([]view.Composite, len(h.frames))
	copy(out, h.frames)
	return out
}
