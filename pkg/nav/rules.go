package nav

import "tableflip.dev/portal/pkg/view"

// Op names a navigation transition.
type Op string

const (
	OpChangeSection Op = "change-section"
	OpSearch        Op = "navigate-with-search"
	OpSelect        Op = "select"
	OpJump          Op = "jump"
	OpDeselect      Op = "deselect"
	OpClear         Op = "clear"
	OpBack          Op = "back"
)

// axisScope says which axes a transition empties before applying its own
// assignment.
type axisScope int

const (
	scopeNone axisScope = iota
	// scopeAll empties every axis.
	scopeAll
	// scopeTargetOwned empties the axes owned by the section being entered.
	scopeTargetOwned
	// scopeCurrentOwned empties the axes owned by the section being shown.
	scopeCurrentOwned
	// scopeNamed empties only the axis passed to the operation.
	scopeNamed
)

type searchRule int

const (
	searchKeep searchRule = iota
	searchClear
	searchSet
)

// rule is one row of the reset table.
type rule struct {
	record     bool
	setSection bool
	setAxis    bool
	clear      axisScope
	search     searchRule
}

// rules is the single place the reset behaviour of each operation is defined.
// Back is not listed: it replaces the whole composite with the popped frame.
var rules = map[Op]rule{
	OpChangeSection: {record: true, setSection: true, clear: scopeAll, search: searchClear},
	OpSearch:        {record: true, setSection: true, clear: scopeTargetOwned, search: searchSet},
	OpSelect:        {record: true, setAxis: true, clear: scopeNone, search: searchKeep},
	OpJump:          {record: true, setSection: true, setAxis: true, clear: scopeNone, search: searchKeep},
	OpDeselect:      {record: false, clear: scopeNamed, search: searchKeep},
	OpClear:         {record: false, clear: scopeCurrentOwned, search: searchKeep},
}

// request carries the operands of a transition.
type request struct {
	section view.Section
	axis    view.Axis
	id      string
	query   string
}

// apply computes the composite that results from running op on cur.
func (r rule) apply(cur view.Composite, req request) view.Composite {
	next := cur
	switch r.clear {
	case scopeAll:
		next.Selection = view.Selection{}
	case scopeTargetOwned:
		next.Selection = next.Selection.Without(view.OwnedAxes(req.section)...)
	case scopeCurrentOwned:
		next.Selection = next.Selection.Without(view.OwnedAxes(cur.Section)...)
	case scopeNamed:
		next.Selection = next.Selection.Without(req.axis)
	}
	if r.setSection {
		next.Section = req.section
	}
	if r.setAxis {
		next.Selection = next.Selection.With(req.axis, req.id)
	}
	switch r.search {
	case searchClear:
		next.Search = ""
	case searchSet:
		next.Search = req.query
	}
	return next
}
