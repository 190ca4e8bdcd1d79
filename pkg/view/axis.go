package view

import (
	"errors"
	"fmt"
	"strings"
)

// Axis is one of the independent selection slots carried by every Composite.
type Axis int

const (
	AxisSolution Axis = iota
	AxisApp
	AxisCase
	AxisReview
	AxisArticle
	AxisProfile
	AxisClient
	AxisAgent
	// AxisTab records which tab of a detail view is open.
	AxisTab

	axisCount
)

// ErrUnknownAxis is returned for axis values outside the closed set.
var ErrUnknownAxis = errors.New("view: unknown axis")

var axisNames = [axisCount]string{
	AxisSolution: "solution",
	AxisApp:      "app",
	AxisCase:     "case",
	AxisReview:   "review",
	AxisArticle:  "article",
	AxisProfile:  "profile",
	AxisClient:   "client",
	AxisAgent:    "agent",
	AxisTab:      "tab",
}

// AllAxes returns every axis in declaration order.
func AllAxes() []Axis {
	out := make([]Axis, 0, axisCount)
	for a := Axis(0); a < axisCount; a++ {
		out = append(out, a)
	}
	return out
}

// Valid reports whether a is a declared axis.
func (a Axis) Valid() bool {
	return a >= 0 && a < axisCount
}

func (a Axis) String() string {
	if !a.Valid() {
		return fmt.Sprintf("axis(%d)", int(a))
	}
	return axisNames[a]
}

// ParseAxis converts the axis name into an Axis.
func ParseAxis(raw string) (Axis, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for a, n := range axisNames {
		if n == name {
			return Axis(a), nil
		}
	}
	return -1, fmt.Errorf("%w %q", ErrUnknownAxis, raw)
}

// Selection holds an optional identifier per axis. The empty string means the
// axis has no selection. Being an array, a Selection copies by value.
type Selection [axisCount]string

// Get returns the identifier selected on axis a.
func (s Selection) Get(a Axis) string {
	if !a.Valid() {
		return ""
	}
	return s[a]
}

// With returns a copy of s with axis a set to id.
func (s Selection) With(a Axis, id string) Selection {
	if a.Valid() {
		s[a] = id
	}
	return s
}

// Without returns a copy of s with the given axes emptied.
func (s Selection) Without(axes ...Axis) Selection {
	for _, a := range axes {
		if a.Valid() {
			s[a] = ""
		}
	}
	return s
}

// Active lists the axes holding a selection.
func (s Selection) Active() []Axis {
	var out []Axis
	for a, id := range s {
		if id != "" {
			out = append(out, Axis(a))
		}
	}
	return out
}

// Empty reports whether no axis holds a selection.
func (s Selection) Empty() bool {
	return s == Selection{}
}
