// Package glyph maps interaction actions onto the symbols shown in the
// legend, the CLI tables and the TUI detail view.
package glyph

import (
	"fmt"

	"tableflip.dev/portal/pkg/interaction"
)

// Glyph describes how one action is drawn.
type Glyph struct {
	Action  interaction.Action
	Key     string
	Symbol  string
	Outline string
	Meaning string
	Toggle  bool
}

var glyphs = map[interaction.Action]Glyph{
	interaction.ActionView: {
		Key:     "enter",
		Symbol:  "◉",
		Outline: "○",
		Meaning: "viewed",
	},
	interaction.ActionLike: {
		Key:     "l",
		Symbol:  "♥",
		Outline: "♡",
		Meaning: "liked",
	},
	interaction.ActionFavorite: {
		Key:     "f",
		Symbol:  "★",
		Outline: "☆",
		Meaning: "favorite",
	},
	interaction.ActionFollow: {
		Key:     "o",
		Symbol:  "✚",
		Outline: "+",
		Meaning: "following",
	},
	interaction.ActionShare: {
		Key:     "s",
		Symbol:  "↗",
		Outline: "↗",
		Meaning: "shared",
	},
	interaction.ActionComment: {
		Key:     "c",
		Symbol:  "✎",
		Outline: "✎",
		Meaning: "commented",
	},
	interaction.ActionDownload: {
		Key:     "d",
		Symbol:  "⤓",
		Outline: "⤓",
		Meaning: "downloaded",
	},
}

// For returns the glyph of a. Unknown actions panic, same as
// interaction.Action.Semantics.
func For(a interaction.Action) Glyph {
	g, ok := glyphs[a]
	if !ok {
		panic(fmt.Sprintf("glyph: no glyph for action %q", string(a)))
	}
	g.Action = a
	g.Toggle = a.Semantics() == interaction.Toggle
	return g
}

// Legend returns every action's glyph in interaction.AllActions order.
func Legend() []Glyph {
	all := interaction.AllActions()
	out := make([]Glyph, 0, len(all))
	for _, a := range all {
		out = append(out, For(a))
	}
	return out
}

// ForKey finds the glyph bound to key.
func ForKey(key string) (Glyph, bool) {
	for _, g := range Legend() {
		if g.Key == key {
			return g, true
		}
	}
	return Glyph{}, false
}

// State renders the filled symbol when on and the outline otherwise.
func (g Glyph) State(on bool) string {
	if on {
		return g.Symbol
	}
	return g.Outline
}

func (g Glyph) String() string {
	return g.Symbol
}
