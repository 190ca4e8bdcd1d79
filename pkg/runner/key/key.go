// Package key provides CLI helpers to display the action legend.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/portal/pkg/glyph"
)

// Key prints a glyph legend describing each action.
type Key struct{}

// Do renders the toggle and append actions to stdout.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(color.Output, "")

	legend := glyph.Legend()
	k.Key(ctx, legend, true)
	_, _ = fmt.Fprintln(color.Output, "")
	k.Key(ctx, legend, false)

	_, _ = fmt.Fprintln(color.Output, "")
	return nil
}

// Key renders a glyph table; when toggle is true, toggle actions are shown
// with their on and off symbols.
func (k *Key) Key(_ context.Context, glyfs []glyph.Glyph, toggle bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if toggle {
		tbl.AddRow(bold.Sprint("On"), bold.Sprint("Off"), bold.Sprint("Key"), bold.Sprint("Toggles"))
	} else {
		tbl.AddRow(bold.Sprint("Symbol"), "", bold.Sprint("Key"), bold.Sprint("Appends"))
	}
	for _, v := range glyfs {
		if toggle != v.Toggle {
			continue
		}
		if toggle {
			tbl.AddRow(v.Symbol, v.Outline, v.Key, v.Meaning)
		} else {
			tbl.AddRow(v.Symbol, "", v.Key, v.Meaning)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
}
