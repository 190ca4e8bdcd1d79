package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/portal/pkg/glyph"
	"tableflip.dev/portal/pkg/interaction"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("2b9c6bd2-85a1-4f8e  "))
)

const timeLayout = "2006-01-02 15:04:05"

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " event")
	default:
		_, _ = c.Fprintln(pp.out(), " events")
	}
}

// Stats prints the aggregate counts of one target. acted marks the toggle
// actions the current actor holds.
func (pp *PrettyPrint) Stats(t interaction.TargetType, id string, st interaction.Stats, acted map[interaction.Action]bool) {
	pp.Title(fmt.Sprintf("%s %s", t, id))

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("Count"), bold.Sprint("Meaning"))
	rows := []struct {
		action interaction.Action
		count  int
	}{
		{interaction.ActionView, st.Views},
		{interaction.ActionLike, st.Likes},
		{interaction.ActionFavorite, st.Favorites},
		{interaction.ActionComment, st.Comments},
		{interaction.ActionShare, st.Shares},
		{interaction.ActionDownload, st.Downloads},
	}
	for _, r := range rows {
		g := glyph.For(r.action)
		sym := g.Symbol
		if g.Toggle {
			sym = g.State(acted[r.action])
		}
		tbl.AddRow(sym, r.count, g.Meaning)
	}
	tbl.AddRow("", st.UniqueVisitors, "unique visitors")
	tbl.RightAlign(1)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Events prints events one per row in the order given.
func (pp *PrettyPrint) Events(events ...interaction.Event) {
	if len(events) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, e := range events {
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, y.Sprint(e.ID))
		}
		row = append(row,
			glyph.For(e.Action).Symbol,
			e.Timestamp.Local().Format(timeLayout),
			e.ActorID,
			fmt.Sprintf("%s/%s", e.TargetType, e.TargetID),
			formatMetadata(e.Metadata),
		)
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v interface{}) error {
	enc := json.NewEncoder(pp.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatMetadata(md map[string]string) string {
	if len(md) == 0 {
		return ""
	}
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+md[k])
	}
	return strings.Join(parts, " ")
}
