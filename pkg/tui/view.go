package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/portal/pkg/app"
	"tableflip.dev/portal/pkg/glyph"
	"tableflip.dev/portal/pkg/interaction"
	"tableflip.dev/portal/pkg/view"
)

const (
	defaultWidth  = 100
	defaultHeight = 24
	listWidth     = 32
)

const helpText = "tab/1-0 section · ↑↓ move · enter open · / search · g open id · t tab · n upload · l f o s d c act · b back · x clear · a actor · q quit"

// View renders the whole screen.
func (m *Model) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	header := m.renderHeader(width)
	footer := m.renderFooter(width)
	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderBody(width, bodyHeight), footer)
}

func (m *Model) renderHeader(width int) string {
	cur := m.svc.Nav.Current()
	var tabs []string
	if cur.Section.IsUpload() {
		tabs = append(tabs, m.theme.Header.ActiveSection.Render(string(cur.Section)))
	}
	for i, s := range menuSections() {
		label := string(s)
		if i < 10 {
			label = fmt.Sprintf("%d %s", (i+1)%10, s)
		}
		if s == cur.Section {
			tabs = append(tabs, m.theme.Header.ActiveSection.Render(label))
		} else {
			tabs = append(tabs, m.theme.Header.Section.Render(label))
		}
	}
	strip := truncate.StringWithTail(strings.Join(tabs, ""), uint(width), "…")
	actor := m.theme.Header.Actor.Render(fmt.Sprintf("as %s · depth %d", m.svc.Actor.ActorID(), m.svc.Nav.Depth()))
	return lipgloss.JoinVertical(lipgloss.Left, strip, actor)
}

func (m *Model) renderBody(width, height int) string {
	cur := m.svc.Nav.Current()
	frame := m.theme.Panel.Frame
	inner := height - frame.GetVerticalFrameSize()
	if inner < 1 {
		inner = 1
	}

	if cur.Section.IsUpload() {
		body := m.theme.Panel.Muted.Render("Uploads are submitted from the web portal. b to go back.")
		return frame.Width(width - frame.GetHorizontalBorderSize()).Height(inner).Render(
			m.theme.Panel.Title.Render(string(cur.Section)) + "\n" + body)
	}

	if _, ok := listAxis(cur.Section); !ok {
		body := m.theme.Panel.Muted.Render(fmt.Sprintf("%s has no list.", cur.Section))
		return frame.Width(width - frame.GetHorizontalBorderSize()).Height(inner).Render(
			m.theme.Panel.Title.Render(string(cur.Section)) + "\n" + body)
	}

	lw := listWidth
	if lw > width/2 {
		lw = width / 2
	}
	dw := width - lw
	list := frame.Width(lw - frame.GetHorizontalBorderSize()).Height(inner).Render(m.renderList(lw-frame.GetHorizontalFrameSize(), inner))
	detail := frame.Width(dw - frame.GetHorizontalBorderSize()).Height(inner).Render(m.renderDetail(dw - frame.GetHorizontalFrameSize()))
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (m *Model) renderList(width, height int) string {
	cur := m.svc.Nav.Current()
	title := string(cur.Section)
	if cur.Search != "" {
		title += fmt.Sprintf(" %q", cur.Search)
	}
	lines := []string{m.theme.Panel.Title.Render(truncate.StringWithTail(title, uint(max(width, 1)), "…"))}

	items := m.items()
	if len(items) == 0 {
		lines = append(lines, m.theme.Panel.Muted.Render("nothing yet, g to open an id"))
		return strings.Join(lines, "\n")
	}
	axis, _ := listAxis(cur.Section)
	selected := cur.Selected(axis)
	t, hasType := app.TargetFor(axis)

	// Keep the cursor on screen.
	rows := height - 1
	start := 0
	if rows > 0 && m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	for i := start; i < len(items) && (rows <= 0 || i < start+rows); i++ {
		id := items[i]
		marker := "  "
		if id == selected {
			marker = "› "
		}
		row := marker + id
		if hasType {
			row += " " + m.glyphsFor(t, id)
		}
		row = truncate.StringWithTail(row, uint(max(width, 1)), "…")
		if i == m.cursor {
			lines = append(lines, m.theme.List.Selected.Render(row))
		} else {
			lines = append(lines, m.theme.List.Row.Render(row))
		}
	}
	return strings.Join(lines, "\n")
}

// glyphsFor shows the toggle actions the current actor holds on a target.
func (m *Model) glyphsFor(t interaction.TargetType, id string) string {
	var b strings.Builder
	for _, g := range glyph.Legend() {
		if g.Toggle && m.svc.Interactions.HasActed(t, id, g.Action) {
			b.WriteString(g.Symbol)
		}
	}
	return m.theme.List.Glyph.Render(b.String())
}

func (m *Model) renderDetail(width int) string {
	cur := m.svc.Nav.Current()
	t, id, ok := m.svc.Detail()
	if !ok {
		return m.theme.Panel.Muted.Render("Select an item to see its activity.")
	}

	lines := []string{m.theme.Panel.Title.Render(truncate.StringWithTail(fmt.Sprintf("%s %s", t, id), uint(max(width, 1)), "…"))}
	if ownsAxis(cur.Section, view.AxisTab) {
		var tabs []string
		for _, tab := range detailTabs {
			if tab == cur.Selected(view.AxisTab) {
				tabs = append(tabs, m.theme.Header.ActiveSection.Render(tab))
			} else {
				tabs = append(tabs, m.theme.Header.Section.Render(tab))
			}
		}
		lines = append(lines, strings.Join(tabs, ""))
	}
	lines = append(lines, "")

	st := m.svc.Interactions.Aggregate(t, id)
	counts := map[interaction.Action]int{
		interaction.ActionView:     st.Views,
		interaction.ActionLike:     st.Likes,
		interaction.ActionFavorite: st.Favorites,
		interaction.ActionComment:  st.Comments,
		interaction.ActionShare:    st.Shares,
		interaction.ActionDownload: st.Downloads,
		interaction.ActionFollow:   m.svc.Interactions.CountOf(t, id, interaction.ActionFollow),
	}
	for _, g := range glyph.Legend() {
		sym := g.Symbol
		if g.Toggle {
			sym = g.State(m.svc.Interactions.HasActed(t, id, g.Action))
		}
		lines = append(lines, fmt.Sprintf("%s %4d  %s", m.theme.List.Glyph.Render(sym), counts[g.Action], g.Meaning))
	}
	lines = append(lines, fmt.Sprintf("  %4d  unique visitors", st.UniqueVisitors))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter(width int) string {
	if m.mode != modeBrowse {
		return m.theme.Footer.Prompt.Render(m.mode.prompt()) + m.input.View()
	}
	help := m.theme.Footer.Help.Render(truncate.StringWithTail(helpText, uint(width), "…"))
	status := m.theme.Footer.Status.Render(m.status)
	if m.statusErr {
		status = m.theme.Footer.Error.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, help)
}
