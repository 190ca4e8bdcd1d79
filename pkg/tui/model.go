// Package tui is the interactive terminal front end: a section strip, a list
// of known targets for the active section and a detail panel showing the
// derived counters of whatever is open.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/portal/pkg/app"
	"tableflip.dev/portal/pkg/glyph"
	"tableflip.dev/portal/pkg/interaction"
	"tableflip.dev/portal/pkg/tui/theme"
	"tableflip.dev/portal/pkg/view"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeGoto
	modeComment
	modeActor
)

func (m mode) prompt() string {
	switch m {
	case modeSearch:
		return "search: "
	case modeGoto:
		return "open id: "
	case modeComment:
		return "comment: "
	case modeActor:
		return "act as: "
	default:
		return ""
	}
}

// detailTabs are the tabs offered by sections that own the tab axis.
var detailTabs = []string{"overview", "reviews", "pricing"}

// uploadFor maps a list section to its upload form.
var uploadFor = map[view.Section]view.Section{
	view.SectionSolutions: view.SectionUploadSolution,
	view.SectionAppCenter: view.SectionUploadApp,
	view.SectionCases:     view.SectionUploadCase,
	view.SectionReviews:   view.SectionUploadReview,
	view.SectionResearch:  view.SectionUploadArticle,
	view.SectionAIHub:     view.SectionUploadAgent,
}

// menuSections are the sections reachable from the strip; upload forms are
// entered from their list section.
func menuSections() []view.Section {
	var out []view.Section
	for _, s := range view.AllSections() {
		if !s.IsUpload() {
			out = append(out, s)
		}
	}
	return out
}

// Model drives an app.Service from key presses.
type Model struct {
	svc   *app.Service
	theme theme.Theme

	width  int
	height int

	cursor int
	mode   mode
	input  textinput.Model

	status    string
	statusErr bool
}

// New constructs the root model for svc.
func New(svc *app.Service) *Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Blur()

	return &Model{
		svc:    svc,
		theme:  theme.Default(),
		input:  ti,
		status: "Ready",
	}
}

// Run launches the Bubble Tea program.
func Run(svc *app.Service) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		return m, nil
	case tea.KeyPressMsg:
		if v.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.mode != modeBrowse {
			return m.updateInput(v)
		}
		return m.updateBrowse(v)
	}
	if m.mode != modeBrowse {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	cur := m.svc.Nav.Current()

	switch key {
	case "q":
		return m, tea.Quit
	case "tab":
		m.cycleSection(1)
	case "shift+tab":
		m.cycleSection(-1)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items())-1 {
			m.cursor++
		}
	case "enter":
		items := m.items()
		axis, ok := listAxis(cur.Section)
		if !ok || len(items) == 0 {
			break
		}
		m.report(m.svc.Open(axis, items[m.cursor]), "Opened "+items[m.cursor])
	case "b", "esc", "backspace":
		if !m.svc.Nav.Back() {
			m.setStatus("Nothing to go back to")
			break
		}
		m.syncCursor()
		m.setStatus("Back")
	case "x":
		m.svc.Nav.Clear()
		m.syncCursor()
		m.setStatus("Selection cleared")
	case "t":
		m.nextTab()
	case "n":
		upload, ok := uploadFor[cur.Section]
		if !ok {
			m.setError(fmt.Errorf("no upload form for %s", cur.Section))
			break
		}
		m.changeSection(upload)
	case "/":
		return m, m.beginInput(modeSearch, cur.Search)
	case "g":
		if _, ok := listAxis(cur.Section); !ok {
			m.setError(fmt.Errorf("nothing to open in %s", cur.Section))
			break
		}
		return m, m.beginInput(modeGoto, "")
	case "a":
		return m, m.beginInput(modeActor, "")
	case "c":
		if _, _, ok := m.svc.Detail(); !ok {
			m.setError(app.ErrNoDetail)
			break
		}
		return m, m.beginInput(modeComment, "")
	default:
		if idx, ok := digitIndex(key); ok {
			if menu := menuSections(); idx < len(menu) {
				m.changeSection(menu[idx])
			}
			break
		}
		if g, ok := glyph.ForKey(key); ok && g.Action != interaction.ActionView && g.Action != interaction.ActionComment {
			m.act(g.Action, nil)
		}
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.endInput()
		m.setStatus("Cancelled")
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		md := m.mode
		m.endInput()
		m.submit(md, value)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit(md mode, value string) {
	cur := m.svc.Nav.Current()
	switch md {
	case modeSearch:
		m.report(m.svc.SearchInto(cur.Section, value), fmt.Sprintf("Searching %s for %q", cur.Section, value))
		m.cursor = 0
	case modeGoto:
		axis, ok := listAxis(cur.Section)
		if !ok || value == "" {
			return
		}
		m.report(m.svc.Open(axis, value), "Opened "+value)
		m.syncCursor()
	case modeComment:
		if value == "" {
			m.setError(errors.New("empty comment"))
			return
		}
		m.act(interaction.ActionComment, map[string]string{"text": value})
	case modeActor:
		prev := m.svc.SwitchActor(value)
		m.setStatus(fmt.Sprintf("Acting as %s (was %s)", m.svc.Actor.ActorID(), prev))
	}
}

func (m *Model) beginInput(md mode, value string) tea.Cmd {
	m.mode = md
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) endInput() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) act(action interaction.Action, metadata map[string]string) {
	change, err := m.svc.ActOnDetail(action, metadata)
	if err != nil {
		m.setError(err)
		return
	}
	g := glyph.For(action)
	m.setStatus(fmt.Sprintf("%s %s %s %s", g.State(change.Kind == interaction.Added), g.Meaning, change.Kind, change.Event.TargetID))
}

func (m *Model) changeSection(s view.Section) {
	m.report(m.svc.Nav.ChangeSection(s), "Section "+string(s))
	m.cursor = 0
}

func (m *Model) cycleSection(step int) {
	menu := menuSections()
	cur := m.svc.Nav.Current().Section
	idx := 0
	for i, s := range menu {
		if s == cur {
			idx = i
			break
		}
	}
	idx = (idx + step + len(menu)) % len(menu)
	m.changeSection(menu[idx])
}

func (m *Model) nextTab() {
	cur := m.svc.Nav.Current()
	if !ownsAxis(cur.Section, view.AxisTab) {
		m.setError(fmt.Errorf("%s has no tabs", cur.Section))
		return
	}
	if _, _, ok := cur.Detail(); !ok {
		m.setError(app.ErrNoDetail)
		return
	}
	next := detailTabs[0]
	for i, tab := range detailTabs {
		if tab == cur.Selected(view.AxisTab) {
			next = detailTabs[(i+1)%len(detailTabs)]
			break
		}
	}
	m.report(m.svc.Nav.Select(view.AxisTab, next), "Tab "+next)
}

// items lists the known targets for the active section, narrowed by its
// search query.
func (m *Model) items() []string {
	cur := m.svc.Nav.Current()
	axis, ok := listAxis(cur.Section)
	if !ok {
		return nil
	}
	t, ok := app.TargetFor(axis)
	if !ok {
		return nil
	}
	all := m.svc.Interactions.Targets(t)
	q := strings.ToLower(cur.Search)
	if q == "" {
		return all
	}
	var out []string
	for _, id := range all {
		if strings.Contains(strings.ToLower(id), q) {
			out = append(out, id)
		}
	}
	return out
}

// syncCursor moves the cursor onto the open item, if it is listed.
func (m *Model) syncCursor() {
	m.cursor = 0
	cur := m.svc.Nav.Current()
	axis, ok := listAxis(cur.Section)
	if !ok {
		return
	}
	sel := cur.Selected(axis)
	for i, id := range m.items() {
		if id == sel {
			m.cursor = i
			return
		}
	}
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus(ok)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// listAxis is the axis a section's list selects on.
func listAxis(s view.Section) (view.Axis, bool) {
	for _, a := range view.OwnedAxes(s) {
		if a != view.AxisTab {
			return a, true
		}
	}
	return 0, false
}

func ownsAxis(s view.Section, axis view.Axis) bool {
	for _, a := range view.OwnedAxes(s) {
		if a == axis {
			return true
		}
	}
	return false
}

func digitIndex(key string) (int, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	if key[0] == '0' {
		return 9, true
	}
	return int(key[0] - '1'), true
}
