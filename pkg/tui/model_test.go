package tui

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/portal/pkg/app"
	"tableflip.dev/portal/pkg/interaction"
	"tableflip.dev/portal/pkg/nav"
	"tableflip.dev/portal/pkg/view"
)

func newModel(t *testing.T, opts ...nav.Option) *Model {
	t.Helper()
	svc := app.New(context.Background(), app.Options{ActorID: "u1", NavOptions: opts})
	t.Cleanup(func() { _ = svc.Close() })
	return New(svc)
}

func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyPressMsg
		switch k {
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		case "esc":
			msg = tea.KeyPressMsg{Code: tea.KeyEscape}
		case "tab":
			msg = tea.KeyPressMsg{Code: tea.KeyTab}
		case "down":
			msg = tea.KeyPressMsg{Code: tea.KeyDown}
		default:
			r := []rune(k)[0]
			msg = tea.KeyPressMsg{Code: r, Text: k}
		}
		next, _ := m.Update(msg)
		if next.(*Model) != m {
			t.Fatal("update returned a different model")
		}
	}
}

func typeInput(t *testing.T, m *Model, value string) {
	t.Helper()
	if m.mode == modeBrowse {
		t.Fatal("expected an input mode")
	}
	m.input.SetValue(value)
	press(t, m, "enter")
}

func TestDigitChangesSection(t *testing.T) {
	m := newModel(t)
	press(t, m, "3")
	if got := m.svc.Nav.Current().Section; got != view.SectionSolutions {
		t.Fatalf("expected solutions, got %s", got)
	}
	press(t, m, "tab")
	if got := m.svc.Nav.Current().Section; got != view.SectionAppCenter {
		t.Fatalf("expected app-center, got %s", got)
	}
}

func TestGotoOpensAndRecordsView(t *testing.T) {
	m := newModel(t)
	press(t, m, "3", "g")
	typeInput(t, m, "S42")

	cur := m.svc.Nav.Current()
	if cur.Selected(view.AxisSolution) != "S42" {
		t.Fatalf("expected S42 selected, got %v", cur)
	}
	if n := m.svc.Interactions.CountOf(interaction.TargetSolution, "S42", interaction.ActionView); n != 1 {
		t.Fatalf("expected one view, got %d", n)
	}
	if items := m.items(); len(items) != 1 || items[0] != "S42" {
		t.Fatalf("expected S42 listed, got %v", items)
	}
}

func TestLikeTogglesOnDetail(t *testing.T) {
	m := newModel(t)
	press(t, m, "l")
	if !m.statusErr {
		t.Fatal("like without a detail should report an error")
	}

	press(t, m, "4", "g")
	typeInput(t, m, "A1")
	press(t, m, "l")
	if !m.svc.Interactions.HasActed(interaction.TargetApp, "A1", interaction.ActionLike) {
		t.Fatal("expected like recorded")
	}
	press(t, m, "l")
	if m.svc.Interactions.HasActed(interaction.TargetApp, "A1", interaction.ActionLike) {
		t.Fatal("second like should cancel the first")
	}
}

func TestCommentCarriesText(t *testing.T) {
	m := newModel(t)
	press(t, m, "5", "g")
	typeInput(t, m, "C1")
	press(t, m, "c")
	typeInput(t, m, "useful case")

	mine := m.svc.Mine(interaction.ActionComment)
	if len(mine) != 1 || mine[0].Metadata["text"] != "useful case" {
		t.Fatalf("unexpected comments %+v", mine)
	}
}

func TestSearchBackAndClear(t *testing.T) {
	m := newModel(t)
	press(t, m, "3", "g")
	typeInput(t, m, "S1")
	press(t, m, "t")
	if got := m.svc.Nav.Current().Selected(view.AxisTab); got != "overview" {
		t.Fatalf("expected overview tab, got %q", got)
	}

	press(t, m, "x")
	if !m.svc.Nav.Current().Selection.Empty() {
		t.Fatalf("clear should empty the selection, got %v", m.svc.Nav.Current())
	}

	press(t, m, "/")
	typeInput(t, m, "s")
	if got := m.svc.Nav.Current().Search; got != "s" {
		t.Fatalf("expected search s, got %q", got)
	}

	depth := m.svc.Nav.Depth()
	press(t, m, "b")
	if m.svc.Nav.Depth() != depth-1 {
		t.Fatalf("back should pop history, depth %d", m.svc.Nav.Depth())
	}
}

func TestEscCancelsInput(t *testing.T) {
	m := newModel(t)
	press(t, m, "a", "esc")
	if m.mode != modeBrowse || m.svc.Actor.ActorID() != "u1" {
		t.Fatal("esc should leave the actor untouched")
	}
	press(t, m, "a")
	typeInput(t, m, "u2")
	if m.svc.Actor.ActorID() != "u2" {
		t.Fatalf("expected u2, got %q", m.svc.Actor.ActorID())
	}
}

func TestUploadAndQuit(t *testing.T) {
	m := newModel(t)
	press(t, m, "n")
	if !m.statusErr {
		t.Fatal("home has no upload form")
	}
	press(t, m, "3", "n")
	if got := m.svc.Nav.Current().Section; got != view.SectionUploadSolution {
		t.Fatalf("expected upload-solution, got %s", got)
	}
	if !strings.Contains(m.View(), "upload-solution") {
		t.Fatal("expected upload section in view")
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestViewShowsDetailCounters(t *testing.T) {
	m := newModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	press(t, m, "4", "g")
	typeInput(t, m, "A7")
	press(t, m, "f")

	out := m.View()
	for _, want := range []string{"app A7", "★", "favorite", "unique visitors"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}

func TestTraceObserverLogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := newModel(t, nav.WithObserver(TraceObserver(logger)))
	press(t, m, "3")
	if !strings.Contains(buf.String(), "op=change-section") || !strings.Contains(buf.String(), "to=solutions") {
		t.Fatalf("unexpected trace %q", buf.String())
	}
}
