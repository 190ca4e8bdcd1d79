package interaction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/portal/pkg/actor"
)

type testActor struct {
	mu sync.Mutex
	id string
}

func (a *testActor) ActorID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.id
}

func (a *testActor) set(id string) {
	a.mu.Lock()
	a.id = id
	a.mu.Unlock()
}

type memoryPersister struct {
	mu      sync.Mutex
	events  []Event
	saves   int
	loadErr error
	saveErr error
}

func (m *memoryPersister) Load(_ context.Context) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

func (m *memoryPersister) Save(_ context.Context, events []Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.events = make([]Event, len(events))
	copy(m.events, events)
	return nil
}

func (m *memoryPersister) snapshot() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func newTestStore(t *testing.T, who actor.Provider, opts ...Option) *Store {
	t.Helper()
	n := 0
	base := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	opts = append([]Option{
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("evt-%d", n)
		}),
		WithClock(func() time.Time {
			return base.Add(time.Duration(n) * time.Minute)
		}),
	}, opts...)
	s := Open(context.Background(), who, opts...)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustRecord(t *testing.T, s *Store, tt TargetType, id string, a Action) Change {
	t.Helper()
	c, err := s.Record(tt, id, a, nil)
	if err != nil {
		t.Fatalf("record %s %s/%s: %v", a, tt, id, err)
	}
	return c
}

func TestToggleIdempotence(t *testing.T) {
	for _, action := range []Action{ActionLike, ActionFavorite, ActionFollow} {
		for calls := 1; calls <= 6; calls++ {
			s := newTestStore(t, &testActor{id: "u1"})
			for i := 0; i < calls; i++ {
				mustRecord(t, s, TargetSolution, "S1", action)
			}
			want := calls % 2
			if got := s.CountOf(TargetSolution, "S1", action); got != want {
				t.Fatalf("%s x%d: expected %d live events, got %d", action, calls, want, got)
			}
			if got := s.HasActed(TargetSolution, "S1", action); got != (want == 1) {
				t.Fatalf("%s x%d: HasActed = %v", action, calls, got)
			}
		}
	}
}

func TestRecordReportsChange(t *testing.T) {
	s := newTestStore(t, &testActor{id: "u1"})
	added := mustRecord(t, s, TargetApp, "A1", ActionLike)
	if added.Kind != Added || added.Event.ID != "evt-1" || added.Event.ActorID != "u1" {
		t.Fatalf("unexpected add change: %+v", added)
	}
	removed := mustRecord(t, s, TargetApp, "A1", ActionLike)
	if removed.Kind != Removed || removed.Event.ID != "evt-1" {
		t.Fatalf("unexpected remove change: %+v", removed)
	}
}

func TestNonToggleAccumulates(t *testing.T) {
	s := newTestStore(t, &testActor{id: "u1"})
	for i := 0; i < 3; i++ {
		mustRecord(t, s, TargetCase, "C1", ActionView)
	}
	mustRecord(t, s, TargetCase, "C1", ActionComment)
	mustRecord(t, s, TargetCase, "C1", ActionComment)

	if got := s.CountOf(TargetCase, "C1", ActionView); got != 3 {
		t.Fatalf("expected 3 views, got %d", got)
	}
	st := s.Aggregate(TargetCase, "C1")
	if st.Views != 3 || st.UniqueVisitors != 1 || st.Comments != 2 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestUniqueVisitorsCountsDistinctActors(t *testing.T) {
	actor := &testActor{id: "u1"}
	s := newTestStore(t, actor)
	mustRecord(t, s, TargetArticle, "P1", ActionView)
	mustRecord(t, s, TargetArticle, "P1", ActionView)
	actor.set("u2")
	mustRecord(t, s, TargetArticle, "P1", ActionView)
	mustRecord(t, s, TargetArticle, "P1", ActionLike) // not a visit

	st := s.Aggregate(TargetArticle, "P1")
	if st.Views != 3 || st.UniqueVisitors != 2 {
		t.Fatalf("expected 3 views from 2 visitors, got %+v", st)
	}
}

func TestAggregateFollowsLog(t *testing.T) {
	s := newTestStore(t, &testActor{id: "u1"})
	mustRecord(t, s, TargetResource, "R1", ActionLike)
	mustRecord(t, s, TargetResource, "R1", ActionFavorite)
	mustRecord(t, s, TargetResource, "R1", ActionDownload)
	mustRecord(t, s, TargetResource, "R1", ActionShare)
	mustRecord(t, s, TargetResource, "R1", ActionView)
	before := s.Aggregate(TargetResource, "R1")

	mustRecord(t, s, TargetResource, "R1", ActionLike)
	after := s.Aggregate(TargetResource, "R1")

	want := before
	want.Likes--
	if after != want {
		t.Fatalf("expected only likes to drop by one: before %+v after %+v", before, after)
	}
}

func TestLikeScenarioAcrossActors(t *testing.T) {
	actor := &testActor{id: "u1"}
	s := newTestStore(t, actor)

	mustRecord(t, s, TargetSolution, "S1", ActionLike)
	if got := s.Aggregate(TargetSolution, "S1").Likes; got != 1 {
		t.Fatalf("expected 1 like, got %d", got)
	}
	if !s.HasActed(TargetSolution, "S1", ActionLike) {
		t.Fatal("u1 should have liked S1")
	}

	mustRecord(t, s, TargetSolution, "S1", ActionLike)
	if got := s.Aggregate(TargetSolution, "S1").Likes; got != 0 {
		t.Fatalf("expected 0 likes, got %d", got)
	}
	if s.HasActed(TargetSolution, "S1", ActionLike) {
		t.Fatal("u1 like should be cancelled")
	}

	actor.set("u2")
	mustRecord(t, s, TargetSolution, "S1", ActionLike)
	if got := s.Aggregate(TargetSolution, "S1").Likes; got != 1 {
		t.Fatalf("expected 1 like after u2, got %d", got)
	}
}

func TestActorSwitchReflectsImmediately(t *testing.T) {
	actor := &testActor{id: "u1"}
	s := newTestStore(t, actor)
	mustRecord(t, s, TargetApp, "A1", ActionFavorite)
	mustRecord(t, s, TargetApp, "A2", ActionFavorite)

	actor.set("u2")
	if s.HasActed(TargetApp, "A1", ActionFavorite) {
		t.Fatal("u2 has not favorited A1")
	}
	// A toggle by u2 must not cancel u1's event.
	mustRecord(t, s, TargetApp, "A1", ActionFavorite)
	if got := s.CountOf(TargetApp, "A1", ActionFavorite); got != 2 {
		t.Fatalf("expected 2 favorites, got %d", got)
	}

	actor.set("u1")
	favs := s.ItemsActedOnBy("u1", ActionFavorite)
	if len(favs) != 2 || favs[0].TargetID != "A1" || favs[1].TargetID != "A2" {
		t.Fatalf("unexpected u1 favorites: %+v", favs)
	}
	if got := s.ItemsActedOnBy("u2", ActionFavorite); len(got) != 1 {
		t.Fatalf("expected one u2 favorite, got %d", len(got))
	}
	if got := s.ItemsActedOnBy("u3", ActionFavorite); len(got) != 0 {
		t.Fatalf("expected none for u3, got %d", len(got))
	}
}

func TestRecordRejectsInvalidInput(t *testing.T) {
	s := newTestStore(t, &testActor{id: "u1"})
	tests := []struct {
		name   string
		tt     TargetType
		id     string
		action Action
		want   error
	}{
		{name: "target type", tt: "widget", id: "1", action: ActionLike, want: ErrUnknownTargetType},
		{name: "action", tt: TargetApp, id: "1", action: "clap", want: ErrUnknownAction},
		{name: "target id", tt: TargetApp, id: " ", action: ActionView, want: ErrEmptyTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Record(tt.tt, tt.id, tt.action, nil); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if len(s.Events()) != 0 {
		t.Fatal("rejected records must not touch the log")
	}

	anon := newTestStore(t, &testActor{})
	if _, err := anon.Record(TargetApp, "1", ActionView, nil); !errors.Is(err, ErrNoActor) {
		t.Fatalf("expected ErrNoActor, got %v", err)
	}
	if anon.HasActed(TargetApp, "1", ActionView) {
		t.Fatal("no actor cannot have acted")
	}
}

func TestAggregateUnknownTargetIsZero(t *testing.T) {
	s := newTestStore(t, &testActor{id: "u1"})
	mustRecord(t, s, TargetApp, "A1", ActionView)
	if got := s.Aggregate(TargetApp, "missing"); got != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v", got)
	}
	if got := s.Aggregate(TargetCase, "A1"); got != (Stats{}) {
		t.Fatalf("target type must be part of the key, got %+v", got)
	}
}

func TestMetadataIsCopied(t *testing.T) {
	s := newTestStore(t, &testActor{id: "u1"})
	meta := map[string]string{"text": "great write-up"}
	c, err := s.Record(TargetArticle, "P1", ActionComment, meta)
	if err != nil {
		t.Fatal(err)
	}
	meta["text"] = "changed"
	c.Event.Metadata["text"] = "also changed"
	if got := s.Events()[0].Metadata["text"]; got != "great write-up" {
		t.Fatalf("stored metadata was mutated: %q", got)
	}
}

func TestTargetsInFirstSeenOrder(t *testing.T) {
	s := newTestStore(t, &testActor{id: "u1"})
	mustRecord(t, s, TargetApp, "b", ActionView)
	mustRecord(t, s, TargetCase, "x", ActionView)
	mustRecord(t, s, TargetApp, "a", ActionView)
	mustRecord(t, s, TargetApp, "b", ActionShare)

	got := s.Targets(TargetApp)
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("unexpected targets: %v", got)
	}
}

func TestPersistsAfterEveryMutation(t *testing.T) {
	p := &memoryPersister{}
	s := newTestStore(t, &testActor{id: "u1"}, WithPersister(p))
	mustRecord(t, s, TargetSolution, "S1", ActionLike)
	mustRecord(t, s, TargetSolution, "S1", ActionView)
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := p.snapshot(); len(got) != 2 {
		t.Fatalf("expected 2 persisted events, got %d", len(got))
	}

	mustRecord(t, s, TargetSolution, "S1", ActionLike)
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	got := p.snapshot()
	if len(got) != 1 || got[0].Action != ActionView {
		t.Fatalf("expected only the view to remain persisted, got %+v", got)
	}
}

func TestRehydratesOnOpen(t *testing.T) {
	p := &memoryPersister{events: []Event{
		{ID: "1", ActorID: "u1", TargetType: TargetApp, TargetID: "A1", Action: ActionLike},
		{ID: "2", ActorID: "u2", TargetType: TargetApp, TargetID: "A1", Action: ActionView},
	}}
	s := newTestStore(t, &testActor{id: "u1"}, WithPersister(p))
	if !s.HasActed(TargetApp, "A1", ActionLike) {
		t.Fatal("expected rehydrated like")
	}
	mustRecord(t, s, TargetApp, "A1", ActionLike)
	if s.Aggregate(TargetApp, "A1").Likes != 0 {
		t.Fatal("rehydrated like should toggle off")
	}
}

func TestUnreadableSlotStartsEmpty(t *testing.T) {
	p := &memoryPersister{loadErr: errors.New("corrupt")}
	s := newTestStore(t, &testActor{id: "u1"}, WithPersister(p))
	if len(s.Events()) != 0 {
		t.Fatal("expected empty log")
	}
	p.mu.Lock()
	p.loadErr = nil
	p.mu.Unlock()
	mustRecord(t, s, TargetApp, "A1", ActionView)
	if err := s.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(p.snapshot()) != 1 {
		t.Fatal("expected slot to be overwritten with the new log")
	}
}

func TestFlushReportsSaveError(t *testing.T) {
	p := &memoryPersister{saveErr: errors.New("disk full")}
	s := newTestStore(t, &testActor{id: "u1"}, WithPersister(p))
	if _, err := s.Record(TargetApp, "A1", ActionView, nil); err != nil {
		t.Fatalf("record must not surface persistence errors: %v", err)
	}
	if err := s.Flush(context.Background()); err == nil {
		t.Fatal("expected flush to report the save error")
	}
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("error should be reported once, got %v", err)
	}
}

func TestCloseWritesPending(t *testing.T) {
	p := &memoryPersister{}
	s := Open(context.Background(), &testActor{id: "u1"}, WithPersister(p))
	mustRecord(t, s, TargetUser, "u9", ActionFollow)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(p.snapshot()) != 1 {
		t.Fatal("expected close to flush the pending write")
	}
	if err := s.Flush(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("flush after close: expected ErrClosed, got %v", err)
	}
	if err := s.Close(); !errors.Is(err, ErrClosed) {
		t.Fatalf("second close: expected ErrClosed, got %v", err)
	}
}

func TestRecordAfterCloseIsRejected(t *testing.T) {
	p := &memoryPersister{}
	s := Open(context.Background(), &testActor{id: "u1"}, WithPersister(p))
	mustRecord(t, s, TargetApp, "A1", ActionView)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := s.Record(TargetApp, "A1", ActionLike, nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if s.HasActed(TargetApp, "A1", ActionLike) {
		t.Fatal("rejected record must not reach the log")
	}
	if got := p.snapshot(); len(got) != 1 {
		t.Fatalf("expected only the pre-close event on disk, got %d", len(got))
	}
	if n := s.CountOf(TargetApp, "A1", ActionView); n != 1 {
		t.Fatalf("queries should still answer after close, got %d", n)
	}
}

func TestRehydrateDropsInvalidRecords(t *testing.T) {
	p := &memoryPersister{events: []Event{
		{ID: "ok", ActorID: "u1", TargetType: TargetApp, TargetID: "A1", Action: ActionView},
		{ID: "bad-type", ActorID: "u1", TargetType: "blog", TargetID: "B1", Action: ActionView},
		{ID: "bad-action", ActorID: "u1", TargetType: TargetApp, TargetID: "A1", Action: "poke"},
		{ID: "no-actor", TargetType: TargetApp, TargetID: "A1", Action: ActionLike},
		{ID: "no-target", ActorID: "u2", TargetType: TargetApp, Action: ActionView},
	}}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := newTestStore(t, &testActor{id: "u1"}, WithPersister(p), WithLogger(logger))

	events := s.Events()
	if len(events) != 1 || events[0].ID != "ok" {
		t.Fatalf("expected only the valid record, got %+v", events)
	}
	if got := strings.Count(buf.String(), "dropping invalid interaction record"); got != 4 {
		t.Fatalf("expected 4 warnings, got %d:\n%s", got, buf.String())
	}
}

func TestMetadataToleratesNonStringValues(t *testing.T) {
	var e Event
	raw := `{"id":"1","actorId":"u1","targetType":"review","targetId":"R1","action":"comment","timestamp":"2025-01-02T03:04:05Z","metadata":{"text":"ok","rating":5,"tags":["a", "b"],"draft":false}}`
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]string{"text": "ok", "rating": "5", "tags": `["a","b"]`, "draft": "false"}
	for k, v := range want {
		if e.Metadata[k] != v {
			t.Fatalf("metadata[%s] = %q, want %q", k, e.Metadata[k], v)
		}
	}

	var bare Event
	if err := json.Unmarshal([]byte(`{"id":"2","metadata":null}`), &bare); err != nil {
		t.Fatalf("unmarshal null metadata: %v", err)
	}
	if bare.Metadata != nil {
		t.Fatalf("expected nil metadata, got %v", bare.Metadata)
	}
}

func TestSemanticsCoversEveryAction(t *testing.T) {
	toggles := map[Action]bool{ActionLike: true, ActionFavorite: true, ActionFollow: true}
	for _, a := range AllActions() {
		want := Append
		if toggles[a] {
			want = Toggle
		}
		if got := a.Semantics(); got != want {
			t.Errorf("%s: expected %s, got %s", a, want, got)
		}
	}
}

func TestParse(t *testing.T) {
	if got, err := ParseTargetType(" AI_Agent "); err != nil || got != TargetAIAgent {
		t.Fatalf("ParseTargetType = %q, %v", got, err)
	}
	if _, err := ParseTargetType("widget"); !errors.Is(err, ErrUnknownTargetType) {
		t.Fatalf("expected ErrUnknownTargetType, got %v", err)
	}
	if got, err := ParseAction("Download"); err != nil || got != ActionDownload {
		t.Fatalf("ParseAction = %q, %v", got, err)
	}
	if _, err := ParseAction("clap"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}
