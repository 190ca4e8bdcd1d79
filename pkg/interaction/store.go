package interaction

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/portal/pkg/actor"
)

// Persister is the durable slot the log is written to and rehydrated from.
type Persister interface {
	Load(ctx context.Context) ([]Event, error)
	Save(ctx context.Context, events []Event) error
}

// Option configures a Store.
type Option func(*options)

type options struct {
	persister Persister
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// WithPersister enables write-through persistence to p.
func WithPersister(p Persister) Option {
	return func(o *options) {
		o.persister = p
	}
}

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIDGenerator overrides how event ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}

// Store owns the interaction log. It is the only writer of the log; views read
// counts through its query methods.
type Store struct {
	actor actor.Provider
	now   func() time.Time
	newID func() string
	log   *slog.Logger

	mu     sync.RWMutex
	events []Event
	closed bool

	w *writer
}

// Open builds a store and rehydrates it from the configured persister. A
// missing or unreadable slot yields an empty log; it is never fatal. The
// provider is read on every call, so switching actors needs no migration.
// Persisted records that Record would reject are dropped with a warning.
func Open(ctx context.Context, who actor.Provider, opts ...Option) *Store {
	o := &options{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	s := &Store{
		actor: who,
		now:   o.now,
		newID: o.newID,
		log:   o.logger,
	}
	if o.persister == nil {
		return s
	}

	events, err := o.persister.Load(ctx)
	switch {
	case err != nil:
		s.log.Warn("interaction log unreadable, starting empty", "error", err)
	default:
		s.events = s.keepValid(events)
		s.log.Debug("interaction log rehydrated", "events", len(s.events))
	}
	s.w = startWriter(context.WithoutCancel(ctx), o.persister, s.log)
	return s
}

// Record registers action by the current actor on the target. Toggle-class
// actions delete the actor's live matching event if there is one; otherwise,
// and for every append-class action, a new event is appended.
func (s *Store) Record(t TargetType, targetID string, a Action, metadata map[string]string) (Change, error) {
	if err := validate(t, targetID, a); err != nil {
		return Change{}, err
	}
	actorID, err := s.currentActor()
	if err != nil {
		return Change{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Change{}, ErrClosed
	}
	var change Change
	switch a.Semantics() {
	case Toggle:
		if i := s.indexOf(actorID, t, targetID, a); i >= 0 {
			change = Change{Kind: Removed, Event: s.events[i].clone()}
			s.events = append(s.events[:i:i], s.events[i+1:]...)
			break
		}
		change = Change{Kind: Added, Event: s.appendLocked(actorID, t, targetID, a, metadata)}
	case Append:
		change = Change{Kind: Added, Event: s.appendLocked(actorID, t, targetID, a, metadata)}
	}
	// Submitting under the lock orders it before a concurrent Close.
	if s.w != nil {
		s.w.submit(s.snapshotLocked())
	}
	s.mu.Unlock()

	s.log.Debug("interaction recorded",
		"change", change.Kind.String(),
		"actor", actorID,
		"target", string(t)+"/"+targetID,
		"action", string(a))
	return change, nil
}

// HasActed reports whether the current actor has a live matching event.
func (s *Store) HasActed(t TargetType, targetID string, a Action) bool {
	actorID := s.actorID()
	if actorID == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(actorID, t, targetID, a) >= 0
}

// CountOf returns the number of matching events across all actors.
func (s *Store) CountOf(t TargetType, targetID string, a Action) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for i := range s.events {
		e := &s.events[i]
		if e.TargetType == t && e.TargetID == targetID && e.Action == a {
			n++
		}
	}
	return n
}

// Aggregate computes every counter for a target in one pass over the log.
// Unique visitors counts distinct actors among view events.
func (s *Store) Aggregate(t TargetType, targetID string) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	visitors := make(map[string]struct{})
	for i := range s.events {
		e := &s.events[i]
		if e.TargetType != t || e.TargetID != targetID {
			continue
		}
		switch e.Action {
		case ActionView:
			st.Views++
			visitors[e.ActorID] = struct{}{}
		case ActionLike:
			st.Likes++
		case ActionFavorite:
			st.Favorites++
		case ActionComment:
			st.Comments++
		case ActionShare:
			st.Shares++
		case ActionDownload:
			st.Downloads++
		}
	}
	st.UniqueVisitors = len(visitors)
	return st
}

// ItemsActedOnBy returns, in log order, every event of the given action by
// actorID.
func (s *Store) ItemsActedOnBy(actorID string, a Action) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for i := range s.events {
		e := &s.events[i]
		if e.ActorID == actorID && e.Action == a {
			out = append(out, e.clone())
		}
	}
	return out
}

// Events returns a copy of the whole log in append order.
func (s *Store) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Targets lists the distinct target ids of type t that have at least one
// event, in order of first appearance.
func (s *Store) Targets(t TargetType) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for i := range s.events {
		e := &s.events[i]
		if e.TargetType != t {
			continue
		}
		if _, ok := seen[e.TargetID]; ok {
			continue
		}
		seen[e.TargetID] = struct{}{}
		out = append(out, e.TargetID)
	}
	return out
}

// Flush blocks until every mutation so far has been handed to the persister,
// returning the last write error if one occurred.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	if s.w == nil {
		return nil
	}
	return s.w.flush(ctx)
}

// Close flushes pending writes and stops the background writer. Record and
// Flush return ErrClosed afterwards; queries keep answering from memory.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.closed = true
	s.mu.Unlock()
	if s.w == nil {
		return nil
	}
	return s.w.close()
}

// keepValid drops records with an unknown type or action, or without an
// actor or target id.
func (s *Store) keepValid(events []Event) []Event {
	out := events[:0:0]
	for i := range events {
		e := &events[i]
		err := validate(e.TargetType, e.TargetID, e.Action)
		if err == nil && strings.TrimSpace(e.ActorID) == "" {
			err = ErrNoActor
		}
		if err != nil {
			s.log.Warn("dropping invalid interaction record", "id", e.ID, "error", err)
			continue
		}
		out = append(out, *e)
	}
	return out
}

func (s *Store) appendLocked(actorID string, t TargetType, targetID string, a Action, metadata map[string]string) Event {
	e := Event{
		ID:         s.newID(),
		ActorID:    actorID,
		TargetType: t,
		TargetID:   targetID,
		Action:     a,
		Timestamp:  s.now().UTC(),
	}
	if len(metadata) > 0 {
		e.Metadata = make(Metadata, len(metadata))
		for k, v := range metadata {
			e.Metadata[k] = v
		}
	}
	s.events = append(s.events, e)
	return e.clone()
}

func (s *Store) indexOf(actorID string, t TargetType, targetID string, a Action) int {
	for i := range s.events {
		if s.events[i].matches(actorID, t, targetID, a) {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []Event {
	out := make([]Event, len(s.events))
	for i := range s.events {
		out[i] = s.events[i].clone()
	}
	return out
}

func (s *Store) actorID() string {
	if s.actor == nil {
		return ""
	}
	return strings.TrimSpace(s.actor.ActorID())
}

func (s *Store) currentActor() (string, error) {
	id := s.actorID()
	if id == "" {
		return "", ErrNoActor
	}
	return id, nil
}

func validate(t TargetType, targetID string, a Action) error {
	if !t.Valid() {
		return wrapValue(ErrUnknownTargetType, string(t))
	}
	if !a.Valid() {
		return wrapValue(ErrUnknownAction, string(a))
	}
	if strings.TrimSpace(targetID) == "" {
		return ErrEmptyTarget
	}
	return nil
}
