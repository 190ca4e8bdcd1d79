// Package interaction records likes, favorites, views and the other user
// actions on portal content as an append-only event log, and answers every
// count the views display by scanning that log.
package interaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TargetType is the kind of content an event refers to.
type TargetType string

const (
	TargetSolution TargetType = "solution"
	TargetCase     TargetType = "case"
	TargetApp      TargetType = "app"
	TargetReview   TargetType = "review"
	TargetResource TargetType = "resource"
	TargetArticle  TargetType = "article"
	TargetUser     TargetType = "user"
	TargetResearch TargetType = "research"
	TargetAIAgent  TargetType = "ai_agent"
)

// AllTargetTypes returns the closed set of target types.
func AllTargetTypes() []TargetType {
	return []TargetType{
		TargetSolution,
		TargetCase,
		TargetApp,
		TargetReview,
		TargetResource,
		TargetArticle,
		TargetUser,
		TargetResearch,
		TargetAIAgent,
	}
}

// Valid reports whether t is a known target type.
func (t TargetType) Valid() bool {
	for _, candidate := range AllTargetTypes() {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTargetType converts raw input into a TargetType.
func ParseTargetType(raw string) (TargetType, error) {
	t := TargetType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownTargetType, raw)
	}
	return t, nil
}

// Action is what the actor did to the target.
type Action string

const (
	ActionView     Action = "view"
	ActionLike     Action = "like"
	ActionFavorite Action = "favorite"
	ActionShare    Action = "share"
	ActionComment  Action = "comment"
	ActionDownload Action = "download"
	ActionFollow   Action = "follow"
)

// AllActions returns the closed set of actions.
func AllActions() []Action {
	return []Action{
		ActionView,
		ActionLike,
		ActionFavorite,
		ActionShare,
		ActionComment,
		ActionDownload,
		ActionFollow,
	}
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	for _, candidate := range AllActions() {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAction converts raw input into an Action.
func ParseAction(raw string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(raw)))
	if !a.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownAction, raw)
	}
	return a, nil
}

// Semantics decides how a repeated action by the same actor is stored.
type Semantics int

const (
	// Append keeps every occurrence (two views are two events).
	Append Semantics = iota
	// Toggle cancels the previous occurrence (a second like is an un-like).
	Toggle
)

func (s Semantics) String() string {
	switch s {
	case Toggle:
		return "toggle"
	default:
		return "append"
	}
}

// Semantics returns how a is stored. Every action must be listed here; an
// unlisted action panics so a new kind cannot ship without a decision.
func (a Action) Semantics() Semantics {
	switch a {
	case ActionLike, ActionFavorite, ActionFollow:
		return Toggle
	case ActionView, ActionComment, ActionShare, ActionDownload:
		return Append
	default:
		panic(fmt.Sprintf("interaction: no semantics for action %q", string(a)))
	}
}

// Event is a single immutable interaction. The JSON layout is the persisted
// record format; readers must tolerate fields they do not know.
type Event struct {
	ID         string            `json:"id"`
	ActorID    string            `json:"actorId"`
	TargetType TargetType        `json:"targetType"`
	TargetID   string            `json:"targetId"`
	Action     Action            `json:"action"`
	Timestamp  time.Time         `json:"timestamp"`
	Metadata   Metadata          `json:"metadata,omitempty"`
}

// Metadata is free-form context attached to an event, such as comment text.
// Other writers may store non-string values; those are kept as their compact
// JSON text so the record still loads.
type Metadata map[string]string

// UnmarshalJSON implements json.Unmarshaler.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*m = nil
		return nil
	}
	out := make(Metadata, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return err
		}
		out[k] = buf.String()
	}
	*m = out
	return nil
}

// matches is the predicate shared by Record's toggle lookup and HasActed.
func (e *Event) matches(actorID string, t TargetType, targetID string, a Action) bool {
	return e.ActorID == actorID && e.TargetType == t && e.TargetID == targetID && e.Action == a
}

func (e *Event) clone() Event {
	out := *e
	if e.Metadata != nil {
		out.Metadata = make(Metadata, len(e.Metadata))
		for k, v := range e.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// Stats is derived from the log on demand and never stored.
type Stats struct {
	Views          int `json:"views"`
	UniqueVisitors int `json:"uniqueVisitors"`
	Likes          int `json:"likes"`
	Favorites      int `json:"favorites"`
	Comments       int `json:"comments"`
	Shares         int `json:"shares"`
	Downloads      int `json:"downloads"`
}

// ChangeKind says what Record did to the log.
type ChangeKind int

const (
	// Added means a new event was appended.
	Added ChangeKind = iota
	// Removed means a toggle-class event was cancelled.
	Removed
)

func (k ChangeKind) String() string {
	if k == Removed {
		return "removed"
	}
	return "added"
}

// Change reports the outcome of Record. Event is the appended or the deleted
// event.
type Change struct {
	Kind  ChangeKind
	Event Event
}

// Common errors.
var (
	ErrUnknownTargetType = errors.New("interaction: unknown target type")
	ErrUnknownAction     = errors.New("interaction: unknown action")
	ErrEmptyTarget       = errors.New("interaction: target id required")
	ErrNoActor           = errors.New("interaction: no current actor")
	ErrClosed            = errors.New("interaction: store closed")
)

func wrapValue(err error, value string) error {
	return fmt.Errorf("%w %q", err, value)
}
