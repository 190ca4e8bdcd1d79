package app

import (
	"context"
	"errors"
	"log/slog"

	"tableflip.dev/portal/pkg/actor"
	"tableflip.dev/portal/pkg/interaction"
	"tableflip.dev/portal/pkg/nav"
	"tableflip.dev/portal/pkg/view"
)

// Service wires the navigation controller and the interaction store to a
// single current actor so UIs and CLIs share the same behaviour. Each process
// (or test) owns its own Service; nothing here is global.
type Service struct {
	Actor        *actor.Current
	Nav          *nav.Controller
	Interactions *interaction.Store
}

// Options configures New.
type Options struct {
	ActorID    string
	Persister  interaction.Persister
	Logger     *slog.Logger
	NavOptions []nav.Option
}

// ErrNoDetail is returned when an action needs an open detail view.
var ErrNoDetail = errors.New("app: no detail view open")

// New builds a Service, rehydrating the interaction log from o.Persister.
func New(ctx context.Context, o Options) *Service {
	current := actor.NewCurrent(o.ActorID)
	opts := []interaction.Option{interaction.WithLogger(o.Logger)}
	if o.Persister != nil {
		opts = append(opts, interaction.WithPersister(o.Persister))
	}
	return &Service{
		Actor:        current,
		Nav:          nav.New(o.NavOptions...),
		Interactions: interaction.Open(ctx, current, opts...),
	}
}

// targetForAxis maps detail axes onto the content type recorded for them.
var targetForAxis = map[view.Axis]interaction.TargetType{
	view.AxisSolution: interaction.TargetSolution,
	view.AxisApp:      interaction.TargetApp,
	view.AxisCase:     interaction.TargetCase,
	view.AxisReview:   interaction.TargetReview,
	view.AxisArticle:  interaction.TargetArticle,
	view.AxisProfile:  interaction.TargetUser,
	view.AxisAgent:    interaction.TargetAIAgent,
}

// TargetFor returns the target type an axis selection refers to. Axes such as
// client and tab have none.
func TargetFor(axis view.Axis) (interaction.TargetType, bool) {
	t, ok := targetForAxis[axis]
	return t, ok
}

// Open drills into id on axis and records a view of it.
func (s *Service) Open(axis view.Axis, id string) error {
	if err := s.Nav.Select(axis, id); err != nil {
		return err
	}
	return s.recordView(axis, id)
}

// OpenIn jumps to section with id selected on axis and records a view.
func (s *Service) OpenIn(section view.Section, axis view.Axis, id string) error {
	if err := s.Nav.Jump(section, axis, id); err != nil {
		return err
	}
	return s.recordView(axis, id)
}

// SearchInto hands query over to section's list view.
func (s *Service) SearchInto(section view.Section, query string) error {
	return s.Nav.NavigateWithSearch(section, query)
}

// Detail returns the target shown by the current detail view.
func (s *Service) Detail() (interaction.TargetType, string, bool) {
	axis, id, ok := s.Nav.Current().Detail()
	if !ok {
		return "", "", false
	}
	t, ok := TargetFor(axis)
	if !ok {
		return "", "", false
	}
	return t, id, true
}

// ActOnDetail records action on whatever the current detail view shows.
func (s *Service) ActOnDetail(action interaction.Action, metadata map[string]string) (interaction.Change, error) {
	t, id, ok := s.Detail()
	if !ok {
		return interaction.Change{}, ErrNoDetail
	}
	return s.Interactions.Record(t, id, action, metadata)
}

// Mine returns the current actor's events for action.
func (s *Service) Mine(action interaction.Action) []interaction.Event {
	return s.Interactions.ItemsActedOnBy(s.Actor.ActorID(), action)
}

// SwitchActor replaces the current actor and returns the previous one.
func (s *Service) SwitchActor(id string) string {
	return s.Actor.Set(id)
}

// Close flushes and stops background persistence.
func (s *Service) Close() error {
	return s.Interactions.Close()
}

func (s *Service) recordView(axis view.Axis, id string) error {
	t, ok := TargetFor(axis)
	if !ok || id == "" {
		return nil
	}
	_, err := s.Interactions.Record(t, id, interaction.ActionView, nil)
	return err
}
