// Package stats prints the derived counters of a target, optionally
// refreshing them whenever another process rewrites the log.
package stats

import (
	"context"
	"errors"
	"log/slog"

	"tableflip.dev/portal/pkg/app"
	"tableflip.dev/portal/pkg/interaction"
	"tableflip.dev/portal/pkg/printers"
	"tableflip.dev/portal/pkg/store"
)

type Stats struct {
	Persistence store.Persistence
	Logger      *slog.Logger
	ActorID     string
	Target      interaction.TargetType
	ID          string
	Watch       bool
	JSON        bool

	// printer is swapped in tests.
	printer *printers.PrettyPrint
}

type result struct {
	TargetType interaction.TargetType      `json:"targetType"`
	TargetID   string                      `json:"targetId"`
	Stats      interaction.Stats           `json:"stats"`
	Acted      map[interaction.Action]bool `json:"acted"`
}

func (s *Stats) Do(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("can not get stats, no persistence")
	}
	if err := s.print(ctx); err != nil {
		return err
	}
	if !s.Watch {
		return nil
	}

	events, err := s.Persistence.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type == store.EventWatchError {
				s.logger().Warn("watch error, reloading", "err", ev.Err)
			}
			if err := s.print(ctx); err != nil {
				return err
			}
		}
	}
}

// Snapshot reloads the log and derives the target's counters for the actor.
func (s *Stats) Snapshot(ctx context.Context) (interaction.Stats, map[interaction.Action]bool) {
	svc := app.New(ctx, app.Options{
		ActorID:   s.ActorID,
		Persister: s.Persistence,
		Logger:    s.Logger,
	})
	defer func() { _ = svc.Close() }()

	acted := make(map[interaction.Action]bool)
	for _, a := range interaction.AllActions() {
		if a.Semantics() == interaction.Toggle {
			acted[a] = svc.Interactions.HasActed(s.Target, s.ID, a)
		}
	}
	return svc.Interactions.Aggregate(s.Target, s.ID), acted
}

func (s *Stats) print(ctx context.Context) error {
	st, acted := s.Snapshot(ctx)
	pp := s.printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	if s.JSON {
		return pp.JSON(result{TargetType: s.Target, TargetID: s.ID, Stats: st, Acted: acted})
	}
	pp.Stats(s.Target, s.ID, st, acted)
	return nil
}

func (s *Stats) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
