// Package log prints the raw interaction log.
package log

import (
	"context"
	"errors"
	"log/slog"

	"tableflip.dev/portal/pkg/app"
	"tableflip.dev/portal/pkg/interaction"
	"tableflip.dev/portal/pkg/printers"
	"tableflip.dev/portal/pkg/store"
)

type Log struct {
	Persistence store.Persistence
	Logger      *slog.Logger
	// Filters; zero values match everything.
	ActorID    string
	TargetType interaction.TargetType
	TargetID   string
	Action     interaction.Action
	// Limit keeps only the newest events when positive.
	Limit  int
	ShowID bool
	JSON   bool
}

func (n *Log) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get log, no persistence")
	}
	svc := app.New(ctx, app.Options{Persister: n.Persistence, Logger: n.Logger})
	defer func() { _ = svc.Close() }()

	events := n.Filter(svc.Interactions.Events())
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	if n.JSON {
		return pp.JSON(events)
	}
	pp.TitleWithCount("Interactions", len(events))
	pp.Events(events...)
	return nil
}

// Filter applies the filters and the limit, keeping log order.
func (n *Log) Filter(in []interaction.Event) []interaction.Event {
	out := make([]interaction.Event, 0, len(in))
	for _, e := range in {
		if n.ActorID != "" && e.ActorID != n.ActorID {
			continue
		}
		if n.TargetType != "" && e.TargetType != n.TargetType {
			continue
		}
		if n.TargetID != "" && e.TargetID != n.TargetID {
			continue
		}
		if n.Action != "" && e.Action != n.Action {
			continue
		}
		out = append(out, e)
	}
	if n.Limit > 0 && len(out) > n.Limit {
		out = out[len(out)-n.Limit:]
	}
	return out
}
