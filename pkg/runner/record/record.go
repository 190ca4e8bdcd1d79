// Package record implements the CLI verb that appends one interaction.
package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fatih/color"

	"tableflip.dev/portal/pkg/app"
	"tableflip.dev/portal/pkg/glyph"
	"tableflip.dev/portal/pkg/interaction"
	"tableflip.dev/portal/pkg/printers"
	"tableflip.dev/portal/pkg/store"
)

// Record stores one action by ActorID on a target.
type Record struct {
	Persistence store.Persistence
	Logger      *slog.Logger
	ActorID     string
	Target      interaction.TargetType
	ID          string
	Action      interaction.Action
	Metadata    map[string]string
	JSON        bool
}

type result struct {
	Kind  string            `json:"kind"`
	Event interaction.Event `json:"event"`
}

func (r *Record) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("can not record, no persistence")
	}

	svc := app.New(ctx, app.Options{
		ActorID:   r.ActorID,
		Persister: r.Persistence,
		Logger:    r.Logger,
	})
	change, err := svc.Interactions.Record(r.Target, r.ID, r.Action, r.Metadata)
	if err != nil {
		_ = svc.Close()
		return err
	}
	// Close waits for the log to reach disk.
	if err := svc.Close(); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	if r.JSON {
		return pp.JSON(result{Kind: change.Kind.String(), Event: change.Event})
	}

	g := glyph.For(change.Event.Action)
	sym := g.Symbol
	if change.Kind == interaction.Removed {
		sym = g.Outline
	}
	faint := color.New(color.Faint)
	_, _ = fmt.Fprintf(color.Output, "%s %s %s/%s %s\n",
		sym, change.Kind, change.Event.TargetType, change.Event.TargetID,
		faint.Sprintf("(%s by %s)", change.Event.Action, change.Event.ActorID))
	return nil
}
