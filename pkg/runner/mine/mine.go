// Package mine lists what the current actor has liked, favorited or
// otherwise acted on.
package mine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tableflip.dev/portal/pkg/app"
	"tableflip.dev/portal/pkg/glyph"
	"tableflip.dev/portal/pkg/interaction"
	"tableflip.dev/portal/pkg/printers"
	"tableflip.dev/portal/pkg/store"
)

type Mine struct {
	Persistence store.Persistence
	Logger      *slog.Logger
	ActorID     string
	Action      interaction.Action
	JSON        bool
}

func (m *Mine) Do(ctx context.Context) error {
	if m.Persistence == nil {
		return errors.New("can not list, no persistence")
	}
	svc := app.New(ctx, app.Options{
		ActorID:   m.ActorID,
		Persister: m.Persistence,
		Logger:    m.Logger,
	})
	defer func() { _ = svc.Close() }()

	events := svc.Mine(m.Action)
	pp := printers.PrettyPrint{}
	if m.JSON {
		if events == nil {
			events = []interaction.Event{}
		}
		return pp.JSON(events)
	}
	pp.TitleWithCount(fmt.Sprintf("%s %s", glyph.For(m.Action).Symbol, glyph.For(m.Action).Meaning), len(events))
	pp.Events(events...)
	return nil
}
