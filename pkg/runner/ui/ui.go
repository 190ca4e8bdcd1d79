// Package ui starts the interactive terminal UI.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/portal/pkg/app"
	"tableflip.dev/portal/pkg/interaction"
	"tableflip.dev/portal/pkg/nav"
	"tableflip.dev/portal/pkg/tui"
)

// ErrNotTerminal is returned when stdout is not an interactive terminal.
var ErrNotTerminal = errors.New("ui: stdout is not a terminal")

type UI struct {
	Persistence interaction.Persister
	ActorID     string
}

func (u *UI) Do(ctx context.Context) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNotTerminal
	}

	trace, closer, err := tui.OpenTraceLog()
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	svc := app.New(ctx, app.Options{
		ActorID:    u.ActorID,
		Persister:  u.Persistence,
		Logger:     trace,
		NavOptions: []nav.Option{nav.WithObserver(tui.TraceObserver(trace))},
	})
	runErr := tui.Run(svc)
	if err := svc.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}
