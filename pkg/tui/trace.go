package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"tableflip.dev/portal/pkg/nav"
	"tableflip.dev/portal/pkg/view"
)

// TraceLogEnv names the file the UI appends its navigation trace to.
const TraceLogEnv = "PORTAL_TUI_LOG"

// OpenTraceLog returns a debug logger writing to the file named by
// PORTAL_TUI_LOG. Without it the trace is discarded; the alt screen owns
// stdout and stderr.
func OpenTraceLog() (*slog.Logger, io.Closer, error) {
	path := os.Getenv(TraceLogEnv)
	if path == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("tui: open trace log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, f, nil
}

// TraceObserver logs every navigation transition.
func TraceObserver(logger *slog.Logger) nav.Observer {
	return func(op nav.Op, from, to view.Composite) {
		logger.Debug("nav",
			"op", string(op),
			"from", from.String(),
			"to", to.String(),
		)
	}
}
