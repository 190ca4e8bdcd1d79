package interaction

import (
	"context"
	"log/slog"
	"sync"
)

// writer serialises log snapshots to the persister off the caller's path.
// Only the newest pending snapshot is written; older ones are superseded.
type writer struct {
	ctx       context.Context
	persister Persister
	log       *slog.Logger

	mu      sync.Mutex
	pending []Event
	dirty   bool
	lastErr error

	kick    chan struct{}
	flushes chan chan struct{}
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

func startWriter(ctx context.Context, p Persister, logger *slog.Logger) *writer {
	w := &writer{
		ctx:       ctx,
		persister: p,
		log:       logger,
		kick:      make(chan struct{}, 1),
		flushes:   make(chan chan struct{}),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go w.run()
	return w
}

// submit queues snapshot without blocking.
func (w *writer) submit(snapshot []Event) {
	w.mu.Lock()
	w.pending = snapshot
	w.dirty = true
	w.mu.Unlock()

	select {
	case w.kick <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.kick:
			w.writePending()
		case reply := <-w.flushes:
			w.writePending()
			close(reply)
		case <-w.stop:
			w.writePending()
			return
		}
	}
}

func (w *writer) writePending() {
	w.mu.Lock()
	if !w.dirty {
		w.mu.Unlock()
		return
	}
	snapshot := w.pending
	w.pending = nil
	w.dirty = false
	w.mu.Unlock()

	if err := w.persister.Save(w.ctx, snapshot); err != nil {
		w.log.Error("persist interaction log", "error", err, "events", len(snapshot))
		w.mu.Lock()
		w.lastErr = err
		w.mu.Unlock()
		return
	}
	w.log.Debug("interaction log persisted", "events", len(snapshot))
}

func (w *writer) flush(ctx context.Context) error {
	reply := make(chan struct{})
	select {
	case w.flushes <- reply:
	case <-w.done:
		return w.takeErr()
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-reply:
	case <-ctx.Done():
		return ctx.Err()
	}
	return w.takeErr()
}

func (w *writer) close() error {
	closed := false
	w.once.Do(func() {
		close(w.stop)
		closed = true
	})
	<-w.done
	if !closed {
		return ErrClosed
	}
	return w.takeErr()
}

func (w *writer) takeErr() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.lastErr
	w.lastErr = nil
	return err
}
