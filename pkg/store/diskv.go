// Package store keeps the interaction log in a durable key-value slot backed
// by diskv.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/portal/pkg/interaction"
)

// LogKey is the single diskv key holding the serialized interaction log.
const LogKey = "interactions"

// Persistence is the durable slot for the interaction log.
type Persistence interface {
	interaction.Persister
	Watch(ctx context.Context) (<-chan Event, error)
	BasePath() string
}

// Option configures a Persistence.
type Option func(*persistence)

// WithLogger sets the logger that reports records skipped while decoding.
func WithLogger(logger *slog.Logger) Option {
	return func(p *persistence) {
		if logger != nil {
			p.log = logger
		}
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(filepath.Join(basePath, tempDir), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	p := &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           filepath.Join(basePath, tempDir),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
		}),
		basePath: basePath,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

const tempDir = ".tmp"

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *slog.Logger
}

func (p *persistence) BasePath() string {
	return p.basePath
}

// Load reads the log. An absent or empty slot is an empty log; a slot that is
// not a JSON array is reported so the caller can decide to start over. A
// single record that cannot be decoded is skipped and logged.
func (p *persistence) Load(_ context.Context) ([]interaction.Event, error) {
	// Direct reads bypass diskv's cache so a watcher sees writes made by
	// other processes.
	rc, err := p.d.ReadStream(LogKey, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", LogKey, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", LogKey, err)
	}
	events, skipped, err := decodeLog(data)
	if err != nil {
		return nil, err
	}
	for _, s := range skipped {
		p.log.Warn("store: skipping undecodable record", "key", LogKey, "error", s)
	}
	return events, nil
}

// Save replaces the slot with the full log.
func (p *persistence) Save(_ context.Context, events []interaction.Event) error {
	data, err := encodeLog(events)
	if err != nil {
		return err
	}
	if err := p.d.Write(LogKey, data); err != nil {
		return fmt.Errorf("store: write %s: %w", LogKey, err)
	}
	return nil
}

func encodeLog(events []interaction.Event) ([]byte, error) {
	if events == nil {
		events = []interaction.Event{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("store: encode log: %w", err)
	}
	return data, nil
}

// decodeLog decodes records one at a time so one bad record does not cost
// the rest of the log.
func decodeLog(data []byte) ([]interaction.Event, []error, error) {
	if len(data) == 0 {
		return nil, nil, nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("store: decode log: %w", err)
	}
	events := make([]interaction.Event, 0, len(records))
	var skipped []error
	for i, raw := range records {
		var e interaction.Event
		if err := json.Unmarshal(raw, &e); err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		events = append(events, e)
	}
	return events, skipped, nil
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
