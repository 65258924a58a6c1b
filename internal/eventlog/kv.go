package eventlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/FilteringLog/internal/remotekv"
	"github.com/AdguardTeam/golibs/errors"
)

// KVConfig is the configuration of the key-value based filtering log.  All
// fields must not be empty.
type KVConfig struct {
	// KV is the remote key-value storage in which the events are kept.
	KV remotekv.Interface
}

// NewKV creates a new key-value based filtering log.  Its concurrency
// guarantees are those of the underlying storage.  c must not be nil.
func NewKV(c *KVConfig) (l *KV) {
	return &KV{
		kv: c.KV,
	}
}

// KV is the filtering log implementation that stores events by ID in a
// remote key-value storage, allowing the events to be looked up later.
type KV struct {
	kv remotekv.Interface
}

// type check
var _ Interface = (*KV)(nil)

// Write implements the [Interface] interface for *KV.
func (l *KV) Write(ctx context.Context, e *extlog.FilteringEvent) (err error) {
	defer func() { err = errors.Annotate(err, "writing event %q: %w", e.ID) }()

	b, err := json.Marshal(newJSONLEntry(e))
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	return l.kv.Set(ctx, string(e.ID), b)
}

// type check
var _ Finder = (*KV)(nil)

// Find implements the [Finder] interface for *KV.
func (l *KV) Find(ctx context.Context, id extlog.EventID) (e *extlog.FilteringEvent, err error) {
	defer func() { err = errors.Annotate(err, "finding event %q: %w", id) }()

	b, ok, err := l.kv.Get(ctx, string(id))
	if err != nil {
		return nil, fmt.Errorf("getting: %w", err)
	} else if !ok {
		return nil, ErrNotFound
	}

	ent := &jsonlEntry{}
	err = json.Unmarshal(b, ent)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}

	return ent.toInternal(), nil
}
