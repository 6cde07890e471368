package persistence

import (
	"context"
	"encoding/json"
	"log/slog"

	"shortlink/pkg/core/domain"
	"shortlink/pkg/ports"
)

// Durable record keys. The code index is stored separately so a cold start
// can cross-check it against the entry collection.
const (
	entriesKey   = "entries"
	codeIndexKey = "code-index"
)

// Adapter serializes the entry set and the code index to a durable KV store.
// Writes are best-effort: failures are logged and never surfaced as engine
// failures.
type Adapter struct {
	kv  ports.KVStore
	log *slog.Logger
}

var _ ports.Persister = (*Adapter)(nil)

func NewAdapter(kv ports.KVStore, logger *slog.Logger) *Adapter {
	return &Adapter{kv: kv, log: logger}
}

// Save writes both durable records. The first write error is returned so the
// engine can log it; partial writes leave the previous record in place.
func (a *Adapter) Save(ctx context.Context, entries []*domain.Entry, codeIndex map[string]string) error {
	entryData, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	indexData, err := json.Marshal(codeIndex)
	if err != nil {
		return err
	}

	if err := a.kv.Set(ctx, entriesKey, entryData); err != nil {
		return err
	}
	return a.kv.Set(ctx, codeIndexKey, indexData)
}

// Load restores the persisted state. Missing or corrupt data yields empty
// structures; a code index that disagrees with the entry collection is
// rebuilt from the entries.
func (a *Adapter) Load(ctx context.Context) ([]*domain.Entry, map[string]string) {
	entries := a.loadEntries(ctx)
	index := a.loadIndex(ctx)

	if !indexMatches(entries, index) {
		a.log.Warn("persisted code index disagrees with entry collection, rebuilding",
			"action", "persist", "entries", len(entries), "indexed", len(index))
		index = rebuildIndex(entries)
	}

	return entries, index
}

func (a *Adapter) loadEntries(ctx context.Context) []*domain.Entry {
	data, ok, err := a.kv.Get(ctx, entriesKey)
	if err != nil {
		a.log.Warn("reading persisted entries failed", "action", "persist", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var entries []*domain.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		a.log.Warn("discarding corrupt persisted entries", "action", "persist", "error", err)
		return nil
	}
	return entries
}

func (a *Adapter) loadIndex(ctx context.Context) map[string]string {
	data, ok, err := a.kv.Get(ctx, codeIndexKey)
	if err != nil || !ok {
		return nil
	}

	var index map[string]string
	if err := json.Unmarshal(data, &index); err != nil {
		a.log.Warn("discarding corrupt persisted code index", "action", "persist", "error", err)
		return nil
	}
	return index
}

func indexMatches(entries []*domain.Entry, index map[string]string) bool {
	if len(index) != len(entries) {
		return false
	}
	for _, e := range entries {
		if index[e.ShortCode] != e.ID {
			return false
		}
	}
	return true
}

func rebuildIndex(entries []*domain.Entry) map[string]string {
	index := make(map[string]string, len(entries))
	for _, e := range entries {
		index[e.ShortCode] = e.ID
	}
	return index
}
