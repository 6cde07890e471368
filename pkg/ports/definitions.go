package ports

import (
	"context"

	"shortlink/pkg/core/domain"
)

// KVStore is a durable key-value store holding the persisted engine state.
// Implementations are best-effort: the engine never depends on a write
// having succeeded.
type KVStore interface {
	// Get returns the value for a key. The boolean reports presence.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores the value for a key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Persister saves and restores engine state across sessions.
type Persister interface {
	// Save serializes the entry set and the code index to the durable store.
	Save(ctx context.Context, entries []*domain.Entry, codeIndex map[string]string) error
	// Load restores both structures at startup. Missing or corrupt data
	// yields empty structures, never an error.
	Load(ctx context.Context) ([]*domain.Entry, map[string]string)
}

// CodeGenerator produces candidate short codes.
type CodeGenerator interface {
	Generate() string
}
