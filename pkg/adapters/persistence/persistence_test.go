package persistence_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortlink/pkg/adapters/persistence"
	"shortlink/pkg/core/domain"
)

// memKV is an in-memory stand-in for the durable store.
type memKV struct {
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEntries() []*domain.Entry {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*domain.Entry{
		{
			ID:        "id-1",
			LongURL:   "https://first.com",
			ShortCode: "code0001",
			CreatedAt: base,
			ExpiresAt: base.Add(30 * time.Minute),
			Clicks:    3,
			IsValid:   true,
		},
		{
			ID:              "id-2",
			LongURL:         "https://second.com",
			ShortCode:       "cstm1234",
			CreatedAt:       base.Add(time.Minute),
			ExpiresAt:       base.Add(time.Hour),
			Clicks:          0,
			IsValid:         true,
			CustomShortCode: "cstm1234",
		},
	}
}

func TestAdapter_RoundTrip(t *testing.T) {
	kv := newMemKV()
	adapter := persistence.NewAdapter(kv, discardLogger())
	ctx := context.Background()

	entries := sampleEntries()
	index := map[string]string{"code0001": "id-1", "cstm1234": "id-2"}

	require.NoError(t, adapter.Save(ctx, entries, index))

	gotEntries, gotIndex := adapter.Load(ctx)
	require.Len(t, gotEntries, 2)
	assert.Equal(t, entries[0].ID, gotEntries[0].ID)
	assert.Equal(t, entries[0].ShortCode, gotEntries[0].ShortCode)
	assert.Equal(t, entries[0].Clicks, gotEntries[0].Clicks)
	assert.Equal(t, entries[1].CustomShortCode, gotEntries[1].CustomShortCode)
	assert.Equal(t, index, gotIndex)
}

func TestAdapter_Load_EmptyStore(t *testing.T) {
	adapter := persistence.NewAdapter(newMemKV(), discardLogger())

	entries, index := adapter.Load(context.Background())
	assert.Empty(t, entries)
	assert.Empty(t, index)
}

func TestAdapter_Load_CorruptEntries(t *testing.T) {
	kv := newMemKV()
	kv.data["entries"] = []byte("{not json")
	adapter := persistence.NewAdapter(kv, discardLogger())

	entries, index := adapter.Load(context.Background())
	assert.Empty(t, entries)
	assert.Empty(t, index)
}

func TestAdapter_Load_RebuildsStaleIndex(t *testing.T) {
	kv := newMemKV()
	adapter := persistence.NewAdapter(kv, discardLogger())
	ctx := context.Background()

	entries := sampleEntries()
	// Persist an index that disagrees with the entry collection.
	require.NoError(t, adapter.Save(ctx, entries, map[string]string{"stale": "id-9"}))

	gotEntries, gotIndex := adapter.Load(ctx)
	require.Len(t, gotEntries, 2)
	assert.Equal(t, map[string]string{
		"code0001": "id-1",
		"cstm1234": "id-2",
	}, gotIndex)
}

func TestAdapter_Load_CorruptIndexRebuilt(t *testing.T) {
	kv := newMemKV()
	adapter := persistence.NewAdapter(kv, discardLogger())
	ctx := context.Background()

	entries := sampleEntries()
	require.NoError(t, adapter.Save(ctx, entries, map[string]string{"code0001": "id-1", "cstm1234": "id-2"}))
	kv.data["code-index"] = []byte("][")

	gotEntries, gotIndex := adapter.Load(ctx)
	require.Len(t, gotEntries, 2)
	assert.Equal(t, "id-1", gotIndex["code0001"])
	assert.Equal(t, "id-2", gotIndex["cstm1234"])
}
