package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortlink/pkg/adapters/storage/sqlite"
)

func TestKVStore_RoundTrip(t *testing.T) {
	dbPath := "file:" + filepath.Join(t.TempDir(), "test.db")
	kv, err := sqlite.NewKVStore(dbPath)
	require.NoError(t, err)
	defer kv.Close()

	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "entries")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "entries", []byte(`[{"id":"id-1"}]`)))

	value, ok, err := kv.Get(ctx, "entries")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`[{"id":"id-1"}]`), value)
}

func TestKVStore_SetOverwrites(t *testing.T) {
	kv, err := sqlite.NewKVStore("file:memdb1?mode=memory&cache=shared")
	require.NoError(t, err)
	defer kv.Close()

	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "code-index", []byte(`{"a":"1"}`)))
	require.NoError(t, kv.Set(ctx, "code-index", []byte(`{"b":"2"}`)))

	value, ok, err := kv.Get(ctx, "code-index")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"b":"2"}`), value)
}

func TestKVStore_SurvivesReopen(t *testing.T) {
	dbPath := "file:" + filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	kv, err := sqlite.NewKVStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "entries", []byte(`[]`)))
	require.NoError(t, kv.Close())

	kv2, err := sqlite.NewKVStore(dbPath)
	require.NoError(t, err)
	defer kv2.Close()

	value, ok, err := kv2.Get(ctx, "entries")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`[]`), value)
}
