package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_GetMissing(t *testing.T) {
	st := newTestSQLiteStore(t)

	data, err := st.Get(context.Background(), KeyHarvests)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSQLite_SetAndGet(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, KeyLanguage, []byte("hi")))

	data, err := st.Get(ctx, KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}

func TestSQLite_SetOverwrites(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, KeyHarvests, []byte(`[{"id":"a"}]`)))
	require.NoError(t, st.Set(ctx, KeyHarvests, []byte(`[]`)))

	data, err := st.Get(ctx, KeyHarvests)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	assert.NoError(t, st.Migrate(context.Background()))
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Migrate(ctx))
	require.NoError(t, st.Set(ctx, KeyLanguage, []byte("ta")))
	require.NoError(t, st.Close())

	st2, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st2.Close() }) //nolint:errcheck
	data, err := st2.Get(ctx, KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, "ta", string(data))
}
