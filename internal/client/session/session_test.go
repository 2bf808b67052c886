package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/shopkeeper/internal/client/state"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE state (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	return NewSQLiteStore(state.NewSQLiteRepository(db))
}

func TestStore_EmptyByDefault(t *testing.T) {
	s := setupStore(t)

	token, ok, err := s.Get(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, token)
}

func TestStore_SetThenGet(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "abc123"))

	token, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc123", token)
}

func TestStore_SetOverwrites(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "first"))
	require.NoError(t, s.Set(ctx, "second"))

	token, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", token)
}

func TestStore_Clear(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "abc123"))
	require.NoError(t, s.Clear(ctx))

	_, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	// clearing an already empty store is fine
	require.NoError(t, s.Clear(ctx))
}
