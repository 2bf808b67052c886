package state

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE state (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("abc123")))

	v, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("abc123"), v)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestDelete_RemovesKey(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("v")))
	require.NoError(t, r.Delete(ctx, "k"))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDelete_AbsentKeyIsNoError(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	require.NoError(t, r.Delete(context.Background(), "absent"))
}

func TestClear_RemovesEverything(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("t")))
	require.NoError(t, r.Set(ctx, KeyLastRoute, []byte("/products")))
	require.NoError(t, r.Clear(ctx))

	for _, k := range []string{KeyToken, KeyLastRoute} {
		v, err := r.Get(ctx, k)
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}

func TestReset_WipesStateAndSeedsRoute(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("abc123")))
	require.NoError(t, r.Set(ctx, KeyLastRoute, []byte("/dashboard")))

	require.NoError(t, Reset(ctx, db, "/register"))

	v, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Nil(t, v)

	route, err := r.Get(ctx, KeyLastRoute)
	require.NoError(t, err)
	assert.Equal(t, []byte("/register"), route)
}

func TestOpen_AppliesMigrations(t *testing.T) {
	db, err := Open(context.Background(), "file:statetest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(1)

	r := NewSQLiteRepository(db)
	require.NoError(t, r.Set(context.Background(), "k", []byte("v")))
}
