package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	stores := map[string]Store{"memory": NewMemory()}

	db, err := Connect(TypeSQLite, filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	stores["sqlite"] = NewSQLStore(db)

	bs, err := OpenBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	stores["badger"] = bs

	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		pg, err := Connect(TypePostgres, dsn)
		require.NoError(t, err)
		_, err = pg.Exec("DELETE FROM kv_store")
		require.NoError(t, err)
		stores["postgres"] = NewSQLStore(pg)
	}

	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, "a", "1"))
			require.NoError(t, store.Set(ctx, "a", "2"))
			v, ok, err := store.Get(ctx, "a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "2", v)

			// empty strings are values, not absence
			require.NoError(t, store.Set(ctx, "empty", ""))
			v, ok, err = store.Get(ctx, "empty")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "", v)

			require.NoError(t, store.Remove(ctx, "a"))
			require.NoError(t, store.Remove(ctx, "a"))
			_, ok, _ = store.Get(ctx, "a")
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, "x", `{"date":"2024-01-01"}`))
			require.NoError(t, store.Set(ctx, "y", "y"))
			require.NoError(t, store.Set(ctx, "z", "z"))
			require.NoError(t, store.MultiRemove(ctx, "x", "y", "nope"))
			require.NoError(t, store.MultiRemove(ctx))

			for _, k := range []string{"x", "y"} {
				_, ok, err := store.Get(ctx, k)
				require.NoError(t, err)
				assert.False(t, ok, k)
			}
			v, ok, _ = store.Get(ctx, "z")
			assert.True(t, ok)
			assert.Equal(t, "z", v)
		})
	}
}

func TestSQLiteStorePersistsAcrossConnections(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "kv.db")

	db, err := Connect(TypeSQLite, path)
	require.NoError(t, err)
	require.NoError(t, NewSQLStore(db).Set(ctx, "@ya_tvorets_xp", "120"))
	require.NoError(t, db.Close())

	db, err = Connect(TypeSQLite, path)
	require.NoError(t, err)
	store := NewSQLStore(db)
	defer store.Close()

	v, ok, err := store.Get(ctx, "@ya_tvorets_xp")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "120", v)
}

func TestOpenSelectsBackend(t *testing.T) {
	s, err := Open(Options{Type: TypeMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(Options{Type: TypeBadger, BadgerDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &BadgerStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(Options{Type: "mongo"})
	assert.Error(t, err)

	_, err = Open(Options{Type: TypePostgres})
	assert.Error(t, err)
}

func TestFaultStore(t *testing.T) {
	ctx := context.Background()
	f := NewFaultStore(NewMemory())

	require.NoError(t, f.Set(ctx, "k", "v"))

	f.FailReads(true)
	_, _, err := f.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrInjected)

	f.FailReads(false)
	f.FailWrites(true)
	assert.ErrorIs(t, f.Set(ctx, "k", "w"), ErrInjected)
	assert.ErrorIs(t, f.MultiRemove(ctx, "k"), ErrInjected)

	v, ok, err := f.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
