package docstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfcoelho/medidas/internal/docstore"
)

func openSQLite(t *testing.T) *docstore.SQLite {
	t.Helper()
	store, err := docstore.OpenSQLite(filepath.Join(t.TempDir(), "medidas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLite_LoadEmptyStore(t *testing.T) {
	store := openSQLite(t)

	doc, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, doc.Measurements)
}

func TestSQLite_SaveLoad_RoundTrip(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	in := sampleDocument()
	saved, err := store.Save(ctx, in)
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Measurements, 1)
	assert.Equal(t, in.Measurements[0].ID, loaded.Measurements[0].ID)
	assert.True(t, saved.LastUpdate.Equal(loaded.LastUpdate))
}

func TestSQLite_SaveOverwrites(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	_, err := store.Save(ctx, sampleDocument())
	require.NoError(t, err)
	_, err = store.Save(ctx, sampleDocument())
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Measurements, 1, "one document row, overwritten in place")
}
