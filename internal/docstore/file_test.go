package docstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfcoelho/medidas/internal/docstore"
	"github.com/rfcoelho/medidas/internal/domain"
)

func sampleDocument() domain.Document {
	doc := domain.NewDocument()
	doc.Measurements = append(doc.Measurements,
		domain.NewMeasurement("waist", "Summer", "waist", 70, "cm"))
	doc.Sets = append(doc.Sets, domain.NewMeasurementSet("s1", "Summer"))
	return doc
}

func TestFile_Load_MissingFileYieldsEmptyDocument(t *testing.T) {
	store := docstore.NewFile(filepath.Join(t.TempDir(), "medidas.json"))

	doc, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, doc.Measurements)
	assert.Equal(t, domain.DocumentVersion, doc.Version)
}

func TestFile_SaveLoad_RoundTrip(t *testing.T) {
	store := docstore.NewFile(filepath.Join(t.TempDir(), "medidas.json"))
	ctx := context.Background()

	in := sampleDocument()
	saved, err := store.Save(ctx, in)
	require.NoError(t, err)
	assert.False(t, saved.LastUpdate.IsZero(), "server stamps lastUpdate")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Measurements, 1)
	assert.Equal(t, in.Measurements[0].ID, loaded.Measurements[0].ID)
	assert.True(t, saved.LastUpdate.Equal(loaded.LastUpdate))
}

func TestFile_Save_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "medidas.json")
	store := docstore.NewFile(path)

	_, err := store.Save(context.Background(), sampleDocument())

	require.NoError(t, err)
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
}

func TestFile_Load_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medidas.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := docstore.NewFile(path).Load(context.Background())

	require.ErrorIs(t, err, domain.ErrFormat)
}

func TestFile_Save_NormalizesNilSlices(t *testing.T) {
	store := docstore.NewFile(filepath.Join(t.TempDir(), "medidas.json"))

	saved, err := store.Save(context.Background(), domain.Document{})

	require.NoError(t, err)
	assert.NotNil(t, saved.Measurements)
	assert.NotNil(t, saved.Sets)
	assert.Equal(t, domain.DocumentVersion, saved.Version)
}
