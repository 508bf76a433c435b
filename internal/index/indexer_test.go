package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"reactome2bel/internal/crawler"
	"reactome2bel/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexer_ImportAndWriteIndex(t *testing.T) {
	ctx := context.Background()
	tmp := t.TempDir()

	dump := filepath.Join(tmp, "downloadedEntities")
	require.NoError(t, os.MkdirAll(dump, 0755))
	files := map[string]string{
		"70171.json": `{"dbId": 70171, "schemaClass": "Reaction", "displayName": "G6P isomerization"}`,
		"29356.json": `{"dbId": 29356, "schemaClass": "SimpleEntity", "name": ["ATP"]}`,
		"bad.json":   `not json`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dump, name), []byte(content), 0644))
	}

	store, err := storage.NewSQLiteStore(filepath.Join(tmp, "cache.db"))
	require.NoError(t, err)
	defer store.Close()

	idx := NewIndexer(crawler.NewCrawler(nil), store, nil)

	n, err := idx.Import(ctx, dump)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rec, err := store.GetRecord(ctx, "29356")
	require.NoError(t, err)
	assert.Equal(t, []string{"ATP"}, rec.Name)

	out := filepath.Join(tmp, DefaultIndexFile)
	n, err = idx.WriteIndex(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "29356\tSimpleEntity\n70171\tReaction\n", string(data))
}

func TestIndexer_ImportMissingDir(t *testing.T) {
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer store.Close()

	idx := NewIndexer(crawler.NewCrawler(nil), store, nil)
	_, err = idx.Import(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
