package index

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"reactome2bel/internal/crawler"
	"reactome2bel/internal/reactome"
	"reactome2bel/internal/storage"

	"go.uber.org/zap"
)

// DefaultIndexFile is the name of the dbId/schemaClass listing.
const DefaultIndexFile = "entityIndex.txt"

// Indexer loads downloaded entity records into the cache and lists what
// the cache holds.
type Indexer struct {
	crawler *crawler.Crawler
	store   storage.RecordStore
	logger  *zap.Logger
}

// NewIndexer creates a new indexer.
func NewIndexer(c *crawler.Crawler, store storage.RecordStore, logger *zap.Logger) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{
		crawler: c,
		store:   store,
		logger:  logger,
	}
}

// Import scans dir and upserts every record into the cache. It returns the
// number of records stored.
func (i *Indexer) Import(ctx context.Context, dir string) (int, error) {
	var (
		count   int
		saveErr error
	)
	err := i.crawler.ScanDir(dir, func(rec *reactome.Record) {
		if saveErr != nil {
			return
		}
		if err := ctx.Err(); err != nil {
			saveErr = err
			return
		}
		if err := i.store.SaveRecord(ctx, rec); err != nil {
			saveErr = fmt.Errorf("import %s: %w", rec.ID, err)
			return
		}
		count++
	})
	if err != nil {
		return count, fmt.Errorf("scan failed: %w", err)
	}
	if saveErr != nil {
		return count, saveErr
	}

	i.logger.Info("records imported", zap.String("dir", dir), zap.Int("count", count))
	return count, nil
}

// WriteIndex writes one "dbId<TAB>schemaClass" line per cached record.
func (i *Indexer) WriteIndex(ctx context.Context, path string) (int, error) {
	entries, err := i.store.ListIndex(ctx)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create index file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", e.ID, e.SchemaClass); err != nil {
			return 0, fmt.Errorf("failed to write index: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write index: %w", err)
	}
	return len(entries), nil
}
