package crawler

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"reactome2bel/internal/reactome"

	"go.uber.org/zap"
)

// Crawler scans a directory of downloaded entity records.
type Crawler struct {
	ignored []string
	logger  *zap.Logger
}

// NewCrawler creates a new crawler instance.
func NewCrawler(logger *zap.Logger) *Crawler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crawler{
		ignored: []string{".git", "testdata"},
		logger:  logger,
	}
}

// ScanDir walks root and decodes every <dbId>.json file it finds.
// Records are streamed through onRecord so large dumps never sit in memory.
func (c *Crawler) ScanDir(root string, onRecord func(*reactome.Record)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign && path != root {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			c.logger.Warn("unreadable record file", zap.String("path", path), zap.Error(err))
			return nil
		}
		rec, err := reactome.DecodeRecord(data)
		if err != nil || rec.ID == "" {
			// Log and continue instead of failing the whole scan
			c.logger.Warn("undecodable record file", zap.String("path", path), zap.Error(err))
			return nil
		}

		onRecord(rec)
		return nil
	})
}
