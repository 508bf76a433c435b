package storage

import (
	"context"
	"errors"
	"fmt"

	"reactome2bel/internal/reactome"

	"go.uber.org/zap"
)

// CachedSource serves records and hierarchies from the local store and falls
// back to the remote source on a miss, writing what it fetched through.
type CachedSource struct {
	remote  reactome.Source
	store   Store
	offline bool
	logger  *zap.Logger
}

type CachedSourceOptions struct {
	// Offline disables the remote fallback; misses become ErrNotFound.
	Offline bool
	Logger  *zap.Logger
}

func NewCachedSource(remote reactome.Source, store Store, opts CachedSourceOptions) *CachedSource {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{remote: remote, store: store, offline: opts.Offline, logger: logger}
}

func (c *CachedSource) Fetch(ctx context.Context, id string) (*reactome.Record, error) {
	rec, err := c.store.GetRecord(ctx, id)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn("cache read failed", zap.String("dbId", id), zap.Error(err))
	}
	if c.offline || c.remote == nil {
		return nil, fmt.Errorf("fetch %s: %w (offline)", id, reactome.ErrNotFound)
	}

	rec, err = c.remote.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.store.SaveRecord(ctx, rec); err != nil {
		c.logger.Warn("cache write failed", zap.String("dbId", id), zap.Error(err))
	}
	return rec, nil
}

func (c *CachedSource) Hierarchy(ctx context.Context, species string) ([]byte, error) {
	doc, err := c.store.GetHierarchy(ctx, species)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn("cache read failed", zap.String("species", species), zap.Error(err))
	}
	if c.offline || c.remote == nil {
		return nil, fmt.Errorf("hierarchy %q: %w (offline)", species, reactome.ErrNotFound)
	}

	doc, err = c.remote.Hierarchy(ctx, species)
	if err != nil {
		return nil, err
	}
	if err := c.store.SaveHierarchy(ctx, species, doc); err != nil {
		c.logger.Warn("cache write failed", zap.String("species", species), zap.Error(err))
	}
	return doc, nil
}
