package storage

import (
	"context"

	"reactome2bel/internal/reactome"
)

// Store combines the record and hierarchy caches.
type Store interface {
	RecordStore
	HierarchyStore
	Close() error
}

// RecordStore persists raw entity records keyed by dbId.
type RecordStore interface {
	// SaveRecord upserts a record with its original payload.
	SaveRecord(ctx context.Context, rec *reactome.Record) error

	// GetRecord returns a cached record, or ErrCacheMiss.
	GetRecord(ctx context.Context, id string) (*reactome.Record, error)

	// ListIndex returns the id and schema class of every cached record.
	ListIndex(ctx context.Context) ([]IndexEntry, error)
}

// HierarchyStore persists pathway hierarchy documents per species.
type HierarchyStore interface {
	SaveHierarchy(ctx context.Context, species string, doc []byte) error
	GetHierarchy(ctx context.Context, species string) ([]byte, error)
}

// IndexEntry is one line of the entity index.
type IndexEntry struct {
	ID          string
	SchemaClass string
}
