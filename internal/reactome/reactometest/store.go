// Package reactometest provides an in-memory entity source for tests.
package reactometest

import (
	"context"
	"fmt"
	"sync"

	"reactome2bel/internal/reactome"
)

// Store serves records and hierarchy documents from memory and counts fetches.
type Store struct {
	mu          sync.Mutex
	records     map[string]*reactome.Record
	hierarchies map[string][]byte
	fetches     map[string]int
	failing     map[string]error
}

func NewStore(records ...*reactome.Record) *Store {
	s := &Store{
		records:     make(map[string]*reactome.Record),
		hierarchies: make(map[string][]byte),
		fetches:     make(map[string]int),
		failing:     make(map[string]error),
	}
	for _, r := range records {
		s.Add(r)
	}
	return s
}

func (s *Store) Add(r *reactome.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.ID] = r
}

// SetHierarchy registers the hierarchy XML returned for a species.
func (s *Store) SetHierarchy(species string, doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hierarchies[species] = []byte(doc)
}

// Fail makes every fetch of id return err.
func (s *Store) Fail(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[id] = err
}

func (s *Store) Fetch(_ context.Context, id string) (*reactome.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches[id]++
	if err, ok := s.failing[id]; ok {
		return nil, fmt.Errorf("fetch %s: %w", id, err)
	}
	r, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("fetch %s: %w", id, reactome.ErrNotFound)
	}
	return r, nil
}

func (s *Store) Hierarchy(_ context.Context, species string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.hierarchies[species]
	if !ok {
		return nil, fmt.Errorf("hierarchy %q: %w", species, reactome.ErrNotFound)
	}
	return doc, nil
}

// Fetches reports how many times id was requested.
func (s *Store) Fetches(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches[id]
}
