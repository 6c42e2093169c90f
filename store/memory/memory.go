// Package memory provides an in-memory run store, mainly for tests and
// single-process use.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/maximecaron/deepresearch/store"
)

// MemoryRunStore implements store.RunStore with an in-process map.
type MemoryRunStore struct {
	mu      sync.RWMutex
	records map[string]*store.RunRecord
}

// NewMemoryRunStore creates a new in-memory run store.
func NewMemoryRunStore() *MemoryRunStore {
	return &MemoryRunStore{
		records: make(map[string]*store.RunRecord),
	}
}

// Save stores a run record.
func (s *MemoryRunStore) Save(_ context.Context, record *store.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *record
	s.records[record.ID] = &cp
	return nil
}

// Load retrieves a run record by ID.
func (s *MemoryRunStore) Load(_ context.Context, id string) (*store.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *record
	return &cp, nil
}

// List returns all run records, newest first.
func (s *MemoryRunStore) List(_ context.Context) ([]*store.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*store.RunRecord, 0, len(s.records))
	for _, record := range s.records {
		cp := *record
		records = append(records, &cp)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// Delete removes a run record.
func (s *MemoryRunStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.records, id)
	return nil
}
