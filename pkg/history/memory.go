package history

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps runs in process memory. Contents are lost on exit;
// use the Mongo store for persisted experiment series.
type MemoryStore struct {
	mu   sync.RWMutex
	runs []Run // insertion order; newest appended last
	byID map[string]int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]int)}
}

// Put implements Store. Re-putting an existing id overwrites the record.
func (s *MemoryStore) Put(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.byID[run.ID]; ok {
		s.runs[i] = run
		return nil
	}
	s.byID[run.ID] = len(s.runs)
	s.runs = append(s.runs, run)
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return Run{}, ErrNotFound
	}
	return s.runs[i], nil
}

// List implements Store.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.runs)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close implements Store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
