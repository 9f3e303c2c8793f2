package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// storedAlignment is a progressive alignment kept for later retrieval.
type storedAlignment struct {
	ID        string
	Rows      []string
	Consensus string
	Stats     *Stats
	Created   time.Time
}

// resultStore keeps the most recent progressive alignments in memory,
// evicting the oldest once limit entries are held.
type resultStore struct {
	mu      sync.RWMutex
	limit   int
	results map[string]*storedAlignment
	order   []string
}

func newResultStore(limit int) *resultStore {
	return &resultStore{
		limit:   limit,
		results: make(map[string]*storedAlignment, limit),
	}
}

// put stores an alignment under a fresh id.
func (s *resultStore) put(rows []string, consensus string, stats *Stats) *storedAlignment {
	entry := &storedAlignment{
		ID:        uuid.NewString(),
		Rows:      rows,
		Consensus: consensus,
		Stats:     stats,
		Created:   time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.order) >= s.limit {
		delete(s.results, s.order[0])
		s.order = s.order[1:]
	}
	s.results[entry.ID] = entry
	s.order = append(s.order, entry.ID)
	return entry
}

func (s *resultStore) get(id string) (*storedAlignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.results[id]
	return entry, ok
}

func (s *resultStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
