package equitycache

import (
	"context"
	"sort"
	"sync"

	"pokerequity-server/pkg/poker/equity"
)

type memoryEntry struct {
	result      *equity.Result
	accessCount int64
}

// MemoryStore is an in-memory Store for tests and store-less runs
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
	}
}

// Get returns the stored result, bumping its access count
func (s *MemoryStore) Get(_ context.Context, key string) (*equity.Result, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}

	entry.accessCount++
	return entry.result, true, nil
}

// Set stores a result
func (s *MemoryStore) Set(_ context.Context, key string, result *equity.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &memoryEntry{result: result}
	return nil
}

// Clear removes every entry
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*memoryEntry)
	return nil
}

// Stats reports the store contents
func (s *MemoryStore) Stats(_ context.Context) (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &Stats{
		Entries:      int64(len(s.entries)),
		MostAccessed: make([]KeyAccess, 0, len(s.entries)),
	}

	for key, entry := range s.entries {
		stats.TotalAccesses += entry.accessCount
		stats.MostAccessed = append(stats.MostAccessed, KeyAccess{Key: key, Count: entry.accessCount})
	}

	sort.Slice(stats.MostAccessed, func(i, j int) bool {
		if stats.MostAccessed[i].Count != stats.MostAccessed[j].Count {
			return stats.MostAccessed[i].Count > stats.MostAccessed[j].Count
		}

		return stats.MostAccessed[i].Key < stats.MostAccessed[j].Key
	})

	if len(stats.MostAccessed) > TopAccessedLimit {
		stats.MostAccessed = stats.MostAccessed[:TopAccessedLimit]
	}

	return stats, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
