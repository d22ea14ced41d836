package equitycache

import (
	"context"

	"pokerequity-server/pkg/poker/equity"
)

// TopAccessedLimit is the number of keys reported by Stats
const TopAccessedLimit = 10

// KeyAccess pairs a cache key with its access count
type KeyAccess struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Stats summarizes a store's contents
type Stats struct {
	Entries       int64       `json:"entries"`
	TotalAccesses int64       `json:"totalAccesses"`
	MostAccessed  []KeyAccess `json:"mostAccessed"`
}

// Store persists equity results by canonical key. Implementations must be
// safe for concurrent use; last write wins on racing sets.
type Store interface {
	// Get returns the stored result, or false if the key is absent
	Get(ctx context.Context, key string) (*equity.Result, bool, error)
	// Set stores a result, replacing any existing entry
	Set(ctx context.Context, key string, result *equity.Result) error
	// Clear removes every entry
	Clear(ctx context.Context) error
	// Stats reports entry count, total accesses, and the most accessed keys
	Stats(ctx context.Context) (*Stats, error)
	// Close releases any underlying resources
	Close() error
}
