package equitycache

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"pokerequity-server/pkg/poker/equity"
)

// badgerEntry is the persisted row shape, matching the relational schema
type badgerEntry struct {
	Win          []float64 `json:"win"`
	Tie          []float64 `json:"tie"`
	Lose         []float64 `json:"lose"`
	Samples      int       `json:"samples"`
	CreatedAt    int64     `json:"created_at"`
	LastAccessed int64     `json:"last_accessed"`
	AccessCount  int64     `json:"access_count"`
}

// BadgerStore persists equity results in an embedded Badger database
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) an embedded store at the given path
func NewBadgerStore(path string) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions(path).WithLogger(nil))
}

// NewBadgerStoreInMemory opens a store with no disk persistence, for tests
func NewBadgerStoreInMemory() (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	dbh, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerStore{db: dbh}, nil
}

// Get returns the stored result and bumps the entry's access statistics
func (s *BadgerStore) Get(_ context.Context, key string) (*equity.Result, bool, error) {
	var result *equity.Result

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		var entry badgerEntry
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		}); err != nil {
			return err
		}

		result = &equity.Result{
			Win:     entry.Win,
			Tie:     entry.Tie,
			Lose:    entry.Lose,
			Samples: entry.Samples,
		}

		entry.AccessCount++
		entry.LastAccessed = epochMs()
		encoded, err := json.Marshal(&entry)
		if err != nil {
			return err
		}

		return txn.Set([]byte(key), encoded)
	})

	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return result, true, nil
}

// Set stores a result, replacing any existing entry
func (s *BadgerStore) Set(_ context.Context, key string, result *equity.Result) error {
	now := epochMs()
	entry := badgerEntry{
		Win:          result.Win,
		Tie:          result.Tie,
		Lose:         result.Lose,
		Samples:      result.Samples,
		CreatedAt:    now,
		LastAccessed: now,
	}

	encoded, err := json.Marshal(&entry)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), encoded)
	})
}

// Clear drops every entry
func (s *BadgerStore) Clear(_ context.Context) error {
	return s.db.DropAll()
}

// Stats reports entry count, total accesses, and the most accessed keys
func (s *BadgerStore) Stats(_ context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		var accesses []KeyAccess
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()

			var entry badgerEntry
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return err
			}

			stats.Entries++
			stats.TotalAccesses += entry.AccessCount
			accesses = append(accesses, KeyAccess{Key: string(item.KeyCopy(nil)), Count: entry.AccessCount})
		}

		sort.Slice(accesses, func(i, j int) bool {
			if accesses[i].Count != accesses[j].Count {
				return accesses[i].Count > accesses[j].Count
			}

			return accesses[i].Key < accesses[j].Key
		})

		if len(accesses) > TopAccessedLimit {
			accesses = accesses[:TopAccessedLimit]
		}

		stats.MostAccessed = accesses
		return nil
	})

	if err != nil {
		return nil, err
	}

	return stats, nil
}

// Cleanup removes entries not accessed within maxAge and returns the number
// of entries deleted
func (s *BadgerStore) Cleanup(_ context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).UnixMilli()

	var stale [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()

			var entry badgerEntry
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return err
			}

			if entry.LastAccessed < cutoff {
				stale = append(stale, item.KeyCopy(nil))
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	deleted := int64(0)
	for _, key := range stale {
		if err := s.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(key)
		}); err != nil {
			return deleted, err
		}

		deleted++
	}

	return deleted, nil
}

// Close closes the underlying database
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
