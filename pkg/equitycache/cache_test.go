package equitycache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"pokerequity-server/pkg/deck"
	"pokerequity-server/pkg/poker/equity"
)

func TestCache_Compute(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	store := NewMemoryStore()
	cache := New(store, equity.New(), 0)

	players := []*deck.Hole{hole(t, "14s 14h"), hole(t, "13s 13h")}
	riverBoard := board(t, "2c 7d 9h 10c 3s")

	result, err := cache.Compute(ctx, players, riverBoard, nil, equity.Options{})
	a.NoError(err)
	a.Equal([]float64{1, 0}, result.Win)
	a.Equal(1, cache.HotLen())

	stats, err := cache.Stats(ctx)
	a.NoError(err)
	a.Equal(int64(1), stats.Entries)

	// the second call is a hot hit; the store is not consulted
	again, err := cache.Compute(ctx, players, riverBoard, nil, equity.Options{})
	a.NoError(err)
	a.Equal(result.Win, again.Win)

	stats, err = cache.Stats(ctx)
	a.NoError(err)
	a.Equal(int64(0), stats.TotalAccesses)

	a.NoError(cache.Clear(ctx))
	a.Equal(0, cache.HotLen())

	stats, err = cache.Stats(ctx)
	a.NoError(err)
	a.Equal(int64(0), stats.Entries)
}

func TestCache_Compute_reordersPlayers(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	store := NewMemoryStore()
	cache := New(store, equity.New(), 0)

	riverBoard := board(t, "2c 7d 9h 10c 3s")
	aces := "14s 14h"
	kings := "13s 13h"

	first, err := cache.Compute(ctx, []*deck.Hole{hole(t, aces), hole(t, kings)}, riverBoard, nil, equity.Options{})
	a.NoError(err)
	a.Equal([]float64{1, 0}, first.Win)

	// the swapped order shares the cache entry, with results mapped back to
	// the caller's positions
	swapped, err := cache.Compute(ctx, []*deck.Hole{hole(t, kings), hole(t, aces)}, riverBoard, nil, equity.Options{})
	a.NoError(err)
	a.Equal([]float64{0, 1}, swapped.Win)
	a.Equal([]float64{1, 0}, swapped.Lose)
	a.Equal(first.Samples, swapped.Samples)

	a.Equal(1, cache.HotLen())

	stats, err := cache.Stats(ctx)
	a.NoError(err)
	a.Equal(int64(1), stats.Entries)
}

func TestCache_Compute_storeMissFallsThrough(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	store := NewMemoryStore()
	players := []*deck.Hole{hole(t, "14s 14h"), hole(t, "13s 13h")}
	riverBoard := board(t, "2c 7d 9h 10c 3s")

	// warm the store through one cache, then read through a second with a
	// cold hot layer
	warm := New(store, equity.New(), 0)
	_, err := warm.Compute(ctx, players, riverBoard, nil, equity.Options{})
	a.NoError(err)

	cold := New(store, equity.New(), 0)
	result, err := cold.Compute(ctx, players, riverBoard, nil, equity.Options{})
	a.NoError(err)
	a.Equal([]float64{1, 0}, result.Win)

	stats, err := store.Stats(ctx)
	a.NoError(err)
	a.Equal(int64(1), stats.Entries)
	a.Equal(int64(1), stats.TotalAccesses)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (*equity.Result, bool, error) {
	return nil, false, errors.New("get failed")
}

func (brokenStore) Set(context.Context, string, *equity.Result) error {
	return errors.New("set failed")
}

func (brokenStore) Clear(context.Context) error { return errors.New("clear failed") }

func (brokenStore) Stats(context.Context) (*Stats, error) { return nil, errors.New("stats failed") }

func (brokenStore) Close() error { return nil }

func TestCache_Compute_brokenStoreStillComputes(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	cache := New(brokenStore{}, equity.New(), 0)

	result, err := cache.Compute(
		ctx,
		[]*deck.Hole{hole(t, "14s 14h"), hole(t, "13s 13h")},
		board(t, "2c 7d 9h 10c 3s"),
		nil,
		equity.Options{},
	)
	a.NoError(err)
	a.Equal([]float64{1, 0}, result.Win)

	// the hot layer still serves repeats
	a.Equal(1, cache.HotLen())
}

func TestCache_Compute_invalidScenario(t *testing.T) {
	a := assert.New(t)

	cache := New(NewMemoryStore(), equity.New(), 0)

	_, err := cache.Compute(context.Background(), []*deck.Hole{hole(t, "14s 14h")}, nil, nil, equity.Options{})
	a.ErrorIs(err, equity.ErrTooFewPlayers)
	a.Equal(0, cache.HotLen())
}

func TestCache_hotEviction(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	cache := New(NewMemoryStore(), equity.New(), 1)

	boards := []string{"2c 7d 9h 10c 3s", "2c 7d 9h 10c 4s"}
	for _, b := range boards {
		_, err := cache.Compute(
			ctx,
			[]*deck.Hole{hole(t, "14s 14h"), hole(t, "13s 13h")},
			board(t, b),
			nil,
			equity.Options{},
		)
		a.NoError(err)
	}

	a.Equal(1, cache.HotLen())

	stats, err := cache.Stats(ctx)
	a.NoError(err)
	a.Equal(int64(2), stats.Entries)
}
