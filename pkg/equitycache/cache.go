// Package equitycache fronts the equity engine with a canonical-key cache:
// a bounded in-memory hot layer over a persisted store.
package equitycache

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"pokerequity-server/pkg/deck"
	"pokerequity-server/pkg/poker/equity"
)

// DefaultHotSize is the default bound on the in-memory hot layer
const DefaultHotSize = 1000

// Cache memoizes equity results by canonical scenario key. Results are held
// in canonical hole order and permuted back to the caller's player order, so
// win[0] always refers to the first caller-supplied hole.
type Cache struct {
	store  Store
	engine *equity.Engine

	mu      sync.Mutex
	hot     map[string]*equity.Result
	hotKeys []string
	hotSize int
}

// New returns a Cache over the given store and engine. A hotSize of 0 uses
// DefaultHotSize.
func New(store Store, engine *equity.Engine, hotSize int) *Cache {
	if hotSize <= 0 {
		hotSize = DefaultHotSize
	}

	return &Cache{
		store:   store,
		engine:  engine,
		hot:     make(map[string]*equity.Result, hotSize),
		hotSize: hotSize,
	}
}

// Compute returns the equity for the scenario, consulting the hot layer and
// the store before falling back to the engine. Store failures degrade to a
// plain computation; they never fail the request.
func (c *Cache) Compute(ctx context.Context, players []*deck.Hole, board *deck.Board, dead []*deck.Card, opts equity.Options) (*equity.Result, error) {
	if err := equity.Validate(players, board, dead); err != nil {
		return nil, err
	}

	key := Key(players, board, dead, opts)
	order := CanonicalOrder(players)

	c.mu.Lock()
	cached, ok := c.hot[key]
	c.mu.Unlock()
	if ok {
		return reorder(cached, order), nil
	}

	cached, found, err := c.store.Get(ctx, key)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("equity cache get failed; computing")
	} else if found {
		c.addHot(key, cached)
		return reorder(cached, order), nil
	}

	canonical := make([]*deck.Hole, len(players))
	for pos, callerIdx := range order {
		canonical[pos] = players[callerIdx]
	}

	result, err := c.engine.Compute(canonical, board, dead, opts)
	if err != nil {
		return nil, err
	}

	c.addHot(key, result)
	if err := c.store.Set(ctx, key, result); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("equity cache set failed")
	}

	return reorder(result, order), nil
}

// Clear empties both the hot layer and the store
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.hot = make(map[string]*equity.Result, c.hotSize)
	c.hotKeys = c.hotKeys[:0]
	c.mu.Unlock()

	return c.store.Clear(ctx)
}

// Stats reports the store statistics
func (c *Cache) Stats(ctx context.Context) (*Stats, error) {
	return c.store.Stats(ctx)
}

// HotLen returns the number of entries in the hot layer
func (c *Cache) HotLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.hot)
}

// addHot inserts into the bounded hot layer, evicting oldest-inserted-first
func (c *Cache) addHot(key string, result *equity.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.hot[key]; ok {
		c.hot[key] = result
		return
	}

	if len(c.hotKeys) >= c.hotSize {
		oldest := c.hotKeys[0]
		c.hotKeys = c.hotKeys[1:]
		delete(c.hot, oldest)
	}

	c.hot[key] = result
	c.hotKeys = append(c.hotKeys, key)
}

// reorder maps a canonically ordered result back to caller player order
func reorder(result *equity.Result, order []int) *equity.Result {
	out := &equity.Result{
		Win:     make([]float64, len(order)),
		Tie:     make([]float64, len(order)),
		Lose:    make([]float64, len(order)),
		Samples: result.Samples,
	}

	for pos, callerIdx := range order {
		out.Win[callerIdx] = result.Win[pos]
		out.Tie[callerIdx] = result.Tie[pos]
		out.Lose[callerIdx] = result.Lose[pos]
	}

	return out
}
