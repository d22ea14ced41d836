package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"pokerequity-server/internal/config"
	"pokerequity-server/pkg/deck"
	"pokerequity-server/pkg/equitycache"
	"pokerequity-server/pkg/poker/equity"
)

// notableHoles are the preflop matchups worth warming: premium pairs and the
// big suited and offsuit broadways
var notableHoles = []string{
	"14s 14h", // AA
	"13s 13h", // KK
	"12s 12h", // QQ
	"11s 11h", // JJ
	"10s 10h", // TT
	"14s 13s", // AKs
	"14s 13h", // AKo
	"14s 12s", // AQs
	"13s 12s", // KQs
	"9s 9h",   // 99
	"8s 8h",   // 88
	"7s 6s",   // 76s
}

var iterations = flag.Int("iterations", 0, "Monte Carlo iterations per matchup (0 uses the default)")

func main() {
	flag.Parse()

	cfg := config.Instance()

	store, err := equitycache.OpenStore(cfg.Cache.Store, cfg.Cache.BadgerPath)
	if err != nil {
		logrus.WithError(err).Fatal("could not open cache store")
	}
	defer func() { _ = store.Close() }()

	cache := equitycache.New(store, equity.New(), cfg.Cache.HotSize)

	opts := equity.Options{
		Mode:       equity.ModeMC,
		Iterations: *iterations,
	}

	ctx := context.Background()
	seeded := 0

	for i := 0; i < len(notableHoles); i++ {
		for j := i + 1; j < len(notableHoles); j++ {
			players, err := parseMatchup(notableHoles[i], notableHoles[j])
			if err != nil {
				logrus.WithError(err).Fatal("could not parse matchup")
			}

			if players == nil {
				continue // overlapping cards
			}

			if _, err := cache.Compute(ctx, players, nil, nil, opts); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"hero":    notableHoles[i],
					"villain": notableHoles[j],
				}).Fatal("could not seed matchup")
			}

			seeded++
		}
	}

	stats, err := cache.Stats(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("could not read cache stats")
	}

	logrus.WithFields(logrus.Fields{
		"seeded":  seeded,
		"entries": stats.Entries,
	}).Info("cache seeded")
}

// parseMatchup returns the two holes, or nil if they share a card
func parseMatchup(a, b string) ([]*deck.Hole, error) {
	holeA, err := deck.HoleFromString(a)
	if err != nil {
		return nil, err
	}

	holeB, err := deck.HoleFromString(b)
	if err != nil {
		return nil, err
	}

	for _, ca := range holeA.Cards {
		for _, cb := range holeB.Cards {
			if ca.Equal(cb) {
				return nil, nil
			}
		}
	}

	return []*deck.Hole{holeA, holeB}, nil
}
