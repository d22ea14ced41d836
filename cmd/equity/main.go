package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"pokerequity-server/internal/config"
	"pokerequity-server/pkg/deck"
	"pokerequity-server/pkg/equitycache"
	"pokerequity-server/pkg/poker/equity"
)

// holeList collects repeated -hole flags
type holeList []string

func (h *holeList) String() string {
	return strings.Join(*h, ", ")
}

func (h *holeList) Set(value string) error {
	*h = append(*h, value)
	return nil
}

var (
	holes      holeList
	board      = flag.String("board", "", "board cards, space separated (0 to 5)")
	dead       = flag.String("dead", "", "dead cards, space separated")
	mode       = flag.String("mode", "", "auto, exact, or mc (defaults to config)")
	iterations = flag.Int("iterations", 0, "Monte Carlo iterations (0 uses the default)")
	seed       = flag.Int64("seed", 0, "Monte Carlo seed (0 uses the clock)")
	noCache    = flag.Bool("no-cache", false, "compute without consulting the cache")
)

func main() {
	flag.Var(&holes, "hole", "a hole, e.g. \"14s 14h\" (repeat per player)")
	flag.Parse()
	setupLogger()

	players := make([]*deck.Hole, len(holes))
	for i, raw := range holes {
		hole, err := deck.HoleFromString(raw)
		if err != nil {
			logrus.WithError(err).WithField("hole", raw).Fatal("could not parse hole")
		}

		players[i] = hole
	}

	boardCards, err := deck.BoardFromString(*board)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse board")
	}

	deadCards, err := deck.CardsFromString(*dead)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse dead cards")
	}

	cfg := config.Instance()
	opts := buildOptions(cfg)

	result, err := compute(cfg, players, boardCards, deadCards, opts)
	if err != nil {
		logrus.WithError(err).Fatal("could not compute equity")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logrus.WithError(err).Fatal("could not encode result")
	}
}

func compute(cfg config.Config, players []*deck.Hole, board *deck.Board, dead []*deck.Card, opts equity.Options) (*equity.Result, error) {
	engine := equity.New()

	if *noCache {
		return engine.Compute(players, board, dead, opts)
	}

	store, err := equitycache.OpenStore(cfg.Cache.Store, cfg.Cache.BadgerPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	cache := equitycache.New(store, engine, cfg.Cache.HotSize)
	return cache.Compute(context.Background(), players, board, dead, opts)
}

func buildOptions(cfg config.Config) equity.Options {
	opts := equity.Options{
		Mode:           equity.Mode(cfg.Equity.Mode),
		Iterations:     cfg.Equity.Iterations,
		ExactMaxCombos: cfg.Equity.ExactMaxCombos,
		Seed:           *seed,
	}

	if *mode != "" {
		opts.Mode = equity.Mode(*mode)
	}

	if *iterations > 0 {
		opts.Iterations = *iterations
	}

	return opts
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
