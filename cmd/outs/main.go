package main

import (
	"encoding/json"
	"flag"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"pokerequity-server/internal/config"
	"pokerequity-server/pkg/deck"
	"pokerequity-server/pkg/poker/outs"
)

var (
	hero    = flag.String("hero", "", "hero hole, e.g. \"14s 13s\"")
	villain = flag.String("villain", "", "villain hole")
	board   = flag.String("board", "", "the four turn board cards, space separated")
)

func main() {
	flag.Parse()
	setupLogger()

	heroHole, err := deck.HoleFromString(*hero)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse hero hole")
	}

	villainHole, err := deck.HoleFromString(*villain)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse villain hole")
	}

	boardCards, err := deck.BoardFromString(*board)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse board")
	}

	result, err := outs.New().Calculate(heroHole, villainHole, boardCards)
	if err != nil {
		logrus.WithError(err).Fatal("could not calculate outs")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logrus.WithError(err).Fatal("could not encode result")
	}
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
