package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"pokerequity-server/internal/util"
)

// Config provides configuration for the equity tools
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Log            struct {
		Level string `yaml:"level"`
	}
	Cache struct {
		// Store selects the persisted backend: postgres, badger, or memory
		Store      string `yaml:"store"`
		BadgerPath string `yaml:"badgerPath" envconfig:"badger_path"`
		HotSize    int    `yaml:"hotSize" envconfig:"hot_size"`
	}
	Equity struct {
		Mode           string `yaml:"mode"`
		Iterations     int    `yaml:"iterations"`
		ExactMaxCombos int64  `yaml:"exactMaxCombos" envconfig:"exact_max_combos"`
	}
}

var config Config

// DefaultConfig returns the configuration defaults used when the config file
// and environment are silent
func DefaultConfig() Config {
	var c Config
	c.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	c.MigrationsPath = "./sql"
	c.Cache.Store = "memory"
	c.Cache.BadgerPath = "./equity-cache"
	c.Equity.Mode = "auto"
	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration. A missing config file is not an error;
// the defaults and environment still apply.
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("POKEREQUITY_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("pokerequity", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
