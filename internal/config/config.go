// Package config loads the settings that parameterize the loadgen
// demo and any other hosting-layer entrypoint: which tradable to
// stand the engine up for, its starting reference price, and the
// engine's optional knobs.
package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the environment-derived settings for a hosted engine.
type Config struct {
	TradableSymbol  string `env:"TRADABLE_SYMBOL" envDefault:"AAPL"`
	ReferencePrice  int64  `env:"REFERENCE_PRICE" envDefault:"100"`
	MaxBookDepth    int    `env:"MAX_BOOK_DEPTH" envDefault:"0"`
	InvariantChecks bool   `env:"INVARIANT_CHECKS" envDefault:"false"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads Config from the environment, first merging in a .env
// file if one is present in the working directory.
func Load() (Config, error) {
	var cfg Config
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		// no .env file is not an error; a malformed one is.
		return Config{}, err
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoad loads Config and panics on error, for use at process
// startup where there is no sensible fallback.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
