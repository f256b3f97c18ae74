package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the engine's process configuration. DiceSeed 0 means the
// enemy's dice are seeded from the clock.
type Config struct {
	GamesDir    string     `env:"TXR_GAMES_DIR" envDefault:"games"`
	LangsDir    string     `env:"TXR_LANGS_DIR" envDefault:"langs"`
	ConfigFile  string     `env:"TXR_CONFIG_FILE" envDefault:"engine_config.json"`
	Language    string     `env:"TXR_LANGUAGE" envDefault:"en"`
	RedisURL    string     `env:"TXR_REDIS_URL"`
	WrapWidth   int        `env:"TXR_WRAP_WIDTH" envDefault:"80"`
	Environment string     `env:"ENVIRONMENT" envDefault:"development"`
	DiceSeed    int64      `env:"TXR_DICE_SEED"`
	LogFile     string     `env:"LOG_FILE"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"warn"`
}

// Load reads an optional .env file from the working directory and then
// the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv parses the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.WrapWidth < 20 {
		cfg.WrapWidth = 20
	}
	return cfg, nil
}
