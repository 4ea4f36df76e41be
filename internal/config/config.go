// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all server settings. Every field has an environment
// binding with a sensible default, so a bare binary runs out of the box.
type Config struct {
	Port        int           `env:"GRIDLORDS_PORT" envDefault:"8080"`
	MapWidth    int           `env:"GRIDLORDS_MAP_WIDTH" envDefault:"20"`
	MapHeight   int           `env:"GRIDLORDS_MAP_HEIGHT" envDefault:"20"`
	MapSeed     uint64        `env:"GRIDLORDS_MAP_SEED" envDefault:"0"`
	TurnTimeout time.Duration `env:"GRIDLORDS_TURN_TIMEOUT" envDefault:"0"`

	// EvictionGrace is how long finished sessions stay queryable.
	EvictionGrace time.Duration `env:"GRIDLORDS_EVICTION_GRACE" envDefault:"10m"`
	SweepInterval time.Duration `env:"GRIDLORDS_SWEEP_INTERVAL" envDefault:"1m"`

	// DatabaseURL enables the Postgres archive when set.
	DatabaseURL string `env:"GRIDLORDS_DATABASE_URL"`

	// CombatVariance switches the damage formula to the ±20% variant.
	CombatVariance bool `env:"GRIDLORDS_COMBAT_VARIANCE" envDefault:"false"`

	LogLevel string `env:"GRIDLORDS_LOG_LEVEL" envDefault:"info"`
}

// Load reads .env if present, then parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
