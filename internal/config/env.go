package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// RelayConfig configures the multiplayer relay and its stores.
type RelayConfig struct {
	ConfigPath    string        `env:"RELIFE_CONFIG"`
	RedisAddr     string        `env:"RELIFE_REDIS_ADDR"`
	RedisPassword string        `env:"RELIFE_REDIS_PASSWORD"`
	RedisDB       int           `env:"RELIFE_REDIS_DB" envDefault:"0"`
	SnapshotTTL   time.Duration `env:"RELIFE_SNAPSHOT_TTL" envDefault:"24h"`
	ResultsDB     string        `env:"RELIFE_RESULTS_DB"`
	BotsEnabled   bool          `env:"RELIFE_BOTS_ENABLED" envDefault:"true"`
	// BotFillDelay is how long a lobby waits before bots take the free seats.
	BotFillDelay time.Duration `env:"RELIFE_BOT_FILL_DELAY" envDefault:"10s"`
	// BotMoveTicks paces bot moves in match loop ticks.
	BotMoveTicks int `env:"RELIFE_BOT_MOVE_TICKS" envDefault:"1"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseRuntimeEnv loads the relay configuration from an explicit variable map,
// such as the env block a Nakama runtime hands to its plugins.
func ParseRuntimeEnv(vars map[string]string) (RelayConfig, error) {
	var cfg RelayConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return RelayConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
