package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"relife/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. RELIFE_RULES_MAX_TURNS.
const EnvPrefix = "RELIFE"

// ErrInvalidConfig is returned for rule values the engine cannot play with.
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig holds the engine rules and the locations of content and storage.
type GameConfig struct {
	Rules domain.Rules `mapstructure:"rules"`
	// ContentDir overrides the built-in content tables when set.
	ContentDir string `mapstructure:"content_dir"`
	LogLevel   string `mapstructure:"log_level"`
	// ActionLog is the JSONL file game events are appended to.
	ActionLog string `mapstructure:"action_log"`
	// ResultsDB is the sqlite file final rankings are stored in.
	ResultsDB string `mapstructure:"results_db"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the process-wide configuration once.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		cfg, loadErr = Load(path)
	})
	return loadErr
}

// GetGameConfig returns the process-wide configuration, or the defaults when none was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return Default()
	}
	return cfg
}

// Default returns the built-in configuration.
func Default() *GameConfig {
	return &GameConfig{Rules: domain.DefaultRules(), LogLevel: "info"}
}

// Load reads defaults, then the optional YAML file at path, then RELIFE_* environment overrides.
func Load(path string) (*GameConfig, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith is Load on a caller-supplied viper instance, so flags can be bound first.
func LoadWith(v *viper.Viper, path string) (*GameConfig, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var c GameConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	r := d.Rules
	v.SetDefault("rules.max_turns", r.MaxTurns)
	v.SetDefault("rules.initial_hand_size", r.InitialHandSize)
	v.SetDefault("rules.draw_per_turn", r.DrawPerTurn)
	v.SetDefault("rules.max_hand_size", r.MaxHandSize)
	v.SetDefault("rules.poverty_threshold", r.PovertyThreshold)
	v.SetDefault("rules.poverty_bonus", r.PovertyBonus)
	v.SetDefault("rules.tax_rate", r.TaxRate)
	v.SetDefault("rules.competition_prize", r.CompetitionPrize)
	v.SetDefault("rules.charity_amount", r.CharityAmount)
	v.SetDefault("rules.dream_bonus", r.DreamBonus)
	v.SetDefault("content_dir", d.ContentDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("action_log", d.ActionLog)
	v.SetDefault("results_db", d.ResultsDB)
}

// Validate checks the rules for values that would break a game.
func (c *GameConfig) Validate() error {
	r := c.Rules
	var errs []error
	if r.MaxTurns < 1 {
		errs = append(errs, fmt.Errorf("%w: max_turns must be at least 1", ErrInvalidConfig))
	}
	if r.MaxHandSize < 1 {
		errs = append(errs, fmt.Errorf("%w: max_hand_size must be at least 1", ErrInvalidConfig))
	}
	if r.InitialHandSize < 0 || r.DrawPerTurn < 0 {
		errs = append(errs, fmt.Errorf("%w: hand sizes cannot be negative", ErrInvalidConfig))
	}
	if r.TaxRate < 0 || r.TaxRate > 1 {
		errs = append(errs, fmt.Errorf("%w: tax_rate must be within [0, 1]", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
