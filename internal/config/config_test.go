package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relife/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRules(), c.Rules)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.ContentDir)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relife.yaml")
	body := "rules:\n  max_turns: 6\n  tax_rate: 0.2\ncontent_dir: ./content\nresults_db: results.db\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("RELIFE_RULES_MAX_HAND_SIZE", "8")
	t.Setenv("RELIFE_LOG_LEVEL", "debug")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Rules.MaxTurns)
	assert.Equal(t, 0.2, c.Rules.TaxRate)
	assert.Equal(t, 8, c.Rules.MaxHandSize)
	assert.Equal(t, 3, c.Rules.InitialHandSize)
	assert.Equal(t, "./content", c.ContentDir)
	assert.Equal(t, "results.db", c.ResultsDB)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("RELIFE_RULES_MAX_TURNS", "0")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *domain.Rules)
		ok     bool
	}{
		{name: "defaults", mutate: func(*domain.Rules) {}, ok: true},
		{name: "no turns", mutate: func(r *domain.Rules) { r.MaxTurns = 0 }},
		{name: "no hand", mutate: func(r *domain.Rules) { r.MaxHandSize = 0 }},
		{name: "negative draw", mutate: func(r *domain.Rules) { r.DrawPerTurn = -1 }},
		{name: "tax above one", mutate: func(r *domain.Rules) { r.TaxRate = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c.Rules)
			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestGetGameConfigFallsBackToDefaults(t *testing.T) {
	assert.Equal(t, domain.DefaultRules(), GetGameConfig().Rules)
}

func TestParseRuntimeEnv(t *testing.T) {
	cfg, err := ParseRuntimeEnv(map[string]string{
		"RELIFE_REDIS_ADDR":     "localhost:6379",
		"RELIFE_SNAPSHOT_TTL":   "1h",
		"RELIFE_BOTS_ENABLED":   "false",
		"RELIFE_BOT_MOVE_TICKS": "3",
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, time.Hour, cfg.SnapshotTTL)
	assert.False(t, cfg.BotsEnabled)
	assert.Equal(t, 3, cfg.BotMoveTicks)
	assert.Equal(t, 10*time.Second, cfg.BotFillDelay)

	_, err = ParseRuntimeEnv(map[string]string{"RELIFE_REDIS_DB": "zero"})
	assert.Error(t, err)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("RELIFE_RESULTS_DB", "/tmp/results.db")
	var cfg RelayConfig
	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, "/tmp/results.db", cfg.ResultsDB)
	assert.True(t, cfg.BotsEnabled)
	assert.Equal(t, 24*time.Hour, cfg.SnapshotTTL)
}
