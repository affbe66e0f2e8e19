package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"relife/internal/config"
	"relife/internal/content"
	"relife/internal/ports"
	"relife/internal/ports/redis"
	"relife/internal/storage/sqlite"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	deps, err := LoadDependencies(ctx, logger)
	if err != nil {
		return err
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameReLife, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(deps), nil
	}); err != nil {
		return err
	}

	logger.Info("ReLife Go module loaded.")
	return nil
}

// LoadDependencies reads the relay configuration from the runtime env and opens the configured stores.
func LoadDependencies(ctx context.Context, logger ports.Logger) (*Dependencies, error) {
	var (
		relay config.RelayConfig
		err   error
	)
	// Without a runtime env block, fall back to the process environment.
	if vars, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		relay, err = config.ParseRuntimeEnv(vars)
	} else {
		err = config.ParseEnv(&relay)
	}
	if err != nil {
		return nil, err
	}
	if err := config.LoadGameConfig(relay.ConfigPath); err != nil {
		return nil, err
	}
	game := config.GetGameConfig()

	catalog, err := content.Open(game.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	deps := &Dependencies{Catalog: catalog, Rules: game.Rules, Relay: relay}

	if relay.RedisAddr != "" {
		store, err := redis.Dial(ctx, relay.RedisAddr, relay.RedisPassword, relay.RedisDB, relay.SnapshotTTL)
		if err != nil {
			return nil, err
		}
		deps.Snapshots = store
		logger.Info("Snapshots stored in redis at %s", relay.RedisAddr)
	}

	resultsDB := relay.ResultsDB
	if resultsDB == "" {
		resultsDB = game.ResultsDB
	}
	if resultsDB != "" {
		store, err := sqlite.Open(resultsDB)
		if err != nil {
			return nil, err
		}
		deps.Results = store
		logger.Info("Results stored in %s", resultsDB)
	}
	return deps, nil
}
