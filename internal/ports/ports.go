package ports

import (
	"context"

	"relife/internal/app"
	"relife/internal/domain"
)

// Logger is the printf-style logger used by the outer layers.
// Nakama's runtime.Logger satisfies it.
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SnapshotStore keeps the latest state of each match.
type SnapshotStore interface {
	// Save replaces the stored snapshot of matchID.
	Save(ctx context.Context, matchID string, st *domain.GameState) error
	// Load returns the stored snapshot, or ErrSnapshotNotFound.
	Load(ctx context.Context, matchID string) (*domain.GameState, error)
}

// ResultStore persists final standings.
type ResultStore interface {
	SaveResult(ctx context.Context, matchID string, result domain.GameResult) error
}

// ActionLog records emitted events in order.
type ActionLog interface {
	Append(ev app.Event) error
}
