// Package sqlite stores final match standings in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"relife/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS match_results (
  match_id     TEXT    NOT NULL,
  rank         INTEGER NOT NULL,
  player_id    TEXT    NOT NULL,
  player_name  TEXT    NOT NULL,
  character_id TEXT    NOT NULL,
  is_ai        INTEGER NOT NULL,
  money        INTEGER NOT NULL,
  total        INTEGER NOT NULL,
  score        TEXT    NOT NULL,
  achievements TEXT    NOT NULL,
  recorded_at  INTEGER NOT NULL,
  PRIMARY KEY (match_id, rank)
);
CREATE INDEX IF NOT EXISTS match_results_player ON match_results (player_id);
`

var (
	ErrMatchIDRequired = errors.New("match id is required")
)

// Standing is one stored row of a final ranking.
type Standing struct {
	MatchID      string
	Rank         int
	PlayerID     string
	PlayerName   string
	CharacterID  string
	IsAI         bool
	Money        int
	Score        domain.ScoreBreakdown
	Achievements []domain.Achievement
	RecordedAt   time.Time
}

// Store persists results in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite results store and creates the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveResult replaces the stored standings of matchID.
func (s *Store) SaveResult(ctx context.Context, matchID string, result domain.GameResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return ErrMatchIDRequired
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM match_results WHERE match_id = ?`, matchID); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}
	recordedAt := s.now().UTC().UnixMilli()
	for _, r := range result.Rankings {
		score, err := json.Marshal(r.Score)
		if err != nil {
			return fmt.Errorf("marshal score: %w", err)
		}
		achievements := r.Achievements
		if achievements == nil {
			achievements = []domain.Achievement{}
		}
		awards, err := json.Marshal(achievements)
		if err != nil {
			return fmt.Errorf("marshal achievements: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO match_results (
			   match_id, rank, player_id, player_name, character_id, is_ai,
			   money, total, score, achievements, recorded_at
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			matchID, r.Rank, r.Player.ID, r.Player.Name, r.Player.CharacterID, r.Player.IsAI,
			r.Player.Money, r.Score.Total, string(score), string(awards), recordedAt,
		)
		if err != nil {
			return fmt.Errorf("insert result %s/%d: %w", matchID, r.Rank, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit results: %w", err)
	}
	return nil
}

// ListResults returns the standings of matchID in rank order.
func (s *Store) ListResults(ctx context.Context, matchID string) ([]Standing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT match_id, rank, player_id, player_name, character_id, is_ai, money, score, achievements, recorded_at
		   FROM match_results WHERE match_id = ? ORDER BY rank`, strings.TrimSpace(matchID))
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Standing
	for rows.Next() {
		var (
			st           Standing
			score, award string
			recordedAt   int64
		)
		if err := rows.Scan(&st.MatchID, &st.Rank, &st.PlayerID, &st.PlayerName, &st.CharacterID, &st.IsAI,
			&st.Money, &score, &award, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(score), &st.Score); err != nil {
			return nil, fmt.Errorf("decode score: %w", err)
		}
		if err := json.Unmarshal([]byte(award), &st.Achievements); err != nil {
			return nil, fmt.Errorf("decode achievements: %w", err)
		}
		st.RecordedAt = time.UnixMilli(recordedAt).UTC()
		out = append(out, st)
	}
	return out, rows.Err()
}
