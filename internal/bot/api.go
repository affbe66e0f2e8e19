package bot

import (
	"errors"

	"relife/internal/domain"
)

// MoveKind names the app.Service call a move maps to.
type MoveKind string

const (
	MovePlayCard       MoveKind = "play_card"
	MoveApplyJob       MoveKind = "apply_job"
	MovePromote        MoveKind = "promote"
	MoveEndTurn        MoveKind = "end_turn"
	MoveChooseStat     MoveKind = "choose_stat"
	MoveChooseLocation MoveKind = "choose_location"
	MoveChooseTarget   MoveKind = "choose_target"
	MoveChooseJob      MoveKind = "choose_job"
	MoveUseInvalid     MoveKind = "use_invalid"
	MovePass           MoveKind = "pass"
	MoveDiscard        MoveKind = "discard"
	MoveCancel         MoveKind = "cancel"
)

// Move represents the decision made by the AI.
type Move struct {
	Kind       MoveKind
	CardIndex  int
	Stat       domain.StatType
	LocationID string
	TargetID   string
	JobID      string
	Indices    []int
}

// Brain is the interface that all bot strategies must implement.
// It never mutates st.
type Brain interface {
	CalculateMove(st *domain.GameState, seat int) (Move, error)
}

// BotLevel selects a Brain implementation.
type BotLevel int

const (
	BotLevelEasy BotLevel = iota + 1
	BotLevelNormal
)

var (
	// ErrNothingToDecide is returned when the game does not wait on the seat.
	ErrNothingToDecide = errors.New("seat has nothing to decide")
	// ErrStalled is returned when a driver exceeds its step budget.
	ErrStalled = errors.New("game did not finish within the step budget")
)
