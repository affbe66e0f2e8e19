package app

import "relife/internal/domain"

// EventKind identifies emitted app events for relay dispatch and the action log.
type EventKind string

const (
	EventGameStarted       EventKind = "game_started"
	EventEventDrawn        EventKind = "event_drawn"
	EventEventResolved     EventKind = "event_resolved"
	EventSalaryPaid        EventKind = "salary_paid"
	EventPhaseChanged      EventKind = "phase_changed"
	EventCardPlayed        EventKind = "card_played"
	EventCardCancelled     EventKind = "card_cancelled"
	EventActionCancelled   EventKind = "action_cancelled"
	EventSelectionRequired EventKind = "selection_required"
	EventReactionRequested EventKind = "reaction_requested"
	EventInvalidPlayed     EventKind = "invalid_played"
	EventReactionPassed    EventKind = "reaction_passed"
	EventDiscardRequired   EventKind = "discard_required"
	EventCardsDiscarded    EventKind = "cards_discarded"
	EventJobChanged        EventKind = "job_changed"
	EventPromoted          EventKind = "promoted"
	EventTurnEnded         EventKind = "turn_ended"
	EventGameEnded         EventKind = "game_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player IDs; empty means broadcast
}

type GameStartedPayload struct {
	PlayerIDs []string `json:"player_ids"`
	MaxTurns  int      `json:"max_turns"`
}

type EventDrawnPayload struct {
	Turn  int             `json:"turn"`
	Event domain.EventDef `json:"event"`
}

type EventResolvedPayload struct {
	Event    domain.EventDef `json:"event"`
	Messages []string        `json:"messages"`
}

type SalaryPaidPayload struct {
	PlayerID string          `json:"player_id"`
	Amount   int             `json:"amount"`
	Skill    domain.StatType `json:"skill,omitempty"`
}

type PhaseChangedPayload struct {
	Phase           domain.Phase `json:"phase"`
	Turn            int          `json:"turn"`
	CurrentPlayerID string       `json:"current_player_id,omitempty"`
}

type CardPlayedPayload struct {
	PlayerID string      `json:"player_id"`
	Card     domain.Card `json:"card"`
	TargetID string      `json:"target_id,omitempty"`
	Message  string      `json:"message,omitempty"`
	// Pending is set when the card waits for reactions.
	Pending bool `json:"pending,omitempty"`
}

type CardCancelledPayload struct {
	PlayerID    string      `json:"player_id"`
	Card        domain.Card `json:"card"`
	ChainLength int         `json:"chain_length"`
}

type ActionCancelledPayload struct {
	PlayerID string      `json:"player_id"`
	Card     domain.Card `json:"card"`
}

type SelectionRequiredPayload struct {
	PlayerID string               `json:"player_id"`
	Kind     domain.SelectionKind `json:"kind"`
	Card     domain.Card          `json:"card"`
}

type ReactionRequestedPayload struct {
	PlayerID    string      `json:"player_id"`
	SourceID    string      `json:"source_id"`
	Card        domain.Card `json:"card"`
	ChainLength int         `json:"chain_length"`
}

type InvalidPlayedPayload struct {
	PlayerID    string `json:"player_id"`
	ChainLength int    `json:"chain_length"`
}

type ReactionPassedPayload struct {
	PlayerID string `json:"player_id"`
}

type DiscardRequiredPayload struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

type CardsDiscardedPayload struct {
	PlayerID string        `json:"player_id"`
	Cards    []domain.Card `json:"cards"`
}

type JobChangedPayload struct {
	PlayerID  string `json:"player_id"`
	FromJobID string `json:"from_job_id,omitempty"`
	ToJobID   string `json:"to_job_id,omitempty"`
}

type PromotedPayload struct {
	PlayerID string `json:"player_id"`
	JobID    string `json:"job_id"`
	Level    int    `json:"level"`
}

type TurnEndedPayload struct {
	PlayerID     string `json:"player_id"`
	NextPlayerID string `json:"next_player_id,omitempty"`
}

type GameEndedPayload struct {
	Result domain.GameResult `json:"result"`
}
