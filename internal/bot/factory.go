package bot

import (
	"fmt"
	"strings"

	"relife/internal/domain"
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel, tables *domain.Tables, rng domain.Rand) (Brain, error) {
	if tables == nil {
		tables = &domain.Tables{}
	}
	if rng == nil {
		rng = domain.NewTimeRand()
	}
	switch level {
	case BotLevelEasy:
		return &RandomBot{Tables: tables, Rng: rng}, nil
	case BotLevelNormal:
		return &HeuristicBot{Tables: tables, Tuning: DefaultTuning, Rng: rng}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// ParseLevel maps a difficulty name to a level. Unknown names play normally.
func ParseLevel(difficulty string) BotLevel {
	if strings.EqualFold(difficulty, "easy") {
		return BotLevelEasy
	}
	return BotLevelNormal
}

// NewAgent creates a bot for identity at its configured difficulty.
func NewAgent(identity BotIdentity, tables *domain.Tables, rng domain.Rand) (*Agent, error) {
	brain, err := NewBrain(ParseLevel(identity.Difficulty), tables, rng)
	if err != nil {
		return nil, err
	}
	name := identity.DisplayName
	if name == "" {
		name = identity.ID
	}
	return &Agent{ID: identity.ID, Name: name, Strategy: brain}, nil
}
