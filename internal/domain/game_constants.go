package domain

import (
	"math/rand"
	"time"
)

const (
	// MaxPerformance caps job performance.
	MaxPerformance = 9
	// PromotionStep is the performance required per level.
	PromotionStep = 3
	// TopJobLevel is the highest job level index.
	TopJobLevel = 2
)

// Rules holds the numeric game parameters.
type Rules struct {
	MaxTurns         int     `mapstructure:"max_turns"`
	InitialHandSize  int     `mapstructure:"initial_hand_size"`
	DrawPerTurn      int     `mapstructure:"draw_per_turn"`
	MaxHandSize      int     `mapstructure:"max_hand_size"`
	PovertyThreshold int     `mapstructure:"poverty_threshold"`
	PovertyBonus     int     `mapstructure:"poverty_bonus"`
	TaxRate          float64 `mapstructure:"tax_rate"`
	CompetitionPrize int     `mapstructure:"competition_prize"`
	CharityAmount    int     `mapstructure:"charity_amount"`
	DreamBonus       int     `mapstructure:"dream_bonus"`
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		MaxTurns:         10,
		InitialHandSize:  3,
		DrawPerTurn:      2,
		MaxHandSize:      10,
		PovertyThreshold: 1500,
		PovertyBonus:     3000,
		TaxRate:          0.1,
		CompetitionPrize: 2000,
		CharityAmount:    2000,
		DreamBonus:       8000,
	}
}

// Rand is the randomness source used by every random decision.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewTimeRand returns a time-seeded source.
func NewTimeRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
