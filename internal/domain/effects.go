package domain

import (
	"encoding/json"
	"fmt"
)

// EffectKind tags an Effect variant on the wire.
type EffectKind string

const (
	KindStatChange        EffectKind = "stat_change"
	KindStatChangeChoice  EffectKind = "stat_change_choice"
	KindMoneyChange       EffectKind = "money_change"
	KindDrawCards         EffectKind = "draw_cards"
	KindPerformanceChange EffectKind = "performance_change"
	KindExplore           EffectKind = "explore"
	KindSpecial           EffectKind = "special"
)

// Handler names a special effect.
type Handler string

// Card handlers.
const (
	HandlerBootlicking Handler = "bootlicking"
	HandlerSocializing Handler = "socializing"
	HandlerNapping     Handler = "napping"
	HandlerOvertime    Handler = "overtime"
	HandlerSteal       Handler = "steal"
	HandlerRobbery     Handler = "robbery"
	HandlerSabotage    Handler = "sabotage"
	HandlerInvalid     Handler = "invalid"
	HandlerJobChange   Handler = "job_change"
	HandlerParachute   Handler = "parachute"
	HandlerParkBad     Handler = "park_bad"
	HandlerParkGood    Handler = "park_good"
)

// Event handlers.
const (
	HandlerPovertyRelief          Handler = "poverty_relief"
	HandlerPovertyRelief3000      Handler = "poverty_relief_3000"
	HandlerTax                    Handler = "tax"
	HandlerCompetition            Handler = "competition"
	HandlerCompetitionRanked      Handler = "competition_ranked"
	HandlerCompetitionAchievement Handler = "competition_achievement"
	HandlerCharity                Handler = "charity"
	HandlerSkipTurn               Handler = "skip_turn"
	HandlerPassCardsLeft          Handler = "pass_cards_left"
	HandlerGameEnd                Handler = "game_end"
)

// Effect is a closed set of card, event and outcome effects.
type Effect interface {
	Kind() EffectKind
	effect()
}

// StatChange adds Value to Stat.
type StatChange struct {
	Stat  StatType
	Value int
}

// StatChoice adds Value to a stat chosen by the player.
type StatChoice struct {
	Value int
}

// MoneyChange adds Value to money.
type MoneyChange struct {
	Value int
}

// DrawCards draws Count cards.
type DrawCards struct {
	Count int
}

// PerformanceChange adds Value to job performance.
type PerformanceChange struct {
	Value int
}

// Explore asks the player for a location.
type Explore struct{}

// Special dispatches to a named handler.
type Special struct {
	Handler Handler
}

func (StatChange) Kind() EffectKind        { return KindStatChange }
func (StatChoice) Kind() EffectKind        { return KindStatChangeChoice }
func (MoneyChange) Kind() EffectKind       { return KindMoneyChange }
func (DrawCards) Kind() EffectKind         { return KindDrawCards }
func (PerformanceChange) Kind() EffectKind { return KindPerformanceChange }
func (Explore) Kind() EffectKind           { return KindExplore }
func (Special) Kind() EffectKind           { return KindSpecial }

func (StatChange) effect()        {}
func (StatChoice) effect()        {}
func (MoneyChange) effect()       {}
func (DrawCards) effect()         {}
func (PerformanceChange) effect() {}
func (Explore) effect()           {}
func (Special) effect()           {}

// EffectSpec is the flat serialized form of an Effect.
type EffectSpec struct {
	Type    EffectKind `json:"type" yaml:"type"`
	Stat    StatType   `json:"stat,omitempty" yaml:"stat,omitempty"`
	Value   int        `json:"value,omitempty" yaml:"value,omitempty"`
	Count   int        `json:"count,omitempty" yaml:"count,omitempty"`
	Handler Handler    `json:"handler,omitempty" yaml:"handler,omitempty"`
}

// SpecOf flattens an effect. A nil effect yields a zero spec.
func SpecOf(e Effect) EffectSpec {
	switch v := e.(type) {
	case StatChange:
		return EffectSpec{Type: KindStatChange, Stat: v.Stat, Value: v.Value}
	case StatChoice:
		return EffectSpec{Type: KindStatChangeChoice, Value: v.Value}
	case MoneyChange:
		return EffectSpec{Type: KindMoneyChange, Value: v.Value}
	case DrawCards:
		return EffectSpec{Type: KindDrawCards, Count: v.Count}
	case PerformanceChange:
		return EffectSpec{Type: KindPerformanceChange, Value: v.Value}
	case Explore:
		return EffectSpec{Type: KindExplore}
	case Special:
		return EffectSpec{Type: KindSpecial, Handler: v.Handler}
	}
	return EffectSpec{}
}

// Effect rebuilds the tagged variant. An empty spec decodes to a nil effect.
func (s EffectSpec) Effect() (Effect, error) {
	switch s.Type {
	case "":
		return nil, nil
	case KindStatChange:
		if !s.Stat.Valid() {
			return nil, fmt.Errorf("stat_change: unknown stat %q", s.Stat)
		}
		return StatChange{Stat: s.Stat, Value: s.Value}, nil
	case KindStatChangeChoice:
		return StatChoice{Value: s.Value}, nil
	case KindMoneyChange:
		return MoneyChange{Value: s.Value}, nil
	case KindDrawCards:
		return DrawCards{Count: s.Count}, nil
	case KindPerformanceChange:
		return PerformanceChange{Value: s.Value}, nil
	case KindExplore:
		return Explore{}, nil
	case KindSpecial:
		if s.Handler == "" {
			return nil, fmt.Errorf("special effect without handler")
		}
		return Special{Handler: s.Handler}, nil
	}
	return nil, fmt.Errorf("unknown effect type %q", s.Type)
}

type cardJSON struct {
	ID     string     `json:"id"`
	DefID  string     `json:"def_id"`
	Name   string     `json:"name"`
	Type   CardType   `json:"type"`
	Cost   int        `json:"cost,omitempty"`
	Effect EffectSpec `json:"effect"`
}

// MarshalJSON encodes the effect through its flat spec.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{
		ID:     c.ID,
		DefID:  c.DefID,
		Name:   c.Name,
		Type:   c.Type,
		Cost:   c.Cost,
		Effect: SpecOf(c.Effect),
	})
}

// UnmarshalJSON decodes a card written by MarshalJSON.
func (c *Card) UnmarshalJSON(data []byte) error {
	var raw cardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	eff, err := raw.Effect.Effect()
	if err != nil {
		return fmt.Errorf("card %s: %w", raw.ID, err)
	}
	*c = Card{ID: raw.ID, DefID: raw.DefID, Name: raw.Name, Type: raw.Type, Cost: raw.Cost, Effect: eff}
	return nil
}

type eventJSON struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Turn        int        `json:"turn"`
	Target      Target     `json:"target"`
	Effect      EffectSpec `json:"effect"`
	Prizes      []int      `json:"prizes,omitempty"`
}

// MarshalJSON encodes the effect through its flat spec.
func (e EventDef) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventJSON{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Turn:        e.Turn,
		Target:      e.Target,
		Effect:      SpecOf(e.Effect),
		Prizes:      e.Prizes,
	})
}

// UnmarshalJSON decodes an event written by MarshalJSON.
func (e *EventDef) UnmarshalJSON(data []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	eff, err := raw.Effect.Effect()
	if err != nil {
		return fmt.Errorf("event %s: %w", raw.ID, err)
	}
	*e = EventDef{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		Turn:        raw.Turn,
		Target:      raw.Target,
		Effect:      eff,
		Prizes:      raw.Prizes,
	}
	return nil
}
