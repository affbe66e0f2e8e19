package domain

import "slices"

// LogKind classifies action log entries.
type LogKind string

const (
	LogSystem LogKind = "system"
	LogEvent  LogKind = "event"
	LogAction LogKind = "action"
)

// LogEntry is one line of the action log.
type LogEntry struct {
	Turn     int     `json:"turn"`
	Kind     LogKind `json:"kind"`
	PlayerID string  `json:"player_id,omitempty"`
	Message  string  `json:"message"`
}

// HeldCard is a card lifted out of a hand while an interaction is pending.
// HandIndex is where it goes back on cancel.
type HeldCard struct {
	Card      Card `json:"card"`
	HandIndex int  `json:"hand_index"`
}

// PendingStatChoice waits for the player to name a stat.
type PendingStatChoice struct {
	Held  HeldCard `json:"held"`
	Value int      `json:"value"`
}

// PendingExplore waits for an explore location.
type PendingExplore struct {
	Held HeldCard `json:"held"`
}

// PendingTarget waits for a target player.
type PendingTarget struct {
	Action Handler  `json:"action"`
	Held   HeldCard `json:"held"`
}

// PendingParachute waits for a target job.
type PendingParachute struct {
	Held HeldCard `json:"held"`
}

// ChainLink is one invalidate card played in a reaction chain.
type ChainLink struct {
	PlayerIndex int      `json:"player_index"`
	Held        HeldCard `json:"held"`
}

// PendingFunction is a blockable function card awaiting reactions.
type PendingFunction struct {
	Held                  HeldCard    `json:"held"`
	SourcePlayerIndex     int         `json:"source_player_index"`
	RespondingPlayerIndex int         `json:"responding_player_index"`
	Chain                 []ChainLink `json:"chain"`
	// Passed holds players who declined since the last invalidate.
	Passed []int `json:"passed"`
}

// LastActor returns the most recent chain participant, or the source when the chain is empty.
func (pf *PendingFunction) LastActor() int {
	if len(pf.Chain) == 0 {
		return pf.SourcePlayerIndex
	}
	return pf.Chain[len(pf.Chain)-1].PlayerIndex
}

// DiscardRequest is an outstanding hand-overflow discard.
type DiscardRequest struct {
	PlayerIndex int `json:"player_index"`
	Count       int `json:"count"`
}

// GameState is the complete state of one match.
type GameState struct {
	PlayerCount        int        `json:"player_count"`
	MaxTurns           int        `json:"max_turns"`
	Players            []Player   `json:"players"`
	CurrentPlayerIndex int        `json:"current_player_index"`
	Turn               int        `json:"turn"`
	Phase              Phase      `json:"phase"`
	Deck               []Card     `json:"deck"`
	DiscardPile        []Card     `json:"discard_pile"`
	CurrentEvent       *EventDef  `json:"current_event"`
	EventLog           []string   `json:"event_log"`
	ActionLog          []LogEntry `json:"action_log"`
	SelectedCardIndex  *int       `json:"selected_card_index"`

	PendingStatChoice *PendingStatChoice `json:"pending_stat_choice"`
	PendingExplore    *PendingExplore    `json:"pending_explore"`
	PendingTarget     *PendingTarget     `json:"pending_target"`
	PendingParachute  *PendingParachute  `json:"pending_parachute"`
	PendingFunction   *PendingFunction   `json:"pending_function"`
	PendingDiscards   []DiscardRequest   `json:"pending_discards"`
}

// HasPendingInteraction reports whether a card interaction blocks further play.
func (g *GameState) HasPendingInteraction() bool {
	return g.PendingStatChoice != nil ||
		g.PendingExplore != nil ||
		g.PendingTarget != nil ||
		g.PendingParachute != nil ||
		g.PendingFunction != nil
}

// CurrentPlayer returns the player whose action turn it is.
func (g *GameState) CurrentPlayer() *Player {
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}
	return &g.Players[g.CurrentPlayerIndex]
}

// PlayerIndex returns the roster index of the player with id, or -1.
func (g *GameState) PlayerIndex(id string) int {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// DiscardRequestFor returns the index of the outstanding discard for player, or -1.
func (g *GameState) DiscardRequestFor(player int) int {
	for i, req := range g.PendingDiscards {
		if req.PlayerIndex == player {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy. Content referenced by cards and events is immutable and shared.
func (g *GameState) Clone() *GameState {
	if g == nil {
		return nil
	}
	out := *g
	out.Players = make([]Player, len(g.Players))
	for i, p := range g.Players {
		p.Hand = slices.Clone(p.Hand)
		p.FirstJobTurn = cloneInt(p.FirstJobTurn)
		p.FirstPromotionTurn = cloneInt(p.FirstPromotionTurn)
		out.Players[i] = p
	}
	out.Deck = slices.Clone(g.Deck)
	out.DiscardPile = slices.Clone(g.DiscardPile)
	out.EventLog = slices.Clone(g.EventLog)
	out.ActionLog = slices.Clone(g.ActionLog)
	out.SelectedCardIndex = cloneInt(g.SelectedCardIndex)
	if g.PendingStatChoice != nil {
		v := *g.PendingStatChoice
		out.PendingStatChoice = &v
	}
	if g.PendingExplore != nil {
		v := *g.PendingExplore
		out.PendingExplore = &v
	}
	if g.PendingTarget != nil {
		v := *g.PendingTarget
		out.PendingTarget = &v
	}
	if g.PendingParachute != nil {
		v := *g.PendingParachute
		out.PendingParachute = &v
	}
	if g.PendingFunction != nil {
		v := *g.PendingFunction
		v.Chain = slices.Clone(v.Chain)
		v.Passed = slices.Clone(v.Passed)
		out.PendingFunction = &v
	}
	out.PendingDiscards = slices.Clone(g.PendingDiscards)
	return &out
}

// Normalize fills in fields a storage medium may have dropped.
func (g *GameState) Normalize() {
	if g.Players == nil {
		g.Players = []Player{}
	}
	for i := range g.Players {
		if g.Players[i].Hand == nil {
			g.Players[i].Hand = []Card{}
		}
	}
	if g.PlayerCount == 0 {
		g.PlayerCount = len(g.Players)
	}
	if g.Deck == nil {
		g.Deck = []Card{}
	}
	if g.DiscardPile == nil {
		g.DiscardPile = []Card{}
	}
	if g.EventLog == nil {
		g.EventLog = []string{}
	}
	if g.ActionLog == nil {
		g.ActionLog = []LogEntry{}
	}
	if g.PendingDiscards == nil {
		g.PendingDiscards = []DiscardRequest{}
	}
	if g.PendingFunction != nil {
		if g.PendingFunction.Chain == nil {
			g.PendingFunction.Chain = []ChainLink{}
		}
		if g.PendingFunction.Passed == nil {
			g.PendingFunction.Passed = []int{}
		}
	}
	if g.Phase == "" {
		g.Phase = PhaseSetup
	}
	if g.Turn < 1 {
		g.Turn = 1
	}
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		g.CurrentPlayerIndex = 0
	}
	if g.SelectedCardIndex != nil && g.CurrentPlayerIndex < len(g.Players) {
		if idx := *g.SelectedCardIndex; idx < 0 || idx >= len(g.Players[g.CurrentPlayerIndex].Hand) {
			g.SelectedCardIndex = nil
		}
	}
}

// CheckIndices rejects player indices in pending records that fall outside Players.
func (g *GameState) CheckIndices() error {
	n := len(g.Players)
	in := func(i int) bool { return i >= 0 && i < n }
	if pf := g.PendingFunction; pf != nil {
		if !in(pf.SourcePlayerIndex) {
			return Integrity("pending function source %d out of range", pf.SourcePlayerIndex)
		}
		if !in(pf.RespondingPlayerIndex) {
			return Integrity("pending function responder %d out of range", pf.RespondingPlayerIndex)
		}
		for _, link := range pf.Chain {
			if !in(link.PlayerIndex) {
				return Integrity("chain player %d out of range", link.PlayerIndex)
			}
		}
		for _, i := range pf.Passed {
			if !in(i) {
				return Integrity("passed player %d out of range", i)
			}
		}
	}
	for _, req := range g.PendingDiscards {
		if !in(req.PlayerIndex) {
			return Integrity("discard player %d out of range", req.PlayerIndex)
		}
	}
	return nil
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
