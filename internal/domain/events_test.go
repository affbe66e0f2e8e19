package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventState(players ...Player) *GameState {
	st := &GameState{Players: players, PlayerCount: len(players), Phase: PhaseEvent, Turn: 1}
	st.Normalize()
	return st
}

func eventEnv() EventEnv {
	return EventEnv{Rules: DefaultRules(), Tables: &Tables{}}
}

func TestResolveTargets(t *testing.T) {
	players := []Player{
		{Money: 500, JobID: "doctor"},
		{Money: 3000},
		{Money: 1000, JobID: "engineer"},
	}
	tests := []struct {
		name   string
		target Target
		want   []int
	}{
		{name: "all", target: Target{Kind: TargetAll}, want: []int{0, 1, 2}},
		{name: "richest", target: Target{Kind: TargetRichest, Count: 2}, want: []int{1, 2}},
		{name: "poorest defaults to one", target: Target{Kind: TargetPoorest}, want: []int{0}},
		{name: "has job", target: Target{Kind: TargetHasJob}, want: []int{0, 2}},
		{name: "specific job", target: Target{Kind: TargetSpecificJob, JobIDs: []string{"engineer", "chef"}}, want: []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTargets(players, tt.target))
		})
	}
}

func TestApplyEventBasicEffects(t *testing.T) {
	st := eventState(Player{Name: "A", Money: 100}, Player{Name: "B", Money: 900, JobID: "doctor"})
	ev := EventDef{Name: "Bonus", Description: "doctors get paid", Target: Target{Kind: TargetSpecificJob, JobIDs: []string{"doctor"}}, Effect: MoneyChange{Value: 1000}}
	st.CurrentEvent = &ev

	msgs := ApplyEvent(st, ev, eventEnv())
	assert.Equal(t, "【Bonus】doctors get paid", msgs[0])
	assert.Equal(t, 100, st.Players[0].Money)
	assert.Equal(t, 1900, st.Players[1].Money)
	assert.Nil(t, st.CurrentEvent)

	ApplyEvent(st, EventDef{Target: Target{Kind: TargetAll}, Effect: StatChange{Stat: StatCharisma, Value: -1}}, eventEnv())
	assert.Equal(t, 0, st.Players[0].Stats.Charisma)
}

func TestApplyEventDrawCapsHand(t *testing.T) {
	full := make([]Card, 9)
	st := eventState(Player{Name: "A", Hand: full}, Player{Name: "B"})
	st.Deck = []Card{{ID: "d1"}, {ID: "d2"}, {ID: "d3"}, {ID: "d4"}}

	ApplyEvent(st, EventDef{Target: Target{Kind: TargetAll}, Effect: DrawCards{Count: 2}}, eventEnv())
	assert.Len(t, st.Players[0].Hand, 10)
	assert.Equal(t, "d1", st.Players[0].Hand[9].ID)
	assert.Equal(t, []string{"d2", "d3"}, ids(st.Players[1].Hand))
	assert.Equal(t, []string{"d4"}, ids(st.Deck))
}

func TestApplyEventSpecials(t *testing.T) {
	tests := []struct {
		name    string
		players []Player
		event   EventDef
		check   func(t *testing.T, st *GameState)
	}{
		{
			name:    "poverty relief tops up",
			players: []Player{{Money: 200}, {Money: 1500}, {Money: 4000}},
			event:   EventDef{Target: Target{Kind: TargetAll}, Effect: Special{Handler: HandlerPovertyRelief}},
			check: func(t *testing.T, st *GameState) {
				assert.Equal(t, []int{1500, 1500, 4000}, moneyOf(st))
			},
		},
		{
			name:    "poverty relief 3000 pays the poorest",
			players: []Player{{Money: 800}, {Money: 200}, {Money: 200}},
			event:   EventDef{Effect: Special{Handler: HandlerPovertyRelief3000}},
			check: func(t *testing.T, st *GameState) {
				assert.Equal(t, []int{800, 3200, 200}, moneyOf(st))
			},
		},
		{
			name:    "tax floors the amount",
			players: []Player{{Money: 10005}, {Money: 2000}},
			event:   EventDef{Target: Target{Kind: TargetRichest, Count: 1}, Effect: Special{Handler: HandlerTax}},
			check: func(t *testing.T, st *GameState) {
				assert.Equal(t, []int{9005, 2000}, moneyOf(st))
			},
		},
		{
			name: "competition pays each stat leader",
			players: []Player{
				{Stats: Stats{Intelligence: 5, Stamina: 1, Charisma: 3}},
				{Stats: Stats{Intelligence: 5, Stamina: 4, Charisma: 2}},
			},
			event: EventDef{Effect: Special{Handler: HandlerCompetition}},
			check: func(t *testing.T, st *GameState) {
				assert.Equal(t, []int{4000, 2000}, moneyOf(st))
			},
		},
		{
			name:    "ranked competition",
			players: []Player{{Money: 100}, {Money: 5000}, {Money: 1000, Stats: Stats{Charisma: 50}}},
			event:   EventDef{Effect: Special{Handler: HandlerCompetitionRanked}, Prizes: []int{3000, 1000}},
			check: func(t *testing.T, st *GameState) {
				assert.Equal(t, []int{100, 6000, 9000}, moneyOf(st))
			},
		},
		{
			name:    "charity moves money",
			players: []Player{{Money: 1000}, {Money: 9000}, {Money: 500}},
			event:   EventDef{Effect: Special{Handler: HandlerCharity}},
			check: func(t *testing.T, st *GameState) {
				assert.Equal(t, []int{1000, 7000, 2500}, moneyOf(st))
			},
		},
		{
			name:    "charity never gives more than the donor holds",
			players: []Player{{Money: 1500}, {Money: 1000}},
			event:   EventDef{Effect: Special{Handler: HandlerCharity}},
			check: func(t *testing.T, st *GameState) {
				assert.Equal(t, []int{0, 2500}, moneyOf(st))
			},
		},
		{
			name:    "charity with equal money is a no-op",
			players: []Player{{Money: 1000}, {Money: 1000}},
			event:   EventDef{Effect: Special{Handler: HandlerCharity}},
			check: func(t *testing.T, st *GameState) {
				assert.Equal(t, []int{1000, 1000}, moneyOf(st))
			},
		},
		{
			name:    "skip turn",
			players: []Player{{Money: 100}, {Money: 900}},
			event:   EventDef{Target: Target{Kind: TargetRichest, Count: 1}, Effect: Special{Handler: HandlerSkipTurn}},
			check: func(t *testing.T, st *GameState) {
				assert.False(t, st.Players[0].IsSkipTurn)
				assert.True(t, st.Players[1].IsSkipTurn)
			},
		},
		{
			name: "pass cards left uses the hands before passing",
			players: []Player{
				{Hand: []Card{{ID: "a1"}, {ID: "a2"}}},
				{Hand: []Card{}},
				{Hand: []Card{{ID: "c1"}}},
			},
			event: EventDef{Effect: Special{Handler: HandlerPassCardsLeft}},
			check: func(t *testing.T, st *GameState) {
				assert.Equal(t, []string{"a2", "c1"}, ids(st.Players[0].Hand))
				assert.Equal(t, []string{"a1"}, ids(st.Players[1].Hand))
				assert.Empty(t, st.Players[2].Hand)
			},
		},
		{
			name:    "game end",
			players: []Player{{}, {}},
			event:   EventDef{Effect: Special{Handler: HandlerGameEnd}},
			check: func(t *testing.T, st *GameState) {
				assert.Equal(t, PhaseGameOver, st.Phase)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := eventState(tt.players...)
			msgs := ApplyEvent(st, tt.event, eventEnv())
			require.NotEmpty(t, msgs)
			tt.check(t, st)
		})
	}
}

func TestCompetitionAchievementCountsAchievements(t *testing.T) {
	tables := &Tables{Achievements: AchievementTable{
		Unique: []Achievement{{ID: AchievementNeverWorked, Score: 10000}},
	}}
	one := 1
	st := eventState(Player{Money: 6000, FirstJobTurn: &one}, Player{Money: 1000})
	ev := EventDef{Effect: Special{Handler: HandlerCompetitionAchievement}, Prizes: []int{5000}}

	ApplyEvent(st, ev, EventEnv{Rules: DefaultRules(), Tables: tables})
	assert.Equal(t, []int{6000, 6000}, moneyOf(st))
}

func moneyOf(st *GameState) []int {
	out := make([]int, len(st.Players))
	for i, p := range st.Players {
		out[i] = p.Money
	}
	return out
}
