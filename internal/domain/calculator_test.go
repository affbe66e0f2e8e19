package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeMoneyFloorsAtZero(t *testing.T) {
	p := Player{Money: 300}
	assert.Equal(t, 800, ChangeMoney(p, 500).Money)
	assert.Equal(t, 0, ChangeMoney(p, -1000).Money)
	assert.Equal(t, 300, p.Money)
}

func TestChangeStatFloorsAtZero(t *testing.T) {
	p := Player{Stats: Stats{Intelligence: 2, Stamina: 1}}
	assert.Equal(t, 5, ChangeStat(p, StatIntelligence, 3).Stats.Intelligence)
	assert.Equal(t, 0, ChangeStat(p, StatStamina, -4).Stats.Stamina)
}

func TestChangePerformance(t *testing.T) {
	tests := []struct {
		name   string
		player Player
		delta  int
		want   int
	}{
		{name: "unemployed unchanged", player: Player{Performance: 0}, delta: 2, want: 0},
		{name: "adds", player: Player{JobID: "j", Performance: 2}, delta: 2, want: 4},
		{name: "caps at nine", player: Player{JobID: "j", Performance: 8}, delta: 3, want: 9},
		{name: "floors at zero", player: Player{JobID: "j", Performance: 1}, delta: -3, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChangePerformance(tt.player, tt.delta).Performance)
		})
	}
}

func TestPlayerScore(t *testing.T) {
	p := Player{Money: 5000, Stats: Stats{Intelligence: 3, Stamina: 2, Charisma: 1}}
	s := PlayerScore(p)
	assert.Equal(t, ScoreBreakdown{Money: 5000, Stats: 600, Total: 5600}, s)

	p.JobID = "j"
	p.JobLevel = 1
	p.Performance = 4
	s = PlayerScore(p)
	assert.Equal(t, 2400, s.JobBonus)
	assert.Equal(t, 8000, s.Total)
	assert.Equal(t, 5600, BaseScore(p))
}

func TestRichestAndPoorest(t *testing.T) {
	players := []Player{{Money: 100}, {Money: 300}, {Money: 100}, {Money: 200}}
	assert.Equal(t, []int{1, 3}, RichestIndices(players, 2))
	assert.Equal(t, []int{0, 2, 3}, PoorestIndices(players, 3))
	assert.Equal(t, []int{1, 3, 0, 2}, RichestIndices(players, 10))
	assert.Empty(t, RichestIndices(nil, 1))
}

func TestHighestStatIndex(t *testing.T) {
	players := []Player{
		{Stats: Stats{Intelligence: 4}},
		{Stats: Stats{Intelligence: 7}},
		{Stats: Stats{Intelligence: 7}},
	}
	assert.Equal(t, 1, HighestStatIndex(players, StatIntelligence))
	assert.Equal(t, 0, HighestStatIndex(players, StatStamina))
	assert.Equal(t, -1, HighestStatIndex(nil, StatStamina))
}

func TestLowestStat(t *testing.T) {
	assert.Equal(t, StatIntelligence, LowestStat(Stats{Intelligence: 1, Stamina: 1, Charisma: 1}))
	assert.Equal(t, StatCharisma, LowestStat(Stats{Intelligence: 3, Stamina: 2, Charisma: 0}))
	assert.Equal(t, StatStamina, LowestStat(Stats{Intelligence: 3, Stamina: 1, Charisma: 1}))
}
