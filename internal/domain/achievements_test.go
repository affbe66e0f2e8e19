package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func achievementTables() *Tables {
	return &Tables{
		Characters: []Character{
			{ID: "dreamer", Name: "Dreamer", Dream: &Dream{Name: "Scholar", Description: "intelligence 10", Condition: "player.stats.intelligence >= 10"}},
			{ID: "plain", Name: "Plain"},
		},
		Achievements: AchievementTable{
			Thresholds: []ThresholdAchievement{
				{Achievement: Achievement{ID: "money_100k", Score: 10000}, Threshold: 100000},
				{Achievement: Achievement{ID: "money_50k", Score: 5000}, Threshold: 50000},
				{Achievement: Achievement{ID: "money_20k", Score: 2000}, Threshold: 20000},
			},
			Unique: []Achievement{
				{ID: AchievementFirstTo100k, Score: 5000},
				{ID: AchievementRichest, Score: 3000},
				{ID: AchievementFirstJob, Score: 1000},
				{ID: AchievementFirstPromotion, Score: 1500},
				{ID: AchievementMostJobChanges, Score: 1000},
				{ID: AchievementLateBloomer, Score: 1000},
				{ID: AchievementNeverWorked, Score: 500},
			},
			DreamName: "Dream Come True",
		},
	}
}

func turn(v int) *int { return &v }

func achievementIDs(list []Achievement) []string {
	out := []string{}
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestEvaluateAchievements(t *testing.T) {
	players := []Player{
		{Money: 120000, FirstJobTurn: turn(1), FirstPromotionTurn: turn(4), JobChangeCount: 3},
		{Money: 60000, FirstJobTurn: turn(6), JobChangeCount: 1},
		{Money: 1000},
	}
	got := EvaluateAchievements(players, achievementTables(), DefaultRules(), nil)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"money_100k", AchievementFirstTo100k, AchievementRichest, AchievementFirstJob, AchievementFirstPromotion, AchievementMostJobChanges}, achievementIDs(got[0]))
	assert.Equal(t, []string{"money_50k", AchievementLateBloomer}, achievementIDs(got[1]))
	assert.Equal(t, []string{AchievementNeverWorked}, achievementIDs(got[2]))
}

func TestUniqueAchievementsSkipTies(t *testing.T) {
	players := []Player{
		{Money: 5000, FirstJobTurn: turn(2), JobChangeCount: 2},
		{Money: 5000, FirstJobTurn: turn(2), JobChangeCount: 2},
	}
	got := EvaluateAchievements(players, achievementTables(), DefaultRules(), nil)
	assert.Empty(t, got[0])
	assert.Empty(t, got[1])
}

func TestFirstTo100kTieGoesToNobody(t *testing.T) {
	players := []Player{{Money: 150000}, {Money: 150000}, {Money: 100}}
	got := EvaluateAchievements(players, achievementTables(), DefaultRules(), nil)
	assert.NotContains(t, achievementIDs(got[0]), AchievementFirstTo100k)
	assert.NotContains(t, achievementIDs(got[1]), AchievementFirstTo100k)
}

func TestDreamAchievement(t *testing.T) {
	players := []Player{
		{CharacterID: "dreamer", Stats: Stats{Intelligence: 12}},
		{CharacterID: "dreamer", Stats: Stats{Intelligence: 3}},
		{CharacterID: "plain", Stats: Stats{Intelligence: 20}},
	}
	dreams := DreamCheckerFunc(func(p Player, d Dream) bool { return p.Stats.Intelligence >= 10 })
	got := EvaluateAchievements(players, achievementTables(), DefaultRules(), dreams)

	var dream *Achievement
	for i := range got[0] {
		if got[0][i].ID == "dream_dreamer" {
			dream = &got[0][i]
		}
	}
	require.NotNil(t, dream)
	assert.Equal(t, "Dream Come True", dream.Name)
	assert.Equal(t, 8000, dream.Score)
	assert.NotContains(t, achievementIDs(got[1]), "dream_dreamer")
	assert.NotContains(t, achievementIDs(got[2]), "dream_plain")
}

func TestCalculateResult(t *testing.T) {
	players := []Player{
		{ID: "a", Money: 10000, FirstJobTurn: turn(1)},
		{ID: "b", Money: 30000, FirstJobTurn: turn(1), JobID: "programmer", JobLevel: 1, Performance: 4},
	}
	res := CalculateResult(players, achievementTables(), DefaultRules(), nil)
	require.Len(t, res.Rankings, 2)

	first := res.Rankings[0]
	assert.Equal(t, "b", first.Player.ID)
	assert.Equal(t, 1, first.Rank)
	// money 30000 + job 2400 + money_20k 2000 + richest 3000
	assert.Equal(t, 2400, first.Score.JobBonus)
	assert.Equal(t, 5000, first.Score.Achievements)
	assert.Equal(t, 37400, first.Score.Total)

	assert.Equal(t, "a", res.Rankings[1].Player.ID)
	assert.Equal(t, 2, res.Rankings[1].Rank)
	assert.Equal(t, 10000, res.Rankings[1].Score.Total)
}
