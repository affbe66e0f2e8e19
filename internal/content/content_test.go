package content

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relife/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	tables := cat.Tables
	assert.NotEmpty(t, tables.Cards)
	assert.Len(t, tables.Locations, 3)
	assert.Len(t, tables.Achievements.Thresholds, 5)
	assert.Equal(t, 200000, tables.Achievements.Thresholds[0].Threshold)
	assert.Equal(t, "Dream Come True", tables.Achievements.DreamName)

	for _, id := range []string{"napping", "robbery", "parachute", "invalid", "sabotage"} {
		_, ok := tables.CardDef(id)
		assert.True(t, ok, "card %s", id)
	}
	for _, id := range []string{"engineer", "doctor", "teacher", "farmer"} {
		job, ok := tables.Job(id)
		require.True(t, ok, "job %s", id)
		assert.Len(t, job.Levels, 3)
	}

	finale, ok := tables.FixedEvent(30)
	require.True(t, ok)
	assert.Equal(t, domain.Special{Handler: domain.HandlerGameEnd}, finale.Effect)

	handlers := map[domain.Handler]bool{}
	for _, ev := range tables.RandomEvents {
		if sp, ok := ev.Effect.(domain.Special); ok {
			handlers[sp.Handler] = true
		}
	}
	for _, h := range []domain.Handler{domain.HandlerCharity, domain.HandlerSkipTurn, domain.HandlerCompetition, domain.HandlerPassCardsLeft, domain.HandlerTax} {
		assert.True(t, handlers[h], "random pool should contain %s", h)
	}

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, cat, again)
}

func TestDefaultDreams(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	tests := []struct {
		character string
		player    domain.Player
		want      bool
	}{
		{character: "zheng-an-qi", player: domain.Player{JobID: "engineer"}, want: true},
		{character: "zheng-an-qi", player: domain.Player{JobID: "doctor"}},
		{character: "yao-xin-bei", player: domain.Player{Money: 100000}, want: true},
		{character: "yao-xin-bei", player: domain.Player{Money: 99999}},
		{character: "xu-rui-he", player: domain.Player{JobID: "magician", JobLevel: 2}, want: true},
		{character: "xu-rui-he", player: domain.Player{JobID: "magician", JobLevel: 1}},
		{character: "wu-xin-yi", player: domain.Player{Stats: domain.Stats{Intelligence: 31}}, want: true},
		{character: "wu-xin-yi", player: domain.Player{Stats: domain.Stats{Intelligence: 30}}},
	}
	for _, tt := range tests {
		t.Run(tt.character, func(t *testing.T) {
			ch, ok := cat.Tables.Character(tt.character)
			require.True(t, ok)
			require.NotNil(t, ch.Dream)
			assert.Equal(t, tt.want, cat.Dreams.Achieved(tt.player, *ch.Dream))
		})
	}
}

func TestDreamEvaluatorRejectsBadConditions(t *testing.T) {
	_, err := NewDreamEvaluator([]domain.Character{{ID: "x", Dream: &domain.Dream{Condition: "player.money >="}}})
	assert.ErrorIs(t, err, ErrInvalidContent)

	_, err = NewDreamEvaluator([]domain.Character{{ID: "x", Dream: &domain.Dream{Condition: "1 + 2"}}})
	assert.ErrorIs(t, err, ErrInvalidContent)

	var nilEval *DreamEvaluator
	assert.False(t, nilEval.Achieved(domain.Player{}, domain.Dream{Condition: "true"}))
}

func minimalFS() fstest.MapFS {
	return fstest.MapFS{
		CardsFile: {Data: []byte(`
- {id: study, type: study, name: Study, cost: 100, effect: {type: stat_change, stat: intelligence, value: 1}, count: 2}
`)},
		JobsFile: {Data: []byte(`
- id: clerk
  name: Clerk
  category: intelligence
  levels:
    - {name: A, required_stats: {intelligence: 1}, salary: [100]}
    - {name: B, required_stats: {intelligence: 2}, salary: [200]}
    - {name: C, required_stats: {intelligence: 3}, salary: [300]}
`)},
		CharactersFile: {Data: []byte(`
- {id: hero, name: Hero, initial_money: 100, initial_stats: {intelligence: 1, stamina: 1, charisma: 1}}
`)},
		EventsFile: {Data: []byte(`
fixed:
  - {id: start, turn: 1, name: Start, target: {type: all}, effect: {type: money_change, value: 10}}
random:
  - {id: clerks, name: Clerks, target: {type: specific_job, job_ids: [clerk]}, effect: {type: money_change, value: 5}}
`)},
		LocationsFile: {Data: []byte(`
- id: park
  name: Park
  outcomes:
    - {description: ok, probability: 1, effect: {type: money_change, value: 1}}
`)},
		AchievementsFile: {Data: []byte(`
thresholds:
  - {id: low, threshold: 10, score: 1}
  - {id: high, threshold: 100, score: 5}
unique: []
`)},
	}
}

func TestLoadCustomTables(t *testing.T) {
	cat, err := Load(minimalFS())
	require.NoError(t, err)
	assert.Len(t, cat.Tables.Cards, 1)
	assert.Equal(t, "high", cat.Tables.Achievements.Thresholds[0].ID)
	assert.Equal(t, domain.Requirements{domain.StatIntelligence: 2}, cat.Tables.Jobs[0].Levels[1].RequiredStats)
	assert.Equal(t, []string{"clerk"}, cat.Tables.RandomEvents[0].Target.JobIDs)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	for name, f := range minimalFS() {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), f.Data, 0o600))
	}
	cat, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, "hero", cat.Tables.Characters[0].ID)

	_, err = LoadDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidContent(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{name: "unknown effect", file: CardsFile, data: `- {id: x, type: study, effect: {type: teleport}, count: 1}`},
		{name: "unknown stat", file: JobsFile, data: `- {id: j, category: intelligence, levels: [{required_stats: {luck: 1}, salary: [1]}]}`},
		{name: "two levels", file: JobsFile, data: `- {id: j, category: intelligence, levels: [{salary: [1]}, {salary: [2]}]}`},
		{name: "unknown target job", file: EventsFile, data: "fixed: []\nrandom:\n  - {id: e, target: {type: specific_job, job_ids: [pilot]}, effect: {type: money_change, value: 1}}"},
		{name: "probabilities", file: LocationsFile, data: `- {id: p, outcomes: [{probability: 0.5, effect: {type: money_change, value: 1}}]}`},
		{name: "dream", file: CharactersFile, data: `- {id: c, dream: {name: d, condition: "player.money >"}}`},
		{name: "malformed yaml", file: CardsFile, data: `- {id: [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := minimalFS()
			fsys[tt.file] = &fstest.MapFile{Data: []byte(tt.data)}
			_, err := Load(fsys)
			assert.Error(t, err)
		})
	}
}
