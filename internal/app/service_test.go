package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relife/internal/content"
	"relife/internal/domain"
)

// scriptedRand replays fixed values; once exhausted it returns zero.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func testCatalog() *content.Catalog {
	return &content.Catalog{Tables: domain.Tables{
		Cards: []domain.CardDef{
			{ID: "study", Name: "Study", Type: domain.CardStudy, Cost: 100, Effect: domain.StatChange{Stat: domain.StatIntelligence, Value: 1}, Count: 10},
		},
		Jobs: []domain.Job{{
			ID:       "clerk",
			Name:     "Clerk",
			Category: domain.StatIntelligence,
			Skill:    domain.StatIntelligence,
			Levels: []domain.JobLevel{
				{Name: "Clerk", RequiredStats: domain.Requirements{domain.StatIntelligence: 1}, Salary: []int{1000, 1500, 2000}},
				{Name: "Head Clerk", RequiredStats: domain.Requirements{domain.StatIntelligence: 5}, Salary: []int{3000}},
				{Name: "Office Manager", RequiredStats: domain.Requirements{domain.StatIntelligence: 9}, Salary: []int{6000}},
			},
		}},
		Characters: []domain.Character{
			{ID: "hero", Name: "Hero", InitialMoney: 1000, InitialStats: domain.Stats{Intelligence: 1, Stamina: 1, Charisma: 1}},
		},
		FixedEvents: []domain.EventDef{
			{ID: "start", Turn: 1, Name: "Start", Target: domain.Target{Kind: domain.TargetAll}, Effect: domain.MoneyChange{Value: 500}},
		},
		RandomEvents: []domain.EventDef{
			{ID: "rain", Name: "Rain", Target: domain.Target{Kind: domain.TargetAll}, Effect: domain.StatChange{Stat: domain.StatStamina, Value: -1}},
		},
		Locations: []domain.Location{
			{ID: "park", Name: "Park", Outcomes: []domain.Outcome{{Probability: 1, Description: "sunny", Effect: domain.MoneyChange{Value: 200}}}},
		},
	}}
}

func testRules() domain.Rules {
	r := domain.DefaultRules()
	r.MaxTurns = 2
	return r
}

func newTestService(rng domain.Rand) *Service {
	if rng == nil {
		rng = &scriptedRand{}
	}
	return NewService(testCatalog(), testRules(), rng)
}

func mkCard(id string, typ domain.CardType, eff domain.Effect) domain.Card {
	return domain.Card{ID: id, DefID: id, Name: id, Type: typ, Effect: eff}
}

func invalidCard(id string) domain.Card {
	return mkCard(id, domain.CardFunction, domain.Special{Handler: domain.HandlerInvalid})
}

func drawCard(id string) domain.Card {
	return mkCard(id, domain.CardFunction, domain.DrawCards{Count: 2})
}

func filler(id string) domain.Card {
	return mkCard(id, domain.CardStudy, domain.StatChange{Stat: domain.StatCharisma, Value: 1})
}

// actionState builds an action-phase state where player 0 is acting.
func actionState(hands ...[]domain.Card) *domain.GameState {
	st := &domain.GameState{
		MaxTurns: 2,
		Turn:     1,
		Phase:    domain.PhaseAction,
		Deck:     []domain.Card{filler("d1"), filler("d2"), filler("d3"), filler("d4"), filler("d5"), filler("d6")},
	}
	names := []string{"Ann", "Ben", "Cat", "Dan"}
	for i, hand := range hands {
		st.Players = append(st.Players, domain.Player{
			ID:          names[i],
			Name:        names[i],
			CharacterID: "hero",
			Money:       1000,
			Stats:       domain.Stats{Intelligence: 1, Stamina: 1, Charisma: 1},
			Hand:        hand,
		})
	}
	st.Normalize()
	return st
}

func handIDs(p domain.Player) []string {
	out := []string{}
	for _, c := range p.Hand {
		out = append(out, c.ID)
	}
	return out
}

func cardIDs(cards []domain.Card) []string {
	out := []string{}
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestNewGame(t *testing.T) {
	svc := newTestService(nil)

	st, events, err := svc.NewGame([]PlayerSeed{
		{ID: "p1", CharacterID: "hero"},
		{Name: "Robo", CharacterID: "hero", IsAI: true},
	})
	require.NoError(t, err)
	require.Len(t, st.Players, 2)

	assert.Equal(t, "p1", st.Players[0].ID)
	assert.Equal(t, "Hero", st.Players[0].Name)
	assert.NotEmpty(t, st.Players[1].ID)
	assert.Equal(t, "Robo", st.Players[1].Name)
	assert.True(t, st.Players[1].IsAI)
	assert.Len(t, st.Players[0].Hand, 3)
	assert.Len(t, st.Players[1].Hand, 3)
	assert.Len(t, st.Deck, 4)
	assert.Equal(t, 1000, st.Players[0].Money)

	assert.Equal(t, domain.PhaseEvent, st.Phase)
	require.NotNil(t, st.CurrentEvent)
	assert.Equal(t, "start", st.CurrentEvent.ID)
	assert.Equal(t, []EventKind{EventGameStarted, EventPhaseChanged, EventEventDrawn}, kinds(events))
}

func TestNewGamePlayerCount(t *testing.T) {
	svc := newTestService(nil)
	seed := PlayerSeed{CharacterID: "hero"}

	_, _, err := svc.NewGame([]PlayerSeed{seed})
	assert.ErrorIs(t, err, ErrTooFewPlayers)

	_, _, err = svc.NewGame([]PlayerSeed{seed, seed, seed, seed, seed})
	assert.ErrorIs(t, err, ErrTooManyPlayers)

	_, _, err = svc.NewGame([]PlayerSeed{seed, {CharacterID: "ghost"}})
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
}

func TestFullGameFlow(t *testing.T) {
	svc := newTestService(nil)
	st, _, err := svc.NewGame([]PlayerSeed{{ID: "a", CharacterID: "hero"}, {ID: "b", CharacterID: "hero"}})
	require.NoError(t, err)

	st, events, err := svc.ConfirmEvent(st)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSalary, st.Phase)
	assert.Nil(t, st.CurrentEvent)
	assert.Equal(t, 1500, st.Players[0].Money)
	assert.Contains(t, st.EventLog, "【Start】")
	assert.Equal(t, EventEventResolved, events[0].Kind)

	st, _, err = svc.NextPhase(st)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseAction, st.Phase)
	assert.Equal(t, 0, st.CurrentPlayerIndex)

	_, _, err = svc.EndPlayerTurn(st, 1)
	assert.ErrorIs(t, err, domain.ErrIllegalAction)

	st, _, err = svc.EndPlayerTurn(st, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, st.CurrentPlayerIndex)

	st, _, err = svc.EndPlayerTurn(st, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseDraw, st.Phase)
	assert.Len(t, st.Players[0].Hand, 5)
	assert.Len(t, st.Players[1].Hand, 5)
	assert.Empty(t, st.Deck)

	st, events, err = svc.NextPhase(st)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Turn)
	assert.Equal(t, domain.PhaseEvent, st.Phase)
	require.NotNil(t, st.CurrentEvent)
	assert.Equal(t, "rain", st.CurrentEvent.ID)
	assert.Equal(t, 2, st.CurrentEvent.Turn)
	assert.Contains(t, kinds(events), EventEventDrawn)

	st, _, err = svc.ConfirmEvent(st)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Players[1].Stats.Stamina)

	st, _, err = svc.NextPhase(st)
	require.NoError(t, err)
	st, _, err = svc.EndPlayerTurn(st, 0)
	require.NoError(t, err)
	st, _, err = svc.EndPlayerTurn(st, 1)
	require.NoError(t, err)

	st, events, err = svc.NextPhase(st)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseGameOver, st.Phase)
	assert.Equal(t, 2, st.Turn)
	assert.Equal(t, EventGameEnded, events[len(events)-1].Kind)

	got, _, err := svc.ConfirmEvent(st)
	assert.ErrorIs(t, err, domain.ErrGameOver)
	assert.Same(t, st, got)

	res, err := svc.Result(st)
	require.NoError(t, err)
	assert.Len(t, res.Rankings, 2)
}

func TestResultBeforeGameOver(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.Result(actionState(nil, nil))
	assert.ErrorIs(t, err, ErrMatchNotEnded)
}

func TestErrorsLeaveStateUntouched(t *testing.T) {
	svc := newTestService(nil)
	st := actionState([]domain.Card{filler("a1")}, []domain.Card{filler("b1")})
	before := st.Clone()

	got, events, err := svc.PlayCard(st, 1, 0)
	assert.ErrorIs(t, err, domain.ErrIllegalAction)
	assert.Same(t, st, got)
	assert.Nil(t, events)

	got, _, err = svc.PlayCard(st, 0, 5)
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
	assert.Same(t, st, got)
	assert.Equal(t, before, st)
}

func TestQueries(t *testing.T) {
	svc := newTestService(nil)
	st := actionState([]domain.Card{filler("a1"), invalidCard("inv")}, nil)

	jobs, err := svc.AvailableJobs(st, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "clerk", jobs[0].ID)

	assert.NoError(t, svc.CanPlay(st, 0, 0))
	assert.ErrorIs(t, svc.CanPlay(st, 0, 1), domain.ErrIllegalAction)
	assert.ErrorIs(t, svc.CanPlay(st, 1, 0), domain.ErrIllegalAction)
	assert.Equal(t, "Ann", svc.CurrentPlayer(st).Name)
}
