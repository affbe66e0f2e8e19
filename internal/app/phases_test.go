package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relife/internal/domain"
)

func fillers(prefix string, n int) []domain.Card {
	out := make([]domain.Card, n)
	for i := range out {
		out[i] = filler(prefix + string(rune('a'+i)))
	}
	return out
}

func TestEnterActionSkipsFlaggedPlayers(t *testing.T) {
	tests := []struct {
		name      string
		skips     []bool
		wantPhase domain.Phase
		wantIdx   int
	}{
		{name: "first player skips", skips: []bool{true, false, false}, wantPhase: domain.PhaseAction, wantIdx: 1},
		{name: "nobody skips", skips: []bool{false, false, false}, wantPhase: domain.PhaseAction, wantIdx: 0},
		{name: "everyone skips", skips: []bool{true, true, true}, wantPhase: domain.PhaseDraw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(nil)
			st := actionState(nil, nil, nil)
			st.Phase = domain.PhaseSalary
			for i, skip := range tt.skips {
				st.Players[i].IsSkipTurn = skip
			}

			next, _, err := svc.NextPhase(st)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPhase, next.Phase)
			if tt.wantPhase == domain.PhaseAction {
				assert.Equal(t, tt.wantIdx, next.CurrentPlayerIndex)
			}
			for _, p := range next.Players {
				assert.False(t, p.IsSkipTurn, p.Name)
			}
			assert.Equal(t, tt.skips[0], st.Players[0].IsSkipTurn)
		})
	}
}

func TestEndPlayerTurnSkipsLaterPlayers(t *testing.T) {
	svc := newTestService(nil)
	st := actionState(nil, nil, nil)
	st.Players[1].IsSkipTurn = true

	next, events, err := svc.EndPlayerTurn(st, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, next.CurrentPlayerIndex)
	assert.False(t, next.Players[1].IsSkipTurn)

	payload, ok := events[0].Payload.(TurnEndedPayload)
	require.True(t, ok)
	assert.Equal(t, "Cat", payload.NextPlayerID)
}

func TestNextPhaseRejectsActionPhase(t *testing.T) {
	svc := newTestService(nil)
	st := actionState(nil, nil)

	got, _, err := svc.NextPhase(st)
	assert.ErrorIs(t, err, domain.ErrIllegalAction)
	assert.Same(t, st, got)
}

func TestNextPhaseRequiresConfirmedEvent(t *testing.T) {
	svc := newTestService(nil)
	st := actionState(nil, nil)
	st.Phase = domain.PhaseEvent
	st.CurrentEvent = &svc.Tables().RandomEvents[0]

	_, _, err := svc.NextPhase(st)
	assert.ErrorIs(t, err, domain.ErrIllegalAction)

	st.CurrentEvent = nil
	next, _, err := svc.NextPhase(st)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSalary, next.Phase)
}

func TestSalaryPhasePaysEmployedPlayers(t *testing.T) {
	svc := newTestService(nil)
	st := actionState(nil, nil)
	st.Phase = domain.PhaseEvent
	st.CurrentEvent = &domain.EventDef{ID: "calm", Name: "Calm", Target: domain.Target{Kind: domain.TargetAll}, Effect: domain.MoneyChange{}}
	st.Players[0].JobID = "clerk"
	st.Players[0].Performance = 1

	next, events, err := svc.ConfirmEvent(st)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSalary, next.Phase)
	assert.Equal(t, 2500, next.Players[0].Money)
	assert.Equal(t, 2, next.Players[0].Stats.Intelligence)
	assert.Equal(t, 1000, next.Players[1].Money)
	assert.Contains(t, kinds(events), EventSalaryPaid)

	last := next.ActionLog[len(next.ActionLog)-1]
	assert.Equal(t, domain.LogSystem, last.Kind)
	assert.Equal(t, "Ann", last.PlayerID)
	assert.Contains(t, last.Message, "earns $1500")
}

func TestGameEndEventFinishesImmediately(t *testing.T) {
	svc := newTestService(nil)
	st := actionState(nil, nil)
	st.Phase = domain.PhaseEvent
	st.CurrentEvent = &domain.EventDef{ID: "finale", Name: "Finale", Target: domain.Target{Kind: domain.TargetAll}, Effect: domain.Special{Handler: domain.HandlerGameEnd}}

	next, events, err := svc.ConfirmEvent(st)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseGameOver, next.Phase)
	assert.Equal(t, EventGameEnded, events[len(events)-1].Kind)
}

func TestDrawPhaseDiscards(t *testing.T) {
	svc := newTestService(nil)
	st := actionState(nil, fillers("h", 9))
	st.CurrentPlayerIndex = 1

	st, events, err := svc.EndPlayerTurn(st, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseDraw, st.Phase)
	require.Len(t, st.PendingDiscards, 1)
	assert.Equal(t, domain.DiscardRequest{PlayerIndex: 1, Count: 1}, st.PendingDiscards[0])
	assert.Len(t, st.Players[1].Hand, 11)
	assert.Equal(t, []string{"d1", "d2"}, handIDs(st.Players[0]))

	var required *Event
	for i := range events {
		if events[i].Kind == EventDiscardRequired {
			required = &events[i]
		}
	}
	require.NotNil(t, required)
	assert.Equal(t, []string{"Ben"}, required.Recipients)

	_, _, err = svc.NextPhase(st)
	assert.ErrorIs(t, err, domain.ErrIllegalAction)

	tests := []struct {
		name    string
		actor   int
		indices []int
		wantErr error
	}{
		{name: "nothing owed", actor: 0, indices: []int{0}, wantErr: domain.ErrIllegalAction},
		{name: "wrong count", actor: 1, indices: []int{0, 1}, wantErr: domain.ErrIllegalAction},
		{name: "out of range", actor: 1, indices: []int{11}, wantErr: domain.ErrDataIntegrity},
		{name: "unknown player", actor: 7, indices: []int{0}, wantErr: domain.ErrDataIntegrity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := svc.ConfirmDiscard(st, tt.actor, tt.indices)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Same(t, st, got)
		})
	}

	next, events, err := svc.ConfirmDiscard(st, 1, []int{0})
	require.NoError(t, err)
	assert.Len(t, next.Players[1].Hand, 10)
	assert.Empty(t, next.PendingDiscards)
	assert.Equal(t, []string{"ha"}, cardIDs(next.DiscardPile))
	assert.Equal(t, EventCardsDiscarded, events[0].Kind)

	next, _, err = svc.NextPhase(next)
	require.NoError(t, err)
	assert.Equal(t, 2, next.Turn)
}

func TestDrawPhaseDuplicateDiscard(t *testing.T) {
	svc := newTestService(nil)
	st := actionState(nil, nil)
	st.Phase = domain.PhaseDraw
	st.Players[0].Hand = fillers("h", 12)
	st.PendingDiscards = []domain.DiscardRequest{{PlayerIndex: 0, Count: 2}}

	_, _, err := svc.ConfirmDiscard(st, 0, []int{3, 3})
	assert.ErrorIs(t, err, domain.ErrIllegalAction)
}

func TestDrawPhaseRefillsFromDiscardPile(t *testing.T) {
	svc := newTestService(nil)
	st := actionState(nil, nil)
	st.Deck = []domain.Card{filler("d1")}
	st.DiscardPile = []domain.Card{filler("x1"), filler("x2"), filler("x3")}
	st.CurrentPlayerIndex = 1

	next, _, err := svc.EndPlayerTurn(st, 1)
	require.NoError(t, err)
	assert.Empty(t, next.DiscardPile)
	assert.Empty(t, next.Deck)
	assert.Len(t, next.Players[0].Hand, 2)
	assert.Len(t, next.Players[1].Hand, 2)
	assert.Equal(t, "d1", next.Players[0].Hand[0].ID)
}

func TestMutationsAfterGameOver(t *testing.T) {
	svc := newTestService(nil)
	st := actionState([]domain.Card{filler("a1")}, nil)
	st.Phase = domain.PhaseGameOver

	calls := map[string]func() (*domain.GameState, []Event, error){
		"next phase":   func() (*domain.GameState, []Event, error) { return svc.NextPhase(st) },
		"confirm":      func() (*domain.GameState, []Event, error) { return svc.ConfirmEvent(st) },
		"play card":    func() (*domain.GameState, []Event, error) { return svc.PlayCard(st, 0, 0) },
		"end turn":     func() (*domain.GameState, []Event, error) { return svc.EndPlayerTurn(st, 0) },
		"apply job":    func() (*domain.GameState, []Event, error) { return svc.ApplyJob(st, 0, "clerk") },
		"pass":         func() (*domain.GameState, []Event, error) { return svc.PassReaction(st, 1) },
		"discard":      func() (*domain.GameState, []Event, error) { return svc.ConfirmDiscard(st, 0, nil) },
		"cancel":       func() (*domain.GameState, []Event, error) { return svc.CancelPendingAction(st, 0) },
		"select":       func() (*domain.GameState, []Event, error) { return svc.SelectCard(st, 0, 0) },
		"promote":      func() (*domain.GameState, []Event, error) { return svc.TryPromote(st, 0) },
		"choose stat":  func() (*domain.GameState, []Event, error) { return svc.ChooseStat(st, 0, domain.StatStamina) },
		"use invalid":  func() (*domain.GameState, []Event, error) { return svc.UseInvalidCard(st, 1, 0) },
		"choose place": func() (*domain.GameState, []Event, error) { return svc.ChooseExploreLocation(st, 0, "park") },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			got, events, err := call()
			assert.ErrorIs(t, err, domain.ErrGameOver)
			assert.Same(t, st, got)
			assert.Nil(t, events)
		})
	}
}
