package bot

import (
	"relife/internal/app"
	"relife/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain

	// actedTurn is the last turn in which the agent spent its action.
	actedTurn int
}

// Play asks the agent to calculate its move based on the current game state.
// An agent plays at most one card or job application per turn and then ends it.
func (a *Agent) Play(st *domain.GameState) (Move, error) {
	seat := st.PlayerIndex(a.ID)
	if seat < 0 {
		return Move{}, ErrNothingToDecide
	}
	move, err := a.Strategy.CalculateMove(st, seat)
	if err != nil {
		return Move{}, err
	}
	if a.actedTurn == st.Turn {
		switch move.Kind {
		case MovePlayCard, MoveApplyJob, MovePromote:
			move = Move{Kind: MoveEndTurn}
		}
	}
	return move, nil
}

// Reset forgets what the agent did in a previous game.
func (a *Agent) Reset() {
	a.actedTurn = 0
}

// Act decides and performs the agent's next move.
// A selection the service rejects is cancelled so the turn can go on.
func (a *Agent) Act(svc *app.Service, st *domain.GameState) (*domain.GameState, []app.Event, error) {
	move, err := a.Play(st)
	if err != nil {
		return st, nil, err
	}
	seat := st.PlayerIndex(a.ID)
	next, events, err := Apply(svc, st, seat, move)
	if err != nil {
		switch move.Kind {
		case MoveChooseStat, MoveChooseLocation, MoveChooseTarget, MoveChooseJob:
			a.actedTurn = st.Turn
			return Apply(svc, st, seat, Move{Kind: MoveCancel})
		case MovePlayCard, MoveApplyJob, MovePromote:
			a.actedTurn = st.Turn
			return Apply(svc, st, seat, Move{Kind: MoveEndTurn})
		}
		return st, nil, err
	}
	switch move.Kind {
	case MovePlayCard, MoveApplyJob, MoveCancel:
		a.actedTurn = st.Turn
	}
	return next, events, nil
}

// Apply performs move for seat through the service.
func Apply(svc *app.Service, st *domain.GameState, seat int, move Move) (*domain.GameState, []app.Event, error) {
	switch move.Kind {
	case MovePlayCard:
		return svc.PlayCard(st, seat, move.CardIndex)
	case MoveApplyJob:
		return svc.ApplyJob(st, seat, move.JobID)
	case MovePromote:
		return svc.TryPromote(st, seat)
	case MoveEndTurn:
		return svc.EndPlayerTurn(st, seat)
	case MoveChooseStat:
		return svc.ChooseStat(st, seat, move.Stat)
	case MoveChooseLocation:
		return svc.ChooseExploreLocation(st, seat, move.LocationID)
	case MoveChooseTarget:
		return svc.ChooseTargetPlayer(st, seat, move.TargetID)
	case MoveChooseJob:
		return svc.ChooseParachuteJob(st, seat, move.JobID)
	case MoveUseInvalid:
		return svc.UseInvalidCard(st, seat, move.CardIndex)
	case MovePass:
		return svc.PassReaction(st, seat)
	case MoveDiscard:
		return svc.ConfirmDiscard(st, seat, move.Indices)
	case MoveCancel:
		return svc.CancelPendingAction(st, seat)
	}
	return st, nil, domain.Illegal("unknown move %q", move.Kind)
}

// Waiting returns the seats whose input the game is blocked on, in roster order.
// An empty result means the next step is a phase transition anyone may trigger.
func Waiting(st *domain.GameState) []int {
	if st == nil || st.Phase == domain.PhaseGameOver {
		return nil
	}
	if st.Phase == domain.PhaseDraw {
		var out []int
		for i := range st.Players {
			if st.DiscardRequestFor(i) >= 0 {
				out = append(out, i)
			}
		}
		return out
	}
	if st.PendingFunction != nil {
		return []int{st.PendingFunction.RespondingPlayerIndex}
	}
	if st.Phase == domain.PhaseAction {
		return []int{st.CurrentPlayerIndex}
	}
	return nil
}
