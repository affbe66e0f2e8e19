package bot

import (
	"relife/internal/domain"
)

// policy answers the individual decisions of a brain.
type policy interface {
	chooseCard(st *domain.GameState, seat int) (int, bool)
	chooseStat(p domain.Player) domain.StatType
	chooseLocation() (string, bool)
	chooseTarget(st *domain.GameState, seat int, action domain.Handler) (string, bool)
	shouldCounter(st *domain.GameState, seat int) bool
	chooseJob(p domain.Player) (string, bool)
	chooseParachuteJob() (string, bool)
	chooseDiscards(p domain.Player, n int) []int
}

// calculateMove maps the decision the game waits on to a policy answer.
func calculateMove(pol policy, tables *domain.Tables, st *domain.GameState, seat int) (Move, error) {
	if st == nil || seat < 0 || seat >= len(st.Players) || st.Phase == domain.PhaseGameOver {
		return Move{}, ErrNothingToDecide
	}
	p := st.Players[seat]

	if st.Phase == domain.PhaseDraw {
		if req := st.DiscardRequestFor(seat); req >= 0 {
			return Move{Kind: MoveDiscard, Indices: pol.chooseDiscards(p, st.PendingDiscards[req].Count)}, nil
		}
		return Move{}, ErrNothingToDecide
	}

	if pf := st.PendingFunction; pf != nil {
		if pf.RespondingPlayerIndex != seat {
			return Move{}, ErrNothingToDecide
		}
		if idx := domain.FirstInvalidIndex(p.Hand); idx >= 0 && pol.shouldCounter(st, seat) {
			return Move{Kind: MoveUseInvalid, CardIndex: idx}, nil
		}
		return Move{Kind: MovePass}, nil
	}

	if st.Phase != domain.PhaseAction || st.CurrentPlayerIndex != seat {
		return Move{}, ErrNothingToDecide
	}

	switch {
	case st.PendingStatChoice != nil:
		return Move{Kind: MoveChooseStat, Stat: pol.chooseStat(p)}, nil
	case st.PendingExplore != nil:
		if id, ok := pol.chooseLocation(); ok {
			return Move{Kind: MoveChooseLocation, LocationID: id}, nil
		}
		return Move{Kind: MoveCancel}, nil
	case st.PendingTarget != nil:
		if id, ok := pol.chooseTarget(st, seat, st.PendingTarget.Action); ok {
			return Move{Kind: MoveChooseTarget, TargetID: id}, nil
		}
		return Move{Kind: MoveCancel}, nil
	case st.PendingParachute != nil:
		if id, ok := pol.chooseParachuteJob(); ok {
			return Move{Kind: MoveChooseJob, JobID: id}, nil
		}
		return Move{Kind: MoveCancel}, nil
	}

	if job := tables.PlayerJob(p); domain.CanPromote(p, job) {
		return Move{Kind: MovePromote}, nil
	}
	if idx, ok := pol.chooseCard(st, seat); ok {
		return Move{Kind: MovePlayCard, CardIndex: idx}, nil
	}
	if id, ok := pol.chooseJob(p); ok {
		return Move{Kind: MoveApplyJob, JobID: id}, nil
	}
	return Move{Kind: MoveEndTurn}, nil
}

// opponents lists every seat except seat.
func opponents(st *domain.GameState, seat int) []int {
	out := make([]int, 0, len(st.Players))
	for i := range st.Players {
		if i != seat {
			out = append(out, i)
		}
	}
	return out
}

// weightedPick draws an index with probability proportional to weights.
func weightedPick(weights []float64, rng domain.Rand) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return -1
	}
	roll := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}
