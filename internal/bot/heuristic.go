package bot

import (
	botinternal "relife/internal/bot/internal"
	"relife/internal/domain"
)

// HeuristicBot plays by the card rubric and counters with chain parity in mind.
type HeuristicBot struct {
	Tables *domain.Tables
	Tuning Tuning
	Rng    domain.Rand
}

// CalculateMove implements Brain.
func (b *HeuristicBot) CalculateMove(st *domain.GameState, seat int) (Move, error) {
	return calculateMove(b, b.Tables, st, seat)
}

func (b *HeuristicBot) chooseCard(st *domain.GameState, seat int) (int, bool) {
	scored := botinternal.ScorePlayable(st.Players[seat])
	if len(scored) == 0 {
		return 0, false
	}
	if b.Rng.Float64() < b.Tuning.TopPick {
		return scored[0].Index, true
	}
	return scored[b.Rng.Intn(len(scored))].Index, true
}

func (b *HeuristicBot) chooseStat(p domain.Player) domain.StatType {
	return botinternal.LowestStat(p.Stats)
}

// chooseLocation draws among the tuned locations the content knows about,
// falling back to a uniform pick when none of them exist.
func (b *HeuristicBot) chooseLocation() (string, bool) {
	var ids []string
	var weights []float64
	for _, lw := range b.Tuning.Locations {
		if _, ok := b.Tables.Location(lw.ID); ok {
			ids = append(ids, lw.ID)
			weights = append(weights, lw.Weight)
		}
	}
	if i := weightedPick(weights, b.Rng); i >= 0 {
		return ids[i], true
	}
	if n := len(b.Tables.Locations); n > 0 {
		return b.Tables.Locations[b.Rng.Intn(n)].ID, true
	}
	return "", false
}

func (b *HeuristicBot) chooseTarget(st *domain.GameState, seat int, action domain.Handler) (string, bool) {
	candidates := opponents(st, seat)
	if len(candidates) == 0 {
		return "", false
	}

	switch action {
	case domain.HandlerSteal, domain.HandlerRobbery:
		best := -1
		for _, i := range candidates {
			if n := len(st.Players[i].Hand); n > 0 && (best < 0 || n > len(st.Players[best].Hand)) {
				best = i
			}
		}
		if best < 0 {
			return "", false
		}
		return st.Players[best].ID, true
	case domain.HandlerSabotage:
		best, bestScore := -1, 0
		for _, i := range candidates {
			p := st.Players[i]
			if s := botinternal.LeaderScore(p, b.Tables.PlayerJob(p)); best < 0 || s > bestScore {
				best, bestScore = i, s
			}
		}
		return st.Players[best].ID, true
	}
	return st.Players[candidates[b.Rng.Intn(len(candidates))]].ID, true
}

// shouldCounter keeps the source's own card alive and otherwise blocks threats
// only while the card is about to take effect.
func (b *HeuristicBot) shouldCounter(st *domain.GameState, seat int) bool {
	pf := st.PendingFunction
	odd := len(pf.Chain)%2 == 1
	if seat == pf.SourcePlayerIndex {
		return odd
	}
	if odd {
		return false
	}
	switch pf.Held.Card.Handler() {
	case domain.HandlerSteal, domain.HandlerRobbery:
		return true
	case domain.HandlerJobChange:
		return b.Rng.Float64() < b.Tuning.CounterJobChange
	}
	return b.Rng.Float64() < b.Tuning.CounterOther
}

func (b *HeuristicBot) chooseJob(p domain.Player) (string, bool) {
	if p.Employed() {
		return "", false
	}
	return bestPaying(domain.EligibleJobs(p, b.Tables.Jobs))
}

func (b *HeuristicBot) chooseParachuteJob() (string, bool) {
	return bestPaying(b.Tables.Jobs)
}

func (b *HeuristicBot) chooseDiscards(p domain.Player, n int) []int {
	return botinternal.LowestScoring(p, n)
}

// bestPaying returns the job with the highest starting salary; ties keep table order.
func bestPaying(jobs []domain.Job) (string, bool) {
	best := -1
	for i, job := range jobs {
		if best < 0 || domain.StartingSalary(job) > domain.StartingSalary(jobs[best]) {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return jobs[best].ID, true
}
