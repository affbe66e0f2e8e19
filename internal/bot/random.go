package bot

import (
	"relife/internal/domain"
)

// RandomBot plays any legal card half of the time and otherwise picks uniformly.
type RandomBot struct {
	Tables *domain.Tables
	Rng    domain.Rand
}

// CalculateMove implements Brain.
func (b *RandomBot) CalculateMove(st *domain.GameState, seat int) (Move, error) {
	return calculateMove(b, b.Tables, st, seat)
}

func (b *RandomBot) chooseCard(st *domain.GameState, seat int) (int, bool) {
	p := st.Players[seat]
	var playable []int
	for i, c := range p.Hand {
		if domain.CanPlayCard(p, c) == nil {
			playable = append(playable, i)
		}
	}
	if len(playable) == 0 || b.Rng.Intn(2) == 0 {
		return 0, false
	}
	return playable[b.Rng.Intn(len(playable))], true
}

func (b *RandomBot) chooseStat(domain.Player) domain.StatType {
	return domain.AllStats[b.Rng.Intn(len(domain.AllStats))]
}

func (b *RandomBot) chooseLocation() (string, bool) {
	if n := len(b.Tables.Locations); n > 0 {
		return b.Tables.Locations[b.Rng.Intn(n)].ID, true
	}
	return "", false
}

func (b *RandomBot) chooseTarget(st *domain.GameState, seat int, action domain.Handler) (string, bool) {
	var candidates []int
	for _, i := range opponents(st, seat) {
		if action == domain.HandlerSabotage || len(st.Players[i].Hand) > 0 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	return st.Players[candidates[b.Rng.Intn(len(candidates))]].ID, true
}

func (b *RandomBot) shouldCounter(*domain.GameState, int) bool {
	return b.Rng.Intn(2) == 0
}

func (b *RandomBot) chooseJob(p domain.Player) (string, bool) {
	if p.Employed() {
		return "", false
	}
	jobs := domain.EligibleJobs(p, b.Tables.Jobs)
	if len(jobs) == 0 {
		return "", false
	}
	return jobs[b.Rng.Intn(len(jobs))].ID, true
}

func (b *RandomBot) chooseParachuteJob() (string, bool) {
	if n := len(b.Tables.Jobs); n > 0 {
		return b.Tables.Jobs[b.Rng.Intn(n)].ID, true
	}
	return "", false
}

func (b *RandomBot) chooseDiscards(p domain.Player, n int) []int {
	idx := make([]int, len(p.Hand))
	for i := range idx {
		idx[i] = i
	}
	for i := len(idx) - 1; i > 0; i-- {
		j := b.Rng.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:min(max(n, 0), len(idx))]
}
