package domain

import "sort"

// ScoreBreakdown itemizes a player's final score.
type ScoreBreakdown struct {
	Money        int `json:"money"`
	Stats        int `json:"stats"`
	JobBonus     int `json:"job_bonus"`
	Achievements int `json:"achievements"`
	Total        int `json:"total"`
}

// ChangeMoney adds amount to money with a floor of zero.
func ChangeMoney(p Player, amount int) Player {
	p.Money = max(0, p.Money+amount)
	return p
}

// ChangeStat adds amount to stat with a floor of zero.
func ChangeStat(p Player, stat StatType, amount int) Player {
	p.Stats = p.Stats.With(stat, max(0, p.Stats.Get(stat)+amount))
	return p
}

// ChangePerformance adds amount to performance clamped to [0, MaxPerformance].
// Unemployed players are returned unchanged.
func ChangePerformance(p Player, amount int) Player {
	if !p.Employed() {
		return p
	}
	p.Performance = min(MaxPerformance, max(0, p.Performance+amount))
	return p
}

// BaseScore is money plus stats weighted by 100. Competitions rank by it.
func BaseScore(p Player) int {
	return p.Money + p.Stats.Total()*100
}

// JobBonus is (level+1)*1000 + performance*100 while employed.
func JobBonus(p Player) int {
	if !p.Employed() {
		return 0
	}
	return (p.JobLevel+1)*1000 + p.Performance*100
}

// PlayerScore computes the score without achievements.
func PlayerScore(p Player) ScoreBreakdown {
	s := ScoreBreakdown{
		Money:    p.Money,
		Stats:    p.Stats.Total() * 100,
		JobBonus: JobBonus(p),
	}
	s.Total = s.Money + s.Stats + s.JobBonus
	return s
}

// RichestIndices returns up to n player indices ordered by money descending.
// Ties keep roster order.
func RichestIndices(players []Player, n int) []int {
	idx := rosterOrder(players)
	sort.SliceStable(idx, func(a, b int) bool {
		return players[idx[a]].Money > players[idx[b]].Money
	})
	return idx[:min(max(n, 0), len(idx))]
}

// PoorestIndices returns up to n player indices ordered by money ascending.
// Ties keep roster order.
func PoorestIndices(players []Player, n int) []int {
	idx := rosterOrder(players)
	sort.SliceStable(idx, func(a, b int) bool {
		return players[idx[a]].Money < players[idx[b]].Money
	})
	return idx[:min(max(n, 0), len(idx))]
}

// HighestStatIndex returns the first player holding the maximum of stat, or -1 for an empty roster.
func HighestStatIndex(players []Player, stat StatType) int {
	best := -1
	for i, p := range players {
		if best < 0 || p.Stats.Get(stat) > players[best].Stats.Get(stat) {
			best = i
		}
	}
	return best
}

// EmployedIndices returns the indices of players with a job.
func EmployedIndices(players []Player) []int {
	var out []int
	for i, p := range players {
		if p.Employed() {
			out = append(out, i)
		}
	}
	return out
}

// LowestStat returns the player's lowest stat. Ties resolve in AllStats order.
func LowestStat(s Stats) StatType {
	lowest := AllStats[0]
	for _, stat := range AllStats[1:] {
		if s.Get(stat) < s.Get(lowest) {
			lowest = stat
		}
	}
	return lowest
}

func rosterOrder(players []Player) []int {
	idx := make([]int, len(players))
	for i := range idx {
		idx[i] = i
	}
	return idx
}
