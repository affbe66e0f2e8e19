package internal

import (
	"sort"

	"relife/internal/domain"
)

// Card rubric. Higher plays first; zero is never played proactively.
const (
	scorePerformance   = 90
	scoreParachuteIdle = 85
	scoreStudyLowest   = 70
	scoreStudyOther    = 50
	scoreStatChoice    = 65
	scoreStatLowest    = 60
	scoreStatOther     = 40
	scoreDraw          = 60
	scoreExplore       = 25
	scoreSteal         = 45
	scoreSabotage      = 40
	scoreJobChange     = 15
	scoreParachuteJob  = 15
	scoreDefault       = 10

	lowMoneyBootlicking = 2000
	lowMoneyOvertime    = 3000
	spendMinimum        = 1000
	statComfort         = 10
)

// ScoredCard is a hand index with its rubric score.
type ScoredCard struct {
	Index int
	Score int
}

// LowestStat returns the weakest stat. Ties resolve in declaration order.
func LowestStat(s domain.Stats) domain.StatType {
	switch {
	case s.Intelligence <= s.Stamina && s.Intelligence <= s.Charisma:
		return domain.StatIntelligence
	case s.Stamina <= s.Charisma:
		return domain.StatStamina
	default:
		return domain.StatCharisma
	}
}

// LeaderScore estimates how far ahead a player is: money, stats and current pay.
func LeaderScore(p domain.Player, job *domain.Job) int {
	return p.Money + p.Stats.Total()*100 + domain.Salary(p, job)
}

// ScoreCard rates c for p.
func ScoreCard(p domain.Player, c domain.Card) int {
	employed := p.Employed()
	affordable := p.Money >= c.Cost

	switch eff := c.Effect.(type) {
	case domain.PerformanceChange:
		if employed {
			return scorePerformance
		}
		return 0
	case domain.StatChange:
		lowest := eff.Stat == LowestStat(p.Stats)
		if c.Type == domain.CardStudy {
			switch {
			case !affordable:
				return 0
			case lowest:
				return scoreStudyLowest
			default:
				return scoreStudyOther
			}
		}
		if lowest {
			return scoreStatLowest
		}
		return scoreStatOther
	case domain.StatChoice:
		if affordable {
			return scoreStatChoice
		}
		return 0
	case domain.DrawCards:
		return scoreDraw
	case domain.Explore:
		if c.Type == domain.CardWork && !employed {
			return 0
		}
		return scoreExplore
	case domain.Special:
		return scoreSpecial(p, eff.Handler)
	}
	return scoreDefault
}

func scoreSpecial(p domain.Player, h domain.Handler) int {
	employed := p.Employed()
	pick := func(cond bool, hit, employedOnly int) int {
		switch {
		case employed && cond:
			return hit
		case employed:
			return employedOnly
		}
		return 0
	}

	switch h {
	case domain.HandlerBootlicking:
		return pick(p.Money < lowMoneyBootlicking, 55, 30)
	case domain.HandlerSocializing:
		return pick(p.Money >= spendMinimum && p.Stats.Charisma < statComfort, 50, 20)
	case domain.HandlerNapping:
		return pick(p.Money >= spendMinimum && p.Stats.Stamina < statComfort, 50, 20)
	case domain.HandlerOvertime:
		return pick(p.Money < lowMoneyOvertime, 60, 25)
	case domain.HandlerSteal, domain.HandlerRobbery:
		return scoreSteal
	case domain.HandlerSabotage:
		return scoreSabotage
	case domain.HandlerJobChange:
		if employed {
			return scoreJobChange
		}
		return 0
	case domain.HandlerParachute:
		if employed {
			return scoreParachuteJob
		}
		return scoreParachuteIdle
	case domain.HandlerInvalid:
		return 0
	}
	return scoreDefault
}

// ScorePlayable returns the playable cards with a positive score, best first.
// Equal scores keep hand order.
func ScorePlayable(p domain.Player) []ScoredCard {
	var out []ScoredCard
	for i, c := range p.Hand {
		if domain.CanPlayCard(p, c) != nil {
			continue
		}
		if s := ScoreCard(p, c); s > 0 {
			out = append(out, ScoredCard{Index: i, Score: s})
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out
}

// LowestScoring returns the hand indices of the n lowest-scoring cards.
// Equal scores keep hand order.
func LowestScoring(p domain.Player, n int) []int {
	scored := make([]ScoredCard, len(p.Hand))
	for i, c := range p.Hand {
		scored[i] = ScoredCard{Index: i, Score: ScoreCard(p, c)}
	}
	sort.SliceStable(scored, func(a, b int) bool { return scored[a].Score < scored[b].Score })
	n = min(max(n, 0), len(scored))
	out := make([]int, n)
	for i := range out {
		out[i] = scored[i].Index
	}
	return out
}
