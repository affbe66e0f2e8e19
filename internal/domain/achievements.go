package domain

import "sort"

// DreamChecker decides whether a player reached their character's dream.
type DreamChecker interface {
	Achieved(p Player, dream Dream) bool
}

// DreamCheckerFunc adapts a function to DreamChecker.
type DreamCheckerFunc func(p Player, dream Dream) bool

// Achieved calls f.
func (f DreamCheckerFunc) Achieved(p Player, dream Dream) bool {
	return f(p, dream)
}

// Ranking is one row of the final standings.
type Ranking struct {
	Player       Player         `json:"player"`
	Score        ScoreBreakdown `json:"score"`
	Achievements []Achievement  `json:"achievements"`
	Rank         int            `json:"rank"`
}

// GameResult is the final standings, best first.
type GameResult struct {
	Rankings []Ranking `json:"rankings"`
}

// AchievementTotal sums achievement scores.
func AchievementTotal(list []Achievement) int {
	total := 0
	for _, a := range list {
		total += a.Score
	}
	return total
}

// EvaluateAchievements returns the achievements of each player, aligned with players.
func EvaluateAchievements(players []Player, tables *Tables, rules Rules, dreams DreamChecker) [][]Achievement {
	out := make([][]Achievement, len(players))
	if tables == nil {
		return out
	}
	table := tables.Achievements

	for i, p := range players {
		for _, t := range table.Thresholds {
			if p.Money >= t.Threshold {
				out[i] = append(out[i], t.Achievement)
				break
			}
		}
	}

	award := func(id string, winner int) {
		if winner < 0 {
			return
		}
		if a, ok := table.UniqueByID(id); ok {
			out[winner] = append(out[winner], a)
		}
	}

	award(AchievementFirstTo100k, firstTo100k(players))
	award(AchievementRichest, uniqueBest(players, func(p Player) (int, bool) { return p.Money, true }, true))
	award(AchievementFirstJob, uniqueBest(players, turnOf(func(p Player) *int { return p.FirstJobTurn }), false))
	award(AchievementFirstPromotion, uniqueBest(players, turnOf(func(p Player) *int { return p.FirstPromotionTurn }), false))
	award(AchievementMostJobChanges, uniqueBest(players, func(p Player) (int, bool) {
		return p.JobChangeCount, p.JobChangeCount >= 2
	}, true))
	award(AchievementLateBloomer, lateBloomer(players))
	award(AchievementNeverWorked, neverWorked(players))

	if dreams != nil {
		for i, p := range players {
			ch, ok := tables.Character(p.CharacterID)
			if !ok || ch.Dream == nil {
				continue
			}
			if !dreams.Achieved(p, *ch.Dream) {
				continue
			}
			name := table.DreamName
			if name == "" {
				name = ch.Dream.Name
			}
			out[i] = append(out[i], Achievement{
				ID:          "dream_" + ch.ID,
				Name:        name,
				Description: ch.Dream.Description,
				Score:       rules.DreamBonus,
			})
		}
	}
	return out
}

// CalculateResult scores and ranks every player.
func CalculateResult(players []Player, tables *Tables, rules Rules, dreams DreamChecker) GameResult {
	awards := EvaluateAchievements(players, tables, rules, dreams)
	rankings := make([]Ranking, len(players))
	for i, p := range players {
		score := PlayerScore(p)
		score.Achievements = AchievementTotal(awards[i])
		score.Total += score.Achievements
		rankings[i] = Ranking{Player: p, Score: score, Achievements: awards[i]}
	}
	sort.SliceStable(rankings, func(a, b int) bool {
		return rankings[a].Score.Total > rankings[b].Score.Total
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return GameResult{Rankings: rankings}
}

func turnOf(get func(Player) *int) func(Player) (int, bool) {
	return func(p Player) (int, bool) {
		t := get(p)
		if t == nil {
			return 0, false
		}
		return *t, true
	}
}

// uniqueBest returns the single qualifying player with the highest (or lowest) value, or -1 on a tie.
func uniqueBest(players []Player, value func(Player) (int, bool), highest bool) int {
	best, count := 0, 0
	winner := -1
	for i, p := range players {
		v, ok := value(p)
		if !ok {
			continue
		}
		switch {
		case winner < 0, highest && v > best, !highest && v < best:
			best, count, winner = v, 1, i
		case v == best:
			count++
		}
	}
	if count != 1 {
		return -1
	}
	return winner
}

// firstTo100k is judged on final money: the richest of the players at or above 100k.
func firstTo100k(players []Player) int {
	return uniqueBest(players, func(p Player) (int, bool) { return p.Money, p.Money >= 100000 }, true)
}

func lateBloomer(players []Player) int {
	latest := uniqueBest(players, turnOf(func(p Player) *int { return p.FirstJobTurn }), true)
	if latest < 0 {
		return -1
	}
	earliest := *players[latest].FirstJobTurn
	for _, p := range players {
		if p.FirstJobTurn != nil && *p.FirstJobTurn < earliest {
			earliest = *p.FirstJobTurn
		}
	}
	if earliest == *players[latest].FirstJobTurn {
		return -1
	}
	return latest
}

func neverWorked(players []Player) int {
	winner := -1
	for i, p := range players {
		if p.FirstJobTurn != nil {
			continue
		}
		if winner >= 0 {
			return -1
		}
		winner = i
	}
	return winner
}
