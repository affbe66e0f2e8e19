package domain

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// EventEnv carries what event handlers need beyond the game state.
type EventEnv struct {
	Rules  Rules
	Tables *Tables
	Dreams DreamChecker
}

// ResolveTargets returns the indices of the players an event target selects.
// Richest and poorest keep their ranking order; the other kinds keep roster order.
func ResolveTargets(players []Player, t Target) []int {
	switch t.Kind {
	case TargetRichest:
		return RichestIndices(players, max(t.Count, 1))
	case TargetPoorest:
		return PoorestIndices(players, max(t.Count, 1))
	case TargetHasJob:
		return EmployedIndices(players)
	case TargetSpecificJob:
		var out []int
		for i, p := range players {
			if p.Employed() && slices.Contains(t.JobIDs, p.JobID) {
				out = append(out, i)
			}
		}
		return out
	default:
		return rosterOrder(players)
	}
}

// ApplyEvent applies ev to st in place and returns the log lines it produced.
// The caller owns st; pass a clone to keep the previous state intact.
func ApplyEvent(st *GameState, ev EventDef, env EventEnv) []string {
	msgs := []string{fmt.Sprintf("【%s】%s", ev.Name, ev.Description)}
	targets := ResolveTargets(st.Players, ev.Target)

	switch eff := ev.Effect.(type) {
	case MoneyChange:
		for _, i := range targets {
			st.Players[i] = ChangeMoney(st.Players[i], eff.Value)
		}
	case StatChange:
		for _, i := range targets {
			st.Players[i] = ChangeStat(st.Players[i], eff.Stat, eff.Value)
		}
	case DrawCards:
		msgs = append(msgs, drawForEvent(st, targets, eff.Count, env.Rules.MaxHandSize)...)
	case Special:
		msgs = append(msgs, applyEventSpecial(st, ev, eff.Handler, targets, env)...)
	}

	st.CurrentEvent = nil
	return msgs
}

func drawForEvent(st *GameState, targets []int, count, maxHand int) []string {
	order := slices.Clone(targets)
	sort.Ints(order)
	var msgs []string
	for _, i := range order {
		p := &st.Players[i]
		n := min(count, len(st.Deck), max(maxHand-len(p.Hand), 0))
		if n == 0 {
			continue
		}
		var drawn []Card
		drawn, st.Deck = DrawFromDeck(st.Deck, n)
		p.Hand = append(slices.Clone(p.Hand), drawn...)
		msgs = append(msgs, fmt.Sprintf("%s draws %d card(s)", p.Name, n))
	}
	return msgs
}

func applyEventSpecial(st *GameState, ev EventDef, h Handler, targets []int, env EventEnv) []string {
	rules := env.Rules
	var msgs []string

	switch h {
	case HandlerPovertyRelief:
		for i := range st.Players {
			if st.Players[i].Money < rules.PovertyThreshold {
				st.Players[i].Money = rules.PovertyThreshold
				msgs = append(msgs, fmt.Sprintf("%s receives relief up to $%d", st.Players[i].Name, rules.PovertyThreshold))
			}
		}

	case HandlerPovertyRelief3000:
		if poorest := PoorestIndices(st.Players, 1); len(poorest) == 1 {
			i := poorest[0]
			st.Players[i] = ChangeMoney(st.Players[i], rules.PovertyBonus)
			msgs = append(msgs, fmt.Sprintf("%s receives relief of $%d", st.Players[i].Name, rules.PovertyBonus))
		}

	case HandlerTax:
		for _, i := range targets {
			tax := int(math.Floor(float64(st.Players[i].Money) * rules.TaxRate))
			st.Players[i] = ChangeMoney(st.Players[i], -tax)
			msgs = append(msgs, fmt.Sprintf("%s pays $%d in tax", st.Players[i].Name, tax))
		}

	case HandlerCompetition:
		for _, stat := range AllStats {
			winner := HighestStatIndex(st.Players, stat)
			if winner < 0 {
				break
			}
			st.Players[winner] = ChangeMoney(st.Players[winner], rules.CompetitionPrize)
			msgs = append(msgs, fmt.Sprintf("%s competition winner: %s, +$%d", stat, st.Players[winner].Name, rules.CompetitionPrize))
		}

	case HandlerCompetitionRanked, HandlerCompetitionAchievement:
		scores := make([]int, len(st.Players))
		var awards [][]Achievement
		if h == HandlerCompetitionAchievement {
			awards = EvaluateAchievements(st.Players, env.Tables, rules, env.Dreams)
		}
		for i, p := range st.Players {
			scores[i] = BaseScore(p)
			if awards != nil {
				scores[i] += AchievementTotal(awards[i])
			}
		}
		order := rosterOrder(st.Players)
		sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })
		for rank, prize := range ev.Prizes {
			if rank >= len(order) {
				break
			}
			i := order[rank]
			st.Players[i] = ChangeMoney(st.Players[i], prize)
			msgs = append(msgs, fmt.Sprintf("#%d %s wins $%d", rank+1, st.Players[i].Name, prize))
		}

	case HandlerCharity:
		rich := RichestIndices(st.Players, 1)
		poor := PoorestIndices(st.Players, 1)
		if len(rich) == 0 || len(poor) == 0 || rich[0] == poor[0] {
			msgs = append(msgs, "nobody needs charity")
			break
		}
		amount := min(rules.CharityAmount, st.Players[rich[0]].Money)
		st.Players[rich[0]] = ChangeMoney(st.Players[rich[0]], -amount)
		st.Players[poor[0]] = ChangeMoney(st.Players[poor[0]], amount)
		msgs = append(msgs, fmt.Sprintf("%s donates $%d to %s", st.Players[rich[0]].Name, amount, st.Players[poor[0]].Name))

	case HandlerSkipTurn:
		for _, i := range targets {
			st.Players[i].IsSkipTurn = true
			msgs = append(msgs, fmt.Sprintf("%s will skip this turn", st.Players[i].Name))
		}

	case HandlerPassCardsLeft:
		n := len(st.Players)
		if n < 2 {
			break
		}
		gifts := make([]*Card, n)
		for i := range st.Players {
			if len(st.Players[i].Hand) > 0 {
				c := st.Players[i].Hand[0]
				gifts[i] = &c
			}
		}
		for i := range st.Players {
			if gifts[i] != nil {
				st.Players[i].Hand = RemoveCardAt(st.Players[i].Hand, 0)
			}
		}
		for i := range st.Players {
			if gifts[i] == nil {
				continue
			}
			next := (i + 1) % n
			st.Players[next].Hand = append(slices.Clone(st.Players[next].Hand), *gifts[i])
			msgs = append(msgs, fmt.Sprintf("%s passes a card to %s", st.Players[i].Name, st.Players[next].Name))
		}

	case HandlerGameEnd:
		st.Phase = PhaseGameOver
		msgs = append(msgs, "the game is over")
	}

	return msgs
}
