package domain

import "fmt"

// Fixed special-effect amounts.
const (
	specialMoneyStep   = 500
	overtimeMoney      = 1000
	specialStatStep    = 2
	socializingMinimum = 500
	sabotagePenalty    = 2
)

// SelectionKind names the input an effect is waiting for.
type SelectionKind string

const (
	SelectStat     SelectionKind = "stat"
	SelectLocation SelectionKind = "location"
	SelectPlayer   SelectionKind = "player"
	SelectJob      SelectionKind = "job"
)

// Selection signals that an effect cannot finish without more input.
type Selection struct {
	Kind SelectionKind
	// Value is the amount applied once a stat is chosen.
	Value int
}

// EffectResult is the outcome of applying a card effect to a single player.
type EffectResult struct {
	Player    Player
	Message   string
	Selection *Selection
	// DrawCount is the number of cards the caller must draw for the player.
	DrawCount int
	// QuitJob is set when the effect removed the player's job.
	QuitJob bool
}

// CanPlayCard checks whether p may play c directly.
func CanPlayCard(p Player, c Card) error {
	if c.IsInvalid() {
		return Illegal("reaction cards can only answer a function card")
	}
	if c.Cost > 0 && p.Money < c.Cost {
		return Illegal("not enough money, need $%d", c.Cost)
	}
	if c.Type == CardWork && !p.Employed() {
		return Illegal("a job is required to play work cards")
	}
	if c.Handler() == HandlerJobChange && !p.Employed() {
		return Illegal("a job is required to change jobs")
	}
	return nil
}

// PlayCard deducts the cost and applies the effect. Legality must be checked with CanPlayCard first.
func PlayCard(p Player, c Card) EffectResult {
	if c.Cost > 0 {
		p.Money -= c.Cost
	}
	return ApplyBasicEffect(p, c.Effect)
}

// ApplyBasicEffect applies e to p.
func ApplyBasicEffect(p Player, e Effect) EffectResult {
	switch eff := e.(type) {
	case StatChange:
		return EffectResult{Player: ChangeStat(p, eff.Stat, eff.Value), Message: fmt.Sprintf("%s %+d", eff.Stat, eff.Value)}
	case MoneyChange:
		return EffectResult{Player: ChangeMoney(p, eff.Value), Message: fmt.Sprintf("money %+d", eff.Value)}
	case PerformanceChange:
		if !p.Employed() {
			return EffectResult{Player: p, Message: "no job, performance unchanged"}
		}
		return EffectResult{Player: ChangePerformance(p, eff.Value), Message: fmt.Sprintf("performance %+d", eff.Value)}
	case StatChoice:
		return EffectResult{Player: p, Message: "choose a stat to raise", Selection: &Selection{Kind: SelectStat, Value: eff.Value}}
	case DrawCards:
		return EffectResult{Player: p, Message: fmt.Sprintf("draw %d cards", eff.Count), DrawCount: eff.Count}
	case Explore:
		return EffectResult{Player: p, Message: "choose a place to explore", Selection: &Selection{Kind: SelectLocation}}
	case Special:
		return applySpecial(p, eff.Handler)
	}
	return EffectResult{Player: p, Message: "no effect"}
}

func applySpecial(p Player, h Handler) EffectResult {
	switch h {
	case HandlerBootlicking:
		p = ChangeMoney(p, specialMoneyStep)
		p = ChangeStat(p, StatCharisma, -1)
		return EffectResult{Player: p, Message: "flattered the boss: money +500, charisma -1"}
	case HandlerSocializing:
		if p.Money < socializingMinimum {
			return EffectResult{Player: p, Message: "not enough money to socialize"}
		}
		p = ChangeMoney(p, -specialMoneyStep)
		p = ChangeStat(p, StatCharisma, specialStatStep)
		return EffectResult{Player: p, Message: "socialized: money -500, charisma +2"}
	case HandlerNapping:
		p = ChangeMoney(p, -specialMoneyStep)
		p = ChangeStat(p, StatStamina, specialStatStep)
		return EffectResult{Player: p, Message: "took a nap: money -500, stamina +2"}
	case HandlerOvertime:
		p = ChangeMoney(p, overtimeMoney)
		p = ChangeStat(p, StatStamina, -specialStatStep)
		return EffectResult{Player: p, Message: "worked overtime: money +1000, stamina -2"}
	case HandlerSteal, HandlerRobbery, HandlerSabotage:
		return EffectResult{Player: p, Message: "choose a target player", Selection: &Selection{Kind: SelectPlayer}}
	case HandlerInvalid:
		return EffectResult{Player: p, Message: "reaction cards have no direct effect"}
	case HandlerJobChange:
		return EffectResult{Player: QuitJob(p), Message: "quit the current job", QuitJob: true}
	case HandlerParachute:
		return EffectResult{Player: p, Message: "choose a job to parachute into", Selection: &Selection{Kind: SelectJob}}
	case HandlerParkBad:
		p = ChangeMoney(p, -specialMoneyStep)
		p = ChangeStat(p, StatCharisma, -specialStatStep)
		return EffectResult{Player: p, Message: "money -500, charisma -2"}
	case HandlerParkGood:
		p = ChangeMoney(p, specialMoneyStep)
		p = ChangeStat(p, StatStamina, specialStatStep)
		return EffectResult{Player: p, Message: "money +500, stamina +2"}
	}
	return EffectResult{Player: p, Message: fmt.Sprintf("unknown effect %s", h)}
}

// ApplyStatChoice finishes a stat_change_choice effect.
func ApplyStatChoice(p Player, stat StatType, value int) (EffectResult, error) {
	if !stat.Valid() {
		return EffectResult{Player: p}, Integrity("unknown stat %q", stat)
	}
	return EffectResult{Player: ChangeStat(p, stat, value), Message: fmt.Sprintf("%s %+d", stat, value)}, nil
}

// ResolveExplore draws an outcome by cumulative probability.
// Rounding leftovers fall through to the last outcome.
func ResolveExplore(loc *Location, rng Rand) (Outcome, bool) {
	if loc == nil || len(loc.Outcomes) == 0 {
		return Outcome{}, false
	}
	roll := rng.Float64()
	cumulative := 0.0
	for _, o := range loc.Outcomes {
		cumulative += o.Probability
		if roll < cumulative {
			return o, true
		}
	}
	return loc.Outcomes[len(loc.Outcomes)-1], true
}

// StealCard moves a random card from target to actor. It returns the stolen card.
func StealCard(actor, target Player, rng Rand) (Player, Player, Card, error) {
	if len(target.Hand) == 0 {
		return actor, target, Card{}, Illegal("%s has no cards to steal", target.Name)
	}
	idx := rng.Intn(len(target.Hand))
	stolen := target.Hand[idx]
	target.Hand = RemoveCardAt(target.Hand, idx)
	actor.Hand = append(append([]Card{}, actor.Hand...), stolen)
	return actor, target, stolen, nil
}

// Sabotage lowers a random stat of target. Sabotage cannot be invalidated.
func Sabotage(target Player, rng Rand) (Player, StatType) {
	stat := AllStats[rng.Intn(len(AllStats))]
	return ChangeStat(target, stat, -sabotagePenalty), stat
}
