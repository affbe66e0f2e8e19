package app

import (
	"fmt"
	"slices"

	"relife/internal/domain"
)

// SelectCard marks the card at idx as the actor's selection.
func (s *Service) SelectCard(st *domain.GameState, actor, idx int) (*domain.GameState, []Event, error) {
	next, err := s.beginAction(st, actor)
	if err != nil {
		return st, nil, err
	}
	if idx < 0 || idx >= len(next.Players[actor].Hand) {
		return st, nil, domain.Integrity("card index %d out of range", idx)
	}
	next.SelectedCardIndex = &idx
	return next, nil, nil
}

// PlaySelectedCard plays the card chosen with SelectCard.
func (s *Service) PlaySelectedCard(st *domain.GameState, actor int) (*domain.GameState, []Event, error) {
	if st == nil {
		return st, nil, ErrNoState
	}
	if st.SelectedCardIndex == nil {
		return st, nil, domain.Illegal("no card selected")
	}
	return s.PlayCard(st, actor, *st.SelectedCardIndex)
}

// PlayCard plays the card at idx from the actor's hand.
// Blockable function cards first give invalidate holders a chance to respond.
func (s *Service) PlayCard(st *domain.GameState, actor, idx int) (*domain.GameState, []Event, error) {
	next, err := s.beginAction(st, actor)
	if err != nil {
		return st, nil, err
	}
	p := next.Players[actor]
	if idx < 0 || idx >= len(p.Hand) {
		return st, nil, domain.Integrity("card index %d out of range", idx)
	}
	c := p.Hand[idx]
	if err := domain.CanPlayCard(p, c); err != nil {
		return st, nil, err
	}

	next.SelectedCardIndex = nil
	next.Players[actor].Hand = domain.RemoveCardAt(p.Hand, idx)
	held := domain.HeldCard{Card: c, HandIndex: idx}

	if c.Blockable() {
		if responder := s.nextResponder(next, actor, map[int]bool{actor: true}); responder >= 0 {
			next.PendingFunction = &domain.PendingFunction{
				Held:                  held,
				SourcePlayerIndex:     actor,
				RespondingPlayerIndex: responder,
				Chain:                 []domain.ChainLink{},
				Passed:                []int{},
			}
			logAction(next, actor, "plays %s", c.Name)
			events := []Event{{Kind: EventCardPlayed, Payload: CardPlayedPayload{
				PlayerID: p.ID,
				Card:     c,
				Pending:  true,
			}}}
			return next, append(events, reactionRequested(next)), nil
		}
	}
	return next, s.resolveCard(next, actor, held), nil
}

// resolveCard applies a card that left the hand: it either finishes at once or opens a selection.
func (s *Service) resolveCard(st *domain.GameState, actor int, held domain.HeldCard) []Event {
	p := st.Players[actor]
	c := held.Card

	if preview := domain.ApplyBasicEffect(p, c.Effect); preview.Selection != nil {
		switch preview.Selection.Kind {
		case domain.SelectStat:
			st.PendingStatChoice = &domain.PendingStatChoice{Held: held, Value: preview.Selection.Value}
		case domain.SelectLocation:
			st.PendingExplore = &domain.PendingExplore{Held: held}
		case domain.SelectPlayer:
			st.PendingTarget = &domain.PendingTarget{Action: c.Handler(), Held: held}
		case domain.SelectJob:
			st.PendingParachute = &domain.PendingParachute{Held: held}
		}
		logAction(st, actor, "plays %s: %s", c.Name, preview.Message)
		return []Event{{
			Kind:       EventSelectionRequired,
			Payload:    SelectionRequiredPayload{PlayerID: p.ID, Kind: preview.Selection.Kind, Card: c},
			Recipients: []string{p.ID},
		}}
	}

	res := domain.PlayCard(p, c)
	st.Players[actor] = res.Player
	st.DiscardPile = append(st.DiscardPile, c)
	msg := res.Message
	if res.DrawCount > 0 {
		msg = fmt.Sprintf("draws %d card(s)", s.drawForPlayer(st, actor, res.DrawCount))
	}
	logAction(st, actor, "plays %s: %s", c.Name, msg)

	events := []Event{{Kind: EventCardPlayed, Payload: CardPlayedPayload{PlayerID: p.ID, Card: c, Message: msg}}}
	if res.QuitJob {
		events = append(events, Event{Kind: EventJobChanged, Payload: JobChangedPayload{PlayerID: p.ID, FromJobID: p.JobID}})
	}
	return events
}

// ChooseStat finishes a stat choice card.
func (s *Service) ChooseStat(st *domain.GameState, actor int, stat domain.StatType) (*domain.GameState, []Event, error) {
	next, err := s.beginPending(st, actor)
	if err != nil {
		return st, nil, err
	}
	pending := next.PendingStatChoice
	if pending == nil {
		return st, nil, domain.Illegal("no stat choice pending")
	}
	res, err := domain.ApplyStatChoice(next.Players[actor], stat, pending.Value)
	if err != nil {
		return st, nil, err
	}
	next.Players[actor] = res.Player
	next.PendingStatChoice = nil
	return next, s.finishSelection(next, actor, pending.Held, "", res.Message), nil
}

// ChooseExploreLocation resolves an explore card at the given location.
func (s *Service) ChooseExploreLocation(st *domain.GameState, actor int, locationID string) (*domain.GameState, []Event, error) {
	next, err := s.beginPending(st, actor)
	if err != nil {
		return st, nil, err
	}
	pending := next.PendingExplore
	if pending == nil {
		return st, nil, domain.Illegal("no exploration pending")
	}
	loc, ok := s.tables.Location(locationID)
	if !ok {
		return st, nil, domain.Integrity("unknown location %q", locationID)
	}
	outcome, ok := domain.ResolveExplore(loc, s.rng)
	if !ok {
		return st, nil, domain.Integrity("location %q has no outcomes", locationID)
	}
	res := domain.ApplyBasicEffect(next.Players[actor], outcome.Effect)
	next.Players[actor] = res.Player
	next.PendingExplore = nil
	msg := fmt.Sprintf("%s: %s", loc.Name, outcome.Description)
	return next, s.finishSelection(next, actor, pending.Held, "", msg), nil
}

// ChooseTargetPlayer resolves steal, robbery or sabotage against the given player.
func (s *Service) ChooseTargetPlayer(st *domain.GameState, actor int, targetID string) (*domain.GameState, []Event, error) {
	next, err := s.beginPending(st, actor)
	if err != nil {
		return st, nil, err
	}
	pending := next.PendingTarget
	if pending == nil {
		return st, nil, domain.Illegal("no target choice pending")
	}
	target := next.PlayerIndex(targetID)
	if target < 0 {
		return st, nil, domain.Integrity("unknown player %q", targetID)
	}
	if target == actor {
		return st, nil, domain.Illegal("cannot target yourself")
	}

	var msg string
	switch pending.Action {
	case domain.HandlerSteal, domain.HandlerRobbery:
		a, t, stolen, err := domain.StealCard(next.Players[actor], next.Players[target], s.rng)
		if err != nil {
			return st, nil, err
		}
		next.Players[actor], next.Players[target] = a, t
		msg = fmt.Sprintf("takes %s from %s", stolen.Name, t.Name)
	case domain.HandlerSabotage:
		var stat domain.StatType
		next.Players[target], stat = domain.Sabotage(next.Players[target], s.rng)
		msg = fmt.Sprintf("sabotages %s: %s -2", next.Players[target].Name, stat)
	default:
		return st, nil, domain.Integrity("unknown target action %q", pending.Action)
	}
	next.PendingTarget = nil
	return next, s.finishSelection(next, actor, pending.Held, targetID, msg), nil
}

// ChooseParachuteJob hires the actor into jobID regardless of requirements.
func (s *Service) ChooseParachuteJob(st *domain.GameState, actor int, jobID string) (*domain.GameState, []Event, error) {
	next, err := s.beginPending(st, actor)
	if err != nil {
		return st, nil, err
	}
	pending := next.PendingParachute
	if pending == nil {
		return st, nil, domain.Illegal("no parachute pending")
	}
	job, ok := s.tables.Job(jobID)
	if !ok {
		return st, nil, domain.Integrity("unknown job %q", jobID)
	}
	p := next.Players[actor]
	from := p.JobID
	if p.Employed() {
		p = domain.QuitJob(p)
	}
	next.Players[actor] = domain.Hire(p, job, next.Turn)
	next.PendingParachute = nil

	events := s.finishSelection(next, actor, pending.Held, "", "lands a job as "+job.Name)
	return next, append(events, Event{Kind: EventJobChanged, Payload: JobChangedPayload{
		PlayerID:  p.ID,
		FromJobID: from,
		ToJobID:   job.ID,
	}}), nil
}

// CancelPendingAction abandons the actor's pending interaction and restores the played cards.
func (s *Service) CancelPendingAction(st *domain.GameState, actor int) (*domain.GameState, []Event, error) {
	next, err := s.beginPending(st, actor)
	if err != nil {
		return st, nil, err
	}

	var held domain.HeldCard
	switch {
	case next.PendingFunction != nil:
		pf := next.PendingFunction
		for i := len(pf.Chain) - 1; i >= 0; i-- {
			link := pf.Chain[i]
			next.Players[link.PlayerIndex].Hand = domain.InsertCardAt(next.Players[link.PlayerIndex].Hand, link.Held.HandIndex, link.Held.Card)
		}
		held = pf.Held
		next.PendingFunction = nil
	case next.PendingStatChoice != nil:
		held = next.PendingStatChoice.Held
		next.PendingStatChoice = nil
	case next.PendingExplore != nil:
		held = next.PendingExplore.Held
		next.PendingExplore = nil
	case next.PendingTarget != nil:
		held = next.PendingTarget.Held
		next.PendingTarget = nil
	case next.PendingParachute != nil:
		held = next.PendingParachute.Held
		next.PendingParachute = nil
	default:
		return st, nil, domain.Illegal("nothing to cancel")
	}

	next.Players[actor].Hand = domain.InsertCardAt(next.Players[actor].Hand, held.HandIndex, held.Card)
	logAction(next, actor, "takes back %s", held.Card.Name)
	return next, []Event{{Kind: EventActionCancelled, Payload: ActionCancelledPayload{
		PlayerID: next.Players[actor].ID,
		Card:     held.Card,
	}}}, nil
}

// ApplyJob hires the actor into the entry level of jobID.
func (s *Service) ApplyJob(st *domain.GameState, actor int, jobID string) (*domain.GameState, []Event, error) {
	next, err := s.beginAction(st, actor)
	if err != nil {
		return st, nil, err
	}
	job, ok := s.tables.Job(jobID)
	if !ok {
		return st, nil, domain.Integrity("unknown job %q", jobID)
	}
	hired, err := domain.ApplyForJob(next.Players[actor], job, next.Turn)
	if err != nil {
		return st, nil, err
	}
	next.Players[actor] = hired
	logAction(next, actor, "is hired as %s", job.Levels[0].Name)
	return next, []Event{{Kind: EventJobChanged, Payload: JobChangedPayload{PlayerID: hired.ID, ToJobID: job.ID}}}, nil
}

// TryPromote moves the actor up one job level when eligible.
func (s *Service) TryPromote(st *domain.GameState, actor int) (*domain.GameState, []Event, error) {
	next, err := s.beginAction(st, actor)
	if err != nil {
		return st, nil, err
	}
	p := next.Players[actor]
	job := s.tables.PlayerJob(p)
	if job == nil {
		return st, nil, domain.Illegal("no job to be promoted in")
	}
	promoted, err := domain.Promote(p, job, next.Turn)
	if err != nil {
		return st, nil, err
	}
	next.Players[actor] = promoted
	logAction(next, actor, "is promoted to %s", job.Levels[promoted.JobLevel].Name)
	return next, []Event{{Kind: EventPromoted, Payload: PromotedPayload{
		PlayerID: promoted.ID,
		JobID:    job.ID,
		Level:    promoted.JobLevel,
	}}}, nil
}

// finishSelection charges the card cost, discards the card and reports the play.
func (s *Service) finishSelection(st *domain.GameState, actor int, held domain.HeldCard, targetID, msg string) []Event {
	if held.Card.Cost > 0 {
		st.Players[actor] = domain.ChangeMoney(st.Players[actor], -held.Card.Cost)
	}
	st.DiscardPile = append(st.DiscardPile, held.Card)
	logAction(st, actor, "resolves %s: %s", held.Card.Name, msg)
	return []Event{{Kind: EventCardPlayed, Payload: CardPlayedPayload{
		PlayerID: st.Players[actor].ID,
		Card:     held.Card,
		TargetID: targetID,
		Message:  msg,
	}}}
}

// drawForPlayer draws up to n cards for the player without exceeding the hand limit.
func (s *Service) drawForPlayer(st *domain.GameState, idx, n int) int {
	s.refillDeck(st, n)
	n = min(n, len(st.Deck), max(s.rules.MaxHandSize-len(st.Players[idx].Hand), 0))
	var drawn []domain.Card
	drawn, st.Deck = domain.DrawFromDeck(st.Deck, n)
	st.Players[idx].Hand = append(slices.Clone(st.Players[idx].Hand), drawn...)
	return len(drawn)
}

// beginAction clones st for a free action of the current player.
func (s *Service) beginAction(st *domain.GameState, actor int) (*domain.GameState, error) {
	next, err := begin(st)
	if err != nil {
		return nil, err
	}
	if err := requireTurn(next, actor); err != nil {
		return nil, err
	}
	if next.HasPendingInteraction() {
		return nil, domain.Illegal("another action is pending")
	}
	return next, nil
}

// beginPending clones st for input to the current player's pending interaction.
func (s *Service) beginPending(st *domain.GameState, actor int) (*domain.GameState, error) {
	next, err := begin(st)
	if err != nil {
		return nil, err
	}
	if err := requireTurn(next, actor); err != nil {
		return nil, err
	}
	return next, nil
}
