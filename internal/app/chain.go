package app

import (
	"relife/internal/domain"
)

// UseInvalidCard answers the pending function card with the invalidate card at idx.
func (s *Service) UseInvalidCard(st *domain.GameState, actor, idx int) (*domain.GameState, []Event, error) {
	next, pf, err := beginReaction(st, actor)
	if err != nil {
		return st, nil, err
	}
	hand := next.Players[actor].Hand
	if idx < 0 || idx >= len(hand) {
		return st, nil, domain.Integrity("card index %d out of range", idx)
	}
	c := hand[idx]
	if !c.IsInvalid() {
		return st, nil, domain.Illegal("%s cannot invalidate a card", c.Name)
	}

	next.Players[actor].Hand = domain.RemoveCardAt(hand, idx)
	pf.Chain = append(pf.Chain, domain.ChainLink{PlayerIndex: actor, Held: domain.HeldCard{Card: c, HandIndex: idx}})
	pf.Passed = []int{}
	logAction(next, actor, "invalidates it (chain %d)", len(pf.Chain))

	events := []Event{{Kind: EventInvalidPlayed, Payload: InvalidPlayedPayload{
		PlayerID:    next.Players[actor].ID,
		ChainLength: len(pf.Chain),
	}}}
	if responder := s.nextResponder(next, actor, map[int]bool{actor: true}); responder >= 0 {
		pf.RespondingPlayerIndex = responder
		return next, append(events, reactionRequested(next)), nil
	}
	return next, append(events, s.resolveChain(next)...), nil
}

// PassReaction declines to answer the pending function card.
func (s *Service) PassReaction(st *domain.GameState, actor int) (*domain.GameState, []Event, error) {
	next, pf, err := beginReaction(st, actor)
	if err != nil {
		return st, nil, err
	}

	pf.Passed = append(pf.Passed, actor)
	logAction(next, actor, "lets it through")
	events := []Event{{Kind: EventReactionPassed, Payload: ReactionPassedPayload{PlayerID: next.Players[actor].ID}}}

	skip := map[int]bool{pf.LastActor(): true}
	for _, i := range pf.Passed {
		skip[i] = true
	}
	if responder := s.nextResponder(next, actor, skip); responder >= 0 {
		pf.RespondingPlayerIndex = responder
		return next, append(events, reactionRequested(next)), nil
	}
	return next, append(events, s.resolveChain(next)...), nil
}

// resolveChain settles the reaction chain by parity: an odd chain cancels the card, an even one lets it resolve.
func (s *Service) resolveChain(st *domain.GameState) []Event {
	pf := st.PendingFunction
	st.PendingFunction = nil

	invalids := make([]domain.Card, 0, len(pf.Chain))
	for _, link := range pf.Chain {
		invalids = append(invalids, link.Held.Card)
	}

	if len(pf.Chain)%2 == 1 {
		st.DiscardPile = append(st.DiscardPile, pf.Held.Card)
		st.DiscardPile = append(st.DiscardPile, invalids...)
		logAction(st, pf.SourcePlayerIndex, "has %s cancelled", pf.Held.Card.Name)
		return []Event{{Kind: EventCardCancelled, Payload: CardCancelledPayload{
			PlayerID:    st.Players[pf.SourcePlayerIndex].ID,
			Card:        pf.Held.Card,
			ChainLength: len(pf.Chain),
		}}}
	}

	st.DiscardPile = append(st.DiscardPile, invalids...)
	return s.resolveCard(st, pf.SourcePlayerIndex, pf.Held)
}

// nextResponder scans the players after from, wrapping, for the first invalidate holder not in skip.
func (s *Service) nextResponder(st *domain.GameState, from int, skip map[int]bool) int {
	n := len(st.Players)
	for i := 1; i < n; i++ {
		j := (from + i) % n
		if skip[j] {
			continue
		}
		if domain.FirstInvalidIndex(st.Players[j].Hand) >= 0 {
			return j
		}
	}
	return -1
}

// beginReaction clones st for input from the player the chain waits on.
func beginReaction(st *domain.GameState, actor int) (*domain.GameState, *domain.PendingFunction, error) {
	next, err := begin(st)
	if err != nil {
		return nil, nil, err
	}
	pf := next.PendingFunction
	if pf == nil {
		return nil, nil, domain.Illegal("no function card awaits a reaction")
	}
	if actor < 0 || actor >= len(next.Players) {
		return nil, nil, domain.Integrity("unknown player index %d", actor)
	}
	if actor != pf.RespondingPlayerIndex {
		return nil, nil, domain.Illegal("not your reaction")
	}
	return next, pf, nil
}

func reactionRequested(st *domain.GameState) Event {
	pf := st.PendingFunction
	responder := st.Players[pf.RespondingPlayerIndex].ID
	return Event{
		Kind: EventReactionRequested,
		Payload: ReactionRequestedPayload{
			PlayerID:    responder,
			SourceID:    st.Players[pf.SourcePlayerIndex].ID,
			Card:        pf.Held.Card,
			ChainLength: len(pf.Chain),
		},
		Recipients: []string{responder},
	}
}
