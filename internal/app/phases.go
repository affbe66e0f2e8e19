package app

import (
	"fmt"
	"slices"

	"relife/internal/domain"
)

// ConfirmEvent applies the current event and pays salaries.
func (s *Service) ConfirmEvent(st *domain.GameState) (*domain.GameState, []Event, error) {
	next, err := begin(st)
	if err != nil {
		return st, nil, err
	}
	if next.Phase != domain.PhaseEvent || next.CurrentEvent == nil {
		return st, nil, domain.Illegal("no event to confirm")
	}

	ev := *next.CurrentEvent
	msgs := domain.ApplyEvent(next, ev, s.eventEnv())
	next.EventLog = append(next.EventLog, msgs...)
	for _, m := range msgs {
		appendLog(next, domain.LogEvent, "", m)
	}
	events := []Event{{Kind: EventEventResolved, Payload: EventResolvedPayload{Event: ev, Messages: msgs}}}

	if next.Phase == domain.PhaseGameOver {
		return next, append(events, s.finishGame(next)...), nil
	}
	return next, append(events, s.enterSalary(next)...), nil
}

// NextPhase advances phases that need no further input.
func (s *Service) NextPhase(st *domain.GameState) (*domain.GameState, []Event, error) {
	next, err := begin(st)
	if err != nil {
		return st, nil, err
	}

	var events []Event
	switch next.Phase {
	case domain.PhaseSetup:
		events = s.enterEvent(next)
	case domain.PhaseEvent:
		if next.CurrentEvent != nil {
			return st, nil, domain.Illegal("confirm the current event first")
		}
		events = s.enterSalary(next)
	case domain.PhaseSalary:
		events = s.enterAction(next)
	case domain.PhaseDraw:
		if len(next.PendingDiscards) > 0 {
			return st, nil, domain.Illegal("players must discard first")
		}
		events = s.endTurn(next)
	default:
		return st, nil, domain.Illegal("phase %s ends with the last player's turn", next.Phase)
	}
	return next, events, nil
}

// EndPlayerTurn passes the action turn to the next player, or enters the draw phase after the last one.
func (s *Service) EndPlayerTurn(st *domain.GameState, actor int) (*domain.GameState, []Event, error) {
	next, err := begin(st)
	if err != nil {
		return st, nil, err
	}
	if err := requireTurn(next, actor); err != nil {
		return st, nil, err
	}
	if next.HasPendingInteraction() {
		return st, nil, domain.Illegal("finish or cancel the pending action first")
	}

	next.SelectedCardIndex = nil
	logAction(next, actor, "ends the turn")
	following := s.seekActor(next, actor+1)
	events := []Event{{Kind: EventTurnEnded, Payload: TurnEndedPayload{
		PlayerID:     next.Players[actor].ID,
		NextPlayerID: playerID(next, following),
	}}}
	if following < 0 {
		return next, append(events, s.enterDraw(next)...), nil
	}
	next.CurrentPlayerIndex = following
	return next, append(events, phaseChanged(next)), nil
}

// ConfirmDiscard resolves an outstanding hand-overflow discard of actor.
func (s *Service) ConfirmDiscard(st *domain.GameState, actor int, indices []int) (*domain.GameState, []Event, error) {
	next, err := begin(st)
	if err != nil {
		return st, nil, err
	}
	if next.Phase != domain.PhaseDraw {
		return st, nil, domain.Illegal("not in the draw phase")
	}
	if actor < 0 || actor >= len(next.Players) {
		return st, nil, domain.Integrity("unknown player index %d", actor)
	}
	reqIdx := next.DiscardRequestFor(actor)
	if reqIdx < 0 {
		return st, nil, domain.Illegal("no discard pending")
	}
	req := next.PendingDiscards[reqIdx]
	if len(indices) != req.Count {
		return st, nil, domain.Illegal("discard exactly %d card(s)", req.Count)
	}
	hand := next.Players[actor].Hand
	seen := map[int]bool{}
	for _, i := range indices {
		if seen[i] {
			return st, nil, domain.Illegal("card %d selected twice", i)
		}
		seen[i] = true
		if i < 0 || i >= len(hand) {
			return st, nil, domain.Integrity("card index %d out of range", i)
		}
	}

	remaining, removed := domain.RemoveCards(hand, indices)
	next.Players[actor].Hand = remaining
	next.DiscardPile = append(next.DiscardPile, removed...)
	next.PendingDiscards = slices.Delete(next.PendingDiscards, reqIdx, reqIdx+1)
	logAction(next, actor, "discards %d card(s)", len(removed))

	return next, []Event{{Kind: EventCardsDiscarded, Payload: CardsDiscardedPayload{
		PlayerID: next.Players[actor].ID,
		Cards:    removed,
	}}}, nil
}

// enterEvent draws the event of the current turn: the scheduled one, or a random pick.
func (s *Service) enterEvent(st *domain.GameState) []Event {
	st.Phase = domain.PhaseEvent
	st.CurrentEvent = nil
	if ev, ok := s.tables.FixedEvent(st.Turn); ok {
		picked := *ev
		st.CurrentEvent = &picked
	} else if n := len(s.tables.RandomEvents); n > 0 {
		picked := s.tables.RandomEvents[s.rng.Intn(n)]
		picked.Turn = st.Turn
		st.CurrentEvent = &picked
	}

	events := []Event{phaseChanged(st)}
	if st.CurrentEvent == nil {
		logSystem(st, "turn %d: a quiet day", st.Turn)
		return events
	}
	logSystem(st, "turn %d: %s", st.Turn, st.CurrentEvent.Name)
	return append(events, Event{Kind: EventEventDrawn, Payload: EventDrawnPayload{Turn: st.Turn, Event: *st.CurrentEvent}})
}

// enterSalary pays every employed player and applies passive job skills.
func (s *Service) enterSalary(st *domain.GameState) []Event {
	st.Phase = domain.PhaseSalary
	events := []Event{phaseChanged(st)}
	for i := range st.Players {
		job := s.tables.PlayerJob(st.Players[i])
		if job == nil {
			continue
		}
		var amount int
		var skill domain.StatType
		st.Players[i], amount = domain.PaySalary(st.Players[i], job)
		st.Players[i], skill = domain.ApplyJobSkill(st.Players[i], job)
		appendLog(st, domain.LogSystem, st.Players[i].ID, fmt.Sprintf("%s earns $%d as %s", st.Players[i].Name, amount, job.Name))
		events = append(events, Event{Kind: EventSalaryPaid, Payload: SalaryPaidPayload{
			PlayerID: st.Players[i].ID,
			Amount:   amount,
			Skill:    skill,
		}})
	}
	return events
}

// enterAction hands the first action turn out, skipping flagged players.
func (s *Service) enterAction(st *domain.GameState) []Event {
	st.Phase = domain.PhaseAction
	st.SelectedCardIndex = nil
	first := s.seekActor(st, 0)
	if first < 0 {
		return s.enterDraw(st)
	}
	st.CurrentPlayerIndex = first
	return []Event{phaseChanged(st)}
}

// enterDraw deals the per-turn cards and records hand overflows.
func (s *Service) enterDraw(st *domain.GameState) []Event {
	st.Phase = domain.PhaseDraw
	st.SelectedCardIndex = nil
	s.refillDeck(st, len(st.Players)*s.rules.DrawPerTurn)

	events := []Event{phaseChanged(st)}
	for i := range st.Players {
		var drawn []domain.Card
		drawn, st.Deck = domain.DrawFromDeck(st.Deck, s.rules.DrawPerTurn)
		st.Players[i].Hand = append(slices.Clone(st.Players[i].Hand), drawn...)
		if over := len(st.Players[i].Hand) - s.rules.MaxHandSize; over > 0 {
			st.PendingDiscards = append(st.PendingDiscards, domain.DiscardRequest{PlayerIndex: i, Count: over})
			events = append(events, Event{
				Kind:       EventDiscardRequired,
				Payload:    DiscardRequiredPayload{PlayerID: st.Players[i].ID, Count: over},
				Recipients: []string{st.Players[i].ID},
			})
		}
	}
	return events
}

// endTurn closes the round: the game ends after the last turn, otherwise the next event is drawn.
func (s *Service) endTurn(st *domain.GameState) []Event {
	if st.Turn+1 > st.MaxTurns {
		return s.finishGame(st)
	}
	st.Turn++
	return s.enterEvent(st)
}

func (s *Service) finishGame(st *domain.GameState) []Event {
	st.Phase = domain.PhaseGameOver
	st.CurrentEvent = nil
	st.SelectedCardIndex = nil
	logSystem(st, "game over after turn %d", st.Turn)
	res := domain.CalculateResult(st.Players, s.tables, s.rules, s.dreams)
	return []Event{
		phaseChanged(st),
		{Kind: EventGameEnded, Payload: GameEndedPayload{Result: res}},
	}
}

// seekActor returns the first player at or after from who does not skip, clearing skip flags on the way.
func (s *Service) seekActor(st *domain.GameState, from int) int {
	for i := max(from, 0); i < len(st.Players); i++ {
		if !st.Players[i].IsSkipTurn {
			return i
		}
		st.Players[i].IsSkipTurn = false
		logAction(st, i, "skips this turn")
	}
	return -1
}

// refillDeck shuffles the discard pile under the deck when fewer than need cards remain.
func (s *Service) refillDeck(st *domain.GameState, need int) {
	if len(st.Deck) >= need || len(st.DiscardPile) == 0 {
		return
	}
	st.Deck = append(slices.Clone(st.Deck), domain.ShuffleDeck(st.DiscardPile, s.rng)...)
	st.DiscardPile = []domain.Card{}
	logSystem(st, "the discard pile is shuffled back into the deck")
}

func phaseChanged(st *domain.GameState) Event {
	payload := PhaseChangedPayload{Phase: st.Phase, Turn: st.Turn}
	if st.Phase == domain.PhaseAction {
		payload.CurrentPlayerID = playerID(st, st.CurrentPlayerIndex)
	}
	return Event{Kind: EventPhaseChanged, Payload: payload}
}
