package bot

import (
	"relife/internal/app"
	"relife/internal/domain"
)

// Driver moves a game forward on behalf of its bot seats.
type Driver struct {
	Service *app.Service
	// Agents maps player ids to their bots.
	Agents map[string]*Agent
	// AutoAdvance also confirms events and advances phases.
	AutoAdvance bool
}

// Step performs a single bot move or phase transition.
// It reports false when the game is over or waits on a human.
func (d *Driver) Step(st *domain.GameState) (*domain.GameState, []app.Event, bool, error) {
	if st == nil || st.Phase == domain.PhaseGameOver {
		return st, nil, false, nil
	}

	waiting := Waiting(st)
	for _, seat := range waiting {
		if seat < 0 || seat >= len(st.Players) {
			return st, nil, false, domain.Integrity("waiting on unknown player index %d", seat)
		}
		agent, ok := d.Agents[st.Players[seat].ID]
		if !ok {
			continue
		}
		next, events, err := agent.Act(d.Service, st)
		return next, events, err == nil, err
	}
	if len(waiting) > 0 || !d.AutoAdvance {
		return st, nil, false, nil
	}

	var next *domain.GameState
	var events []app.Event
	var err error
	if st.Phase == domain.PhaseEvent && st.CurrentEvent != nil {
		next, events, err = d.Service.ConfirmEvent(st)
	} else {
		next, events, err = d.Service.NextPhase(st)
	}
	return next, events, err == nil, err
}

// Run steps until the game ends, a human must act, or maxSteps is exhausted.
// Every emitted event is passed to onEvents when it is not nil.
func (d *Driver) Run(st *domain.GameState, maxSteps int, onEvents func(*domain.GameState, []app.Event)) (*domain.GameState, error) {
	for range maxSteps {
		next, events, progressed, err := d.Step(st)
		if err != nil {
			return st, err
		}
		if onEvents != nil && len(events) > 0 {
			onEvents(next, events)
		}
		if !progressed {
			return next, nil
		}
		st = next
	}
	if st.Phase == domain.PhaseGameOver {
		return st, nil
	}
	return st, ErrStalled
}
