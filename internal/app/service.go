package app

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"relife/internal/content"
	"relife/internal/domain"
)

// Service contains ReLife use-cases operating on domain state.
// Every mutating method works on a clone and returns the input state untouched on error.
type Service struct {
	tables *domain.Tables
	dreams domain.DreamChecker
	rules  domain.Rules
	rng    domain.Rand
}

// NewService constructs a Service over the given content with provided rng or a time-seeded default.
func NewService(cat *content.Catalog, rules domain.Rules, rng domain.Rand) *Service {
	if rng == nil {
		rng = domain.NewTimeRand()
	}
	s := &Service{rules: rules, rng: rng, tables: &domain.Tables{}}
	if cat != nil {
		s.tables = &cat.Tables
		if cat.Dreams != nil {
			s.dreams = cat.Dreams
		}
	}
	return s
}

var (
	ErrTooFewPlayers  = errors.New("not enough players to start")
	ErrTooManyPlayers = errors.New("too many players")
	ErrMatchNotEnded  = errors.New("match not ended")
	ErrNoState        = errors.New("no game state")
)

// PlayerSeed describes a participant of a new game.
type PlayerSeed struct {
	ID          string
	Name        string
	CharacterID string
	IsAI        bool
}

// Tables returns the content tables the service plays with.
func (s *Service) Tables() *domain.Tables {
	return s.tables
}

// Rules returns the numeric rules.
func (s *Service) Rules() domain.Rules {
	return s.rules
}

// NewGame deals the starting hands and draws the first event.
func (s *Service) NewGame(seeds []PlayerSeed) (*domain.GameState, []Event, error) {
	if len(seeds) < MinPlayersToStartGame {
		return nil, nil, ErrTooFewPlayers
	}
	if len(seeds) > MaxPlayers {
		return nil, nil, ErrTooManyPlayers
	}

	st := &domain.GameState{
		PlayerCount: len(seeds),
		MaxTurns:    s.rules.MaxTurns,
		Turn:        1,
		Phase:       domain.PhaseSetup,
		Deck:        domain.ShuffleDeck(domain.NewDeck(s.tables.Cards), s.rng),
	}
	st.Normalize()

	ids := make([]string, 0, len(seeds))
	for _, seed := range seeds {
		ch, ok := s.tables.Character(seed.CharacterID)
		if !ok {
			return nil, nil, domain.Integrity("unknown character %q", seed.CharacterID)
		}
		id := seed.ID
		if id == "" {
			id = uuid.NewString()
		}
		name := seed.Name
		if name == "" {
			name = ch.Name
		}
		var hand []domain.Card
		hand, st.Deck = domain.DrawFromDeck(st.Deck, s.rules.InitialHandSize)
		st.Players = append(st.Players, domain.Player{
			ID:          id,
			Name:        name,
			CharacterID: ch.ID,
			Stats:       ch.InitialStats,
			Money:       ch.InitialMoney,
			Hand:        hand,
			IsAI:        seed.IsAI,
		})
		ids = append(ids, id)
	}

	logSystem(st, "game started with %d players", len(seeds))
	events := []Event{{Kind: EventGameStarted, Payload: GameStartedPayload{PlayerIDs: ids, MaxTurns: st.MaxTurns}}}
	events = append(events, s.enterEvent(st)...)
	return st, events, nil
}

// Result scores a finished game.
func (s *Service) Result(st *domain.GameState) (*domain.GameResult, error) {
	if st == nil {
		return nil, ErrNoState
	}
	if st.Phase != domain.PhaseGameOver {
		return nil, ErrMatchNotEnded
	}
	res := domain.CalculateResult(st.Players, s.tables, s.rules, s.dreams)
	return &res, nil
}

// AvailableJobs lists the jobs actor may apply for right now.
func (s *Service) AvailableJobs(st *domain.GameState, actor int) ([]domain.Job, error) {
	if st == nil {
		return nil, ErrNoState
	}
	if actor < 0 || actor >= len(st.Players) {
		return nil, domain.Integrity("unknown player index %d", actor)
	}
	p := st.Players[actor]
	if p.Employed() {
		return nil, nil
	}
	return domain.EligibleJobs(p, s.tables.Jobs), nil
}

// CanPlay reports why actor may not play the card at idx, or nil.
func (s *Service) CanPlay(st *domain.GameState, actor, idx int) error {
	if st == nil {
		return ErrNoState
	}
	if err := requireTurn(st, actor); err != nil {
		return err
	}
	if st.HasPendingInteraction() {
		return domain.Illegal("another action is pending")
	}
	hand := st.Players[actor].Hand
	if idx < 0 || idx >= len(hand) {
		return domain.Integrity("card index %d out of range", idx)
	}
	return domain.CanPlayCard(st.Players[actor], hand[idx])
}

// CurrentPlayer returns the acting player, or nil outside of a valid cursor.
func (s *Service) CurrentPlayer(st *domain.GameState) *domain.Player {
	if st == nil {
		return nil
	}
	return st.CurrentPlayer()
}

func (s *Service) eventEnv() domain.EventEnv {
	return domain.EventEnv{Rules: s.rules, Tables: s.tables, Dreams: s.dreams}
}

// begin rejects mutations of missing or finished games and returns a working copy.
func begin(st *domain.GameState) (*domain.GameState, error) {
	if st == nil {
		return nil, ErrNoState
	}
	if st.Phase == domain.PhaseGameOver {
		return nil, domain.ErrGameOver
	}
	if err := st.CheckIndices(); err != nil {
		return nil, err
	}
	return st.Clone(), nil
}

// requireTurn checks that actor is the current player of the action phase.
func requireTurn(st *domain.GameState, actor int) error {
	if st.Phase == domain.PhaseGameOver {
		return domain.ErrGameOver
	}
	if st.Phase != domain.PhaseAction {
		return domain.Illegal("not in the action phase")
	}
	if actor < 0 || actor >= len(st.Players) {
		return domain.Integrity("unknown player index %d", actor)
	}
	if actor != st.CurrentPlayerIndex {
		return domain.Illegal("not your turn")
	}
	return nil
}

func logSystem(st *domain.GameState, format string, args ...any) {
	appendLog(st, domain.LogSystem, "", fmt.Sprintf(format, args...))
}

func logAction(st *domain.GameState, playerIdx int, format string, args ...any) {
	p := st.Players[playerIdx]
	appendLog(st, domain.LogAction, p.ID, p.Name+" "+fmt.Sprintf(format, args...))
}

func appendLog(st *domain.GameState, kind domain.LogKind, playerID, msg string) {
	st.ActionLog = append(st.ActionLog, domain.LogEntry{Turn: st.Turn, Kind: kind, PlayerID: playerID, Message: msg})
}

func playerID(st *domain.GameState, idx int) string {
	if idx < 0 || idx >= len(st.Players) {
		return ""
	}
	return st.Players[idx].ID
}
