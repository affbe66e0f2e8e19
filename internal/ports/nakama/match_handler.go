package nakama

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"relife/internal/app"
	"relife/internal/bot"
	"relife/internal/config"
	"relife/internal/content"
	"relife/internal/domain"
	"relife/internal/ports"
	"relife/internal/snapshot"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/proto"
)

// Dependencies are shared by every match the module creates.
type Dependencies struct {
	Catalog   *content.Catalog
	Rules     domain.Rules
	Relay     config.RelayConfig
	Snapshots ports.SnapshotStore // optional
	Results   ports.ResultStore   // optional
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	MatchID    string                      `json:"match_id"`
	Seats      [app.MaxPlayers]string      `json:"seats"`      // user ids, empty string means seat is empty
	OwnerSeat  int                         `json:"owner_seat"` // seat index of the human who may start
	Tick       int64                       `json:"tick"`
	Names      map[string]string           `json:"names"`      // display names by user id
	Characters map[string]string           `json:"characters"` // requested character by user id
	Presences  map[string]runtime.Presence `json:"-"`
	App        *app.Service                `json:"-"`
	Game       *domain.GameState           `json:"-"` // nil while in the lobby
	Result     *domain.GameResult          `json:"-"`

	BotsEnabled   bool                  `json:"bots_enabled"`
	BotFillDelay  int64                 `json:"bot_fill_delay"` // ticks before free seats get bots
	BotMoveTicks  int64                 `json:"bot_move_ticks"` // ticks between bot moves
	FillTimerTick int64                 `json:"fill_timer_tick"`
	BotWaitUntil  int64                 `json:"bot_wait_until"`
	Bots          map[string]*bot.Agent `json:"-"`
}

func newMatchState(matchID string, deps *Dependencies) *MatchState {
	state := &MatchState{
		MatchID:      matchID,
		OwnerSeat:    -1,
		Names:        make(map[string]string),
		Characters:   make(map[string]string),
		Presences:    make(map[string]runtime.Presence),
		Bots:         make(map[string]*bot.Agent),
		App:          app.NewService(deps.Catalog, deps.Rules, nil),
		BotsEnabled:  deps.Relay.BotsEnabled,
		BotFillDelay: int64(deps.Relay.BotFillDelay/time.Second) * tickRate,
		BotMoveTicks: int64(max(deps.Relay.BotMoveTicks, 1)),
	}
	return state
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return len(ms.Seats) - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// running reports whether a game is in progress.
func (ms *MatchState) running() bool {
	return ms.Game != nil && ms.Game.Phase != domain.PhaseGameOver
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat == userID {
			return i
		}
	}
	return -1
}

func (ms *MatchState) labelPhase() string {
	switch {
	case ms.Game == nil:
		return labelPhaseLobby
	case ms.running():
		return labelPhasePlaying
	}
	return labelPhaseFinished
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

type matchHandler struct {
	deps *Dependencies
}

func newMatchHandler(deps *Dependencies) *matchHandler {
	if deps == nil {
		deps = &Dependencies{Rules: domain.DefaultRules()}
	}
	return &matchHandler{deps: deps}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := bot.LoadIdentities(""); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	state := newMatchState(matchID, mh.deps)

	label, err := snapshot.MatchLabel{Open: state.GetOpenSeatsCount(), Phase: labelPhaseLobby}.Marshal()
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	logger.Debug("MatchInit: match %s ready", matchID)
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	userID := presence.GetUserId()

	// Players who lost their connection get their seat back.
	if matchState.seatOf(userID) >= 0 {
		return matchState, true, ""
	}
	if matchState.running() {
		return matchState, false, "Game in progress"
	}

	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		for _, seat := range matchState.Seats {
			if isBotUserId(seat) {
				hasBot = true
				break
			}
		}
		if !hasBot {
			return matchState, false, "Match full"
		}
	}

	if ch := metadata[metadataCharacter]; ch != "" {
		matchState.Characters[userID] = ch
	}
	return matchState, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p
		matchState.Names[userID] = p.GetUsername()

		if matchState.seatOf(userID) >= 0 {
			logger.Info("MatchJoin: User %s rejoined.", userID)
			continue
		}
		if !mh.assignSeat(matchState, userID, logger) {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", userID)
		}
	}
	matchState.FillTimerTick = 0

	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobbyState(matchState, dispatcher, logger)
	if matchState.Game != nil {
		mh.broadcastSnapshot(matchState, dispatcher, logger)
	}
	return matchState
}

// assignSeat seats userID in the first empty seat, or in place of a lobby bot.
func (mh *matchHandler) assignSeat(state *MatchState, userID string, logger ports.Logger) bool {
	for i, seatUserId := range state.Seats {
		if seatUserId == "" {
			state.Seats[i] = userID
			return true
		}
	}
	if state.running() {
		return false
	}
	for i, seatUserId := range state.Seats {
		if isBotUserId(seatUserId) {
			logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, userID, i)
			delete(state.Bots, seatUserId)
			state.Seats[i] = userID
			return true
		}
	}
	return false
}

// MatchLeave is called when one or more players leave the match.
// Seats are freed only outside of a running game; in-game seats wait for a rejoin.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)
		if matchState.running() {
			logger.Info("MatchLeave: User %s disconnected mid-game.", userID)
			continue
		}
		if seat := matchState.seatOf(userID); seat >= 0 {
			matchState.Seats[seat] = ""
			logger.Debug("MatchLeave: User %s left, seat %d freed.", userID, seat)
		}
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
	}
	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobbyState(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch op := msg.GetOpCode(); {
		case op == OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg.GetUserId())
		case actions[op] != nil:
			mh.handleAction(ctx, matchState, dispatcher, logger, msg.GetUserId(), op, msg.GetData())
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", op)
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}
	return matchState
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger ports.Logger, senderID string) {
	senderSeat := state.seatOf(senderID)
	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if senderSeat < 0 || senderSeat != state.OwnerSeat {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeForbidden, "only the match owner can start the game")
		return
	}
	if state.running() {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeConflict, "game already running")
		return
	}

	seeds := mh.playerSeeds(state)
	for _, agent := range state.Bots {
		agent.Reset()
	}
	game, events, err := state.App.NewGame(seeds)
	if err != nil {
		logger.Warn("StartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeConflict, err.Error())
		return
	}

	state.Game = game
	state.Result = nil
	state.BotWaitUntil = 0
	mh.updateLabel(state, dispatcher, logger)
	mh.publish(ctx, state, dispatcher, logger, events)
	logger.Info("StartGame: Game started with %d players.", len(seeds))
}

// playerSeeds lists the occupied seats in seat order.
func (mh *matchHandler) playerSeeds(state *MatchState) []app.PlayerSeed {
	tables := state.App.Tables()
	var seeds []app.PlayerSeed
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		seed := app.PlayerSeed{ID: userID, Name: state.Names[userID], CharacterID: state.Characters[userID]}
		if agent, ok := state.Bots[userID]; ok {
			seed.IsAI = true
			seed.Name = agent.Name
			if identity, ok := bot.IdentityByID(userID); ok {
				seed.CharacterID = identity.CharacterID
			}
		}
		if _, ok := tables.Character(seed.CharacterID); !ok && len(tables.Characters) > 0 {
			seed.CharacterID = tables.Characters[i%len(tables.Characters)].ID
		}
		seeds = append(seeds, seed)
	}
	return seeds
}

func (mh *matchHandler) handleAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger ports.Logger, senderID string, op int64, data []byte) {
	if state.Game == nil {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeConflict, "game not started")
		return
	}
	seat := state.Game.PlayerIndex(senderID)
	if seat < 0 {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeForbidden, "not a player of this game")
		return
	}
	req, err := decodeRequest(data)
	if err != nil {
		logger.Warn("handleAction: Bad payload for opcode %d from %s: %v", op, senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, "malformed request")
		return
	}

	next, events, err := actions[op](state.App, state.Game, seat, req)
	if err != nil {
		logger.Warn("handleAction: User %s (player %d) opcode %d rejected: %v", senderID, seat, op, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), domain.Reason(err))
		return
	}

	state.Game = next
	mh.publish(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger ports.Logger) {
	// 1. Fill free lobby seats once humans have waited long enough.
	if !state.running() {
		if state.GetHumanPlayerCount() == 0 || state.GetOpenSeatsCount() == 0 {
			state.FillTimerTick = 0
			return
		}
		if state.FillTimerTick == 0 {
			state.FillTimerTick = state.Tick
			logger.Debug("processBots: Free seats detected, starting auto-fill timer.")
		}
		if state.Tick-state.FillTimerTick < state.BotFillDelay {
			return
		}
		if mh.fillSeatsWithBots(state, logger) > 0 {
			mh.updateLabel(state, dispatcher, logger)
			mh.broadcastLobbyState(state, dispatcher, logger)
		}
		state.FillTimerTick = 0
		return
	}

	// 2. Let a bot act when the game waits on one.
	waitingOnBot := false
	for _, seat := range bot.Waiting(state.Game) {
		if _, ok := state.Bots[state.Game.Players[seat].ID]; ok {
			waitingOnBot = true
			break
		}
	}
	if !waitingOnBot {
		state.BotWaitUntil = 0
		return
	}
	if state.BotWaitUntil == 0 {
		state.BotWaitUntil = state.Tick + state.BotMoveTicks
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	driver := &bot.Driver{Service: state.App, Agents: state.Bots}
	next, events, progressed, err := driver.Step(state.Game)
	if err != nil {
		logger.Error("processBots: Bot move failed: %v", err)
		return
	}
	if progressed {
		state.Game = next
		mh.publish(ctx, state, dispatcher, logger, events)
	}
}

// fillSeatsWithBots seats an unused bot identity in every empty seat and returns how many were added.
func (mh *matchHandler) fillSeatsWithBots(state *MatchState, logger ports.Logger) int {
	added := 0
	pool := max(bot.IdentityCount(), len(state.Seats))
	next := 0
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		var identity bot.BotIdentity
		for ; next < pool*2; next++ {
			candidate := bot.GetBotIdentity(next)
			if state.seatOf(candidate.ID) < 0 {
				identity = candidate
				break
			}
		}
		if identity.ID == "" {
			break
		}
		agent, err := bot.NewAgent(identity, state.App.Tables(), nil)
		if err != nil {
			logger.Error("Failed to create bot agent for %s: %v", identity.ID, err)
			continue
		}
		state.Seats[i] = identity.ID
		state.Bots[identity.ID] = agent
		logger.Info("processBots: Added bot %s (%s) to seat %d", identity.DisplayName, identity.ID, i)
		added++
	}
	return added
}

// publish broadcasts the events and the new snapshot, stores it, and settles a finished game.
func (mh *matchHandler) publish(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger ports.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastSnapshot(state, dispatcher, logger)

	if mh.deps.Snapshots != nil {
		if err := mh.deps.Snapshots.Save(ctx, state.MatchID, state.Game); err != nil {
			logger.Error("publish: Failed to save snapshot: %v", err)
		}
	}

	if state.Game.Phase == domain.PhaseGameOver && state.Result == nil {
		mh.finishGame(ctx, state, dispatcher, logger)
	}
}

func (mh *matchHandler) finishGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger ports.Logger) {
	result, err := state.App.Result(state.Game)
	if err != nil {
		logger.Error("finishGame: Failed to score game: %v", err)
		return
	}
	state.Result = result

	bytes, err := marshalFrame(result)
	if err != nil {
		logger.Error("finishGame: Failed to marshal result: %v", err)
	} else {
		dispatcher.BroadcastMessage(OpGameResult, bytes, nil, nil, true)
	}

	if mh.deps.Results != nil {
		if err := mh.deps.Results.SaveResult(ctx, state.MatchID, *result); err != nil {
			logger.Error("finishGame: Failed to save result: %v", err)
		}
	}
	mh.updateLabel(state, dispatcher, logger)
}

// broadcastEvent dispatches one app event to its recipients, or to everyone.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger ports.Logger, ev app.Event) {
	bytes, err := marshalFrame(eventFrame{Kind: ev.Kind, Payload: ev.Payload})
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Targeted events for disconnected players or bots go nowhere.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(OpGameEvent, bytes, recipients, nil, true)
}

func (mh *matchHandler) broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger ports.Logger) {
	doc, err := snapshot.ToStruct(state.Game)
	if err != nil {
		logger.Error("Failed to build snapshot: %v", err)
		return
	}
	bytes, err := proto.Marshal(doc)
	if err != nil {
		logger.Error("Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpSnapshot, bytes, nil, nil, true)
}

type lobbyPlayer struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	DisplayName string `json:"display_name"`
	IsBot       bool   `json:"is_bot"`
	IsOwner     bool   `json:"is_owner"`
	Connected   bool   `json:"connected"`
}

type lobbyState struct {
	Seats     []string      `json:"seats"`
	OwnerSeat int           `json:"owner_seat"`
	Tick      int64         `json:"tick"`
	Phase     string        `json:"phase"`
	Players   []lobbyPlayer `json:"players"`
}

func (mh *matchHandler) broadcastLobbyState(state *MatchState, dispatcher runtime.MatchDispatcher, logger ports.Logger) {
	lobby := lobbyState{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Phase:     state.labelPhase(),
		Players:   []lobbyPlayer{},
	}
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		displayName := state.Names[userID]
		if agent, ok := state.Bots[userID]; ok {
			displayName = agent.Name
		}
		if displayName == "" {
			displayName = userID
		}
		_, connected := state.Presences[userID]
		lobby.Players = append(lobby.Players, lobbyPlayer{
			UserID:      userID,
			Seat:        i,
			DisplayName: displayName,
			IsBot:       isBotUserId(userID),
			IsOwner:     i == state.OwnerSeat,
			Connected:   connected,
		})
	}

	bytes, err := marshalFrame(lobby)
	if err != nil {
		logger.Error("Failed to marshal lobby state: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpLobbyState, bytes, nil, nil, true)
}

// sendError sends an error frame to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger ports.Logger, userID string, code int, message string) {
	bytes, err := marshalFrame(errorFrame{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal error frame: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger ports.Logger) {
	label, err := snapshot.MatchLabel{Open: state.GetOpenSeatsCount(), Phase: state.labelPhase()}.Marshal()
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminating in %d seconds", graceSeconds)
	if matchState, ok := state.(*MatchState); ok && matchState.Game != nil && mh.deps.Snapshots != nil {
		if err := mh.deps.Snapshots.Save(ctx, matchState.MatchID, matchState.Game); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("MatchTerminate: Failed to save snapshot: %v", err)
		}
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
