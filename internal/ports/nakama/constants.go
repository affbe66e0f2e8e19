package nakama

const (
	RpcQuickMatch   = "quick_match"
	RpcCreateMatch  = "create_match"
	MatchNameReLife = "relife_match"
)

// Client opcodes. Each maps to one service call except OpStartGame.
const (
	OpStartGame      int64 = 1
	OpConfirmEvent   int64 = 2
	OpNextPhase      int64 = 3
	OpPlayCard       int64 = 4
	OpSelectCard     int64 = 5
	OpPlaySelected   int64 = 6
	OpChooseStat     int64 = 7
	OpChooseLocation int64 = 8
	OpChooseTarget   int64 = 9
	OpChooseJob      int64 = 10
	OpUseInvalid     int64 = 11
	OpPassReaction   int64 = 12
	OpDiscard        int64 = 13
	OpApplyJob       int64 = 14
	OpPromote        int64 = 15
	OpCancel         int64 = 16
	OpEndTurn        int64 = 17
)

// Server opcodes.
const (
	OpLobbyState int64 = 100
	OpGameEvent  int64 = 101
	OpSnapshot   int64 = 102
	OpGameError  int64 = 103
	OpGameResult int64 = 104
)

// Error codes carried by OpGameError frames.
const (
	ErrCodeBadRequest = 400
	ErrCodeForbidden  = 403
	ErrCodeConflict   = 409
	ErrCodeGameOver   = 410
	ErrCodeInternal   = 500
)

const (
	labelPhaseLobby    = "lobby"
	labelPhasePlaying  = "playing"
	labelPhaseFinished = "finished"

	// metadataCharacter is the join metadata key a client uses to pick a character.
	metadataCharacter = "character"

	// tickRate is match loop ticks per second.
	tickRate = 1
)
