package app

// Player count limits for a match.
const (
	MinPlayersToStartGame = 2
	MaxPlayers            = 4
)
