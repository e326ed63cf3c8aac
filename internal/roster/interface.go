package roster

import "github.com/vmarinov/belot-companion/internal/belot"

// PlayerStore defines the interface for the player directory.
type PlayerStore interface {
	GetStoredPlayers() ([]belot.Player, error)
	GetPlayer(playerID string) (*belot.Player, error)
	SavePlayer(player belot.Player) error
	SaveMultiplePlayers(players []belot.Player) error
	DeletePlayer(playerID string) error
	RecordResult(playerID string, won bool) error
	Leaderboard() ([]belot.Player, error)
}
