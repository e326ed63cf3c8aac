package match

import "github.com/vmarinov/belot-companion/internal/belot"

// GameStore defines the repository the lifecycle controller runs against.
// The store is the single authority on game records: callers re-read through
// it before every mutation and write whole records back, never holding on to
// stale snapshots between calls.
type GameStore interface {
	// FindActive returns the unique active game, or nil when there is none.
	FindActive() (*belot.Game, error)
	GetGame(gameID string) (*belot.Game, error)
	SaveGame(game *belot.Game) error
	// ListGames returns all games, newest first.
	ListGames() ([]*belot.Game, error)
	SaveGameSetup(setup belot.GameSetup) error
	// GetLastGameSetup returns the remembered setup, or nil when none was
	// ever saved (or the stored value is unreadable).
	GetLastGameSetup() (*belot.GameSetup, error)
}
