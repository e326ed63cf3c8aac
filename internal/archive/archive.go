package archive

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmarinov/belot-companion/internal/match"
	"github.com/vmarinov/belot-companion/internal/roster"
)

// Archiver moves the whole scorebook between the database and a portable
// snapshot file, for backups or carrying a scorebook to another device.
type Archiver struct {
	players roster.PlayerStore
	games   match.GameStore
}

// New creates a new Archiver.
func New(players roster.PlayerStore, games match.GameStore) *Archiver {
	return &Archiver{
		players: players,
		games:   games,
	}
}

// Export writes a snapshot of all players and games to path.
func (a *Archiver) Export(path string) (*Snapshot, error) {
	players, err := a.players.GetStoredPlayers()
	if err != nil {
		return nil, fmt.Errorf("loading players: %w", err)
	}
	games, err := a.games.ListGames()
	if err != nil {
		return nil, fmt.Errorf("loading games: %w", err)
	}

	snap := &Snapshot{
		Version:    snapshotVersion,
		ExportedAt: time.Now().UTC(),
		Players:    players,
		Games:      games,
	}

	data, err := encodeSnapshot(snap)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing snapshot: %w", err)
	}
	log.Info("Exported snapshot", "path", path, "players", len(players), "games", len(games))
	return snap, nil
}

// Import loads a snapshot file into the database. Records are matched by id
// and overwritten (last write wins). The single-active-game invariant is
// preserved: when the database already has an active game, imported games
// with a different id come in deactivated.
func (a *Archiver) Import(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	snap, err := decodeSnapshot(data)
	if err != nil {
		return nil, err
	}

	if len(snap.Players) > 0 {
		if err := a.players.SaveMultiplePlayers(snap.Players); err != nil {
			return nil, fmt.Errorf("importing players: %w", err)
		}
	}

	localActive, err := a.games.FindActive()
	if err != nil {
		return nil, err
	}
	for _, game := range snap.Games {
		if game.IsActive && localActive != nil && localActive.ID != game.ID {
			log.Warn("Demoting imported active game, another game is already running",
				"importedGameID", game.ID, "activeGameID", localActive.ID)
			game.IsActive = false
		}
		if err := a.games.SaveGame(game); err != nil {
			return nil, fmt.Errorf("importing game %s: %w", game.ID, err)
		}
	}

	log.Info("Imported snapshot", "path", path, "players", len(snap.Players), "games", len(snap.Games))
	return snap, nil
}
