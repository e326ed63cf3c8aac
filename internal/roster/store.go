package roster

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmarinov/belot-companion/internal/belot"
)

// New creates a new PlayerStore.
func New(db *sql.DB) PlayerStore {
	return &store{
		db: db,
	}
}

// GetStoredPlayers returns every player in the directory, sorted by name.
// A missing or unreadable directory degrades to an empty list.
func (s *store) GetStoredPlayers() ([]belot.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, created_at, games_played, games_won FROM players ORDER BY name")
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []belot.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, nil
}

// GetPlayer looks up a single player by id.
func (s *store) GetPlayer(playerID string) (*belot.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT id, name, created_at, games_played, games_won FROM players WHERE id = ?", playerID)
	p, err := scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player %q not found", playerID)
		}
		log.Error("Failed to query player", "error", err, "playerID", playerID)
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &p, nil
}

// SavePlayer inserts a player or updates an existing record in place.
func (s *store) SavePlayer(player belot.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertPlayerLocked(player)
}

// SaveMultiplePlayers upserts a batch of players in one transaction.
func (s *store) SaveMultiplePlayers(players []belot.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, p := range players {
		if _, err := tx.Exec(upsertPlayerStmt, p.ID, p.Name, p.CreatedAt.Unix(), p.GamesPlayed, p.GamesWon); err != nil {
			tx.Rollback()
			return fmt.Errorf("upserting player %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

const upsertPlayerStmt = `
	INSERT INTO players (id, name, created_at, games_played, games_won)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		games_played = excluded.games_played,
		games_won = excluded.games_won;
`

func (s *store) upsertPlayerLocked(player belot.Player) error {
	_, err := s.db.Exec(upsertPlayerStmt, player.ID, player.Name, player.CreatedAt.Unix(), player.GamesPlayed, player.GamesWon)
	if err != nil {
		log.Error("Failed to save player", "error", err, "playerID", player.ID)
		return err
	}
	return nil
}

// DeletePlayer removes a player from the directory. Players are only ever
// deleted on explicit user request.
func (s *store) DeletePlayer(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM players WHERE id = ?", playerID)
	if err != nil {
		log.Error("Failed to delete player", "error", err, "playerID", playerID)
	}
	return err
}

// RecordResult bumps a player's played counter, and the won counter when the
// player's team took the match. Wins are only ever recorded together with a
// played game, which keeps games_won <= games_played.
func (s *store) RecordResult(playerID string, won bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wonInc := 0
	if won {
		wonInc = 1
	}
	_, err := s.db.Exec(
		"UPDATE players SET games_played = games_played + 1, games_won = games_won + ? WHERE id = ?",
		wonInc, playerID,
	)
	if err != nil {
		log.Error("Failed to record result", "error", err, "playerID", playerID, "won", won)
		return err
	}
	log.Debug("Recorded player result", "playerID", playerID, "won", won)
	return nil
}

// Leaderboard returns all players ordered by wins, then by fewest games
// played, then name.
func (s *store) Leaderboard() ([]belot.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, created_at, games_played, games_won
		FROM players
		ORDER BY games_won DESC, games_played ASC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []belot.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, nil
}

func scanPlayer(scanner interface{ Scan(...any) error }) (belot.Player, error) {
	var p belot.Player
	var createdAt int64
	if err := scanner.Scan(&p.ID, &p.Name, &createdAt, &p.GamesPlayed, &p.GamesWon); err != nil {
		return belot.Player{}, err
	}
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	return p, nil
}
