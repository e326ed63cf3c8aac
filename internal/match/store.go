package match

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmarinov/belot-companion/internal/belot"
)

// NewStore creates a new SQLite-backed GameStore.
func NewStore(db *sql.DB) GameStore {
	return &store{
		db: db,
	}
}

const lastGameSetupKey = "lastGameSetup"

// SaveGame inserts a game or overwrites the stored record wholesale. The
// nested seats and round log ride in JSON columns.
func (s *store) SaveGame(game *belot.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	team1JSON, err := json.Marshal(game.Team1Players)
	if err != nil {
		return fmt.Errorf("marshaling team 1: %w", err)
	}
	team2JSON, err := json.Marshal(game.Team2Players)
	if err != nil {
		return fmt.Errorf("marshaling team 2: %w", err)
	}
	roundsJSON, err := json.Marshal(game.Rounds)
	if err != nil {
		return fmt.Errorf("marshaling rounds: %w", err)
	}

	var previousWinner sql.NullInt64
	if game.PreviousWinner != nil {
		previousWinner = sql.NullInt64{Int64: int64(*game.PreviousWinner), Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO games (id, team1_players_json, team2_players_json, dealer_index, current_dealer_index, rounds_json, target_score, is_active, previous_winner, match_score_team1, match_score_team2, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			team1_players_json = excluded.team1_players_json,
			team2_players_json = excluded.team2_players_json,
			dealer_index = excluded.dealer_index,
			current_dealer_index = excluded.current_dealer_index,
			rounds_json = excluded.rounds_json,
			target_score = excluded.target_score,
			is_active = excluded.is_active,
			previous_winner = excluded.previous_winner,
			match_score_team1 = excluded.match_score_team1,
			match_score_team2 = excluded.match_score_team2,
			updated_at = excluded.updated_at;
	`, game.ID, string(team1JSON), string(team2JSON), game.DealerIndex, game.CurrentDealerIndex,
		string(roundsJSON), game.TargetScore, game.IsActive, previousWinner,
		game.MatchScore.Team1, game.MatchScore.Team2, game.CreatedAt.Unix(), game.UpdatedAt.Unix())
	if err != nil {
		log.Error("Failed to save game", "error", err, "gameID", game.ID)
		return err
	}
	return nil
}

const gameColumns = "id, team1_players_json, team2_players_json, dealer_index, current_dealer_index, rounds_json, target_score, is_active, previous_winner, match_score_team1, match_score_team2, created_at, updated_at"

// FindActive scans for the unique game flagged active. Nil without error
// means there is none.
func (s *store) FindActive() (*belot.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT " + gameColumns + " FROM games WHERE is_active = 1 LIMIT 1")
	game, err := s.scanGame(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		log.Error("Failed to query active game", "error", err)
		return nil, err
	}
	return game, nil
}

// GetGame looks up a single game by id.
func (s *store) GetGame(gameID string) (*belot.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT "+gameColumns+" FROM games WHERE id = ?", gameID)
	game, err := s.scanGame(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("game %q not found", gameID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return game, nil
}

// ListGames returns all games, newest first.
func (s *store) ListGames() ([]*belot.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT " + gameColumns + " FROM games ORDER BY created_at DESC, id DESC")
	if err != nil {
		log.Error("Failed to query games", "error", err)
		return nil, err
	}
	defer rows.Close()

	var games []*belot.Game
	for rows.Next() {
		game, err := s.scanGame(rows)
		if err != nil {
			log.Error("Failed to scan game row", "error", err)
			continue
		}
		games = append(games, game)
	}
	return games, nil
}

// scanGame is a helper to scan a single game row. Unreadable JSON in the
// nested columns degrades to empty values rather than failing the read.
func (s *store) scanGame(scanner interface{ Scan(...any) error }) (*belot.Game, error) {
	var game belot.Game
	var team1JSON, team2JSON, roundsJSON sql.NullString
	var previousWinner sql.NullInt64
	var createdAt, updatedAt int64

	err := scanner.Scan(
		&game.ID, &team1JSON, &team2JSON, &game.DealerIndex, &game.CurrentDealerIndex,
		&roundsJSON, &game.TargetScore, &game.IsActive, &previousWinner,
		&game.MatchScore.Team1, &game.MatchScore.Team2, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if previousWinner.Valid {
		winner := int(previousWinner.Int64)
		game.PreviousWinner = &winner
	}
	game.CreatedAt = time.Unix(createdAt, 0).UTC()
	game.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	if team1JSON.Valid && team1JSON.String != "" {
		if err := json.Unmarshal([]byte(team1JSON.String), &game.Team1Players); err != nil {
			log.Error("Failed to unmarshal team1_players_json", "error", err, "gameID", game.ID)
		}
	}
	if team2JSON.Valid && team2JSON.String != "" {
		if err := json.Unmarshal([]byte(team2JSON.String), &game.Team2Players); err != nil {
			log.Error("Failed to unmarshal team2_players_json", "error", err, "gameID", game.ID)
		}
	}
	if roundsJSON.Valid && roundsJSON.String != "" {
		if err := json.Unmarshal([]byte(roundsJSON.String), &game.Rounds); err != nil {
			log.Error("Failed to unmarshal rounds_json", "error", err, "gameID", game.ID)
			game.Rounds = []belot.Round{}
		}
	} else {
		game.Rounds = []belot.Round{}
	}

	return &game, nil
}

// SaveGameSetup remembers the seating and dealer choice for pre-filling the
// next setup.
func (s *store) SaveGameSetup(setup belot.GameSetup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := json.Marshal(setup)
	if err != nil {
		return fmt.Errorf("marshaling game setup: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;
	`, lastGameSetupKey, string(value))
	if err != nil {
		log.Error("Failed to save game setup", "error", err)
	}
	return err
}

// GetLastGameSetup returns the remembered setup. A missing key or an
// unreadable stored value degrades to nil.
func (s *store) GetLastGameSetup() (*belot.GameSetup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM app_state WHERE key = ?", lastGameSetupKey).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		log.Error("Failed to query last game setup", "error", err)
		return nil, err
	}

	var setup belot.GameSetup
	if err := json.Unmarshal([]byte(value), &setup); err != nil {
		log.Error("Failed to unmarshal last game setup, ignoring it", "error", err)
		return nil, nil
	}
	return &setup, nil
}
