package match

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/vmarinov/belot-companion/internal/metrics"
	"github.com/vmarinov/belot-companion/internal/roster"
)

// store handles all database operations for games.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Controller owns the single active game and sequences every lifecycle
// transition: creation, round appends, winner detection, series hand-off and
// ending.
type Controller struct {
	games   GameStore
	players roster.PlayerStore
	metrics metrics.Metrics
}

var (
	// ErrNoActiveGame is returned by operations that require an active game
	// when none exists. Callers redirect the user to game setup.
	ErrNoActiveGame = errors.New("no active game")

	// ErrActiveGameExists guards the at-most-one-active-game invariant.
	ErrActiveGameExists = errors.New("an active game already exists")

	// ErrInvalidScore rejects round input before it reaches the scoring
	// engine; the round is not recorded and state is unchanged.
	ErrInvalidScore = errors.New("invalid round score")

	// ErrInvalidDeclaration rejects meld values outside the recognized
	// denominations or seats outside the table.
	ErrInvalidDeclaration = errors.New("invalid declaration")

	// ErrInvalidContract rejects a higher-contract call without a valid
	// seat and suit pair.
	ErrInvalidContract = errors.New("invalid higher contract")

	// ErrIneligibleDealer is returned when a series continuation names a
	// first dealer outside the previous winning team.
	ErrIneligibleDealer = errors.New("dealer seat not eligible")
)
