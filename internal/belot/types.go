package belot

import (
	"time"

	"github.com/google/uuid"
)

// CardColor is the suit announced alongside a higher contract. Belot around
// here is played with German-suited decks, hence acorns and leaves.
type CardColor string

const (
	Acorns CardColor = "acorns"
	Hearts CardColor = "hearts"
	Leaves CardColor = "leaves"
	Bells  CardColor = "bells"
)

// CardColors lists the four suits in display order.
var CardColors = []CardColor{Acorns, Hearts, Leaves, Bells}

// Valid reports whether c is one of the four recognized suits.
func (c CardColor) Valid() bool {
	switch c {
	case Acorns, Hearts, Leaves, Bells:
		return true
	}
	return false
}

const (
	// TrickPointPool is the fixed number of trick points dealt out each
	// round; the two raw team scores can never sum past it.
	TrickPointPool = 162

	// DefaultTargetScore is the running total that ends a match unless the
	// players pick another one at setup.
	DefaultTargetScore = 1001
)

// DeclarationValues are the recognized meld denominations.
var DeclarationValues = []int{20, 50, 100, 150, 200}

// IsDeclarationValue reports whether v is a recognized meld denomination.
func IsDeclarationValue(v int) bool {
	for _, dv := range DeclarationValues {
		if v == dv {
			return true
		}
	}
	return false
}

// Player is a directory record shared by reference with games; games never
// own or copy it.
type Player struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	GamesPlayed int       `json:"gamesPlayed"`
	GamesWon    int       `json:"gamesWon"`
}

// NewPlayer creates a directory record with a fresh id.
func NewPlayer(name string) Player {
	return Player{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Declaration is one seat's meld claim for a round. Total always equals the
// sum of Values; use NewDeclaration rather than filling the struct by hand.
type Declaration struct {
	PlayerID    string `json:"playerId"`
	PlayerIndex int    `json:"playerIndex"`
	Values      []int  `json:"values"`
	Total       int    `json:"total"`
}

// NewDeclaration builds a declaration with its total computed from values.
func NewDeclaration(playerID string, playerIndex int, values ...int) Declaration {
	d := Declaration{
		PlayerID:    playerID,
		PlayerIndex: playerIndex,
		Values:      values,
	}
	for _, v := range values {
		d.Total += v
	}
	return d
}

// ContractCall is a higher-contract bid: the calling seat and the announced
// suit. The two are always recorded together, never independently.
type ContractCall struct {
	Seat  int
	Color CardColor
}

// Round is one scored deal. Rounds are immutable once appended to a game;
// the raw scores are kept next to the final ones for display and audit.
type Round struct {
	ID                 string        `json:"id"`
	Team1Score         int           `json:"team1Score"`
	Team2Score         int           `json:"team2Score"`
	Team1RawScore      int           `json:"team1RawScore"`
	Team2RawScore      int           `json:"team2RawScore"`
	Timestamp          time.Time     `json:"timestamp"`
	DeclarationsValue  int           `json:"declarationsValue"`
	HigherContract     *int          `json:"higherContract"`
	CardColor          *CardColor    `json:"cardColor"`
	PlayerDeclarations []Declaration `json:"playerDeclarations"`
}

// Score is a pair of team tallies, used both for running point totals and
// for the series win count.
type Score struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

// Game is one 4-player, 2-team contest. Seats are indexed 0-3 in table
// order; seats 0 and 2 form team 1, seats 1 and 3 form team 2.
type Game struct {
	ID                 string     `json:"id"`
	Team1Players       [2]*Player `json:"team1Players"`
	Team2Players       [2]*Player `json:"team2Players"`
	DealerIndex        int        `json:"dealerIndex"`
	CurrentDealerIndex int        `json:"currentDealerIndex"`
	Rounds             []Round    `json:"rounds"`
	TargetScore        int        `json:"targetScore"`
	IsActive           bool       `json:"isActive"`
	PreviousWinner     *int       `json:"previousWinner"`
	MatchScore         Score      `json:"matchScore"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// GameSetup is the remembered seating and dealer choice from the last game,
// used to pre-fill the next setup.
type GameSetup struct {
	Players [4]*Player `json:"players"`
	Dealer  *int       `json:"dealer"`
}

// SeatPlayer returns the player at a seat index (0-3), or nil for an
// unassigned seat or an out-of-range index.
func (g *Game) SeatPlayer(seat int) *Player {
	switch seat {
	case 0:
		return g.Team1Players[0]
	case 1:
		return g.Team2Players[0]
	case 2:
		return g.Team1Players[1]
	case 3:
		return g.Team2Players[1]
	}
	return nil
}

// Seats returns all four seats in table order.
func (g *Game) Seats() [4]*Player {
	return [4]*Player{g.Team1Players[0], g.Team2Players[0], g.Team1Players[1], g.Team2Players[1]}
}

// Totals folds the round log into running team totals. The log is the single
// source of truth; nothing caches this.
func (g *Game) Totals() Score {
	var total Score
	for _, r := range g.Rounds {
		total.Team1 += r.Team1Score
		total.Team2 += r.Team2Score
	}
	return total
}

// TeamOf maps a seat index to its team. Seats alternate teams around the
// table: 0 and 2 play together as team 1, 1 and 3 as team 2.
func TeamOf(seat int) int {
	if seat%2 == 0 {
		return 1
	}
	return 2
}

// PartnerOf returns the seat sitting across from the given one.
func PartnerOf(seat int) int {
	return (seat + 2) % 4
}

// NextDealer returns the seat that deals after the given one. The deal moves
// counter-clockwise in seat order: 3 -> 2 -> 1 -> 0 -> 3.
func NextDealer(seat int) int {
	return (seat + 3) % 4
}

// TeamSeats returns the two seat indexes belonging to a team.
func TeamSeats(team int) [2]int {
	if team == 1 {
		return [2]int{0, 2}
	}
	return [2]int{1, 3}
}
