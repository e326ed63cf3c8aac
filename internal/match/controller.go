package match

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmarinov/belot-companion/internal/belot"
	"github.com/vmarinov/belot-companion/internal/metrics"
	"github.com/vmarinov/belot-companion/internal/roster"
)

// NewController creates a new lifecycle controller.
func NewController(games GameStore, players roster.PlayerStore, m metrics.Metrics) *Controller {
	return &Controller{
		games:   games,
		players: players,
		metrics: m,
	}
}

// CreateGame starts a new game: seats 0 and 2 form team 1, seats 1 and 3
// form team 2, the dealer pointer starts at dealerIndex. A non-positive
// targetScore falls back to the default 1001. Exactly one game may be active
// at a time, so creation fails while another game is still running.
func (c *Controller) CreateGame(seats [4]*belot.Player, dealerIndex int, targetScore int) (*belot.Game, error) {
	if dealerIndex < 0 || dealerIndex > 3 {
		return nil, fmt.Errorf("%w: dealer seat %d out of range", ErrIneligibleDealer, dealerIndex)
	}
	if targetScore <= 0 {
		targetScore = belot.DefaultTargetScore
	}

	// Re-check right before writing; the store offers no transactions
	// across calls, so the invariant is enforced here.
	active, err := c.games.FindActive()
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, fmt.Errorf("%w: game %s", ErrActiveGameExists, active.ID)
	}

	now := time.Now().UTC()
	game := &belot.Game{
		ID:                 uuid.NewString(),
		Team1Players:       [2]*belot.Player{seats[0], seats[2]},
		Team2Players:       [2]*belot.Player{seats[1], seats[3]},
		DealerIndex:        dealerIndex,
		CurrentDealerIndex: dealerIndex,
		Rounds:             []belot.Round{},
		TargetScore:        targetScore,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := c.games.SaveGame(game); err != nil {
		return nil, fmt.Errorf("saving new game: %w", err)
	}
	c.metrics.IncGamesCreated()
	log.Info("Created game", "gameID", game.ID, "dealer", dealerIndex, "target", targetScore)
	return game, nil
}

// GetActiveGame returns the active game, or nil when there is none.
func (c *Controller) GetActiveGame() (*belot.Game, error) {
	return c.games.FindActive()
}

// AddRound validates the raw inputs, runs them through the scoring engine
// and appends the result to the active game, advancing the dealer pointer.
// The caller gets the recorded round back, or ErrNoActiveGame.
func (c *Controller) AddRound(team1Raw, team2Raw int, declarations []belot.Declaration, contract *belot.ContractCall) (*belot.Round, error) {
	if err := validateRoundInput(team1Raw, team2Raw, declarations, contract); err != nil {
		return nil, err
	}

	game, err := c.games.FindActive()
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrNoActiveGame
	}

	round := belot.ScoreRound(belot.RoundInput{
		Team1RawScore: team1Raw,
		Team2RawScore: team2Raw,
		Declarations:  declarations,
		Contract:      contract,
	})
	round.ID = uuid.NewString()
	round.Timestamp = time.Now().UTC()

	game.Rounds = append(game.Rounds, round)
	game.CurrentDealerIndex = belot.NextDealer(game.CurrentDealerIndex)
	game.UpdatedAt = time.Now().UTC()

	if err := c.games.SaveGame(game); err != nil {
		return nil, fmt.Errorf("saving game after round: %w", err)
	}

	c.metrics.IncRoundsRecorded()
	if contractForfeited(round) {
		c.metrics.IncContractsFailed()
	}
	log.Info("Recorded round", "gameID", game.ID,
		"team1", round.Team1Score, "team2", round.Team2Score,
		"declarations", round.DeclarationsValue, "nextDealer", game.CurrentDealerIndex)
	return &round, nil
}

func validateRoundInput(team1Raw, team2Raw int, declarations []belot.Declaration, contract *belot.ContractCall) error {
	if team1Raw < 0 || team2Raw < 0 {
		return fmt.Errorf("%w: raw scores must be non-negative", ErrInvalidScore)
	}
	if team1Raw+team2Raw > belot.TrickPointPool {
		return fmt.Errorf("%w: %d+%d exceeds the %d point pool", ErrInvalidScore, team1Raw, team2Raw, belot.TrickPointPool)
	}
	for _, d := range declarations {
		if d.PlayerIndex < 0 || d.PlayerIndex > 3 {
			return fmt.Errorf("%w: seat %d out of range", ErrInvalidDeclaration, d.PlayerIndex)
		}
		if len(d.Values) == 0 {
			return fmt.Errorf("%w: no values for seat %d", ErrInvalidDeclaration, d.PlayerIndex)
		}
		for _, v := range d.Values {
			if !belot.IsDeclarationValue(v) {
				return fmt.Errorf("%w: %d is not a recognized meld value", ErrInvalidDeclaration, v)
			}
		}
	}
	if contract != nil {
		if contract.Seat < 0 || contract.Seat > 3 {
			return fmt.Errorf("%w: seat %d out of range", ErrInvalidContract, contract.Seat)
		}
		if !contract.Color.Valid() {
			return fmt.Errorf("%w: unknown card color %q", ErrInvalidContract, contract.Color)
		}
	}
	return nil
}

// contractForfeited reports whether the higher-contract rule zeroed out the
// contracting team's round.
func contractForfeited(round belot.Round) bool {
	if round.HigherContract == nil {
		return false
	}
	if belot.TeamOf(*round.HigherContract) == 1 {
		return round.Team1Score == 0
	}
	return round.Team2Score == 0
}

// GetTotalScore folds the active game's round log into running totals.
// With no active game it returns zeros.
func (c *Controller) GetTotalScore() belot.Score {
	game, err := c.games.FindActive()
	if err != nil || game == nil {
		return belot.Score{}
	}
	return game.Totals()
}

// GetRemainingPoints returns how far each team still is from the target,
// clamped at zero.
func (c *Controller) GetRemainingPoints() belot.Score {
	game, err := c.games.FindActive()
	if err != nil || game == nil {
		return belot.Score{}
	}
	total := game.Totals()
	return belot.Score{
		Team1: max(0, game.TargetScore-total.Team1),
		Team2: max(0, game.TargetScore-total.Team2),
	}
}

// CheckForWinner returns the team (1 or 2) whose total reached the target,
// or 0 when the match is still open. When both teams reach the target in
// the same round, team 1 takes priority; use BothExceededTarget to surface
// the ambiguity.
func (c *Controller) CheckForWinner() int {
	game, err := c.games.FindActive()
	if err != nil || game == nil {
		return 0
	}
	total := game.Totals()
	if total.Team1 >= game.TargetScore {
		return 1
	}
	if total.Team2 >= game.TargetScore {
		return 2
	}
	return 0
}

// BothExceededTarget reports whether both teams reached the target score.
func (c *Controller) BothExceededTarget() bool {
	game, err := c.games.FindActive()
	if err != nil || game == nil {
		return false
	}
	total := game.Totals()
	return total.Team1 >= game.TargetScore && total.Team2 >= game.TargetScore
}

// EndGame deactivates the active game and writes each participant's result
// into the player directory. A win is a strictly greater total, not merely
// reaching the target; on a tied total nobody gets a win.
func (c *Controller) EndGame() (*belot.Game, error) {
	game, err := c.games.FindActive()
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrNoActiveGame
	}
	if err := c.finalizeGame(game); err != nil {
		return nil, err
	}
	return game, nil
}

func (c *Controller) finalizeGame(game *belot.Game) error {
	game.IsActive = false
	game.UpdatedAt = time.Now().UTC()
	if err := c.games.SaveGame(game); err != nil {
		return fmt.Errorf("deactivating game: %w", err)
	}

	total := game.Totals()
	team1Won := total.Team1 > total.Team2
	team2Won := total.Team2 > total.Team1
	for seat, player := range game.Seats() {
		if player == nil {
			continue
		}
		won := false
		if belot.TeamOf(seat) == 1 {
			won = team1Won
		} else {
			won = team2Won
		}
		if err := c.players.RecordResult(player.ID, won); err != nil {
			// The game itself is already closed; a missed counter is
			// logged and tolerated.
			log.Error("Failed to record player result", "error", err, "playerID", player.ID)
		}
	}

	c.metrics.IncMatchesCompleted()
	log.Info("Game ended", "gameID", game.ID, "team1", total.Team1, "team2", total.Team2)
	return nil
}

// EligibleDealers returns the seats allowed to deal first in the next match
// of a series: only the previous winning team gets the first deal.
func (c *Controller) EligibleDealers(winningTeam int) [2]int {
	return belot.TeamSeats(winningTeam)
}

// StartNewMatch closes out the concluded game and seeds the next match of
// the series: same four players, the series counter bumped for winningTeam,
// and the first deal restricted to the winning team's seats.
func (c *Controller) StartNewMatch(winningTeam int, dealerIndex int) (*belot.Game, error) {
	if winningTeam != 1 && winningTeam != 2 {
		return nil, fmt.Errorf("invalid winning team %d", winningTeam)
	}
	if belot.TeamOf(dealerIndex) != winningTeam || dealerIndex < 0 || dealerIndex > 3 {
		return nil, fmt.Errorf("%w: seat %d does not belong to team %d", ErrIneligibleDealer, dealerIndex, winningTeam)
	}

	previous, err := c.games.FindActive()
	if err != nil {
		return nil, err
	}
	if previous == nil {
		return nil, ErrNoActiveGame
	}
	if err := c.finalizeGame(previous); err != nil {
		return nil, err
	}

	matchScore := previous.MatchScore
	if winningTeam == 1 {
		matchScore.Team1++
	} else {
		matchScore.Team2++
	}

	now := time.Now().UTC()
	winner := winningTeam
	next := &belot.Game{
		ID:                 uuid.NewString(),
		Team1Players:       previous.Team1Players,
		Team2Players:       previous.Team2Players,
		DealerIndex:        dealerIndex,
		CurrentDealerIndex: dealerIndex,
		Rounds:             []belot.Round{},
		TargetScore:        previous.TargetScore,
		IsActive:           true,
		PreviousWinner:     &winner,
		MatchScore:         matchScore,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := c.games.SaveGame(next); err != nil {
		return nil, fmt.Errorf("saving next match: %w", err)
	}
	c.metrics.IncGamesCreated()
	log.Info("Started next match in series", "gameID", next.ID,
		"seriesTeam1", matchScore.Team1, "seriesTeam2", matchScore.Team2, "dealer", dealerIndex)
	return next, nil
}

// SaveGameSetup remembers seating and dealer for the next setup screen.
func (c *Controller) SaveGameSetup(setup belot.GameSetup) error {
	return c.games.SaveGameSetup(setup)
}

// GetLastGameSetup returns the remembered setup, or nil.
func (c *Controller) GetLastGameSetup() (*belot.GameSetup, error) {
	return c.games.GetLastGameSetup()
}

// History returns all games, newest first.
func (c *Controller) History() ([]*belot.Game, error) {
	return c.games.ListGames()
}
