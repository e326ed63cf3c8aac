package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmarinov/belot-companion/internal/belot"
	"github.com/vmarinov/belot-companion/internal/match"
)

var (
	flagPlayers  []string
	flagDealer   int
	flagTarget   int
	flagFromLast bool

	flagTeam1        int
	flagTeam2        int
	flagDeclarations []string
	flagContractSeat int
	flagContractSuit string

	flagNextDealer int
)

func init() {
	gameNewCmd.Flags().StringSliceVarP(&flagPlayers, "players", "p", nil, "four player names in seat order (seats 0 and 2 are team 1)")
	gameNewCmd.Flags().IntVarP(&flagDealer, "dealer", "d", 0, "seat index of the first dealer (0-3)")
	gameNewCmd.Flags().IntVarP(&flagTarget, "target", "t", belot.DefaultTargetScore, "target score to win")
	gameNewCmd.Flags().BoolVar(&flagFromLast, "from-last", false, "reuse the players and dealer from the previous setup")

	roundAddCmd.Flags().IntVar(&flagTeam1, "team1", -1, "trick points taken by team 1")
	roundAddCmd.Flags().IntVar(&flagTeam2, "team2", -1, "trick points taken by team 2")
	roundAddCmd.Flags().StringArrayVar(&flagDeclarations, "declare", nil, `meld declaration as "seat=v1+v2", e.g. "2=20+50" (repeatable)`)
	roundAddCmd.Flags().IntVar(&flagContractSeat, "contract-seat", -1, "seat that called the higher contract")
	roundAddCmd.Flags().StringVar(&flagContractSuit, "contract-suit", "", "suit of the higher contract (acorns, hearts, leaves, bells)")
	_ = roundAddCmd.MarkFlagRequired("team1")
	_ = roundAddCmd.MarkFlagRequired("team2")

	matchNextCmd.Flags().IntVarP(&flagNextDealer, "dealer", "d", -1, "seat index of the next dealer (must belong to the winning team)")

	playersCmd.AddCommand(playersListCmd, playersAddCmd, playersRemoveCmd)
	gameCmd.AddCommand(gameNewCmd, gameShowCmd, gameEndCmd)
	roundCmd.AddCommand(roundAddCmd)
	matchCmd.AddCommand(matchNextCmd)
	rootCmd.AddCommand(playersCmd, gameCmd, roundCmd, historyCmd, matchCmd, backupCmd, restoreCmd, statsCmd)
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Manage the player directory",
}

var playersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all known players with their win records",
	RunE: func(cmd *cobra.Command, args []string) error {
		players, err := app.players.Leaderboard()
		if err != nil {
			return fmt.Errorf("failed to list players: %w", err)
		}
		if len(players) == 0 {
			fmt.Println("No players yet. Add one with: belot players add <name>")
			return nil
		}
		for _, p := range players {
			fmt.Printf("%-20s  %d won / %d played\n", p.Name, p.GamesWon, p.GamesPlayed)
		}
		return nil
	},
}

var playersAddCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Add one or more players to the directory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range args {
			if _, err := findPlayerByName(name); err == nil {
				return fmt.Errorf("player %q already exists", name)
			}
			if err := app.players.SavePlayer(belot.NewPlayer(name)); err != nil {
				return fmt.Errorf("failed to add player %q: %w", name, err)
			}
			fmt.Printf("Added %s\n", name)
		}
		return nil
	},
}

var playersRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a player from the directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := findPlayerByName(args[0])
		if err != nil {
			return err
		}
		if err := app.players.DeletePlayer(p.ID); err != nil {
			return fmt.Errorf("failed to remove player: %w", err)
		}
		fmt.Printf("Removed %s\n", p.Name)
		return nil
	},
}

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Manage the current game",
}

var gameNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new game",
	RunE: func(cmd *cobra.Command, args []string) error {
		var seats [4]*belot.Player
		dealer := flagDealer

		if flagFromLast {
			setup, err := app.controller.GetLastGameSetup()
			if err != nil {
				return fmt.Errorf("failed to load last setup: %w", err)
			}
			if setup == nil {
				return errors.New("no previous setup saved; pass --players instead")
			}
			seats = setup.Players
			if !cmd.Flags().Changed("dealer") && setup.Dealer != nil {
				dealer = *setup.Dealer
			}
		} else {
			if len(flagPlayers) != 4 {
				return errors.New("exactly four --players are required (seat order, comma separated)")
			}
			for i, name := range flagPlayers {
				p, err := findPlayerByName(strings.TrimSpace(name))
				if err != nil {
					return err
				}
				seats[i] = p
			}
		}

		game, err := app.controller.CreateGame(seats, dealer, flagTarget)
		if err != nil {
			if errors.Is(err, match.ErrActiveGameExists) {
				return errors.New("a game is already in progress; finish it with 'belot game end' first")
			}
			return fmt.Errorf("failed to start game: %w", err)
		}
		if err := app.controller.SaveGameSetup(belot.GameSetup{Players: seats, Dealer: &dealer}); err != nil {
			return fmt.Errorf("failed to remember setup: %w", err)
		}

		fmt.Printf("New game to %d points.\n", game.TargetScore)
		printSeats(game)
		fmt.Printf("Dealer: %s\n", seatName(game, game.CurrentDealerIndex))
		return nil
	},
}

var gameShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the state of the active game",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := requireActiveGame()
		if err != nil {
			return err
		}

		total := app.controller.GetTotalScore()
		remaining := app.controller.GetRemainingPoints()

		printSeats(game)
		fmt.Printf("Target: %d   Rounds played: %d\n", game.TargetScore, len(game.Rounds))
		fmt.Printf("Score: %d - %d (match %d - %d)\n", total.Team1, total.Team2, game.MatchScore.Team1, game.MatchScore.Team2)
		fmt.Printf("To win: team 1 needs %d, team 2 needs %d\n", remaining.Team1, remaining.Team2)
		fmt.Printf("Next dealer: %s\n", seatName(game, game.CurrentDealerIndex))

		if winner := app.controller.CheckForWinner(); winner != 0 {
			if app.controller.BothExceededTarget() {
				fmt.Printf("Both teams passed %d; team %d wins on priority.\n", game.TargetScore, winner)
			} else {
				fmt.Printf("Team %d has won! Close out with 'belot game end' or continue the series with 'belot match next'.\n", winner)
			}
		}
		return nil
	},
}

var gameEndCmd = &cobra.Command{
	Use:   "end",
	Short: "Finish the active game and record the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := app.controller.EndGame()
		if err != nil {
			if errors.Is(err, match.ErrNoActiveGame) {
				return errors.New("no active game to end")
			}
			return fmt.Errorf("failed to end game: %w", err)
		}
		total := game.Totals()
		switch {
		case total.Team1 > total.Team2:
			fmt.Printf("Game over: team 1 wins %d - %d.\n", total.Team1, total.Team2)
		case total.Team2 > total.Team1:
			fmt.Printf("Game over: team 2 wins %d - %d.\n", total.Team2, total.Team1)
		default:
			fmt.Printf("Game over: drawn at %d points apiece.\n", total.Team1)
		}
		return nil
	},
}

var roundCmd = &cobra.Command{
	Use:   "round",
	Short: "Record rounds of the active game",
}

var roundAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a finished round",
	Long: `Records a round for the active game. Trick points for the two teams
must be non-negative and sum to at most 162. Declarations are credited to the
declaring seat's team; a failed higher contract forfeits the contracting
team's points for the round.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := requireActiveGame()
		if err != nil {
			return err
		}

		declarations, err := parseDeclarations(game, flagDeclarations)
		if err != nil {
			return err
		}
		contract, err := parseContract(cmd)
		if err != nil {
			return err
		}

		round, err := app.controller.AddRound(flagTeam1, flagTeam2, declarations, contract)
		if err != nil {
			if errors.Is(err, match.ErrInvalidScore) {
				return fmt.Errorf("invalid trick points: scores must be non-negative and sum to at most %d", belot.TrickPointPool)
			}
			return fmt.Errorf("failed to record round: %w", err)
		}

		fmt.Printf("Round recorded: %d - %d\n", round.Team1Score, round.Team2Score)
		if round.HigherContract != nil && round.Team1Score+round.Team2Score < round.Team1RawScore+round.Team2RawScore+round.DeclarationsValue {
			fmt.Println("The higher contract failed; the contracting team scores nothing this round.")
		}

		total := app.controller.GetTotalScore()
		fmt.Printf("Total: %d - %d\n", total.Team1, total.Team2)
		if winner := app.controller.CheckForWinner(); winner != 0 {
			fmt.Printf("Team %d has reached %d! End the game or start the next match.\n", winner, game.TargetScore)
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past and present games, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		games, err := app.controller.History()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(games) == 0 {
			fmt.Println("No games recorded yet.")
			return nil
		}
		for _, g := range games {
			total := g.Totals()
			status := "finished"
			if g.IsActive {
				status = "active"
			}
			fmt.Printf("%s  %s vs %s  %d - %d  (%d rounds, to %d, %s)\n",
				g.CreatedAt.Format("2006-01-02"),
				teamNames(g, 1), teamNames(g, 2),
				total.Team1, total.Team2,
				len(g.Rounds), g.TargetScore, status)
		}
		return nil
	},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Manage the match series",
}

var matchNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Finish the won game and start the next one in the series",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := requireActiveGame()
		if err != nil {
			return err
		}
		winner := app.controller.CheckForWinner()
		if winner == 0 {
			return errors.New("no team has reached the target yet")
		}

		dealer := flagNextDealer
		if dealer < 0 {
			// Default to the winning team's first seat.
			dealer = belot.TeamSeats(winner)[0]
		}

		next, err := app.controller.StartNewMatch(winner, dealer)
		if err != nil {
			if errors.Is(err, match.ErrIneligibleDealer) {
				eligible := app.controller.EligibleDealers(winner)
				return fmt.Errorf("the next dealer must sit on the winning team: seat %d (%s) or seat %d (%s)",
					eligible[0], seatName(game, eligible[0]), eligible[1], seatName(game, eligible[1]))
			}
			return fmt.Errorf("failed to start the next match: %w", err)
		}

		fmt.Printf("Team %d takes the match. Series now %d - %d.\n", winner, next.MatchScore.Team1, next.MatchScore.Team2)
		fmt.Printf("Next game to %d points, dealer %s.\n", next.TargetScore, seatName(next, next.CurrentDealerIndex))
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Export players and games to a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := app.archiver.Export(args[0])
		if err != nil {
			return fmt.Errorf("failed to export snapshot: %w", err)
		}
		fmt.Printf("Exported %d players and %d games to %s\n", len(snap.Players), len(snap.Games), args[0])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Import players and games from a snapshot file",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := app.archiver.Import(args[0])
		if err != nil {
			return fmt.Errorf("failed to import snapshot: %w", err)
		}
		fmt.Printf("Imported %d players and %d games from %s\n", len(snap.Players), len(snap.Games), args[0])
		return nil
	},
	Args: cobra.ExactArgs(1),
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := app.metricsStore.GetAll()
		if err != nil {
			return fmt.Errorf("failed to load metrics: %w", err)
		}
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-20s %d\n", k, all[k])
		}
		return nil
	},
}

func requireActiveGame() (*belot.Game, error) {
	game, err := app.controller.GetActiveGame()
	if err != nil {
		return nil, fmt.Errorf("failed to load active game: %w", err)
	}
	if game == nil {
		return nil, errors.New("no active game; start one with 'belot game new'")
	}
	return game, nil
}

func findPlayerByName(name string) (*belot.Player, error) {
	players, err := app.players.GetStoredPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	for i := range players {
		if strings.EqualFold(players[i].Name, name) {
			return &players[i], nil
		}
	}
	return nil, fmt.Errorf("unknown player %q; add them with 'belot players add'", name)
}

// parseDeclarations turns "seat=v1+v2" flags into Declaration values bound to
// the players currently in those seats.
func parseDeclarations(game *belot.Game, specs []string) ([]belot.Declaration, error) {
	var out []belot.Declaration
	for _, spec := range specs {
		seatPart, valuesPart, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid declaration %q, expected \"seat=v1+v2\"", spec)
		}
		seat, err := strconv.Atoi(seatPart)
		if err != nil || seat < 0 || seat > 3 {
			return nil, fmt.Errorf("invalid declaration seat in %q", spec)
		}
		var values []int
		for _, v := range strings.Split(valuesPart, "+") {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("invalid declaration value in %q", spec)
			}
			if !belot.IsDeclarationValue(n) {
				return nil, fmt.Errorf("%d is not a recognized declaration value", n)
			}
			values = append(values, n)
		}
		playerID := ""
		if p := game.SeatPlayer(seat); p != nil {
			playerID = p.ID
		}
		out = append(out, belot.NewDeclaration(playerID, seat, values...))
	}
	return out, nil
}

func parseContract(cmd *cobra.Command) (*belot.ContractCall, error) {
	seatSet := cmd.Flags().Changed("contract-seat")
	suitSet := cmd.Flags().Changed("contract-suit")
	if !seatSet && !suitSet {
		return nil, nil
	}
	if seatSet != suitSet {
		return nil, errors.New("--contract-seat and --contract-suit must be given together")
	}
	color := belot.CardColor(strings.ToLower(flagContractSuit))
	if !color.Valid() {
		return nil, fmt.Errorf("unknown suit %q (use acorns, hearts, leaves or bells)", flagContractSuit)
	}
	return &belot.ContractCall{Seat: flagContractSeat, Color: color}, nil
}

func printSeats(game *belot.Game) {
	fmt.Printf("Team 1: %s   Team 2: %s\n", teamNames(game, 1), teamNames(game, 2))
}

func teamNames(game *belot.Game, team int) string {
	seats := belot.TeamSeats(team)
	return seatName(game, seats[0]) + " & " + seatName(game, seats[1])
}

func seatName(game *belot.Game, seat int) string {
	if p := game.SeatPlayer(seat); p != nil {
		return p.Name
	}
	return fmt.Sprintf("seat %d", seat)
}
