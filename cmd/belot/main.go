package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/vmarinov/belot-companion/internal/archive"
	"github.com/vmarinov/belot-companion/internal/config"
	"github.com/vmarinov/belot-companion/internal/database"
	"github.com/vmarinov/belot-companion/internal/match"
	"github.com/vmarinov/belot-companion/internal/metrics"
	"github.com/vmarinov/belot-companion/internal/roster"
)

// application bundles the wired-up stores and controller for the commands.
type application struct {
	controller   *match.Controller
	players      roster.PlayerStore
	games        match.GameStore
	metricsStore metrics.MetricsStore
	archiver     *archive.Archiver
	teardown     func()
}

var app *application

var rootCmd = &cobra.Command{
	Use:   "belot",
	Short: "A scorekeeping companion for Belot",
	Long: `Tracks players, teams, dealer rotation, per-round scores with
declarations and higher contracts, running totals and match history for the
card game Belot. The cards stay on the table; the bookkeeping lives here.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil && app.teardown != nil {
			app.teardown()
		}
	},
}

func initApp() error {
	cfg := config.Load()
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	players := roster.New(db)
	games := match.NewStore(db)
	metricsStore := metrics.New(db)
	// Counters go both to the persisted table (for `belot stats`) and to
	// the Prometheus default registry.
	sinks := metrics.Multi{metricsStore, metrics.NewService()}

	app = &application{
		controller:   match.NewController(games, players, sinks),
		players:      players,
		games:        games,
		metricsStore: metricsStore,
		archiver:     archive.New(players, games),
		teardown:     teardown,
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
