package archive_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmarinov/belot-companion/internal/archive"
	"github.com/vmarinov/belot-companion/internal/belot"
	"github.com/vmarinov/belot-companion/internal/database"
	"github.com/vmarinov/belot-companion/internal/match"
	"github.com/vmarinov/belot-companion/internal/roster"
)

type env struct {
	archiver *archive.Archiver
	players  roster.PlayerStore
	games    match.GameStore
	teardown func()
}

func setupEnv(t *testing.T) *env {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	players := roster.New(db)
	games := match.NewStore(db)
	return &env{
		archiver: archive.New(players, games),
		players:  players,
		games:    games,
		teardown: teardown,
	}
}

func seedGame(t *testing.T, e *env, active bool) *belot.Game {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	game := &belot.Game{
		ID:          uuid.NewString(),
		DealerIndex: 1, CurrentDealerIndex: 0,
		Rounds: []belot.Round{{
			ID: uuid.NewString(), Team1Score: 100, Team2Score: 62,
			Team1RawScore: 100, Team2RawScore: 62, Timestamp: now,
		}},
		TargetScore: 1001,
		IsActive:    active,
		CreatedAt:   now, UpdatedAt: now,
	}
	require.NoError(t, e.games.SaveGame(game))
	return game
}

func TestExportImportRoundTrip(t *testing.T) {
	src := setupEnv(t)
	defer src.teardown()

	player := belot.Player{
		ID: uuid.NewString(), Name: "Ivan",
		CreatedAt: time.Now().UTC().Truncate(time.Second), GamesPlayed: 3, GamesWon: 2,
	}
	require.NoError(t, src.players.SavePlayer(player))
	game := seedGame(t, src, false)

	path := filepath.Join(t.TempDir(), "belot.snapshot")
	snap, err := src.archiver.Export(path)
	require.NoError(t, err)
	assert.Len(t, snap.Players, 1)
	assert.Len(t, snap.Games, 1)

	dst := setupEnv(t)
	defer dst.teardown()

	imported, err := dst.archiver.Import(path)
	require.NoError(t, err)
	assert.Len(t, imported.Players, 1)

	gotPlayers, err := dst.players.GetStoredPlayers()
	require.NoError(t, err)
	require.Len(t, gotPlayers, 1)
	assert.Equal(t, player, gotPlayers[0])

	gotGame, err := dst.games.GetGame(game.ID)
	require.NoError(t, err)
	assert.Equal(t, game, gotGame)
}

func TestImport_PreservesSingleActiveInvariant(t *testing.T) {
	src := setupEnv(t)
	defer src.teardown()
	seedGame(t, src, true)

	path := filepath.Join(t.TempDir(), "belot.snapshot")
	_, err := src.archiver.Export(path)
	require.NoError(t, err)

	dst := setupEnv(t)
	defer dst.teardown()
	local := seedGame(t, dst, true)

	_, err = dst.archiver.Import(path)
	require.NoError(t, err)

	active, err := dst.games.FindActive()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, local.ID, active.ID, "the locally running game stays the only active one")

	games, err := dst.games.ListGames()
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestImport_RejectsGarbage(t *testing.T) {
	e := setupEnv(t)
	defer e.teardown()

	path := filepath.Join(t.TempDir(), "garbage")
	require.NoError(t, os.WriteFile(path, []byte("not a snapshot"), 0o644))

	_, err := e.archiver.Import(path)
	require.Error(t, err)
}
