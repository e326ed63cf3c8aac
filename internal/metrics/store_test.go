package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmarinov/belot-companion/internal/database"
	"github.com/vmarinov/belot-companion/internal/metrics"
)

func setupTestStore(t *testing.T) (metrics.MetricsStore, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return metrics.New(db), teardown
}

func TestStore_IncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	store.Increment("rounds_recorded")
	store.Increment("rounds_recorded")
	store.Increment("games_created")

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 2, all["rounds_recorded"])
	assert.Equal(t, 1, all["games_created"])
}

func TestStore_NamedCounters(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	store.IncGamesCreated()
	store.IncRoundsRecorded()
	store.IncRoundsRecorded()
	store.IncMatchesCompleted()
	store.IncContractsFailed()

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 1, all[metrics.KeyGamesCreated])
	assert.Equal(t, 2, all[metrics.KeyRoundsRecorded])
	assert.Equal(t, 1, all[metrics.KeyMatchesCompleted])
	assert.Equal(t, 1, all[metrics.KeyContractsFailed])
}

func TestService_RegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := metrics.NewService(reg)

	svc.IncGamesCreated()
	svc.IncRoundsRecorded()
	svc.IncRoundsRecorded()

	assert.Equal(t, float64(1), testutil.ToFloat64(svc.GamesCreated))
	assert.Equal(t, float64(2), testutil.ToFloat64(svc.RoundsRecorded))
	assert.Equal(t, float64(0), testutil.ToFloat64(svc.MatchesCompleted))
}

func TestMulti_FansOut(t *testing.T) {
	a := metrics.NewMock()
	b := metrics.NewMock()
	multi := metrics.Multi{a, b}

	multi.IncGamesCreated()
	multi.IncContractsFailed()

	assert.Equal(t, 1, a.GamesCreated())
	assert.Equal(t, 1, b.GamesCreated())
	assert.Equal(t, 1, a.ContractsFailed())
	assert.Equal(t, 1, b.ContractsFailed())
}
