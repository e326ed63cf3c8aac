package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// Defining them in one place keeps naming consistent.
type Service struct {
	GamesCreated     prometheus.Counter
	RoundsRecorded   prometheus.Counter
	MatchesCompleted prometheus.Counter
	ContractsFailed  prometheus.Counter
}

// Counter keys for the persisted metrics table.
const (
	KeyGamesCreated     = "games_created"
	KeyRoundsRecorded   = "rounds_recorded"
	KeyMatchesCompleted = "matches_completed"
	KeyContractsFailed  = "contracts_failed"
)
