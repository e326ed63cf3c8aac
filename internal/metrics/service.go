package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var _ Metrics = (*Service)(nil)

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		GamesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "belot_games_created_total",
			Help: "The total number of games created.",
		}),
		RoundsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "belot_rounds_recorded_total",
			Help: "The total number of rounds scored and appended.",
		}),
		MatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "belot_matches_completed_total",
			Help: "The total number of matches ended with a result.",
		}),
		ContractsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "belot_contracts_failed_total",
			Help: "The total number of higher contracts that were forfeited.",
		}),
	}

	reg.MustRegister(
		s.GamesCreated,
		s.RoundsRecorded,
		s.MatchesCompleted,
		s.ContractsFailed,
	)

	return s
}

func (s *Service) IncGamesCreated() {
	s.GamesCreated.Inc()
}

func (s *Service) IncRoundsRecorded() {
	s.RoundsRecorded.Inc()
}

func (s *Service) IncMatchesCompleted() {
	s.MatchesCompleted.Inc()
}

func (s *Service) IncContractsFailed() {
	s.ContractsFailed.Inc()
}

// Multi fans one Metrics stream out to several sinks, so the persisted
// counters and the Prometheus registry stay in step.
type Multi []Metrics

func (m Multi) IncGamesCreated() {
	for _, s := range m {
		s.IncGamesCreated()
	}
}

func (m Multi) IncRoundsRecorded() {
	for _, s := range m {
		s.IncRoundsRecorded()
	}
}

func (m Multi) IncMatchesCompleted() {
	for _, s := range m {
		s.IncMatchesCompleted()
	}
}

func (m Multi) IncContractsFailed() {
	for _, s := range m {
		s.IncContractsFailed()
	}
}
