package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the rest of the app from the specific implementation
// (Prometheus, the persisted counter table, or a mock).
type Metrics interface {
	IncGamesCreated()
	IncRoundsRecorded()
	IncMatchesCompleted()
	IncContractsFailed()
}

// MetricsStore is the persisted counter table, readable for the stats view.
type MetricsStore interface {
	Metrics
	Increment(key string)
	GetAll() (map[string]int, error)
}
