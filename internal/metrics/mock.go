package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	gamesCreated     int
	roundsRecorded   int
	matchesCompleted int
	contractsFailed  int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncGamesCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesCreated++
}

func (m *Mock) IncRoundsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsRecorded++
}

func (m *Mock) IncMatchesCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCompleted++
}

func (m *Mock) IncContractsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contractsFailed++
}

// GamesCreated returns the number of times IncGamesCreated was called.
func (m *Mock) GamesCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesCreated
}

// RoundsRecorded returns the number of times IncRoundsRecorded was called.
func (m *Mock) RoundsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsRecorded
}

// MatchesCompleted returns the number of times IncMatchesCompleted was called.
func (m *Mock) MatchesCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCompleted
}

// ContractsFailed returns the number of times IncContractsFailed was called.
func (m *Mock) ContractsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contractsFailed
}
