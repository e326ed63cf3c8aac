package roster

import (
	"sync"

	"github.com/vmarinov/belot-companion/internal/belot"
)

// MockStore is a mock implementation of the PlayerStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	GetStoredPlayersFunc    func() ([]belot.Player, error)
	GetPlayerFunc           func(playerID string) (*belot.Player, error)
	SavePlayerFunc          func(player belot.Player) error
	SaveMultiplePlayersFunc func(players []belot.Player) error
	DeletePlayerFunc        func(playerID string) error
	RecordResultFunc        func(playerID string, won bool) error
	LeaderboardFunc         func() ([]belot.Player, error)

	SavePlayerCalls   []belot.Player
	DeletePlayerCalls []string
	RecordResultCalls []struct {
		PlayerID string
		Won      bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) GetStoredPlayers() ([]belot.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetStoredPlayersFunc != nil {
		return m.GetStoredPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) GetPlayer(playerID string) (*belot.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return nil, nil
}

func (m *MockStore) SavePlayer(player belot.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SavePlayerCalls = append(m.SavePlayerCalls, player)
	if m.SavePlayerFunc != nil {
		return m.SavePlayerFunc(player)
	}
	return nil
}

func (m *MockStore) SaveMultiplePlayers(players []belot.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveMultiplePlayersFunc != nil {
		return m.SaveMultiplePlayersFunc(players)
	}
	return nil
}

func (m *MockStore) DeletePlayer(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePlayerCalls = append(m.DeletePlayerCalls, playerID)
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(playerID)
	}
	return nil
}

func (m *MockStore) RecordResult(playerID string, won bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordResultCalls = append(m.RecordResultCalls, struct {
		PlayerID string
		Won      bool
	}{playerID, won})
	if m.RecordResultFunc != nil {
		return m.RecordResultFunc(playerID, won)
	}
	return nil
}

func (m *MockStore) Leaderboard() ([]belot.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc()
	}
	return nil, nil
}
