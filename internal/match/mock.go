package match

import (
	"sync"

	"github.com/vmarinov/belot-companion/internal/belot"
)

// MockStore is a mock implementation of the GameStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	FindActiveFunc       func() (*belot.Game, error)
	GetGameFunc          func(gameID string) (*belot.Game, error)
	SaveGameFunc         func(game *belot.Game) error
	ListGamesFunc        func() ([]*belot.Game, error)
	SaveGameSetupFunc    func(setup belot.GameSetup) error
	GetLastGameSetupFunc func() (*belot.GameSetup, error)

	SaveGameCalls      []*belot.Game
	SaveGameSetupCalls []belot.GameSetup
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) FindActive() (*belot.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc()
	}
	return nil, nil
}

func (m *MockStore) GetGame(gameID string) (*belot.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetGameFunc != nil {
		return m.GetGameFunc(gameID)
	}
	return nil, nil
}

func (m *MockStore) SaveGame(game *belot.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveGameCalls = append(m.SaveGameCalls, game)
	if m.SaveGameFunc != nil {
		return m.SaveGameFunc(game)
	}
	return nil
}

func (m *MockStore) ListGames() ([]*belot.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListGamesFunc != nil {
		return m.ListGamesFunc()
	}
	return nil, nil
}

func (m *MockStore) SaveGameSetup(setup belot.GameSetup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveGameSetupCalls = append(m.SaveGameSetupCalls, setup)
	if m.SaveGameSetupFunc != nil {
		return m.SaveGameSetupFunc(setup)
	}
	return nil
}

func (m *MockStore) GetLastGameSetup() (*belot.GameSetup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetLastGameSetupFunc != nil {
		return m.GetLastGameSetupFunc()
	}
	return nil, nil
}
