package cart

import (
	"sync"

	"github.com/sincrochat/catalog-backend/pkg/logger"
)

// StorageFactory builds the storage partition for one client scope.
type StorageFactory func(scope string) Storage

// Manager hands out one long-lived engine per client scope so observers and
// the drawer-open flag survive across requests from the same shopper.
type Manager struct {
	mu         sync.Mutex
	engines    map[string]*Engine
	newStorage StorageFactory
	logg       *logger.Logger
}

func NewManager(newStorage StorageFactory, logg *logger.Logger) *Manager {
	return &Manager{
		engines:    make(map[string]*Engine),
		newStorage: newStorage,
		logg:       logg,
	}
}

// Engine returns the engine bound to the given client scope, creating it on
// first use.
func (m *Manager) Engine(scope string) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()

	if engine, ok := m.engines[scope]; ok {
		return engine
	}
	engine := NewEngine(m.newStorage(scope), m.logg)
	m.engines[scope] = engine
	return engine
}
