package cart

import (
	"context"
	"sync"

	"atelier-store/internal/store"

	"go.uber.org/zap"
)

// Manager hands out one cart engine per shopper session and keeps it
// for the process lifetime, so every request in a session sees the
// same owned instance.
type Manager struct {
	mu      sync.Mutex
	engines map[string]*Engine

	store  store.Store
	logger *zap.Logger
}

// NewManager creates a session-keyed cart engine registry.
func NewManager(st store.Store, logger *zap.Logger) *Manager {
	return &Manager{
		engines: make(map[string]*Engine),
		store:   st,
		logger:  logger,
	}
}

// Engine returns the cart engine for a session, creating and
// rehydrating it on first use.
func (m *Manager) Engine(ctx context.Context, sessionID string) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()

	if engine, ok := m.engines[sessionID]; ok {
		return engine
	}

	engine := NewEngine(ctx, m.store, store.CartKey(sessionID), m.logger)
	m.engines[sessionID] = engine
	return engine
}
