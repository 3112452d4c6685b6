package checkout

import (
	"context"
	"sync"
	"time"

	"atelier-store/internal/cart"

	"go.uber.org/zap"
)

// Manager keeps at most one checkout session per shopper session.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	carts    *cart.Manager
	gateways Gateways
	timeout  time.Duration
	logger   *zap.Logger
}

// NewManager creates a session-keyed checkout registry.
func NewManager(carts *cart.Manager, gateways Gateways, timeout time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		carts:    carts,
		gateways: gateways,
		timeout:  timeout,
		logger:   logger,
	}
}

// Session returns the checkout session for a shopper, creating an idle
// one bound to the shopper's cart on first use.
func (m *Manager) Session(ctx context.Context, sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[sessionID]; ok {
		return session
	}

	session := NewSession(m.carts.Engine(ctx, sessionID), m.gateways, m.timeout, m.logger)
	m.sessions[sessionID] = session
	return session
}
