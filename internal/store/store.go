package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("key not found")
)

// Store is the durable key-value store the cart engine and admin
// session guard persist their JSON snapshots to. Each concern writes
// under its own key; a write to one key never touches another.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// CartKey returns the cart snapshot key for a shopper session.
func CartKey(sessionID string) string {
	return "cart:" + sessionID
}

// AdminSessionKey returns the admin session key for a shopper session.
func AdminSessionKey(sessionID string) string {
	return "admin_session:" + sessionID
}
