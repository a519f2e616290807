package store

import (
	"context"
)

// Keys persisted by the service. Values are replaced whole on every write.
const (
	KeyHarvests = "harvests"
	KeyLanguage = "language"
)

// Store defines the durable key-value storage behind harvests and preferences.
// Get returns nil, nil for a key that was never written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
