package domain

import (
	"context"
	"errors"
	"time"
)

// ErrUnauthenticated is returned for a missing, revoked or unknown API key.
// It is propagated to the boundary unwrapped.
var ErrUnauthenticated = errors.New("invalid API key")

// APIKey is the access credential issued to a reporting client. Immutable
// once issued; at most one live key per key value.
type APIKey struct {
	ID        uint
	ClientID  int64
	Name      string
	Key       string
	CreatedAt time.Time
}

// Identity is the resolved owner of a presented API key.
type Identity struct {
	KeyID    uint
	ClientID int64
	Name     string
}

// APIKeyRepository stores issued keys.
type APIKeyRepository interface {
	Save(ctx context.Context, key *APIKey) error
	// GetByKey returns nil, nil when no key matches.
	GetByKey(ctx context.Context, key string) (*APIKey, error)
	// DeleteByKey returns the number of records removed (0 or 1).
	DeleteByKey(ctx context.Context, key string) (int64, error)
}

// Verifier resolves a presented secret to a client identity. The ingestion
// pipeline consumes it as its authentication oracle.
type Verifier interface {
	Verify(ctx context.Context, key string) (*Identity, error)
}
