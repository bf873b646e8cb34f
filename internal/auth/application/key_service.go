package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/pkg/idgen"

	"github.com/wyfcoding/ssrequity/internal/auth/domain"
	"github.com/wyfcoding/ssrequity/pkg/logger"
)

// KeyService implements the API key lifecycle and the Verifier oracle.
type KeyService struct {
	repo domain.APIKeyRepository
}

func NewKeyService(repo domain.APIKeyRepository) *KeyService {
	return &KeyService{repo: repo}
}

// Issue creates a new key for a client. The secret is a prefixed high-entropy
// token, returned in full only here.
func (s *KeyService) Issue(ctx context.Context, clientID int64, name string) (*domain.APIKey, error) {
	key := fmt.Sprintf("ssr_%s", idgen.GenShortID(32))

	ak := &domain.APIKey{
		ClientID: clientID,
		Name:     name,
		Key:      key,
	}
	if err := s.repo.Save(ctx, ak); err != nil {
		return nil, fmt.Errorf("failed to save api key: %w", err)
	}

	logger.Info(ctx, "API key issued", "client_id", clientID, "name", name)
	return ak, nil
}

// Revoke deletes a key by exact value, returning how many records were
// removed (0 when the key never existed).
func (s *KeyService) Revoke(ctx context.Context, key string) (int64, error) {
	deleted, err := s.repo.DeleteByKey(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to delete api key: %w", err)
	}
	if deleted > 0 {
		logger.Info(ctx, "API key revoked")
	}
	return deleted, nil
}

// Verify resolves a presented key to its identity, or ErrUnauthenticated.
func (s *KeyService) Verify(ctx context.Context, key string) (*domain.Identity, error) {
	if key == "" {
		return nil, domain.ErrUnauthenticated
	}
	ak, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to look up api key: %w", err)
	}
	if ak == nil {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.Identity{
		KeyID:    ak.ID,
		ClientID: ak.ClientID,
		Name:     ak.Name,
	}, nil
}
