// Package mysql provides the GORM implementation of the API key repository.
package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/wyfcoding/ssrequity/internal/auth/domain"
	"github.com/wyfcoding/ssrequity/pkg/db"
	"github.com/wyfcoding/ssrequity/pkg/logger"
)

// APIKeyModel is the database row for an issued key.
type APIKeyModel struct {
	ID        uint      `gorm:"primaryKey"`
	ClientID  int64     `gorm:"column:client_id;index;not null"`
	Key       string    `gorm:"column:api_key;type:varchar(64);uniqueIndex;not null"`
	Name      string    `gorm:"column:name;type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName sets the table name.
func (APIKeyModel) TableName() string {
	return "ssr_api_keys"
}

type apiKeyRepository struct {
	db *db.DB
}

// NewAPIKeyRepository creates the repository.
func NewAPIKeyRepository(database *db.DB) domain.APIKeyRepository {
	return &apiKeyRepository{db: database}
}

func (r *apiKeyRepository) Save(ctx context.Context, key *domain.APIKey) error {
	model := &APIKeyModel{
		ClientID: key.ClientID,
		Key:      key.Key,
		Name:     key.Name,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		logger.Error(ctx, "apikey_repository.Save failed", "client_id", key.ClientID, "error", err)
		return fmt.Errorf("failed to save api key: %w", err)
	}

	key.ID = model.ID
	key.CreatedAt = model.CreatedAt
	return nil
}

func (r *apiKeyRepository) GetByKey(ctx context.Context, key string) (*domain.APIKey, error) {
	var model APIKeyModel
	if err := r.db.WithContext(ctx).Where("api_key = ?", key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error(ctx, "apikey_repository.GetByKey failed", "error", err)
		return nil, fmt.Errorf("failed to get api key: %w", err)
	}

	return &domain.APIKey{
		ID:        model.ID,
		ClientID:  model.ClientID,
		Name:      model.Name,
		Key:       model.Key,
		CreatedAt: model.CreatedAt,
	}, nil
}

func (r *apiKeyRepository) DeleteByKey(ctx context.Context, key string) (int64, error) {
	res := r.db.WithContext(ctx).Where("api_key = ?", key).Delete(&APIKeyModel{})
	if res.Error != nil {
		logger.Error(ctx, "apikey_repository.DeleteByKey failed", "error", res.Error)
		return 0, fmt.Errorf("failed to delete api key: %w", res.Error)
	}
	return res.RowsAffected, nil
}
