package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/wyfcoding/ssrequity/internal/ingestion/domain"
	"github.com/wyfcoding/ssrequity/pkg/db"
	"github.com/wyfcoding/ssrequity/pkg/logger"
)

// rowInsertBatchSize chunks the bulk insert so a large upload does not build
// one oversized multi-value statement.
const rowInsertBatchSize = 500

type ingestionRepository struct {
	db *db.DB
}

// NewIngestionRepository creates the repository.
func NewIngestionRepository(database *db.DB) domain.IngestionRepository {
	return &ingestionRepository{db: database}
}

// StoreBatch writes the audit record, bulk-inserts the rows and flips the
// status to STORED inside one transaction. Any error rolls everything back,
// so a RECEIVED record never outlives a failed batch.
func (r *ingestionRepository) StoreBatch(ctx context.Context, upload *domain.UploadBatch, rows []*domain.PositionRow) error {
	err := r.db.WithTx(ctx, func(tx *gorm.DB) error {
		uploadModel := uploadFromDomain(upload)
		if err := tx.Create(uploadModel).Error; err != nil {
			return fmt.Errorf("failed to insert upload record: %w", err)
		}

		rowModels := make([]*PositionRowModel, len(rows))
		for i, row := range rows {
			rowModels[i] = rowFromDomain(row)
		}
		if err := tx.CreateInBatches(rowModels, rowInsertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert position rows: %w", err)
		}

		res := tx.Model(&UploadBatchModel{}).
			Where("client_id = ? AND upload_batch_id = ?", upload.ClientID, upload.BatchID).
			Update("status", string(domain.StatusStored))
		if res.Error != nil {
			return fmt.Errorf("failed to mark upload stored: %w", res.Error)
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("upload record missing during status transition, batch %s", upload.BatchID)
		}

		upload.ID = uploadModel.ID
		return nil
	})
	if err != nil {
		logger.Error(ctx, "ingestion_repository.StoreBatch failed",
			"batch_id", upload.BatchID,
			"error", err,
		)
		return err
	}

	upload.Status = domain.StatusStored
	return nil
}
