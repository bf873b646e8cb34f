// Package application coordinates the ingestion pipeline: decode, parse,
// authenticate, build, normalize, persist, publish.
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	authdomain "github.com/wyfcoding/ssrequity/internal/auth/domain"
	"github.com/wyfcoding/ssrequity/internal/ingestion/domain"
	"github.com/wyfcoding/ssrequity/pkg/logger"
)

// DefaultFilename is used when the multipart part carries no filename.
const DefaultFilename = "positions.csv"

// ImportResult is returned to the client on success.
type ImportResult struct {
	ClientID  int64
	BatchID   string
	TotalRows int
}

// ImportService is the ingestion orchestrator — the only component with
// persistence side effects.
type ImportService struct {
	maxUploadBytes int64
	verifier       authdomain.Verifier
	repo           domain.IngestionRepository
	publisher      domain.EventPublisher
}

// NewImportService wires the orchestrator. publisher may be nil when event
// publishing is disabled.
func NewImportService(
	maxUploadBytes int64,
	verifier authdomain.Verifier,
	repo domain.IngestionRepository,
	publisher domain.EventPublisher,
) *ImportService {
	return &ImportService{
		maxUploadBytes: maxUploadBytes,
		verifier:       verifier,
		repo:           repo,
		publisher:      publisher,
	}
}

// Import ingests one uploaded position file. All rows are normalized before
// any write, and the audit record, bulk row insert and status transition
// share one transaction: a failure at any point leaves no persisted
// artifacts.
func (s *ImportService) Import(ctx context.Context, apiKey string, raw []byte, filename string) (*ImportResult, error) {
	if len(raw) == 0 {
		return nil, domain.ErrEmptyUpload
	}
	if int64(len(raw)) > s.maxUploadBytes {
		return nil, &domain.UploadTooLargeError{Limit: s.maxUploadBytes}
	}

	records, err := domain.ParseCSV(raw)
	if err != nil {
		return nil, err
	}

	identity, err := s.verifier.Verify(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	if filename == "" {
		filename = DefaultFilename
	}
	batchID := uuid.New().String()
	receivedAt := time.Now().UTC()

	batch, err := domain.BuildBatch(records, batchID, identity.ClientID, filename)
	if err != nil {
		return nil, err
	}

	rows := make([]*domain.PositionRow, 0, len(records))
	for i, rec := range records {
		row, err := domain.NormalizeRow(rec, batch.Contexts[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	upload := &domain.UploadBatch{
		ClientID:   identity.ClientID,
		BatchID:    batchID,
		FileName:   filename,
		UploadedAt: receivedAt,
		Status:     domain.StatusReceived,
		TotalRows:  len(rows),
	}

	if err := s.repo.StoreBatch(ctx, upload, rows); err != nil {
		logger.Error(ctx, "Failed to store upload batch",
			"client_id", identity.ClientID,
			"batch_id", batchID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to store upload batch: %w", err)
	}

	logger.Info(ctx, "Upload batch stored",
		"client_id", identity.ClientID,
		"batch_id", batchID,
		"total_rows", len(rows),
	)

	if s.publisher != nil {
		event := domain.BatchStoredEvent{
			ClientID:       identity.ClientID,
			BatchID:        batchID,
			SourceFilename: filename,
			AsOfDate:       batch.AsOfDate.Format("2006-01-02"),
			TotalRows:      len(rows),
			StoredAt:       time.Now().UTC(),
		}
		if err := s.publisher.PublishBatchStored(ctx, event); err != nil {
			// Best-effort: the batch is committed, the broker can catch up.
			logger.Warn(ctx, "Failed to publish batch stored event",
				"batch_id", batchID,
				"error", err,
			)
		}
	}

	return &ImportResult{
		ClientID:  identity.ClientID,
		BatchID:   batchID,
		TotalRows: len(rows),
	}, nil
}
