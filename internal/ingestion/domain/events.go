package domain

import (
	"context"
	"time"
)

// BatchStoredEvent announces a successfully committed upload to downstream
// consumers (reporting, reconciliation).
type BatchStoredEvent struct {
	ClientID       int64     `json:"client_id"`
	BatchID        string    `json:"upload_batch_id"`
	SourceFilename string    `json:"source_filename"`
	AsOfDate       string    `json:"as_of_date"`
	TotalRows      int       `json:"total_rows"`
	StoredAt       time.Time `json:"stored_at"`
}

// EventPublisher publishes upload lifecycle events. Publishing happens after
// the transaction commits and is best-effort; ingest success never depends on
// the broker.
type EventPublisher interface {
	PublishBatchStored(ctx context.Context, event BatchStoredEvent) error
}
