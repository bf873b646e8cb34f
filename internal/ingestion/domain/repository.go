package domain

import "context"

// IngestionRepository persists one batch as a single atomic unit: the audit
// record at RECEIVED, the bulk row insert, and the RECEIVED→STORED transition
// either all commit or none do. Concurrent readers never observe STORED
// without rows or committed rows under RECEIVED.
type IngestionRepository interface {
	StoreBatch(ctx context.Context, upload *UploadBatch, rows []*PositionRow) error
}
