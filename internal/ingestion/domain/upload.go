package domain

import "time"

// UploadStatus tracks the lifecycle of one upload's audit record.
type UploadStatus string

const (
	// StatusReceived is set when the audit record is first written.
	StatusReceived UploadStatus = "RECEIVED"
	// StatusStored is set once every row of the batch is persisted.
	StatusStored UploadStatus = "STORED"
	// StatusFailed exists in the audit table's domain for out-of-band
	// tooling; the ingestion transaction rolls back instead of writing it.
	StatusFailed UploadStatus = "FAILED"
)

// UploadBatch is the audit record for one ingestion request. After reaching
// STORED it is never mutated by this service.
type UploadBatch struct {
	ID         uint
	ClientID   int64
	BatchID    string
	FileName   string
	UploadedAt time.Time
	Status     UploadStatus
	TotalRows  int
	Details    *string
}
