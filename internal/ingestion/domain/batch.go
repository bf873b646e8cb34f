package domain

import (
	"errors"
	"time"
)

// Alias sets for batch-level columns. Order matters: first match wins.
var asOfDateAliases = []string{"as_of_date", "date"}

// BatchContext carries the batch-level identity each row is normalized under.
type BatchContext struct {
	ClientID       int64
	BatchID        string
	SourceFilename string
	AsOfDate       time.Time
	// RowNo is the 1-based line number in the source file; the header is
	// line 1, so data rows start at 2.
	RowNo int
}

// Batch is the built, not-yet-normalized view of one upload.
type Batch struct {
	ClientID       int64
	BatchID        string
	SourceFilename string
	AsOfDate       time.Time
	Contexts       []BatchContext
}

// BuildBatch derives the batch's as-of date from the first record and assigns
// each record its row ordinal. Every row in the batch shares the single
// as-of date regardless of per-row date values.
func BuildBatch(records []Record, batchID string, clientID int64, sourceFilename string) (*Batch, error) {
	if len(records) == 0 {
		return nil, ErrEmptyBatch
	}

	raw, err := records[0].Resolve(asOfDateAliases...)
	if err != nil {
		var missing *MissingColumnError
		if errors.As(err, &missing) {
			return nil, ErrMissingAsOfDate
		}
		return nil, err
	}
	asOf, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, &InvalidDateError{Value: raw}
	}

	contexts := make([]BatchContext, len(records))
	for i := range records {
		contexts[i] = BatchContext{
			ClientID:       clientID,
			BatchID:        batchID,
			SourceFilename: sourceFilename,
			AsOfDate:       asOf,
			RowNo:          i + 2,
		}
	}

	return &Batch{
		ClientID:       clientID,
		BatchID:        batchID,
		SourceFilename: sourceFilename,
		AsOfDate:       asOf,
		Contexts:       contexts,
	}, nil
}
