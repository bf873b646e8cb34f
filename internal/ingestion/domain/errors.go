package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for input-shape failures, detected before any write.
var (
	// ErrEmptyUpload is returned when the request body has zero bytes.
	ErrEmptyUpload = errors.New("empty file")
	// ErrEmptyBatch is returned when the CSV parses to zero data rows.
	ErrEmptyBatch = errors.New("csv has no data rows")
	// ErrMalformedCSV wraps csv reader failures.
	ErrMalformedCSV = errors.New("malformed csv")
	// ErrMissingAsOfDate is returned when the first row has no as_of_date/date value.
	ErrMissingAsOfDate = errors.New("missing as_of_date/date column in csv")
)

// UploadTooLargeError is returned when the raw upload exceeds the configured
// byte ceiling, before any parsing work.
type UploadTooLargeError struct {
	Limit int64
}

func (e *UploadTooLargeError) Error() string {
	return fmt.Sprintf("file too large (max %d bytes)", e.Limit)
}

// MissingColumnError reports that none of the accepted aliases for a required
// field carried a value.
type MissingColumnError struct {
	Aliases []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column: one of [%s]", strings.Join(e.Aliases, ", "))
}

// InvalidNumberError reports a numeric field that did not parse after
// separator stripping.
type InvalidNumberError struct {
	Column string
	Value  string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid numeric value %q in column %s", e.Value, e.Column)
}

// InvalidDateError reports an as-of date that is not YYYY-MM-DD.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid as_of_date %q, expected YYYY-MM-DD", e.Value)
}

// RowError attaches the 1-based source row number to a normalization failure.
// A single RowError aborts the whole batch.
type RowError struct {
	RowNo int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.RowNo, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
