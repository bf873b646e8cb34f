package domain

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

const bom = "\uFEFF"

// ParseCSV decodes raw as UTF-8 text and parses it as comma-separated values
// with a header row. A byte-order-mark prefix is stripped and malformed byte
// sequences are replaced, not rejected; clients export these files from
// spreadsheet tools and the content rows are validated later anyway.
func ParseCSV(raw []byte) ([]Record, error) {
	text := strings.TrimPrefix(string(raw), bom)
	text = strings.ToValidUTF8(text, "\uFFFD")

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyBatch
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []Record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}

		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(fields) {
				rec[name] = fields[i]
			}
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyBatch
	}
	return records, nil
}
