package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	raw := []byte("ticker,quantity\nAAPL,100\nMSFT,200\n")

	records, err := ParseCSV(raw)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "AAPL", records[0]["ticker"])
	assert.Equal(t, "200", records[1]["quantity"])
}

func TestParseCSVStripsByteOrderMark(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("ticker\nAAPL\n")...)

	records, err := ParseCSV(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AAPL", records[0]["ticker"])
}

func TestParseCSVReplacesInvalidUTF8(t *testing.T) {
	raw := []byte("ticker,name\nAAPL,bad\xffbyte\n")

	records, err := ParseCSV(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "bad�byte", records[0]["name"])
}

func TestParseCSVEmptyInput(t *testing.T) {
	_, err := ParseCSV([]byte(""))
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestParseCSVHeaderOnly(t *testing.T) {
	_, err := ParseCSV([]byte("ticker,quantity\n"))
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestParseCSVShortRowTolerated(t *testing.T) {
	records, err := ParseCSV([]byte("ticker,quantity\nAAPL\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AAPL", records[0]["ticker"])
	_, ok := records[0]["quantity"]
	assert.False(t, ok)
}

func TestParseCSVQuotedFields(t *testing.T) {
	records, err := ParseCSV([]byte("ticker,quantity\nAAPL,\"1,000\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "1,000", records[0]["quantity"])
}
