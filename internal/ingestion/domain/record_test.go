package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordResolve(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		aliases []string
		want    string
		wantErr bool
	}{
		{
			name:    "first alias wins",
			rec:     Record{"ticker": "AAPL", "symbol": "IGNORED"},
			aliases: []string{"ticker", "symbol"},
			want:    "AAPL",
		},
		{
			name:    "falls through to second alias",
			rec:     Record{"symbol": "MSFT"},
			aliases: []string{"ticker", "symbol"},
			want:    "MSFT",
		},
		{
			name:    "blank value falls through",
			rec:     Record{"ticker": "   ", "symbol": "TSLA"},
			aliases: []string{"ticker", "symbol"},
			want:    "TSLA",
		},
		{
			name:    "value is trimmed",
			rec:     Record{"ticker": "  NVDA  "},
			aliases: []string{"ticker"},
			want:    "NVDA",
		},
		{
			name:    "no alias present",
			rec:     Record{"other": "x"},
			aliases: []string{"ticker", "symbol"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rec.Resolve(tt.aliases...)
			if tt.wantErr {
				var missing *MissingColumnError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, tt.aliases, missing.Aliases)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordResolveIsCaseSensitive(t *testing.T) {
	rec := Record{"Ticker": "AAPL"}
	_, err := rec.Resolve("ticker")
	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
}

func TestRecordOptional(t *testing.T) {
	rec := Record{"isin": " US0378331005 ", "currency": "   "}

	got := rec.Optional("isin")
	require.NotNil(t, got)
	assert.Equal(t, "US0378331005", *got)

	assert.Nil(t, rec.Optional("currency"), "blank value is absent")
	assert.Nil(t, rec.Optional("missing"))
}
