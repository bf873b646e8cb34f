package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Alias sets for required row columns. Order matters: first match wins.
var (
	tickerAliases         = []string{"ticker", "symbol"}
	instrumentTypeAliases = []string{"instrument_type", "type"}
	countryAliases        = []string{"country", "country_code"}
	quantityAliases       = []string{"quantity", "qty"}
	notionalAliases       = []string{"notional", "notional_value", "value"}
)

// NormalizeRow converts one raw record into a canonical PositionRow under the
// given batch context. Any failure is returned as a RowError carrying the
// source row number and aborts the whole batch; there is no per-row skipping.
func NormalizeRow(rec Record, bc BatchContext) (*PositionRow, error) {
	ticker, err := rec.Resolve(tickerAliases...)
	if err != nil {
		return nil, &RowError{RowNo: bc.RowNo, Err: err}
	}
	instrumentType, err := rec.Resolve(instrumentTypeAliases...)
	if err != nil {
		return nil, &RowError{RowNo: bc.RowNo, Err: err}
	}
	country, err := rec.Resolve(countryAliases...)
	if err != nil {
		return nil, &RowError{RowNo: bc.RowNo, Err: err}
	}
	quantity, err := resolveDecimal(rec, quantityAliases)
	if err != nil {
		return nil, &RowError{RowNo: bc.RowNo, Err: err}
	}
	notional, err := resolveDecimal(rec, notionalAliases)
	if err != nil {
		return nil, &RowError{RowNo: bc.RowNo, Err: err}
	}
	price, err := optionalDecimal(rec, "price")
	if err != nil {
		return nil, &RowError{RowNo: bc.RowNo, Err: err}
	}
	delta, err := optionalDecimal(rec, "delta")
	if err != nil {
		return nil, &RowError{RowNo: bc.RowNo, Err: err}
	}

	return &PositionRow{
		ClientID:         bc.ClientID,
		AsOfDate:         bc.AsOfDate,
		BatchID:          bc.BatchID,
		SourceFilename:   bc.SourceFilename,
		SourceRowNo:      bc.RowNo,
		FundID:           rec.Optional("fund_id"),
		PortfolioID:      rec.Optional("portfolio_id"),
		ActivityType:     ActivityTypeDefault,
		Ticker:           ticker,
		ISIN:             rec.Optional("isin"),
		InstrumentType:   instrumentType,
		Country:          country,
		TypeOfDelivery:   rec.Optional("type_of_delivery"),
		Quantity:         quantity,
		Notional:         notional,
		Price:            price,
		Currency:         rec.Optional("currency"),
		UnderlyingTicker: rec.Optional("underlying_ticker"),
		Delta:            delta,
	}, nil
}

// resolveDecimal resolves a required numeric field, tolerating thousands
// separators ("1,234.56"). Values stay exact decimals end to end.
func resolveDecimal(rec Record, aliases []string) (decimal.Decimal, error) {
	raw, err := rec.Resolve(aliases...)
	if err != nil {
		return decimal.Decimal{}, err
	}
	cleaned := strings.ReplaceAll(raw, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, &InvalidNumberError{Column: aliases[0], Value: raw}
	}
	return d, nil
}

// optionalDecimal parses an optional numeric column; blank means absent, but
// a present value must parse.
func optionalDecimal(rec Record, name string) (*decimal.Decimal, error) {
	raw := rec.Optional(name)
	if raw == nil {
		return nil, nil
	}
	cleaned := strings.ReplaceAll(*raw, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil, &InvalidNumberError{Column: name, Value: *raw}
	}
	return &d, nil
}
