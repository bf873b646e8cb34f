package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityTypeDefault is the activity classification assigned to every row;
// this pipeline version never reads it from the input file.
const ActivityTypeDefault = "non_management"

// PositionRow is the canonical normalized form of one reported position.
// Rows are write-once: created inside the batch transaction and never updated
// or deleted afterwards.
type PositionRow struct {
	ClientID         int64
	AsOfDate         time.Time
	BatchID          string
	SourceFilename   string
	SourceRowNo      int
	EntityID         *string
	FundID           *string
	PortfolioID      *string
	ActivityType     string
	Ticker           string
	ISIN             *string
	InstrumentType   string
	Country          string
	TypeOfDelivery   *string
	Quantity         decimal.Decimal
	Notional         decimal.Decimal
	Price            *decimal.Decimal
	Currency         *string
	UnderlyingTicker *string
	Delta            *decimal.Decimal
}
