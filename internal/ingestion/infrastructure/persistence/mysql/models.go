// Package mysql provides the GORM implementation of the ingestion repository.
package mysql

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/ssrequity/internal/ingestion/domain"
)

// UploadBatchModel is the audit row for one upload.
type UploadBatchModel struct {
	ID         uint      `gorm:"primaryKey"`
	ClientID   int64     `gorm:"column:client_id;index;not null"`
	BatchID    string    `gorm:"column:upload_batch_id;type:varchar(36);uniqueIndex;not null"`
	FileName   string    `gorm:"column:file_name;type:varchar(255);not null"`
	UploadedAt time.Time `gorm:"column:uploaded_at;not null"`
	Status     string    `gorm:"column:status;type:varchar(20);index;not null"`
	TotalRows  int       `gorm:"column:total_rows;not null"`
	Details    *string   `gorm:"column:details;type:text"`
}

// TableName sets the table name.
func (UploadBatchModel) TableName() string {
	return "ssr_position_uploads"
}

// PositionRowModel is one normalized position row. Decimal columns are bound
// as strings to keep exact values across the driver boundary.
type PositionRowModel struct {
	ID               uint      `gorm:"primaryKey"`
	ClientID         int64     `gorm:"column:client_id;index;not null"`
	AsOfDate         time.Time `gorm:"column:as_of_date;type:date;not null"`
	BatchID          string    `gorm:"column:upload_batch_id;type:varchar(36);index;not null"`
	SourceFilename   string    `gorm:"column:source_filename;type:varchar(255);not null"`
	SourceRowNo      int       `gorm:"column:source_row_no;not null"`
	EntityID         *string   `gorm:"column:entity_id;type:varchar(100)"`
	FundID           *string   `gorm:"column:fund_id;type:varchar(100)"`
	PortfolioID      *string   `gorm:"column:portfolio_id;type:varchar(100)"`
	ActivityType     string    `gorm:"column:activity_type;type:varchar(32);not null"`
	Ticker           string    `gorm:"column:ticker;type:varchar(40);not null"`
	ISIN             *string   `gorm:"column:isin;type:varchar(12)"`
	InstrumentType   string    `gorm:"column:instrument_type;type:varchar(40);not null"`
	Country          string    `gorm:"column:country;type:varchar(10);not null"`
	TypeOfDelivery   *string   `gorm:"column:type_of_delivery;type:varchar(40)"`
	Quantity         string    `gorm:"column:quantity;type:decimal(32,18);not null"`
	Notional         string    `gorm:"column:notional;type:decimal(32,18);not null"`
	Price            *string   `gorm:"column:price;type:decimal(32,18)"`
	Currency         *string   `gorm:"column:currency;type:varchar(10)"`
	UnderlyingTicker *string   `gorm:"column:underlying_ticker;type:varchar(40)"`
	Delta            *string   `gorm:"column:delta;type:decimal(32,18)"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

// TableName sets the table name.
func (PositionRowModel) TableName() string {
	return "ssr_positions_raw"
}

func uploadFromDomain(u *domain.UploadBatch) *UploadBatchModel {
	return &UploadBatchModel{
		ID:         u.ID,
		ClientID:   u.ClientID,
		BatchID:    u.BatchID,
		FileName:   u.FileName,
		UploadedAt: u.UploadedAt,
		Status:     string(u.Status),
		TotalRows:  u.TotalRows,
		Details:    u.Details,
	}
}

func rowFromDomain(r *domain.PositionRow) *PositionRowModel {
	return &PositionRowModel{
		ClientID:         r.ClientID,
		AsOfDate:         r.AsOfDate,
		BatchID:          r.BatchID,
		SourceFilename:   r.SourceFilename,
		SourceRowNo:      r.SourceRowNo,
		EntityID:         r.EntityID,
		FundID:           r.FundID,
		PortfolioID:      r.PortfolioID,
		ActivityType:     r.ActivityType,
		Ticker:           r.Ticker,
		ISIN:             r.ISIN,
		InstrumentType:   r.InstrumentType,
		Country:          r.Country,
		TypeOfDelivery:   r.TypeOfDelivery,
		Quantity:         r.Quantity.String(),
		Notional:         r.Notional.String(),
		Price:            decimalPtrToString(r.Price),
		Currency:         r.Currency,
		UnderlyingTicker: r.UnderlyingTicker,
		Delta:            decimalPtrToString(r.Delta),
	}
}

func decimalPtrToString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
