package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// QuoteSnapshot records every price the quote provider actually returned,
// with the raw payload kept for audit. Written on cache misses only.
type QuoteSnapshot struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Symbol    string          `gorm:"column:symbol;not null;index" json:"symbol"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	Payload   datatypes.JSON  `gorm:"column:payload" json:"payload"`
	FetchedAt time.Time       `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (QuoteSnapshot) TableName() string {
	return "quote_snapshots"
}
