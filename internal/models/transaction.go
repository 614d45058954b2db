package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trade actions recorded in history.
const (
	ActionBought = "Bought"
	ActionSold   = "Sold"
)

// Transaction is an append-only record of a completed buy or sell. Rows are
// created only inside the ledger's database transaction, never mutated or
// deleted. Insertion order (the primary key) is the chronological order.
type Transaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Action    string          `gorm:"column:action;type:varchar(10);not null" json:"action"`
	Symbol    string          `gorm:"column:symbol;not null" json:"symbol"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Shares    int64           `gorm:"column:shares;not null" json:"shares"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	Total     decimal.Decimal `gorm:"column:total;type:decimal(18,2);not null" json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (Transaction) TableName() string {
	return "history"
}
