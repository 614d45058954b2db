package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding is one user's position in one symbol. Price and Total always
// reflect the most recent trade price for the symbol: both buy and sell
// reprice the row so Total == Shares × Price holds after every mutation.
// A holding that reaches zero shares is deleted; history is the permanent
// record.
type Holding struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_portfolio_user_symbol" json:"user_id"`
	Symbol    string          `gorm:"column:symbol;not null;uniqueIndex:idx_portfolio_user_symbol" json:"symbol"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Shares    int64           `gorm:"column:shares;not null" json:"shares"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	Total     decimal.Decimal `gorm:"column:total;type:decimal(18,2);not null" json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (Holding) TableName() string {
	return "portfolio"
}
