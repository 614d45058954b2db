package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User is an account with a unique username, a bcrypt hash and a virtual
// cash balance. Cash is only ever mutated by the portfolio ledger.
type User struct {
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Username  string          `gorm:"column:username;not null;uniqueIndex" json:"username"`
	Hash      string          `gorm:"column:hash;not null" json:"-"`
	Cash      decimal.Decimal `gorm:"column:cash;type:decimal(18,2);not null" json:"cash"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
