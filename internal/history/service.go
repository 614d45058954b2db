package history

import (
	"context"

	"papertrade-backend/internal/models"
	"papertrade-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Append inserts one trade record. It is called only from inside the
// ledger's database transaction, so a recorded action always reflects an
// already-applied balance change.
func Append(tx *gorm.DB, row *models.Transaction) error {
	return tx.Create(row).Error
}

// Service reads the append-only trade log.
type Service struct {
	DB *gorm.DB
}

// ListForUser returns the user's transactions in insertion order,
// an empty slice if none.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	rows := []models.Transaction{}
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "history lookup failed", err)
	}
	return rows, nil
}
