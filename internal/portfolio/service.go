package portfolio

import (
	"context"
	"errors"

	"papertrade-backend/internal/history"
	"papertrade-backend/internal/models"
	"papertrade-backend/internal/pkg/apperr"
	"papertrade-backend/internal/quote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is the portfolio ledger. Buy and Sell each run inside a single
// database transaction, and every balance mutation is a guarded relative
// UPDATE: the sufficiency predicate and the write are one statement, so
// under read-committed isolation a racing request blocks on the row lock
// and re-evaluates the predicate against the committed row instead of a
// stale read.
type Service struct {
	DB *gorm.DB
}

// Holdings returns all positions for the user, ordered by symbol,
// an empty slice if none.
func (s *Service) Holdings(ctx context.Context, userID uuid.UUID) ([]models.Holding, error) {
	rows := []models.Holding{}
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("symbol").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "holdings lookup failed", err)
	}
	return rows, nil
}

// Cash returns the user's current cash balance.
func (s *Service) Cash(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		return decimal.Zero, apperr.Wrap(apperr.Internal, "user lookup failed", err)
	}
	return u.Cash, nil
}

// Buy debits cash, creates or grows the holding and appends a "Bought"
// record, all-or-nothing. The quote is assumed already resolved; shares ≥ 1
// is validated by the caller.
func (s *Service) Buy(ctx context.Context, userID uuid.UUID, q *quote.Quote, shares int64) error {
	total := q.Price.Mul(decimal.NewFromInt(shares))

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Relative increment so two racing buys of the same symbol both
		// land instead of the second overwriting from a stale read. The
		// column expressions see the pre-update row.
		res := tx.Model(&models.Holding{}).
			Where("user_id = ? AND symbol = ?", userID, q.Symbol).
			Updates(map[string]interface{}{
				"shares": gorm.Expr("shares + ?", shares),
				"price":  q.Price,
				"total":  gorm.Expr("(shares + ?) * ?", shares, q.Price),
			})
		if res.Error != nil {
			return apperr.Wrap(apperr.Internal, "holding update failed", res.Error)
		}
		if res.RowsAffected == 0 {
			h := models.Holding{
				UserID: userID,
				Symbol: q.Symbol,
				Name:   q.Name,
				Shares: shares,
				Price:  q.Price,
				Total:  total,
			}
			if err := tx.Create(&h).Error; err != nil {
				return apperr.Wrap(apperr.Internal, "holding create failed", err)
			}
		}

		// Debit and affordability check are one statement; a concurrent
		// buy that drained the balance flips RowsAffected to zero here
		// and the whole purchase rolls back.
		res = tx.Model(&models.User{}).
			Where("user_id = ? AND cash >= ?", userID, total).
			Update("cash", gorm.Expr("cash - ?", total))
		if res.Error != nil {
			return apperr.Wrap(apperr.Internal, "cash debit failed", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientFunds
		}

		return history.Append(tx, &models.Transaction{
			UserID: userID,
			Action: models.ActionBought,
			Symbol: q.Symbol,
			Name:   q.Name,
			Shares: shares,
			Price:  q.Price,
			Total:  total,
		})
	})
}

// Sell credits cash at the current price, shrinks or deletes the holding and
// appends a "Sold" record, all-or-nothing. A holding sold down to zero
// shares is pruned; history remains the permanent record.
func (s *Service) Sell(ctx context.Context, userID uuid.UUID, q *quote.Quote, shares int64) error {
	proceeds := q.Price.Mul(decimal.NewFromInt(shares))

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Decrement and share-count check are one statement; two racing
		// sells of the same position cannot both match the predicate.
		res := tx.Model(&models.Holding{}).
			Where("user_id = ? AND symbol = ? AND shares >= ?", userID, q.Symbol, shares).
			Updates(map[string]interface{}{
				"shares": gorm.Expr("shares - ?", shares),
				"price":  q.Price,
				"total":  gorm.Expr("(shares - ?) * ?", shares, q.Price),
			})
		if res.Error != nil {
			return apperr.Wrap(apperr.Internal, "holding update failed", res.Error)
		}
		if res.RowsAffected == 0 {
			var h models.Holding
			err := tx.Where("user_id = ? AND symbol = ?", userID, q.Symbol).First(&h).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoPosition
			}
			if err != nil {
				return apperr.Wrap(apperr.Internal, "holding lookup failed", err)
			}
			return ErrInsufficientShares
		}

		// We hold the row lock from the decrement above.
		var h models.Holding
		if err := tx.Where("user_id = ? AND symbol = ?", userID, q.Symbol).First(&h).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "holding lookup failed", err)
		}
		if h.Shares == 0 {
			if err := tx.Delete(&h).Error; err != nil {
				return apperr.Wrap(apperr.Internal, "holding prune failed", err)
			}
		}

		res = tx.Model(&models.User{}).
			Where("user_id = ?", userID).
			Update("cash", gorm.Expr("cash + ?", proceeds))
		if res.Error != nil {
			return apperr.Wrap(apperr.Internal, "cash credit failed", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.Internal, "user not found")
		}

		return history.Append(tx, &models.Transaction{
			UserID: userID,
			Action: models.ActionSold,
			Symbol: h.Symbol,
			Name:   h.Name,
			Shares: shares,
			Price:  q.Price,
			Total:  proceeds,
		})
	})
}
