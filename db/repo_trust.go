// db/repo_trust.go
package db

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"campus_equipment_lending/lending"
	"campus_equipment_lending/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetTrustPoints returns nil when the borrower does not exist or has no
// recorded balance. The eligibility gate treats nil as "unknown".
func (r *Repo) GetTrustPoints(ctx context.Context, borrowerID string) (*int, error) {
	var b models.Borrower
	err := r.DB.WithContext(ctx).Select("trust_points").First(&b, "id = ?", borrowerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b.TrustPoints, nil
}

// ApplyTrustDelta 原子操作 = 锁住 borrower → 计算新余额 → 写回 + 审计
// A NULL balance is seeded with the account default before the delta applies;
// the result is clamped to the ledger floor/ceiling. The ledger does no
// dedup — callers fire it at most once per triggering event.
func (r *Repo) ApplyTrustDelta(ctx context.Context, borrowerID string, delta int, reason string) (int, error) {
	var balance int
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Borrower
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", borrowerID).Error; err != nil {
			return err
		}

		current := models.DefaultTrustPoints
		if b.TrustPoints != nil {
			current = *b.TrustPoints
		}
		balance = lending.ClampTrust(current + delta)

		if err := tx.Model(&models.Borrower{}).
			Where("id = ?", borrowerID).
			Update("trust_points", balance).Error; err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]any{
			"borrowerId": borrowerID,
			"delta":      delta,
			"newBalance": balance,
			"reason":     reason,
		})
		return tx.Create(&models.ActivityLog{
			ID:        uuid.NewString(),
			Action:    "trust_points_adjusted",
			UserID:    borrowerID,
			UserRole:  lending.RoleBorrower,
			Details:   string(details),
			Timestamp: time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}
