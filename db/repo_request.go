// db/repo_request.go
package db

import (
	"context"
	"errors"
	"time"

	"campus_equipment_lending/models"

	"gorm.io/gorm"
)

func (r *Repo) CreateRequest(ctx context.Context, req *models.Request) error {
	return r.DB.WithContext(ctx).Create(req).Error
}

func (r *Repo) GetRequest(ctx context.Context, id string) (*models.Request, error) {
	var req models.Request
	if err := r.DB.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// TransitionRequest is the compare-and-swap for status changes: the UPDATE
// carries the expected prior status in its WHERE clause, so a concurrent
// transition on the same request leaves RowsAffected at zero.
func (r *Repo) TransitionRequest(ctx context.Context, id, fromStatus string, fields map[string]any) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Request{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkReviewed flips reviewed at most once. The conditional first write
// decides who gets the feedback bonus when two submissions race; the loser
// still gets its comment stored.
func (r *Repo) MarkReviewed(ctx context.Context, id, comment string, at time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Request{}).
		Where("id = ? AND reviewed = FALSE", id).
		Updates(map[string]any{
			"reviewed":       true,
			"review_comment": comment,
			"reviewed_at":    at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	err := r.DB.WithContext(ctx).Model(&models.Request{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"review_comment": comment,
			"reviewed_at":    at,
		}).Error
	return false, err
}

func (r *Repo) ListRequests(ctx context.Context, borrowerID, status string) ([]models.Request, error) {
	q := r.DB.WithContext(ctx).Model(&models.Request{}).Order("timestamp DESC")
	if borrowerID != "" {
		q = q.Where("borrower_id = ?", borrowerID)
	}
	if status != "" {
		q = q.Where("LOWER(status) = LOWER(?)", status)
	}
	var reqs []models.Request
	if err := q.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *Repo) CountPendingRequests(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Request{}).
		Where("status = ?", models.RequestPending).
		Count(&n).Error
	return n, err
}
