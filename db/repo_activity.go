// db/repo_activity.go
package db

import (
	"context"

	"campus_equipment_lending/models"

	"github.com/google/uuid"
)

// LogActivity is a write-only sink; nothing reads these rows back.
func (r *Repo) LogActivity(ctx context.Context, entry *models.ActivityLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return r.DB.WithContext(ctx).Create(entry).Error
}
