// db/repo_history.go
package db

import (
	"context"

	"campus_equipment_lending/models"

	"github.com/google/uuid"
)

func (r *Repo) AppendHistory(ctx context.Context, entry *models.EquipmentHistory) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return r.DB.WithContext(ctx).Create(entry).Error
}

func (r *Repo) ListEquipmentHistory(ctx context.Context, equipmentID string) ([]models.EquipmentHistory, error) {
	var entries []models.EquipmentHistory
	err := r.DB.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("timestamp DESC").
		Find(&entries).Error
	return entries, err
}
