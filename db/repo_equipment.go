// db/repo_equipment.go
package db

import (
	"context"
	"errors"

	"campus_equipment_lending/models"

	"gorm.io/gorm"
)

var ErrEquipmentBorrowed = errors.New("equipment is currently borrowed")

func (r *Repo) CreateEquipment(ctx context.Context, eq *models.Equipment) error {
	return r.DB.WithContext(ctx).Create(eq).Error
}

func (r *Repo) GetEquipment(ctx context.Context, id string) (*models.Equipment, error) {
	var eq models.Equipment
	if err := r.DB.WithContext(ctx).First(&eq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &eq, nil
}

func (r *Repo) ListEquipment(ctx context.Context) ([]models.Equipment, error) {
	var items []models.Equipment
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *Repo) UpdateEquipment(ctx context.Context, id string, fields map[string]any) error {
	return r.DB.WithContext(ctx).Model(&models.Equipment{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DeleteEquipment refuses to remove a unit that is out on loan.
func (r *Repo) DeleteEquipment(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND status <> ?", id, models.EquipmentBorrowed).
		Delete(&models.Equipment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		eq, err := r.GetEquipment(ctx, id)
		if err != nil {
			return err
		}
		if eq == nil {
			return gorm.ErrRecordNotFound
		}
		return ErrEquipmentBorrowed
	}
	return nil
}

type EquipmentStats struct {
	Total     int64 `json:"totalEquipment"`
	Available int64 `json:"availableEquipment"`
	Borrowed  int64 `json:"borrowedEquipment"`
}

func (r *Repo) CountEquipmentByStatus(ctx context.Context) (EquipmentStats, error) {
	var out EquipmentStats
	if err := r.DB.WithContext(ctx).Model(&models.Equipment{}).Count(&out.Total).Error; err != nil {
		return out, err
	}
	if err := r.DB.WithContext(ctx).Model(&models.Equipment{}).
		Where("status = ?", models.EquipmentAvailable).Count(&out.Available).Error; err != nil {
		return out, err
	}
	if err := r.DB.WithContext(ctx).Model(&models.Equipment{}).
		Where("status = ?", models.EquipmentBorrowed).Count(&out.Borrowed).Error; err != nil {
		return out, err
	}
	return out, nil
}
