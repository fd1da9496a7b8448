// models/equipment.go
package models

import "time"

const EquipmentTable = "cel_equipments"

// Equipment status values
const (
	EquipmentAvailable   = "Available"
	EquipmentBorrowed    = "Borrowed"
	EquipmentUnderRepair = "Under Repair"
)

// Equipment condition values
const (
	ConditionGood    = "Good"
	ConditionDamaged = "Damaged"
)

type Equipment struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string `gorm:"size:200;not null" json:"name"`
	Category  string `gorm:"size:100" json:"category,omitempty"`
	Location  string `gorm:"size:200" json:"location,omitempty"`
	Condition string `gorm:"size:20;not null;default:'Good'" json:"condition"`
	Status    string `gorm:"size:20;not null;default:'Available';index" json:"status"`
	Barcode   string `gorm:"size:120" json:"barcode,omitempty"`
	ImageURL  string `gorm:"size:500" json:"imageUrl,omitempty"`

	// Set only while Borrowed; mirrors the active approved request.
	CurrentBorrowerID *string    `gorm:"size:64;index" json:"currentBorrowerId,omitempty"`
	BorrowedAt        *time.Time `json:"borrowedAt,omitempty"`

	CreatedBy string    `gorm:"size:64" json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Equipment) TableName() string { return EquipmentTable }
