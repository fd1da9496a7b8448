// models/history.go
package models

import "time"

const HistoryTable = "cel_equipment_history"

// History actions
const (
	HistoryBorrowed = "borrowed"
	HistoryReturned = "returned"
)

// EquipmentHistory is an append-only fact table; rows are never updated.
type EquipmentHistory struct {
	ID            string `gorm:"type:uuid;primaryKey" json:"id"`
	EquipmentID   string `gorm:"type:uuid;index;not null" json:"equipmentId"`
	EquipmentName string `gorm:"size:200" json:"equipmentName"`
	BorrowerID    string `gorm:"size:64;index;not null" json:"borrowerId"`
	RequestID     string `gorm:"type:uuid;index;not null" json:"requestId"`
	Action        string `gorm:"size:20;not null" json:"action"`

	ExpectedReturnDate *string `gorm:"size:10" json:"expectedReturnDate,omitempty"`
	Condition          *string `gorm:"size:20" json:"condition,omitempty"`
	Notes              *string `gorm:"size:500" json:"notes,omitempty"`
	TrustPointsChange  *int    `json:"trustPointsChange,omitempty"`

	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}

func (EquipmentHistory) TableName() string { return HistoryTable }
