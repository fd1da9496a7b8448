// models/notification.go
package models

import "time"

const NotificationTable = "cel_notifications"

// AdminRecipient is the literal userId used for admin-addressed notifications.
const AdminRecipient = "admin"

// Notification types
const (
	NotifRequestApproved   = "request_approved"
	NotifRequestRejected   = "request_rejected"
	NotifEquipmentReturned = "equipment_returned"
	NotifRequestCancelled  = "request_cancelled"
)

type Notification struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"size:64;index;not null" json:"userId"`
	Type   string `gorm:"size:40;not null" json:"type"`
	// Data is a JSON payload; shape depends on Type.
	Data string `gorm:"type:text" json:"data"`
	Read bool   `gorm:"not null;default:false" json:"read"`

	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}

func (Notification) TableName() string { return NotificationTable }
