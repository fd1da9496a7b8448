// models/activity_log.go
package models

import "time"

const ActivityLogTable = "cel_activity_logs"

// ActivityLog is a write-only audit trail; nothing in the service reads it back.
type ActivityLog struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Action   string `gorm:"size:60;index;not null" json:"action"`
	UserID   string `gorm:"size:64;index" json:"userId"`
	UserRole string `gorm:"size:20" json:"userRole"`
	// Details is a free-form JSON payload.
	Details   string `gorm:"type:text" json:"details"`
	IPAddress string `gorm:"size:45" json:"-"`
	UserAgent string `gorm:"size:255" json:"-"`

	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}

func (ActivityLog) TableName() string { return ActivityLogTable }
