// models/request.go
package models

import "time"

const RequestTable = "cel_requests"

// Request status values (the lifecycle state machine).
const (
	RequestPending   = "pending"
	RequestApproved  = "approved"
	RequestRejected  = "rejected"
	RequestReturned  = "returned"
	RequestCancelled = "cancelled"
)

// Return condition values accepted on the return transition.
const (
	ReturnGood    = "Good"
	ReturnDamaged = "Damaged"
	ReturnLate    = "Late"
)

// Request is one borrow transaction.
// RequestDate/ReturnDate are date-only strings ("2006-01-02") and
// StartTime/EndTime are "15:04" — they come straight from the booking form
// and are combined only when computing lateness on return.
type Request struct {
	ID            string `gorm:"type:uuid;primaryKey" json:"id"`
	BorrowerID    string `gorm:"size:64;index;not null" json:"borrowerId"`
	EquipmentID   string `gorm:"type:uuid;index;not null" json:"equipmentId"`
	EquipmentName string `gorm:"size:200;not null" json:"equipmentName"`
	Purpose       string `gorm:"size:500;not null" json:"purpose"`

	RequestDate string `gorm:"size:10" json:"requestDate,omitempty"`
	ReturnDate  string `gorm:"size:10" json:"returnDate,omitempty"`
	StartTime   string `gorm:"size:5" json:"startTime,omitempty"`
	EndTime     string `gorm:"size:5" json:"endTime,omitempty"`

	Status    string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`

	AdminComment *string `gorm:"size:500" json:"adminComment,omitempty"`

	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy *string    `gorm:"size:64" json:"approvedBy,omitempty"`

	RejectedAt *time.Time `json:"rejectedAt,omitempty"`
	RejectedBy *string    `gorm:"size:64" json:"rejectedBy,omitempty"`

	ReturnedAt      *time.Time `json:"returnedAt,omitempty"`
	ReturnedBy      *string    `gorm:"size:64" json:"returnedBy,omitempty"`
	ReturnCondition *string    `gorm:"size:20" json:"returnCondition,omitempty"`
	ReturnNotes     *string    `gorm:"size:500" json:"returnNotes,omitempty"`

	CancelledAt         *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy         *string    `gorm:"size:64" json:"cancelledBy,omitempty"`
	CancellationComment *string    `gorm:"size:500" json:"cancellationComment,omitempty"`

	// Reviewed flips to true at most once; the feedback bonus rides on that flip.
	Reviewed      bool       `gorm:"not null;default:false" json:"reviewed"`
	ReviewComment *string    `gorm:"size:1000" json:"reviewComment,omitempty"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Request) TableName() string { return RequestTable }
