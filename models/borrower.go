// models/borrower.go
package models

import "time"

const BorrowerTable = "cel_borrowers"
const AdminTable = "cel_admins"

// DefaultTrustPoints is the balance a new borrower account starts with.
const DefaultTrustPoints = 20

// Borrower ID is the student id the campus issues, not a UUID.
// TrustPoints is a pointer on purpose: a NULL balance means "unknown",
// which is not the same thing as zero.
type Borrower struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	Password  string `gorm:"size:255;not null" json:"-"`
	Name      string `gorm:"size:200" json:"name,omitempty"`
	Email     string `gorm:"size:255" json:"email,omitempty"`
	Course    string `gorm:"size:120" json:"course,omitempty"`
	YearLevel string `gorm:"size:20" json:"yearLevel,omitempty"`
	Status    string `gorm:"size:20;not null;default:'Active'" json:"status"`

	TrustPoints *int `json:"trustPoints,omitempty"`

	LastSeenAt *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`

	CreatedBy string    `gorm:"size:64" json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Borrower) TableName() string { return BorrowerTable }

type Admin struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	Password string `gorm:"size:255;not null" json:"-"`
	Name     string `gorm:"size:200" json:"name,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Admin) TableName() string { return AdminTable }
