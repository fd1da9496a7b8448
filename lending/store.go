package lending

import (
	"context"
	"time"

	"campus_equipment_lending/models"
)

// Store is everything the lifecycle needs from the document layer.
// db.Repo implements it against Postgres; tests use an in-memory fake.
//
// Lookup methods return (nil, nil) when the row does not exist.
type Store interface {
	GetRequest(ctx context.Context, id string) (*models.Request, error)
	CreateRequest(ctx context.Context, req *models.Request) error

	// TransitionRequest applies fields only while the request still has
	// fromStatus; it reports false when the precondition no longer holds.
	TransitionRequest(ctx context.Context, id, fromStatus string, fields map[string]any) (bool, error)

	// MarkReviewed stores the review payload and reports whether this call
	// was the one that flipped reviewed from false to true.
	MarkReviewed(ctx context.Context, id, comment string, at time.Time) (bool, error)

	GetEquipment(ctx context.Context, id string) (*models.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, fields map[string]any) error

	AppendHistory(ctx context.Context, entry *models.EquipmentHistory) error
	CreateNotification(ctx context.Context, n *models.Notification) error
	LogActivity(ctx context.Context, entry *models.ActivityLog) error

	// GetTrustPoints returns nil when the borrower has no recorded balance.
	GetTrustPoints(ctx context.Context, borrowerID string) (*int, error)
	ApplyTrustDelta(ctx context.Context, borrowerID string, delta int, reason string) (int, error)
}
