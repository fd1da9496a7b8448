package lending

import (
	"context"
	"errors"
	"time"

	"campus_equipment_lending/models"
)

// fakeStore is an in-memory Store for exercising the lifecycle without a
// database. Individual sinks can be made to fail to test the best-effort
// behavior of secondary effects.
type fakeStore struct {
	requests  map[string]*models.Request
	equipment map[string]*models.Equipment
	trust     map[string]*int

	histories     []*models.EquipmentHistory
	notifications []*models.Notification
	activities    []*models.ActivityLog
	trustCalls    []trustCall

	failHistory       bool
	failNotifications bool
	failTrust         bool
}

type trustCall struct {
	borrowerID string
	delta      int
	reason     string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		requests:  map[string]*models.Request{},
		equipment: map[string]*models.Equipment{},
		trust:     map[string]*int{},
	}
}

func (f *fakeStore) GetRequest(_ context.Context, id string) (*models.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (f *fakeStore) CreateRequest(_ context.Context, req *models.Request) error {
	f.requests[req.ID] = req
	return nil
}

func (f *fakeStore) TransitionRequest(_ context.Context, id, fromStatus string, fields map[string]any) (bool, error) {
	req, ok := f.requests[id]
	if !ok || req.Status != fromStatus {
		return false, nil
	}
	applyRequestFields(req, fields)
	return true, nil
}

func (f *fakeStore) MarkReviewed(_ context.Context, id, comment string, at time.Time) (bool, error) {
	req, ok := f.requests[id]
	if !ok {
		return false, errors.New("request not found")
	}
	first := !req.Reviewed
	req.Reviewed = true
	req.ReviewComment = &comment
	req.ReviewedAt = &at
	return first, nil
}

func (f *fakeStore) GetEquipment(_ context.Context, id string) (*models.Equipment, error) {
	eq, ok := f.equipment[id]
	if !ok {
		return nil, nil
	}
	cp := *eq
	return &cp, nil
}

func (f *fakeStore) UpdateEquipment(_ context.Context, id string, fields map[string]any) error {
	eq, ok := f.equipment[id]
	if !ok {
		return errors.New("equipment not found")
	}
	for k, v := range fields {
		switch k {
		case "status":
			eq.Status = v.(string)
		case "condition":
			eq.Condition = v.(string)
		case "current_borrower_id":
			if v == nil {
				eq.CurrentBorrowerID = nil
			} else {
				s := v.(string)
				eq.CurrentBorrowerID = &s
			}
		case "borrowed_at":
			if v == nil {
				eq.BorrowedAt = nil
			} else {
				t := v.(time.Time)
				eq.BorrowedAt = &t
			}
		}
	}
	return nil
}

func (f *fakeStore) AppendHistory(_ context.Context, entry *models.EquipmentHistory) error {
	if f.failHistory {
		return errors.New("history store down")
	}
	f.histories = append(f.histories, entry)
	return nil
}

func (f *fakeStore) CreateNotification(_ context.Context, n *models.Notification) error {
	if f.failNotifications {
		return errors.New("notification store down")
	}
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeStore) LogActivity(_ context.Context, entry *models.ActivityLog) error {
	f.activities = append(f.activities, entry)
	return nil
}

func (f *fakeStore) GetTrustPoints(_ context.Context, borrowerID string) (*int, error) {
	return f.trust[borrowerID], nil
}

func (f *fakeStore) ApplyTrustDelta(_ context.Context, borrowerID string, delta int, reason string) (int, error) {
	if f.failTrust {
		return 0, errors.New("ledger down")
	}
	f.trustCalls = append(f.trustCalls, trustCall{borrowerID: borrowerID, delta: delta, reason: reason})
	current := models.DefaultTrustPoints
	if p := f.trust[borrowerID]; p != nil {
		current = *p
	}
	balance := ClampTrust(current + delta)
	f.trust[borrowerID] = &balance
	return balance, nil
}

func applyRequestFields(req *models.Request, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "status":
			req.Status = v.(string)
		case "admin_comment":
			s := v.(string)
			req.AdminComment = &s
		case "approved_at":
			t := v.(time.Time)
			req.ApprovedAt = &t
		case "approved_by":
			s := v.(string)
			req.ApprovedBy = &s
		case "rejected_at":
			t := v.(time.Time)
			req.RejectedAt = &t
		case "rejected_by":
			s := v.(string)
			req.RejectedBy = &s
		case "returned_at":
			t := v.(time.Time)
			req.ReturnedAt = &t
		case "returned_by":
			s := v.(string)
			req.ReturnedBy = &s
		case "return_condition":
			s := v.(string)
			req.ReturnCondition = &s
		case "return_notes":
			s := v.(string)
			req.ReturnNotes = &s
		case "cancelled_at":
			t := v.(time.Time)
			req.CancelledAt = &t
		case "cancelled_by":
			s := v.(string)
			req.CancelledBy = &s
		case "cancellation_comment":
			s := v.(string)
			req.CancellationComment = &s
		}
	}
}
