package lending

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"campus_equipment_lending/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Store = (*fakeStore)(nil)

var (
	adminCaller    = Identity{ID: "admin-1", Role: RoleAdmin}
	borrowerCaller = Identity{ID: "2021-00123", Role: RoleBorrower}
)

func newTestService(store *fakeStore, at time.Time) *Service {
	svc := NewService(store, zerolog.Nop())
	svc.now = func() time.Time { return at }
	return svc
}

func seedRequest(store *fakeStore, status string) *models.Request {
	req := &models.Request{
		ID:            "req-1",
		BorrowerID:    borrowerCaller.ID,
		EquipmentID:   "eq-1",
		EquipmentName: "Canon EOS R6",
		Purpose:       "Film project",
		ReturnDate:    "2024-01-10",
		EndTime:       "17:00",
		Status:        status,
		Timestamp:     time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC),
	}
	store.requests[req.ID] = req
	store.equipment["eq-1"] = &models.Equipment{
		ID:        "eq-1",
		Name:      "Canon EOS R6",
		Condition: models.ConditionGood,
		Status:    models.EquipmentAvailable,
	}
	return req
}

// --- create ---

func TestCreate_PendingRequestWithAudit(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC))

	req, err := svc.Create(context.Background(), borrowerCaller, CreateInput{
		EquipmentID:   "eq-1",
		EquipmentName: "Canon EOS R6",
		Purpose:       "Film project",
		ReturnDate:    "2024-01-10",
		EndTime:       "17:00",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, borrowerCaller.ID, req.BorrowerID)
	require.Len(t, store.activities, 1)
	assert.Equal(t, "create_request", store.activities[0].Action)
}

func TestCreate_MissingFields(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())

	_, err := svc.Create(context.Background(), borrowerCaller, CreateInput{Purpose: "Film project"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, store.requests)
}

func TestCreate_EligibilityGate(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	in := CreateInput{EquipmentID: "eq-1", EquipmentName: "Tripod", Purpose: "Thesis defense"}

	one := 1
	store.trust[borrowerCaller.ID] = &one
	_, err := svc.Create(context.Background(), borrowerCaller, in)
	assert.ErrorIs(t, err, ErrLowTrust)
	assert.Empty(t, store.requests)

	two := 2
	store.trust[borrowerCaller.ID] = &two
	_, err = svc.Create(context.Background(), borrowerCaller, in)
	assert.NoError(t, err)
}

func TestCreate_UnknownTrustFailsOpen(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())

	_, err := svc.Create(context.Background(), borrowerCaller, CreateInput{
		EquipmentID: "eq-1", EquipmentName: "Tripod", Purpose: "Thesis defense",
	})
	assert.NoError(t, err)
}

func TestCreate_BorrowerCannotFileForSomeoneElse(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())

	_, err := svc.Create(context.Background(), borrowerCaller, CreateInput{
		BorrowerID: "2021-09999", EquipmentID: "eq-1", EquipmentName: "Tripod", Purpose: "Lab work",
	})
	assert.ErrorIs(t, err, ErrNotOwner)
}

// --- approve ---

func TestApprove_MarksEquipmentBorrowed(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC))
	seedRequest(store, models.RequestPending)

	require.NoError(t, svc.Approve(context.Background(), adminCaller, "req-1", "enjoy"))

	req := store.requests["req-1"]
	assert.Equal(t, models.RequestApproved, req.Status)
	require.NotNil(t, req.ApprovedBy)
	assert.Equal(t, adminCaller.ID, *req.ApprovedBy)

	eq := store.equipment["eq-1"]
	assert.Equal(t, models.EquipmentBorrowed, eq.Status)
	require.NotNil(t, eq.CurrentBorrowerID)
	assert.Equal(t, borrowerCaller.ID, *eq.CurrentBorrowerID)
	assert.NotNil(t, eq.BorrowedAt)

	require.Len(t, store.histories, 1)
	assert.Equal(t, models.HistoryBorrowed, store.histories[0].Action)
	require.Len(t, store.notifications, 1)
	assert.Equal(t, borrowerCaller.ID, store.notifications[0].UserID)
	assert.Equal(t, models.NotifRequestApproved, store.notifications[0].Type)
}

func TestApprove_SecondCallConflicts(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC))
	seedRequest(store, models.RequestPending)

	require.NoError(t, svc.Approve(context.Background(), adminCaller, "req-1", ""))
	err := svc.Approve(context.Background(), adminCaller, "req-1", "")
	assert.ErrorIs(t, err, ErrConflict)

	// Equipment was mutated exactly once.
	assert.Len(t, store.histories, 1)
	assert.Len(t, store.notifications, 1)
}

func TestApprove_Authorization(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	seedRequest(store, models.RequestPending)

	err := svc.Approve(context.Background(), borrowerCaller, "req-1", "")
	assert.ErrorIs(t, err, ErrAdminOnly)

	err = svc.Approve(context.Background(), Identity{}, "req-1", "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestApprove_UnknownRequest(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())

	err := svc.Approve(context.Background(), adminCaller, "nope", "")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestApprove_SecondaryFailuresSwallowed(t *testing.T) {
	store := newFakeStore()
	store.failHistory = true
	store.failNotifications = true
	svc := newTestService(store, time.Now())
	seedRequest(store, models.RequestPending)

	assert.NoError(t, svc.Approve(context.Background(), adminCaller, "req-1", ""))
	assert.Equal(t, models.RequestApproved, store.requests["req-1"].Status)
}

// --- reject ---

func TestReject_OnlyPending(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	seedRequest(store, models.RequestApproved)

	err := svc.Reject(context.Background(), adminCaller, "req-1", "no stock")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestReject_NotifiesBorrower(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	seedRequest(store, models.RequestPending)

	require.NoError(t, svc.Reject(context.Background(), adminCaller, "req-1", "no stock"))
	assert.Equal(t, models.RequestRejected, store.requests["req-1"].Status)
	// No equipment mutation on reject.
	assert.Equal(t, models.EquipmentAvailable, store.equipment["eq-1"].Status)
	require.Len(t, store.notifications, 1)
	assert.Equal(t, models.NotifRequestRejected, store.notifications[0].Type)
}

// --- return ---

func TestReturn_LateGoodSettlesTrust(t *testing.T) {
	store := newFakeStore()
	ten := 10
	store.trust[borrowerCaller.ID] = &ten
	// Scheduled 2024-01-10 17:00, returned 17:45: -3 late, +1 good.
	svc := newTestService(store, time.Date(2024, 1, 10, 17, 45, 0, 0, time.UTC))
	seedRequest(store, models.RequestApproved)

	require.NoError(t, svc.Return(context.Background(), adminCaller, "req-1", models.ReturnGood, "all fine"))

	req := store.requests["req-1"]
	assert.Equal(t, models.RequestReturned, req.Status)
	require.NotNil(t, req.ReturnCondition)
	assert.Equal(t, models.ReturnGood, *req.ReturnCondition)

	eq := store.equipment["eq-1"]
	assert.Equal(t, models.EquipmentAvailable, eq.Status)
	assert.Nil(t, eq.CurrentBorrowerID)
	assert.Nil(t, eq.BorrowedAt)

	require.Len(t, store.trustCalls, 1)
	assert.Equal(t, -2, store.trustCalls[0].delta)
	assert.Equal(t, 8, *store.trust[borrowerCaller.ID])

	require.Len(t, store.histories, 1)
	require.NotNil(t, store.histories[0].TrustPointsChange)
	assert.Equal(t, -2, *store.histories[0].TrustPointsChange)

	require.Len(t, store.notifications, 1)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(store.notifications[0].Data), &payload))
	assert.Equal(t, float64(-2), payload["trustPointsChange"])
	assert.Equal(t, float64(8), payload["newTrustPoints"])
}

func TestReturn_DamagedMarksEquipment(t *testing.T) {
	store := newFakeStore()
	ten := 10
	store.trust[borrowerCaller.ID] = &ten
	svc := newTestService(store, time.Date(2024, 1, 10, 17, 0, 0, 0, time.UTC))
	seedRequest(store, models.RequestApproved)

	require.NoError(t, svc.Return(context.Background(), adminCaller, "req-1", models.ReturnDamaged, ""))

	eq := store.equipment["eq-1"]
	assert.Equal(t, models.EquipmentAvailable, eq.Status)
	assert.Equal(t, models.ConditionDamaged, eq.Condition)
	require.Len(t, store.trustCalls, 1)
	assert.Equal(t, -8, store.trustCalls[0].delta)
	assert.Equal(t, 2, *store.trust[borrowerCaller.ID])
}

func TestReturn_RequiresCondition(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	seedRequest(store, models.RequestApproved)

	var ve *ValidationError
	err := svc.Return(context.Background(), adminCaller, "req-1", "", "")
	require.ErrorAs(t, err, &ve)

	err = svc.Return(context.Background(), adminCaller, "req-1", "Pristine", "")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, models.RequestApproved, store.requests["req-1"].Status)
}

func TestReturn_OnlyApproved(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	seedRequest(store, models.RequestPending)

	err := svc.Return(context.Background(), adminCaller, "req-1", models.ReturnGood, "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestReturn_LedgerFailureDoesNotAbort(t *testing.T) {
	store := newFakeStore()
	store.failTrust = true
	svc := newTestService(store, time.Date(2024, 1, 10, 17, 0, 0, 0, time.UTC))
	seedRequest(store, models.RequestApproved)

	require.NoError(t, svc.Return(context.Background(), adminCaller, "req-1", models.ReturnGood, ""))
	assert.Equal(t, models.RequestReturned, store.requests["req-1"].Status)
	assert.Equal(t, models.EquipmentAvailable, store.equipment["eq-1"].Status)
}

func TestReturn_MalformedScheduleSkipsLatePenalty(t *testing.T) {
	store := newFakeStore()
	ten := 10
	store.trust[borrowerCaller.ID] = &ten
	svc := newTestService(store, time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC))
	req := seedRequest(store, models.RequestApproved)
	req.EndTime = "late-ish"

	require.NoError(t, svc.Return(context.Background(), adminCaller, "req-1", models.ReturnGood, ""))
	require.Len(t, store.trustCalls, 1)
	assert.Equal(t, 1, store.trustCalls[0].delta)
}

// --- cancel ---

func TestCancel_OnlyPending(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	seedRequest(store, models.RequestApproved)

	err := svc.Cancel(context.Background(), borrowerCaller, "req-1", "changed my mind")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCancel_RequiresComment(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	seedRequest(store, models.RequestPending)

	var ve *ValidationError
	err := svc.Cancel(context.Background(), borrowerCaller, "req-1", "  ")
	require.ErrorAs(t, err, &ve)
}

func TestCancel_NotifiesAdmins(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	seedRequest(store, models.RequestPending)

	require.NoError(t, svc.Cancel(context.Background(), borrowerCaller, "req-1", "changed my mind"))
	assert.Equal(t, models.RequestCancelled, store.requests["req-1"].Status)
	require.Len(t, store.notifications, 1)
	assert.Equal(t, models.AdminRecipient, store.notifications[0].UserID)
}

func TestCancel_OwnershipEnforced(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	seedRequest(store, models.RequestPending)

	err := svc.Cancel(context.Background(), Identity{ID: "2021-09999", Role: RoleBorrower}, "req-1", "not mine")
	assert.ErrorIs(t, err, ErrNotOwner)

	// Admins can cancel anyone's pending request.
	assert.NoError(t, svc.Cancel(context.Background(), adminCaller, "req-1", "duplicate entry"))
}

// --- review ---

func TestReview_AwardsBonusOnce(t *testing.T) {
	store := newFakeStore()
	ten := 10
	store.trust[borrowerCaller.ID] = &ten
	svc := newTestService(store, time.Now())
	seedRequest(store, models.RequestReturned)

	require.NoError(t, svc.Review(context.Background(), borrowerCaller, "req-1", "great camera"))
	require.Len(t, store.trustCalls, 1)
	assert.Equal(t, 1, store.trustCalls[0].delta)
	assert.Equal(t, 11, *store.trust[borrowerCaller.ID])

	// Resubmission is accepted but awards nothing.
	require.NoError(t, svc.Review(context.Background(), borrowerCaller, "req-1", "still a great camera"))
	assert.Len(t, store.trustCalls, 1)
	assert.Equal(t, 11, *store.trust[borrowerCaller.ID])
	assert.Equal(t, "still a great camera", *store.requests["req-1"].ReviewComment)
}

func TestReview_OwnRequestOnly(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	seedRequest(store, models.RequestReturned)

	err := svc.Review(context.Background(), adminCaller, "req-1", "nice")
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestReview_OnlyReturned(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	seedRequest(store, models.RequestApproved)

	err := svc.Review(context.Background(), borrowerCaller, "req-1", "nice")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestReview_RequiresComment(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	seedRequest(store, models.RequestReturned)

	var ve *ValidationError
	err := svc.Review(context.Background(), borrowerCaller, "req-1", "")
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, store.trustCalls)
}
