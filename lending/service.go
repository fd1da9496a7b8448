package lending

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"campus_equipment_lending/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service is the request lifecycle state machine. Each method performs the
// primary status transition first (a compare-and-swap on the expected prior
// status), then the equipment mutation, then best-effort secondary effects:
// history, notifications, activity log and the trust ledger. Secondary
// failures are logged and swallowed; the caller still sees success.
type Service struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

type CreateInput struct {
	BorrowerID    string `json:"borrowerId"`
	EquipmentID   string `json:"equipmentId"`
	EquipmentName string `json:"equipmentName"`
	Purpose       string `json:"purpose"`
	RequestDate   string `json:"requestDate"`
	ReturnDate    string `json:"returnDate"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
}

// Create runs the eligibility gate and persists a new pending request.
func (s *Service) Create(ctx context.Context, caller Identity, in CreateInput) (*models.Request, error) {
	if caller.ID == "" {
		return nil, ErrUnauthenticated
	}
	if in.BorrowerID == "" && !caller.IsAdmin() {
		in.BorrowerID = caller.ID
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"borrowerId", in.BorrowerID},
		{"equipmentId", in.EquipmentID},
		{"equipmentName", in.EquipmentName},
		{"purpose", in.Purpose},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}
	if !caller.IsAdmin() && in.BorrowerID != caller.ID {
		return nil, ErrNotOwner
	}

	points, err := s.store.GetTrustPoints(ctx, in.BorrowerID)
	if err != nil {
		// The gate fails open on data-layer gaps; a blocked borrower slipping
		// through is preferable to blocking everyone on a flaky read.
		s.log.Warn().Err(err).Str("borrowerId", in.BorrowerID).Msg("trust points lookup failed, gate fails open")
		points = nil
	}
	if !CanBorrow(points) {
		return nil, ErrLowTrust
	}

	req := &models.Request{
		ID:            uuid.NewString(),
		BorrowerID:    in.BorrowerID,
		EquipmentID:   in.EquipmentID,
		EquipmentName: in.EquipmentName,
		Purpose:       in.Purpose,
		RequestDate:   in.RequestDate,
		ReturnDate:    in.ReturnDate,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		Status:        models.RequestPending,
		Timestamp:     s.now().UTC(),
	}
	if err := s.store.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	s.audit(ctx, "create_request", caller, map[string]any{
		"requestId":     req.ID,
		"borrowerId":    req.BorrowerID,
		"equipmentId":   req.EquipmentID,
		"equipmentName": req.EquipmentName,
		"purpose":       req.Purpose,
		"trustPoints":   points,
	})
	return req, nil
}

// Approve moves pending -> approved and marks the equipment Borrowed.
func (s *Service) Approve(ctx context.Context, caller Identity, requestID, adminComment string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if _, err := s.getEquipment(ctx, req.EquipmentID); err != nil {
		return err
	}

	now := s.now().UTC()
	fields := map[string]any{
		"status":      models.RequestApproved,
		"approved_at": now,
		"approved_by": caller.ID,
	}
	if adminComment != "" {
		fields["admin_comment"] = adminComment
	}
	ok, err := s.store.TransitionRequest(ctx, requestID, models.RequestPending, fields)
	if err != nil {
		return err
	}
	if !ok {
		return conflictf("can only approve pending requests")
	}

	if err := s.store.UpdateEquipment(ctx, req.EquipmentID, map[string]any{
		"status":              models.EquipmentBorrowed,
		"current_borrower_id": req.BorrowerID,
		"borrowed_at":         now,
	}); err != nil {
		return err
	}

	s.appendHistory(ctx, &models.EquipmentHistory{
		EquipmentID:        req.EquipmentID,
		EquipmentName:      req.EquipmentName,
		BorrowerID:         req.BorrowerID,
		RequestID:          req.ID,
		Action:             models.HistoryBorrowed,
		ExpectedReturnDate: optional(req.ReturnDate),
		Timestamp:          now,
	})
	s.notify(ctx, req.BorrowerID, models.NotifRequestApproved, map[string]any{
		"equipmentName": req.EquipmentName,
		"requestId":     req.ID,
	})
	s.audit(ctx, "approve_request", caller, map[string]any{
		"requestId":     req.ID,
		"borrowerId":    req.BorrowerID,
		"equipmentId":   req.EquipmentID,
		"equipmentName": req.EquipmentName,
	})
	return nil
}

// Reject moves pending -> rejected. The equipment is untouched.
func (s *Service) Reject(ctx context.Context, caller Identity, requestID, adminComment string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	fields := map[string]any{
		"status":      models.RequestRejected,
		"rejected_at": now,
		"rejected_by": caller.ID,
	}
	if adminComment != "" {
		fields["admin_comment"] = adminComment
	}
	ok, err := s.store.TransitionRequest(ctx, requestID, models.RequestPending, fields)
	if err != nil {
		return err
	}
	if !ok {
		return conflictf("can only reject pending requests")
	}

	s.notify(ctx, req.BorrowerID, models.NotifRequestRejected, map[string]any{
		"equipmentName": req.EquipmentName,
		"requestId":     req.ID,
	})
	s.audit(ctx, "reject_request", caller, map[string]any{
		"requestId":     req.ID,
		"borrowerId":    req.BorrowerID,
		"equipmentId":   req.EquipmentID,
		"equipmentName": req.EquipmentName,
		"adminComment":  adminComment,
	})
	return nil
}

// Return moves approved -> returned, releases the equipment and settles the
// trust-point deltas for the borrow in one ledger call.
func (s *Service) Return(ctx context.Context, caller Identity, requestID, condition, notes string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	switch condition {
	case "":
		return missingFields("returnCondition")
	case models.ReturnGood, models.ReturnDamaged, models.ReturnLate:
	default:
		return validationf("invalid returnCondition %q", condition)
	}

	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if _, err := s.getEquipment(ctx, req.EquipmentID); err != nil {
		return err
	}

	returnedAt := s.now()
	fields := map[string]any{
		"status":           models.RequestReturned,
		"returned_at":      returnedAt.UTC(),
		"returned_by":      caller.ID,
		"return_condition": condition,
	}
	if notes != "" {
		fields["return_notes"] = notes
	}
	ok, err := s.store.TransitionRequest(ctx, requestID, models.RequestApproved, fields)
	if err != nil {
		return err
	}
	if !ok {
		return conflictf("can only return approved requests")
	}

	equipmentFields := map[string]any{
		"status":              models.EquipmentAvailable,
		"current_borrower_id": nil,
		"borrowed_at":         nil,
	}
	if condition == models.ReturnDamaged {
		equipmentFields["condition"] = models.ConditionDamaged
	}
	if err := s.store.UpdateEquipment(ctx, req.EquipmentID, equipmentFields); err != nil {
		return err
	}

	delta, reasons, lateErr := ReturnDeltas(req.ReturnDate, req.EndTime, condition, returnedAt)
	if lateErr != nil {
		s.log.Warn().Err(lateErr).Str("requestId", req.ID).Msg("malformed return schedule, skipping late penalty")
	}

	var newBalance *int
	if delta != 0 {
		balance, err := s.store.ApplyTrustDelta(ctx, req.BorrowerID, delta,
			"Equipment return: "+strings.Join(reasons, ", "))
		if err != nil {
			s.log.Warn().Err(err).Str("borrowerId", req.BorrowerID).Int("delta", delta).
				Msg("trust ledger update failed, return continues")
		} else {
			newBalance = &balance
		}
	}

	s.appendHistory(ctx, &models.EquipmentHistory{
		EquipmentID:       req.EquipmentID,
		EquipmentName:     req.EquipmentName,
		BorrowerID:        req.BorrowerID,
		RequestID:         req.ID,
		Action:            models.HistoryReturned,
		Condition:         &condition,
		Notes:             optional(notes),
		TrustPointsChange: optionalInt(delta),
		Timestamp:         returnedAt.UTC(),
	})
	s.notify(ctx, req.BorrowerID, models.NotifEquipmentReturned, map[string]any{
		"equipmentName":     req.EquipmentName,
		"requestId":         req.ID,
		"trustPointsChange": delta,
		"newTrustPoints":    newBalance,
	})
	s.audit(ctx, "return_equipment", caller, map[string]any{
		"requestId":          req.ID,
		"borrowerId":         req.BorrowerID,
		"equipmentId":        req.EquipmentID,
		"equipmentName":      req.EquipmentName,
		"returnCondition":    condition,
		"returnNotes":        notes,
		"trustPointsChange":  delta,
		"trustPointsReasons": reasons,
	})
	return nil
}

// Cancel moves pending -> cancelled. Borrowers may only cancel their own
// requests; admins may cancel any.
func (s *Service) Cancel(ctx context.Context, caller Identity, requestID, comment string) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}
	if strings.TrimSpace(comment) == "" {
		return missingFields("cancellationComment")
	}
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && caller.ID != req.BorrowerID {
		return ErrNotOwner
	}

	now := s.now().UTC()
	ok, err := s.store.TransitionRequest(ctx, requestID, models.RequestPending, map[string]any{
		"status":               models.RequestCancelled,
		"cancelled_at":         now,
		"cancelled_by":         caller.ID,
		"cancellation_comment": comment,
	})
	if err != nil {
		return err
	}
	if !ok {
		return conflictf("can only cancel pending requests")
	}

	s.notify(ctx, models.AdminRecipient, models.NotifRequestCancelled, map[string]any{
		"borrowerId":          req.BorrowerID,
		"equipmentName":       req.EquipmentName,
		"requestId":           req.ID,
		"cancellationComment": comment,
	})
	s.audit(ctx, "cancel_request", caller, map[string]any{
		"requestId":           req.ID,
		"borrowerId":          req.BorrowerID,
		"equipmentId":         req.EquipmentID,
		"equipmentName":       req.EquipmentName,
		"cancellationComment": comment,
	})
	return nil
}

// Review annotates a returned request with the borrower's feedback. Only the
// first submission awards the feedback bonus; resubmission just updates the
// comment.
func (s *Service) Review(ctx context.Context, caller Identity, requestID, comment string) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if caller.ID != req.BorrowerID {
		return ErrNotOwner
	}
	if req.Status != models.RequestReturned {
		return conflictf("can only review returned equipment")
	}
	if strings.TrimSpace(comment) == "" {
		return missingFields("comment")
	}

	first, err := s.store.MarkReviewed(ctx, requestID, comment, s.now().UTC())
	if err != nil {
		return err
	}
	change := 0
	if first {
		change = FeedbackBonus
		if _, err := s.store.ApplyTrustDelta(ctx, req.BorrowerID, FeedbackBonus, "Submitted equipment feedback"); err != nil {
			s.log.Warn().Err(err).Str("borrowerId", req.BorrowerID).
				Msg("trust ledger update failed for feedback bonus")
		}
	}

	s.audit(ctx, "submit_review", caller, map[string]any{
		"requestId":         req.ID,
		"borrowerId":        req.BorrowerID,
		"equipmentId":       req.EquipmentID,
		"equipmentName":     req.EquipmentName,
		"trustPointsChange": change,
	})
	return nil
}

// --- helpers ---

func requireAdmin(caller Identity) error {
	if caller.ID == "" {
		return ErrUnauthenticated
	}
	if !caller.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}

func (s *Service) getRequest(ctx context.Context, id string) (*models.Request, error) {
	if id == "" {
		return nil, missingFields("id")
	}
	req, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (s *Service) getEquipment(ctx context.Context, id string) (*models.Equipment, error) {
	eq, err := s.store.GetEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, ErrEquipmentNotFound
	}
	return eq, nil
}

func (s *Service) appendHistory(ctx context.Context, entry *models.EquipmentHistory) {
	if err := s.store.AppendHistory(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("requestId", entry.RequestID).Msg("history append failed")
	}
}

func (s *Service) notify(ctx context.Context, userID, typ string, data map[string]any) {
	payload, _ := json.Marshal(data)
	err := s.store.CreateNotification(ctx, &models.Notification{
		UserID:    userID,
		Type:      typ,
		Data:      string(payload),
		Read:      false,
		Timestamp: s.now().UTC(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("userId", userID).Str("type", typ).Msg("notification write failed")
	}
}

func (s *Service) audit(ctx context.Context, action string, caller Identity, details map[string]any) {
	payload, _ := json.Marshal(details)
	err := s.store.LogActivity(ctx, &models.ActivityLog{
		Action:    action,
		UserID:    caller.ID,
		UserRole:  caller.Role,
		Details:   string(payload),
		Timestamp: s.now().UTC(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("activity log write failed")
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
