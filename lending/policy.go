package lending

import (
	"fmt"
	"time"
)

// Trust-point policy. Deltas for one return event are summed into a single
// ledger call; the feedback bonus fires on its own event.
const (
	EligibilityThreshold = 2

	LateThresholdMinutes = 30
	LateReturnPenalty    = -3

	GoodConditionBonus      = 1
	DamagedConditionPenalty = -8
	LateConditionPenalty    = -2

	FeedbackBonus = 1

	TrustFloor   = 0
	TrustCeiling = 100
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ClampTrust keeps a balance inside the ledger's floor/ceiling.
func ClampTrust(n int) int {
	if n < TrustFloor {
		return TrustFloor
	}
	if n > TrustCeiling {
		return TrustCeiling
	}
	return n
}

// CanBorrow is the eligibility gate. A missing balance fails open.
func CanBorrow(points *int) bool {
	return points == nil || *points >= EligibilityThreshold
}

// MinutesLate combines the date-only returnDate with the HH:MM endTime into
// one instant and reports how many whole minutes past it the return happened.
// Negative means early.
func MinutesLate(returnDate, endTime string, returnedAt time.Time) (int, error) {
	d, err := time.Parse(dateLayout, returnDate)
	if err != nil {
		return 0, fmt.Errorf("parse return date %q: %w", returnDate, err)
	}
	t, err := time.Parse(timeLayout, endTime)
	if err != nil {
		return 0, fmt.Errorf("parse end time %q: %w", endTime, err)
	}
	scheduled := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, returnedAt.Location())
	return int(returnedAt.Sub(scheduled).Minutes()), nil
}

// ReturnDeltas computes the summed trust delta and human-readable reasons for
// a return event. A malformed schedule is reported back so the caller can log
// it; the late penalty is skipped in that case and the condition delta still
// applies.
func ReturnDeltas(returnDate, endTime, condition string, returnedAt time.Time) (int, []string, error) {
	delta := 0
	var reasons []string
	var lateErr error

	if returnDate != "" && endTime != "" {
		minutes, err := MinutesLate(returnDate, endTime, returnedAt)
		if err != nil {
			lateErr = err
		} else if minutes >= LateThresholdMinutes {
			delta += LateReturnPenalty
			reasons = append(reasons, fmt.Sprintf("Late return (%d minutes late): %d points", minutes, LateReturnPenalty))
		}
	}

	switch condition {
	case "Good":
		delta += GoodConditionBonus
		reasons = append(reasons, fmt.Sprintf("Good condition on return: +%d point", GoodConditionBonus))
	case "Damaged":
		delta += DamagedConditionPenalty
		reasons = append(reasons, fmt.Sprintf("Damaged condition on return: %d points", DamagedConditionPenalty))
	case "Late":
		delta += LateConditionPenalty
		reasons = append(reasons, fmt.Sprintf("Late condition on return: %d points", LateConditionPenalty))
	}

	return delta, reasons, lateErr
}
