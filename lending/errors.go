package lending

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy. Controllers map these onto status codes; anything
// unrecognized is a dependency failure (500).
var (
	ErrUnauthenticated = errors.New("authentication required, please log in again")
	ErrAdminOnly       = errors.New("unauthorized: admin access required")
	ErrNotOwner        = errors.New("unauthorized: you can only act on your own requests")
	ErrLowTrust        = errors.New("you cannot borrow equipment because your trust points are below 2. Please visit the Dean's office for an appeal")

	ErrRequestNotFound   = errors.New("request not found")
	ErrEquipmentNotFound = errors.New("equipment not found")

	// ErrConflict means the action is invalid for the request's current state,
	// including losing the compare-and-swap against a concurrent transition.
	ErrConflict = errors.New("conflict")
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func missingFields(fields ...string) error {
	return &ValidationError{Msg: "missing required fields: " + strings.Join(fields, ", ")}
}

func conflictf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}
