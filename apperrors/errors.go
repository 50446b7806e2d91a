package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateSnapshot marks a closeout that collided with an existing
// snapshot for the same club and date, or with a concurrent closeout.
var ErrDuplicateSnapshot = errors.New("duplicate jornada snapshot")

// ValidationError is returned for malformed input, before any store access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Message
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// Validation builds a *ValidationError.
func Validation(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// DataIntegrityError reports ledger rows that break a data invariant,
// e.g. a turno whose court cannot be resolved.
type DataIntegrityError struct {
	TurnoID uint
	Message string
}

func (e *DataIntegrityError) Error() string {
	if e.TurnoID == 0 {
		return "data integrity: " + e.Message
	}
	return fmt.Sprintf("data integrity: turno %d: %s", e.TurnoID, e.Message)
}

// DuplicateSnapshotError carries the scope of a rejected closeout.
// Concurrent is set when the store refused the insert after the date
// pre-check passed: another closeout of the club won the race, possibly
// for a different date.
type DuplicateSnapshotError struct {
	ClubID     uint
	Fecha      string
	Concurrent bool
	Err        error
}

func (e *DuplicateSnapshotError) Error() string {
	if e.Concurrent {
		return fmt.Sprintf("jornada %s of club %d conflicts with a concurrent closeout", e.Fecha, e.ClubID)
	}
	return fmt.Sprintf("jornada %s of club %d already closed", e.Fecha, e.ClubID)
}

func (e *DuplicateSnapshotError) Is(target error) bool {
	return target == ErrDuplicateSnapshot
}

func (e *DuplicateSnapshotError) Unwrap() error { return e.Err }

// InvalidStateTransition is returned when a turno operation is not allowed
// from its current estado. The turno is left unchanged.
type InvalidStateTransition struct {
	TurnoID uint
	From    string
	Action  string
}

func (e *InvalidStateTransition) Error() string {
	return fmt.Sprintf("turno %d: %s not allowed from estado %q", e.TurnoID, e.Action, e.From)
}

// StoreError wraps any failure coming from the relational store.
type StoreError struct {
	Op  string
	Err error
	// Constraint is true for constraint violations (FK, unique, check).
	Constraint bool
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a *StoreError unless it already belongs to the
// taxonomy of this package, in which case it is returned unchanged.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsKnown(err) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsKnown reports whether err is one of the errors declared here.
func IsKnown(err error) bool {
	var (
		ve  *ValidationError
		de  *DataIntegrityError
		ist *InvalidStateTransition
		se  *StoreError
	)
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicateSnapshot):
		return true
	case errors.As(err, &ve), errors.As(err, &de), errors.As(err, &ist), errors.As(err, &se):
		return true
	}
	return false
}
