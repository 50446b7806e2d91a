package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestStoreKeepsKnownErrors(t *testing.T) {
	known := []error{
		ErrNotFound,
		Validation("fecha", "is required"),
		&DataIntegrityError{TurnoID: 1, Message: "x"},
		&InvalidStateTransition{TurnoID: 1, From: "cancelado", Action: "assign caddie"},
		&DuplicateSnapshotError{ClubID: 1, Fecha: "2024-01-10"},
		&StoreError{Op: "inner", Err: errors.New("x")},
	}
	for _, err := range known {
		if got := Store("outer", err); got != err {
			t.Errorf("%T was rewrapped as %v", err, got)
		}
	}
	if Store("op", nil) != nil {
		t.Error("nil should stay nil")
	}
}

func TestStoreWrapsForeignErrors(t *testing.T) {
	cause := context.DeadlineExceeded
	err := Store("list turnos", cause)

	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StoreError, got %T", err)
	}
	if se.Op != "list turnos" || se.Constraint {
		t.Errorf("unexpected %+v", se)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("cause not reachable through Unwrap")
	}
}

func TestDuplicateSnapshotMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("closeout: %w", &DuplicateSnapshotError{ClubID: 2, Fecha: "2024-01-10", Err: errors.New("unique violation")})
	if !errors.Is(err, ErrDuplicateSnapshot) {
		t.Error("errors.Is should match ErrDuplicateSnapshot")
	}
	var de *DuplicateSnapshotError
	if !errors.As(err, &de) || de.ClubID != 2 {
		t.Errorf("errors.As failed: %v", de)
	}
}

func TestMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{Validation("fecha", "is required"), "validation: fecha: is required"},
		{Validation("", "invalid request body"), "validation: invalid request body"},
		{&DataIntegrityError{TurnoID: 4, Message: "no court"}, "data integrity: turno 4: no court"},
		{&DataIntegrityError{Message: "bad snapshot"}, "data integrity: bad snapshot"},
		{&InvalidStateTransition{TurnoID: 4, From: "cancelado", Action: "assign caddie"}, `turno 4: assign caddie not allowed from estado "cancelado"`},
		{&DuplicateSnapshotError{ClubID: 2, Fecha: "2024-01-10"}, "jornada 2024-01-10 of club 2 already closed"},
		{&DuplicateSnapshotError{ClubID: 2, Fecha: "2024-01-10", Concurrent: true}, "jornada 2024-01-10 of club 2 conflicts with a concurrent closeout"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}
