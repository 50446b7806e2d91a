package utils

import (
	"errors"
	"fmt"
	"gestor-turnos/apperrors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.Validation("fecha", "is required"), fiber.StatusBadRequest},
		{"not found", apperrors.Store("find", apperrors.ErrNotFound), fiber.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", apperrors.ErrNotFound), fiber.StatusNotFound},
		{"duplicate", &apperrors.DuplicateSnapshotError{ClubID: 1, Fecha: "2024-01-10"}, fiber.StatusConflict},
		{"integrity", &apperrors.DataIntegrityError{TurnoID: 3, Message: "no court"}, fiber.StatusConflict},
		{"transition", &apperrors.InvalidStateTransition{TurnoID: 3, From: "completado", Action: "assign caddie"}, fiber.StatusUnprocessableEntity},
		{"constraint", &apperrors.StoreError{Op: "delete club", Err: errors.New("fk"), Constraint: true}, fiber.StatusConflict},
		{"store", &apperrors.StoreError{Op: "list", Err: errors.New("connection reset")}, fiber.StatusInternalServerError},
		{"fiber", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		got, _ := ErrorStatus(tc.err)
		if got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestErrorStatusHidesStoreCause(t *testing.T) {
	_, msg := ErrorStatus(&apperrors.StoreError{Op: "list", Err: errors.New("password authentication failed")})
	if msg != "Internal server error" {
		t.Errorf("store cause leaked: %q", msg)
	}
}

func TestParseFecha(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	if err != nil {
		t.Skip("tzdata not available")
	}

	got, err := ParseFecha(" 2024-03-15 ", bogota)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, bogota)
	if !got.Equal(want) || got.Location() != bogota {
		t.Errorf("got %v, want %v", got, want)
	}

	for _, bad := range []string{"", "2024-02-30", "15/03/2024", "2024-3-15"} {
		_, err := ParseFecha(bad, bogota)
		var ve *apperrors.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%q: expected ValidationError, got %v", bad, err)
		}
	}
}

func TestDayBounds(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	if err != nil {
		t.Skip("tzdata not available")
	}
	start, end := DayBounds(time.Date(2024, 3, 15, 22, 30, 0, 0, bogota))
	if !start.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, bogota)) {
		t.Errorf("start %v", start)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("end %v", end)
	}
	// 22:30 in Bogota is already the next day in UTC.
	if start.UTC().Day() != 15 || end.UTC().Hour() != 5 {
		t.Errorf("bounds in UTC %v - %v", start.UTC(), end.UTC())
	}
}

func TestDateOnlyUTC(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	got := DateOnlyUTC(time.Date(2024, 3, 15, 23, 0, 0, 0, bogota))
	if want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
