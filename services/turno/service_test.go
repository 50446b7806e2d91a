package turno_test

import (
	"context"
	"errors"
	"gestor-turnos/apperrors"
	canchaModel "gestor-turnos/models/cancha"
	clubModel "gestor-turnos/models/club"
	staffModel "gestor-turnos/models/staff"
	turnoModel "gestor-turnos/models/turno"
	"gestor-turnos/repository/memstore"
	turnoService "gestor-turnos/services/turno"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int { return &v }

type fixture struct {
	db       *memstore.DB
	svc      *turnoService.Service
	club     uint
	other    uint
	canchaA  uint
	canchaB  uint
	inactiva uint
	foreign  uint
	caddie   uint
	boleador uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memstore.New()
	f := &fixture{db: db, svc: turnoService.NewService(db.Turnos(), time.UTC, nil)}
	f.club = db.AddClub(clubModel.Club{Nombre: "Club", Activo: true})
	f.other = db.AddClub(clubModel.Club{Nombre: "Otro", Activo: true})
	f.canchaA = db.AddCancha(canchaModel.Cancha{ClubID: f.club, Numero: 1, Nombre: "A", Activa: true})
	f.canchaB = db.AddCancha(canchaModel.Cancha{ClubID: f.club, Numero: 2, Nombre: "B", Activa: true})
	f.inactiva = db.AddCancha(canchaModel.Cancha{ClubID: f.club, Numero: 3, Nombre: "C", Activa: false})
	f.foreign = db.AddCancha(canchaModel.Cancha{ClubID: f.other, Numero: 1, Nombre: "X", Activa: true})
	f.caddie = db.AddCaddie(staffModel.Caddie{Perfil: staffModel.Perfil{ClubID: f.club, Nombre: "Luis", Activo: true, Disponibilidad: staffModel.DisponibilidadDisponible}})
	f.boleador = db.AddBoleador(staffModel.Boleador{Perfil: staffModel.Perfil{ClubID: f.club, Nombre: "Pedro", Activo: true, Disponibilidad: staffModel.DisponibilidadDisponible}})
	return f
}

var inicio = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func (f *fixture) create(t *testing.T, in turnoService.CreateInput) *turnoModel.Turno {
	t.Helper()
	if in.ClubID == 0 {
		in.ClubID = f.club
	}
	if in.ClienteNombre == "" {
		in.ClienteNombre = "Ana"
	}
	if in.HoraInicio.IsZero() {
		in.HoraInicio = inicio
	}
	turno, err := f.svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return turno
}

func isValidation(err error) bool {
	var ve *apperrors.ValidationError
	return errors.As(err, &ve)
}

func isInvalidTransition(err error) bool {
	var ist *apperrors.InvalidStateTransition
	return errors.As(err, &ist)
}

func TestCreateResolvesCourt(t *testing.T) {
	f := newFixture(t)

	byID := f.create(t, turnoService.CreateInput{CanchaID: uintPtr(f.canchaB)})
	if *byID.CanchaID != f.canchaB || byID.NumeroCancha != nil || byID.Estado != turnoModel.EstadoPendiente {
		t.Errorf("by id: %+v", byID)
	}

	bySlot := f.create(t, turnoService.CreateInput{NumeroCancha: intPtr(2)})
	if *bySlot.CanchaID != f.canchaB || *bySlot.NumeroCancha != 2 {
		t.Errorf("by slot: cancha_id=%v numero=%v", bySlot.CanchaID, bySlot.NumeroCancha)
	}

	both := f.create(t, turnoService.CreateInput{CanchaID: uintPtr(f.canchaA), NumeroCancha: intPtr(1)})
	if *both.CanchaID != f.canchaA {
		t.Errorf("both: cancha_id=%d", *both.CanchaID)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fin := inicio.Add(-time.Hour)

	cases := map[string]turnoService.CreateInput{
		"no club":          {ClienteNombre: "Ana", HoraInicio: inicio, CanchaID: uintPtr(f.canchaA)},
		"no cliente":       {ClubID: f.club, ClienteNombre: "  ", HoraInicio: inicio, CanchaID: uintPtr(f.canchaA)},
		"no hora":          {ClubID: f.club, ClienteNombre: "Ana", CanchaID: uintPtr(f.canchaA)},
		"fin before start": {ClubID: f.club, ClienteNombre: "Ana", HoraInicio: inicio, HoraFin: &fin, CanchaID: uintPtr(f.canchaA)},
		"no court":         {ClubID: f.club, ClienteNombre: "Ana", HoraInicio: inicio},
		"unknown court":    {ClubID: f.club, ClienteNombre: "Ana", HoraInicio: inicio, CanchaID: uintPtr(999)},
		"unknown slot":     {ClubID: f.club, ClienteNombre: "Ana", HoraInicio: inicio, NumeroCancha: intPtr(9)},
		"foreign court":    {ClubID: f.club, ClienteNombre: "Ana", HoraInicio: inicio, CanchaID: uintPtr(f.foreign)},
		"inactive court":   {ClubID: f.club, ClienteNombre: "Ana", HoraInicio: inicio, CanchaID: uintPtr(f.inactiva)},
		"unknown caddie":   {ClubID: f.club, ClienteNombre: "Ana", HoraInicio: inicio, CanchaID: uintPtr(f.canchaA), CaddieID: uintPtr(999)},
	}
	for name, in := range cases {
		if _, err := f.svc.Create(ctx, in); !isValidation(err) {
			t.Errorf("%s: expected ValidationError, got %v", name, err)
		}
	}

	_, err := f.svc.Create(ctx, turnoService.CreateInput{ClubID: f.club, ClienteNombre: "Ana", HoraInicio: inicio, CanchaID: uintPtr(f.canchaA), NumeroCancha: intPtr(2)})
	var de *apperrors.DataIntegrityError
	if !errors.As(err, &de) {
		t.Errorf("conflicting court: expected DataIntegrityError, got %v", err)
	}

	_, err = f.svc.Create(ctx, turnoService.CreateInput{ClubID: 999, ClienteNombre: "Ana", HoraInicio: inicio, CanchaID: uintPtr(f.canchaA)})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("unknown club: expected ErrNotFound, got %v", err)
	}
}

func TestTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	turno := f.create(t, turnoService.CreateInput{CanchaID: uintPtr(f.canchaA)})

	for _, to := range []turnoModel.Estado{turnoModel.EstadoConfirmado, turnoModel.EstadoCompletado} {
		got, err := f.svc.Transition(ctx, turno.ID, to, "desk")
		if err != nil {
			t.Fatalf("to %s: %v", to, err)
		}
		if got.Estado != to || got.UpdatedBy != "desk" {
			t.Fatalf("to %s: got estado=%s updated_by=%s", to, got.Estado, got.UpdatedBy)
		}
	}

	_, err := f.svc.Transition(ctx, turno.ID, turnoModel.EstadoPendiente, "desk")
	var ist *apperrors.InvalidStateTransition
	if !errors.As(err, &ist) {
		t.Fatalf("completado -> pendiente: expected InvalidStateTransition, got %v", err)
	}
	if ist.TurnoID != turno.ID || ist.From != "completado" {
		t.Errorf("unexpected error detail %+v", ist)
	}

	stored, _ := f.svc.Get(ctx, turno.ID)
	if stored.Estado != turnoModel.EstadoCompletado {
		t.Errorf("rejected transition changed estado to %s", stored.Estado)
	}

	type step struct{ From, To turnoModel.Estado }
	var got []step
	for _, ev := range f.db.StatusEvents() {
		got = append(got, step{ev.From, ev.To})
	}
	want := []step{
		{turnoModel.EstadoPendiente, turnoModel.EstadoConfirmado},
		{turnoModel.EstadoConfirmado, turnoModel.EstadoCompletado},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("status events (-want +got):\n%s", diff)
	}
}

func TestCompletedToPendingAlwaysRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		turno := f.create(t, turnoService.CreateInput{CanchaID: uintPtr(f.canchaA), HoraInicio: inicio.Add(time.Duration(i) * time.Hour)})
		if _, err := f.svc.Transition(ctx, turno.ID, turnoModel.EstadoConfirmado, "desk"); err != nil {
			t.Fatal(err)
		}
		if _, err := f.svc.Transition(ctx, turno.ID, turnoModel.EstadoCompletado, "desk"); err != nil {
			t.Fatal(err)
		}
		if _, err := f.svc.Transition(ctx, turno.ID, turnoModel.EstadoPendiente, "desk"); !isInvalidTransition(err) {
			t.Errorf("turno %d: expected InvalidStateTransition, got %v", turno.ID, err)
		}
	}
}

func TestTransitionUnknownEstado(t *testing.T) {
	f := newFixture(t)
	turno := f.create(t, turnoService.CreateInput{CanchaID: uintPtr(f.canchaA)})
	if _, err := f.svc.Transition(context.Background(), turno.ID, "reservado", "desk"); !isValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
	if _, err := f.svc.Transition(context.Background(), 999, turnoModel.EstadoConfirmado, "desk"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStaffAssignment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	turno := f.create(t, turnoService.CreateInput{CanchaID: uintPtr(f.canchaA), CaddieID: uintPtr(f.caddie)})
	if turno.CaddieID == nil || turno.Caddie == nil || turno.Caddie.Nombre != "Luis" {
		t.Fatalf("caddie not assigned on create: %+v", turno)
	}

	got, err := f.svc.AssignBoleador(ctx, turno.ID, uintPtr(f.boleador), "desk")
	if err != nil {
		t.Fatal(err)
	}
	if *got.BoleadorID != f.boleador {
		t.Errorf("boleador_id = %v", got.BoleadorID)
	}

	got, err = f.svc.AssignCaddie(ctx, turno.ID, nil, "desk")
	if err != nil {
		t.Fatal(err)
	}
	if got.CaddieID != nil || got.Caddie != nil {
		t.Errorf("caddie not cleared: %+v", got)
	}

	stored, _ := f.svc.Get(ctx, turno.ID)
	if stored.CaddieID != nil || stored.BoleadorID == nil {
		t.Errorf("stored staff caddie=%v boleador=%v", stored.CaddieID, stored.BoleadorID)
	}
}

func TestStaffAssignmentRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ajeno := f.db.AddCaddie(staffModel.Caddie{Perfil: staffModel.Perfil{ClubID: f.other, Nombre: "Ajeno", Activo: true, Disponibilidad: staffModel.DisponibilidadDisponible}})
	ocupado := f.db.AddCaddie(staffModel.Caddie{Perfil: staffModel.Perfil{ClubID: f.club, Nombre: "Ocupado", Activo: true, Disponibilidad: staffModel.DisponibilidadNoDisponible}})
	baja := f.db.AddBoleador(staffModel.Boleador{Perfil: staffModel.Perfil{ClubID: f.club, Nombre: "Baja", Activo: false, Disponibilidad: staffModel.DisponibilidadDisponible}})
	turno := f.create(t, turnoService.CreateInput{CanchaID: uintPtr(f.canchaA)})

	if _, err := f.svc.AssignCaddie(ctx, turno.ID, uintPtr(ajeno), "desk"); !isValidation(err) {
		t.Errorf("other club caddie: got %v", err)
	}
	if _, err := f.svc.AssignCaddie(ctx, turno.ID, uintPtr(ocupado), "desk"); !isValidation(err) {
		t.Errorf("unavailable caddie: got %v", err)
	}
	if _, err := f.svc.AssignBoleador(ctx, turno.ID, uintPtr(baja), "desk"); !isValidation(err) {
		t.Errorf("inactive boleador: got %v", err)
	}
}

func TestTerminalTurnoRejectsChanges(t *testing.T) {
	for _, estado := range []turnoModel.Estado{turnoModel.EstadoCompletado, turnoModel.EstadoCancelado} {
		t.Run(estado.String(), func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			turno := f.create(t, turnoService.CreateInput{CanchaID: uintPtr(f.canchaA), CaddieID: uintPtr(f.caddie)})
			if estado == turnoModel.EstadoCompletado {
				if _, err := f.svc.Transition(ctx, turno.ID, turnoModel.EstadoConfirmado, "desk"); err != nil {
					t.Fatal(err)
				}
			}
			if _, err := f.svc.Transition(ctx, turno.ID, estado, "desk"); err != nil {
				t.Fatal(err)
			}
			before, _ := f.svc.Get(ctx, turno.ID)

			if _, err := f.svc.AssignCaddie(ctx, turno.ID, nil, "desk"); !isInvalidTransition(err) {
				t.Errorf("unassign caddie: got %v", err)
			}
			if _, err := f.svc.AssignBoleador(ctx, turno.ID, uintPtr(f.boleador), "desk"); !isInvalidTransition(err) {
				t.Errorf("assign boleador: got %v", err)
			}
			if _, err := f.svc.ReassignCancha(ctx, turno.ID, uintPtr(f.canchaB), nil, "desk"); !isInvalidTransition(err) {
				t.Errorf("reassign cancha: got %v", err)
			}

			after, _ := f.svc.Get(ctx, turno.ID)
			if diff := cmp.Diff(before, after); diff != "" {
				t.Errorf("rejected operations changed the turno:\n%s", diff)
			}

			// Client data stays editable.
			if _, err := f.svc.UpdateCliente(ctx, turno.ID, "Ana Maria", nil, "desk"); err != nil {
				t.Errorf("update cliente: %v", err)
			}
		})
	}
}

func TestReassignCanchaKeepsLegacySlotInStep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	legacy := f.create(t, turnoService.CreateInput{NumeroCancha: intPtr(1)})
	got, err := f.svc.ReassignCancha(ctx, legacy.ID, uintPtr(f.canchaB), nil, "desk")
	if err != nil {
		t.Fatal(err)
	}
	if *got.CanchaID != f.canchaB || got.NumeroCancha == nil || *got.NumeroCancha != 2 {
		t.Errorf("legacy turno: cancha_id=%v numero=%v", got.CanchaID, got.NumeroCancha)
	}

	modern := f.create(t, turnoService.CreateInput{CanchaID: uintPtr(f.canchaA)})
	got, err = f.svc.ReassignCancha(ctx, modern.ID, uintPtr(f.canchaB), nil, "desk")
	if err != nil {
		t.Fatal(err)
	}
	if got.NumeroCancha != nil {
		t.Errorf("modern turno gained a legacy slot %d", *got.NumeroCancha)
	}

	if _, err := f.svc.ReassignCancha(ctx, modern.ID, nil, nil, "desk"); !isValidation(err) {
		t.Errorf("missing court: got %v", err)
	}
	if _, err := f.svc.ReassignCancha(ctx, modern.ID, uintPtr(f.foreign), nil, "desk"); !isValidation(err) {
		t.Errorf("foreign court: got %v", err)
	}
}

func TestUpdateCliente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	turno := f.create(t, turnoService.CreateInput{CanchaID: uintPtr(f.canchaA)})
	nota := "paga en caja"

	got, err := f.svc.UpdateCliente(ctx, turno.ID, "  Ana Maria ", &nota, "desk")
	if err != nil {
		t.Fatal(err)
	}
	if got.ClienteNombre != "Ana Maria" || got.Observaciones == nil || *got.Observaciones != nota {
		t.Errorf("got %+v", got)
	}
	if _, err := f.svc.UpdateCliente(ctx, turno.ID, " ", nil, "desk"); !isValidation(err) {
		t.Errorf("blank nombre: got %v", err)
	}
}

func TestListDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	late := f.create(t, turnoService.CreateInput{CanchaID: uintPtr(f.canchaA), HoraInicio: inicio.Add(8 * time.Hour)})
	early := f.create(t, turnoService.CreateInput{CanchaID: uintPtr(f.canchaB), HoraInicio: inicio})
	f.create(t, turnoService.CreateInput{CanchaID: uintPtr(f.canchaA), HoraInicio: inicio.AddDate(0, 0, 1)})

	list, err := f.svc.ListDay(ctx, f.club, "2024-01-10")
	if err != nil {
		t.Fatal(err)
	}
	var ids []uint
	for _, turno := range list {
		ids = append(ids, turno.ID)
		if turno.Cancha == nil {
			t.Errorf("turno %d without cancha loaded", turno.ID)
		}
	}
	if diff := cmp.Diff([]uint{early.ID, late.ID}, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}

	if _, err := f.svc.ListDay(ctx, f.club, ""); !isValidation(err) {
		t.Errorf("missing fecha: got %v", err)
	}
}
