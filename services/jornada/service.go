package jornada

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"gestor-turnos/apperrors"
	"gestor-turnos/logger"
	jornadaModel "gestor-turnos/models/jornada"
	turnoModel "gestor-turnos/models/turno"
	"gestor-turnos/mq"
	"gestor-turnos/utils"
	"iter"
	"slices"
	"sync/atomic"
	"time"
)

// Service closes out operating days into snapshots and compares snapshots
// against the live ledger.
type Service struct {
	store  Store
	loc    *time.Location
	events mq.EventPublisher
}

func NewService(store Store, loc *time.Location, events mq.EventPublisher) *Service {
	if events == nil {
		events = mq.Nop{}
	}
	return &Service{store: store, loc: loc, events: events}
}

// CloseoutInput is what the caller provides to close a day.
type CloseoutInput struct {
	ClubID        uint
	Fecha         string
	Nombre        string
	Observaciones *string
	By            string
}

// Closeout archives the bookings of one day of a club as a new active
// snapshot. The previous active snapshot of the club is deactivated in the
// same transaction; on any error nothing is written.
func (s *Service) Closeout(ctx context.Context, in CloseoutInput) (*jornadaModel.JornadaTurnos, error) {
	if in.ClubID == 0 {
		return nil, apperrors.Validation("club_id", "is required")
	}
	dia, err := utils.ParseFecha(in.Fecha, s.loc)
	if err != nil {
		return nil, err
	}
	desde, hasta := utils.DayBounds(dia)
	fecha := dia.Format(time.DateOnly)
	nombre := in.Nombre
	if nombre == "" {
		nombre = "Jornada " + fecha
	}

	var snap *jornadaModel.JornadaTurnos
	err = s.store.Transaction(ctx, func(tx Store) error {
		if _, err := tx.FindClub(ctx, in.ClubID); err != nil {
			return err
		}
		canchas, err := tx.ListCanchas(ctx, in.ClubID)
		if err != nil {
			return err
		}
		turnos, err := tx.ListTurnosForDay(ctx, in.ClubID, desde, hasta)
		if err != nil {
			return err
		}

		datos, err := buildDocumento(turnos, jornadaModel.NewCanchaIndex(canchas))
		if err != nil {
			return err
		}

		_, err = tx.FindSnapshotByFecha(ctx, in.ClubID, fecha)
		switch {
		case err == nil:
			return &apperrors.DuplicateSnapshotError{ClubID: in.ClubID, Fecha: fecha}
		case !errors.Is(err, apperrors.ErrNotFound):
			return err
		}

		if err := tx.DeactivateSnapshots(ctx, in.ClubID, in.By); err != nil {
			return err
		}

		snap = &jornadaModel.JornadaTurnos{
			ClubID:        in.ClubID,
			Fecha:         utils.DateOnlyUTC(dia),
			Nombre:        nombre,
			DatosTurnos:   datos,
			TotalTurnos:   len(datos),
			SchemaVersion: jornadaModel.SchemaVersion,
			Observaciones: in.Observaciones,
			Activa:        true,
			CreatedBy:     in.By,
			UpdatedBy:     in.By,
		}
		if err := tx.CreateSnapshot(ctx, snap); err != nil {
			return err
		}

		ids := make([]uint, len(turnos))
		for i := range turnos {
			ids[i] = turnos[i].ID
		}
		return tx.AttachTurnos(ctx, ids, snap.ID)
	})
	if err != nil {
		// A bare sentinel comes from the insert itself: the date was free at
		// the pre-check, so another closeout of the club got there first.
		var dup *apperrors.DuplicateSnapshotError
		if errors.Is(err, apperrors.ErrDuplicateSnapshot) && !errors.As(err, &dup) {
			err = &apperrors.DuplicateSnapshotError{ClubID: in.ClubID, Fecha: fecha, Concurrent: true, Err: err}
		}
		logger.Error(fmt.Sprintf("Closeout of jornada %s for club %d failed", fecha, in.ClubID), err)
		return nil, err
	}

	logger.Success(fmt.Sprintf("Jornada %s of club %d closed as snapshot %d with %d turnos", fecha, in.ClubID, snap.ID, snap.TotalTurnos))

	if err := s.events.PublishJSON(ctx, "jornada.closed", map[string]any{
		"jornada_id":   snap.ID,
		"club_id":      snap.ClubID,
		"fecha":        fecha,
		"total_turnos": snap.TotalTurnos,
	}); err != nil {
		logger.Warning(fmt.Sprintf("Failed to publish jornada.closed for snapshot %d: %v", snap.ID, err))
	}
	return snap, nil
}

// buildDocumento resolves the court of every turno and projects it through
// the field mapping, in start-time order.
func buildDocumento(turnos []turnoModel.Turno, canchas jornadaModel.CanchaIndex) ([]jornadaModel.TurnoResumen, error) {
	slices.SortStableFunc(turnos, func(a, b turnoModel.Turno) int {
		if c := a.HoraInicio.Compare(b.HoraInicio); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	datos := make([]jornadaModel.TurnoResumen, 0, len(turnos))
	for i := range turnos {
		t := &turnos[i]
		cancha, err := canchas.Resolve(t)
		if err != nil {
			return nil, err
		}
		datos = append(datos, jornadaModel.Project(jornadaModel.Fila{Turno: t, Cancha: cancha}))
	}

	if err := jornadaModel.ValidateDocumento(datos); err != nil {
		return nil, &apperrors.DataIntegrityError{Message: err.Error()}
	}
	return datos, nil
}

// Reconcile compares the ledger view of a day with the snapshot archived
// for it. The store is read before Reconcile returns; the comparison runs
// lazily as the sequence is consumed. The sequence can be ranged once.
func (s *Service) Reconcile(ctx context.Context, clubID uint, fecha string) (iter.Seq[jornadaModel.Discrepancy], error) {
	if clubID == 0 {
		return nil, apperrors.Validation("club_id", "is required")
	}
	dia, err := utils.ParseFecha(fecha, s.loc)
	if err != nil {
		return nil, err
	}
	desde, hasta := utils.DayBounds(dia)

	var (
		snap    *jornadaModel.JornadaTurnos
		canchas jornadaModel.CanchaIndex
		turnos  []turnoModel.Turno
	)
	err = s.store.Transaction(ctx, func(tx Store) error {
		var err error
		snap, err = tx.FindSnapshotByFecha(ctx, clubID, dia.Format(time.DateOnly))
		if err != nil {
			return err
		}
		list, err := tx.ListCanchas(ctx, clubID)
		if err != nil {
			return err
		}
		canchas = jornadaModel.NewCanchaIndex(list)
		turnos, err = tx.ListTurnosForDay(ctx, clubID, desde, hasta)
		return err
	})
	if err != nil {
		return nil, err
	}
	if snap.SchemaVersion != jornadaModel.SchemaVersion {
		return nil, &apperrors.DataIntegrityError{Message: fmt.Sprintf("snapshot %d has schema_version %d, expected %d", snap.ID, snap.SchemaVersion, jornadaModel.SchemaVersion)}
	}

	return diff(turnos, canchas, snap), nil
}

func diff(turnos []turnoModel.Turno, canchas jornadaModel.CanchaIndex, snap *jornadaModel.JornadaTurnos) iter.Seq[jornadaModel.Discrepancy] {
	var consumed atomic.Bool

	return func(yield func(jornadaModel.Discrepancy) bool) {
		if !consumed.CompareAndSwap(false, true) {
			return
		}

		if len(turnos) != snap.TotalTurnos {
			if !yield(jornadaModel.Discrepancy{
				Field:         jornadaModel.FieldTotalTurnos,
				LedgerValue:   fmt.Sprint(len(turnos)),
				SnapshotValue: fmt.Sprint(snap.TotalTurnos),
			}) {
				return
			}
		}
		if snap.TotalTurnos != len(snap.DatosTurnos) {
			if !yield(jornadaModel.Discrepancy{
				Field:         jornadaModel.FieldDatosTurnos,
				LedgerValue:   fmt.Sprint(snap.TotalTurnos),
				SnapshotValue: fmt.Sprint(len(snap.DatosTurnos)),
			}) {
				return
			}
		}

		archived := make(map[uint]jornadaModel.TurnoResumen, len(snap.DatosTurnos))
		for _, r := range snap.DatosTurnos {
			archived[r.TurnoID] = r
		}

		inLedger := make(map[uint]bool, len(turnos))
		for i := range turnos {
			t := &turnos[i]
			inLedger[t.ID] = true

			r, ok := archived[t.ID]
			if !ok {
				if !yield(jornadaModel.Discrepancy{TurnoID: t.ID, Field: jornadaModel.FieldTurno, LedgerValue: "present", SnapshotValue: "missing"}) {
					return
				}
				continue
			}

			// An unresolvable court is reported on the court keys with the
			// integrity message as the ledger value.
			cancha, resolveErr := canchas.Resolve(t)
			live := jornadaModel.Project(jornadaModel.Fila{Turno: t, Cancha: cancha})
			for _, m := range jornadaModel.Mapping {
				if m.Identity {
					continue
				}
				lv, sv := m.Value(live), m.Value(r)
				if resolveErr != nil && m.FromCancha() {
					lv = resolveErr.Error()
				} else if lv == sv {
					continue
				}
				if !yield(jornadaModel.Discrepancy{TurnoID: t.ID, Field: m.Key, LedgerValue: lv, SnapshotValue: sv}) {
					return
				}
			}
		}

		for _, r := range snap.DatosTurnos {
			if inLedger[r.TurnoID] {
				continue
			}
			if !yield(jornadaModel.Discrepancy{TurnoID: r.TurnoID, Field: jornadaModel.FieldTurno, LedgerValue: "missing", SnapshotValue: "present"}) {
				return
			}
		}
	}
}

// List returns a club's snapshots, newest first.
func (s *Service) List(ctx context.Context, clubID uint) ([]jornadaModel.JornadaTurnos, error) {
	if clubID == 0 {
		return nil, apperrors.Validation("club_id", "is required")
	}
	return s.store.ListSnapshots(ctx, clubID)
}

// Active returns the club's current open snapshot.
func (s *Service) Active(ctx context.Context, clubID uint) (*jornadaModel.JornadaTurnos, error) {
	if clubID == 0 {
		return nil, apperrors.Validation("club_id", "is required")
	}
	return s.store.FindActiveSnapshot(ctx, clubID)
}

func (s *Service) Get(ctx context.Context, id uint) (*jornadaModel.JornadaTurnos, error) {
	if id == 0 {
		return nil, apperrors.Validation("id", "is required")
	}
	return s.store.FindSnapshot(ctx, id)
}
